package main

import (
	"os"

	"github.com/alecthomas/jitx/codegen"
)

type emitCmd struct {
	Expr string `arg:"" help:"Expression to compile."`
	Name string `default:"expr" help:"Name of the generated device function."`
}

func (cmd *emitCmd) Run(opts *globalOptions) error {
	p, err := checkExpr(opts, cmd.Expr)
	if err != nil {
		return err
	}
	return codegen.Generate(os.Stdout, cmd.Name, p)
}
