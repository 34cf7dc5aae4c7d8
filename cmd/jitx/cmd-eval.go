package main

import (
	"fmt"

	"github.com/go-kit/log/level"
)

type evalCmd struct {
	Expr string `arg:"" help:"Expression to evaluate."`
}

func (cmd *evalCmd) Run(opts *globalOptions) error {
	p, err := checkExpr(opts, cmd.Expr)
	if err != nil {
		return err
	}
	_, values, err := opts.variables()
	if err != nil {
		return err
	}
	out, err := p.Eval(values)
	if err != nil {
		return err
	}
	level.Debug(opts.logger).Log("msg", "evaluated expression", "expr", p.Expr, "result", out)
	fmt.Println(out)
	return nil
}
