package main

import (
	"fmt"
	"os"

	"github.com/go-kit/log/level"

	"github.com/alecthomas/jitx/codegen"
	"github.com/alecthomas/jitx/parser"
	"github.com/alecthomas/jitx/typerules"
)

type resolveCmd struct {
	Operator string `arg:"" help:"Operator symbol or keyword, eg. +, //, and, ~."`
	Unary    bool   `help:"Resolve the unary form of -."`
	Code     bool   `help:"Print device code for every signature instead of the signature list."`
}

func (cmd *resolveCmd) Run(opts *globalOptions) error {
	mode, err := opts.mode()
	if err != nil {
		return err
	}
	op, err := parser.ParseOp(cmd.Operator, cmd.Unary)
	if err != nil {
		return err
	}
	k, err := typerules.Resolve(mode, op)
	if err != nil {
		return err
	}
	level.Debug(opts.logger).Log("msg", "resolved operator", "op", op, "mode", mode, "kernel", k.Name())
	if cmd.Code {
		return codegen.Kernel(os.Stdout, k)
	}
	fmt.Println(k.Name())
	for _, sig := range k.Signatures() {
		fmt.Printf("  %-7s %s\n", sig, k.SourceOf(sig))
	}
	return nil
}
