package main

import (
	"github.com/alecthomas/repr"

	"github.com/alecthomas/jitx/parser"
)

type parseCmd struct {
	Expr string `arg:"" help:"Expression to parse."`
	Body bool   `help:"Parse a kernel body, eg. \"out0 = in0 + in1\", instead of an expression."`
}

func (cmd *parseCmd) Run(_ *globalOptions) error {
	if cmd.Body {
		body, err := parser.ParseBody(cmd.Expr)
		if err != nil {
			return err
		}
		repr.Println(body, repr.Indent("  "), repr.OmitEmpty(true))
		return nil
	}
	expr, err := parser.ParseExpr(cmd.Expr)
	if err != nil {
		return err
	}
	repr.Println(expr, repr.Indent("  "), repr.OmitEmpty(true))
	return nil
}
