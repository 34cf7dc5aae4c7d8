package main

import (
	"fmt"

	"github.com/go-kit/log/level"

	"github.com/alecthomas/jitx/analyser"
	"github.com/alecthomas/jitx/parser"
)

type checkCmd struct {
	Expr    string `arg:"" help:"Expression to check."`
	Explain bool   `help:"Print the kernel and signature of every operator."`
}

func (cmd *checkCmd) Run(opts *globalOptions) error {
	p, err := checkExpr(opts, cmd.Expr)
	if err != nil {
		return err
	}
	if cmd.Explain {
		err = parser.Visit(p.Expr, func(node parser.Node) error {
			if _, ok := node.(*parser.Unary); ok {
				// Annotated on the enclosing expression.
				return nil
			}
			if k, sig, ok := p.Kernel(node); ok {
				fmt.Printf("%s: %s[%s]\n", node.Position(), k.Name(), sig)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	fmt.Println(p.Result())
	return nil
}

// checkExpr type checks an expression with the mode and variables from the
// command line and config file.
func checkExpr(opts *globalOptions, source string) (*analyser.Program, error) {
	mode, err := opts.mode()
	if err != nil {
		return nil, err
	}
	kinds, _, err := opts.variables()
	if err != nil {
		return nil, err
	}
	p, err := analyser.CheckString(mode, source, kinds)
	if err != nil {
		return nil, err
	}
	level.Debug(opts.logger).Log("msg", "checked expression", "expr", p.Expr, "mode", mode, "type", p.Result())
	return p, nil
}
