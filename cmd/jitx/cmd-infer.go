package main

import (
	"fmt"
	"math/big"

	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/alecthomas/jitx/parser"
	"github.com/alecthomas/jitx/typerules"
)

type inferCmd struct {
	Literal string `arg:"" help:"Literal, eg. 5, 1.5, 2j or True. Use -- before negative literals."`
}

func (cmd *inferCmd) Run(opts *globalOptions) error {
	mode, err := opts.mode()
	if err != nil {
		return err
	}
	value, err := literalValue(cmd.Literal)
	if err != nil {
		return err
	}
	kind, err := typerules.InferScalar(mode, value)
	if err != nil {
		return err
	}
	level.Debug(opts.logger).Log("msg", "inferred literal type", "literal", cmd.Literal, "mode", mode, "kind", kind)
	fmt.Println(kind)
	return nil
}

// literalValue parses a literal, optionally negated, to a plain Go value.
func literalValue(source string) (interface{}, error) {
	expr, err := parser.ParseExpr(source)
	if err != nil {
		return nil, err
	}
	negate := false
	if expr.Unary != nil && expr.Unary.Op == parser.OpUSub {
		negate = true
		expr = expr.Unary.Operand
	}
	if expr.Terminal == nil || expr.Terminal.Literal == nil || len(expr.Terminal.Methods) > 0 {
		return nil, errors.Errorf("%q is not a literal", source)
	}
	value := expr.Terminal.Literal.Value()
	if !negate {
		return value, nil
	}
	switch value := value.(type) {
	case *big.Int:
		return value.Neg(value), nil
	case float64:
		return -value, nil
	case complex128:
		return -value, nil
	}
	return nil, errors.Errorf("%q is not a numeric literal", source)
}
