package analyser

import (
	"github.com/alecthomas/participle/v2"

	"github.com/alecthomas/jitx/dtype"
	"github.com/alecthomas/jitx/parser"
)

// Eval evaluates the program with the kernels it resolved to, emulating
// device execution.
//
// Each variable's value is cast to its declared type first.
func (p *Program) Eval(values map[string]dtype.Value) (dtype.Value, error) {
	e := &evaluator{p: p, values: values}
	return e.expr(p.Expr)
}

type evaluator struct {
	p      *Program
	values map[string]dtype.Value
}

func (e *evaluator) expr(expr *parser.Expr) (dtype.Value, error) {
	switch {
	case expr.Terminal != nil:
		return e.terminal(expr.Terminal)

	case expr.Unary != nil:
		operand, err := e.expr(expr.Unary.Operand)
		if err != nil {
			return dtype.Value{}, err
		}
		return e.apply(expr.Unary, operand)

	default:
		lhs, err := e.expr(expr.Left)
		if err != nil {
			return dtype.Value{}, err
		}
		rhs, err := e.expr(expr.Right)
		if err != nil {
			return dtype.Value{}, err
		}
		return e.apply(expr, lhs, rhs)
	}
}

// apply calls the kernel a node was resolved to.
func (e *evaluator) apply(node parser.Node, args ...dtype.Value) (dtype.Value, error) {
	k, _, ok := e.p.Kernel(node)
	if !ok {
		return dtype.Value{}, participle.Errorf(node.Position(), "node was not checked")
	}
	out, err := k.Call(args...)
	if err != nil {
		return dtype.Value{}, participle.Wrapf(node.Position(), err, "evaluation failed")
	}
	return out, nil
}

func (e *evaluator) terminal(terminal *parser.Terminal) (dtype.Value, error) {
	var (
		v   dtype.Value
		err error
	)
	switch {
	case terminal.Group != nil && terminal.Group.Cast != "":
		v, err = e.terminal(terminal.Group.Operand)
		v = v.Cast(e.p.Type(terminal.Group))

	case terminal.Group != nil:
		v, err = e.expr(terminal.Group.Expr)

	case terminal.Literal != nil:
		ann := e.p.Annotation(terminal.Literal)
		if ann == nil || ann.Constant == nil {
			return dtype.Value{}, participle.Errorf(terminal.Pos, "literal was not checked")
		}
		v = *ann.Constant

	case terminal.Call != nil:
		args := make([]dtype.Value, 0, len(terminal.Call.Values))
		for _, arg := range terminal.Call.Values {
			a, err := e.expr(arg)
			if err != nil {
				return dtype.Value{}, err
			}
			args = append(args, a)
		}
		v, err = e.apply(terminal.Call, args...)

	default:
		value, ok := e.values[terminal.Ident]
		if !ok {
			return dtype.Value{}, participle.Errorf(terminal.Pos, "no value for %q", terminal.Ident)
		}
		kind, ok := e.p.Root.Resolve(terminal.Ident)
		if !ok {
			return dtype.Value{}, participle.Errorf(terminal.Pos, "unknown symbol %q", terminal.Ident)
		}
		v = value.Cast(kind)
	}
	if err != nil {
		return dtype.Value{}, err
	}
	for _, method := range terminal.Methods {
		if method.Name == "real" {
			v = v.Real()
		} else {
			v = v.Imag()
		}
	}
	return v, nil
}
