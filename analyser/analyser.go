// Package analyser type checks expressions, resolving the kernel and
// signature of every operator and the element type of every literal.
package analyser

import (
	"math/big"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/alecthomas/jitx/dtype"
	"github.com/alecthomas/jitx/parser"
	"github.com/alecthomas/jitx/typerules"
	"github.com/alecthomas/jitx/ufunc"
)

// Check performs semantic analysis on an expression.
//
// "vars" declares the element type of each variable the expression may
// refer to.
func Check(mode typerules.Mode, expr *parser.Expr, vars map[string]dtype.Kind) (*Program, error) {
	scope, err := NewScope(vars)
	if err != nil {
		return nil, err
	}
	p := &Program{
		Expr:        expr,
		Mode:        mode,
		Root:        scope,
		annotations: map[parser.Node]*Annotation{},
	}
	a := &analyser{p: p}
	if _, err := a.resolveExpr(scope, expr); err != nil {
		return nil, err
	}
	return p, nil
}

// CheckString parses and checks an expression.
func CheckString(mode typerules.Mode, source string, vars map[string]dtype.Kind) (*Program, error) {
	expr, err := parser.ParseExpr(source)
	if err != nil {
		return nil, err
	}
	return Check(mode, expr, vars)
}

type analyser struct {
	p *Program
}

func (a *analyser) resolveExpr(scope *Scope, expr *parser.Expr) (dtype.Kind, error) {
	var (
		kind dtype.Kind
		err  error
	)
	switch {
	case expr.Terminal != nil:
		kind, err = a.resolveTerminal(scope, expr.Terminal)
		if err != nil {
			return dtype.Invalid, err
		}
		a.p.associate(expr, &Annotation{Kind: kind})

	case expr.Unary != nil:
		kind, err = a.resolveUnary(scope, expr.Unary)
		if err != nil {
			return dtype.Invalid, err
		}
		a.p.associate(expr, a.p.Annotation(expr.Unary))

	default:
		lhs, err := a.resolveExpr(scope, expr.Left)
		if err != nil {
			return dtype.Invalid, err
		}
		rhs, err := a.resolveExpr(scope, expr.Right)
		if err != nil {
			return dtype.Invalid, err
		}
		ann, err := a.resolveOperator(expr.Pos, expr.Op, lhs, rhs)
		if err != nil {
			return dtype.Invalid, err
		}
		a.p.associate(expr, ann)
		kind = ann.Kind
	}
	return kind, nil
}

func (a *analyser) resolveUnary(scope *Scope, unary *parser.Unary) (dtype.Kind, error) {
	operand, err := a.resolveExpr(scope, unary.Operand)
	if err != nil {
		return dtype.Invalid, err
	}
	ann, err := a.resolveOperator(unary.Pos, unary.Op, operand)
	if err != nil {
		return dtype.Invalid, err
	}
	a.p.associate(unary, ann)
	return ann.Kind, nil
}

// resolveOperator finds the kernel for an operator and the signature
// matching its operand types.
func (a *analyser) resolveOperator(pos lexer.Position, op parser.Op, in ...dtype.Kind) (*Annotation, error) {
	k, err := typerules.Resolve(a.p.Mode, op)
	if err != nil {
		return nil, participle.Wrapf(pos, err, "cannot resolve %s", op)
	}
	sig, err := k.Resolve(in...)
	if err != nil {
		return nil, participle.Wrapf(pos, err, "cannot apply %s to %s", op, kindList(in))
	}
	return &Annotation{Kind: sig.Out, Kernel: k, Signature: sig}, nil
}

func (a *analyser) resolveTerminal(scope *Scope, terminal *parser.Terminal) (dtype.Kind, error) {
	var (
		kind dtype.Kind
		err  error
	)
	switch {
	case terminal.Group != nil:
		kind, err = a.resolveGroup(scope, terminal.Group)

	case terminal.Literal != nil:
		kind, err = a.resolveLiteral(terminal.Literal)

	case terminal.Call != nil:
		kind, err = a.resolveCall(scope, terminal)

	default:
		var ok bool
		kind, ok = scope.Resolve(terminal.Ident)
		if !ok {
			return dtype.Invalid, participle.Errorf(terminal.Pos, "unknown symbol %q", terminal.Ident)
		}
	}
	if err != nil {
		return dtype.Invalid, err
	}
	for _, method := range terminal.Methods {
		if !kind.IsComplex() {
			return dtype.Invalid, participle.Errorf(method.Pos, "%s has no method %s()", kind, method.Name)
		}
		switch method.Name {
		case "real", "imag":
		default:
			return dtype.Invalid, participle.Errorf(method.Pos, "unknown method %s()", method.Name)
		}
		kind = kind.Component()
		a.p.associate(method, &Annotation{Kind: kind})
	}
	a.p.associate(terminal, &Annotation{Kind: kind})
	return kind, nil
}

func (a *analyser) resolveGroup(scope *Scope, group *parser.Group) (dtype.Kind, error) {
	if group.Cast == "" {
		kind, err := a.resolveExpr(scope, group.Expr)
		if err != nil {
			return dtype.Invalid, err
		}
		a.p.associate(group, &Annotation{Kind: kind})
		return kind, nil
	}
	kind, err := dtype.FromName(group.Cast)
	if err != nil {
		return dtype.Invalid, participle.Errorf(group.Pos, "unknown type %q", group.Cast)
	}
	if _, err := a.resolveTerminal(scope, group.Operand); err != nil {
		return dtype.Invalid, err
	}
	a.p.associate(group, &Annotation{Kind: kind})
	return kind, nil
}

// resolveCall resolves a call of a catalog kernel by name, eg.
// "floor_divide(a, b)".
func (a *analyser) resolveCall(scope *Scope, terminal *parser.Terminal) (dtype.Kind, error) {
	k, ok := ufunc.Lookup(terminal.Ident)
	if !ok {
		return dtype.Invalid, participle.Errorf(terminal.Pos, "unknown function %q", terminal.Ident)
	}
	call := terminal.Call
	if len(call.Values) != k.NIn() {
		return dtype.Invalid, participle.Errorf(call.Pos, "%s() takes %d arguments but %d were given",
			terminal.Ident, k.NIn(), len(call.Values))
	}
	in := make([]dtype.Kind, 0, len(call.Values))
	for _, arg := range call.Values {
		kind, err := a.resolveExpr(scope, arg)
		if err != nil {
			return dtype.Invalid, err
		}
		in = append(in, kind)
	}
	sig, err := k.Resolve(in...)
	if err != nil {
		return dtype.Invalid, participle.Wrapf(call.Pos, err, "cannot call %s with %s", terminal.Ident, kindList(in))
	}
	a.p.associate(call, &Annotation{Kind: sig.Out, Kernel: k, Signature: sig})
	return sig.Out, nil
}

func (a *analyser) resolveLiteral(literal *parser.Literal) (dtype.Kind, error) {
	value := literal.Value()
	kind, err := typerules.InferScalar(a.p.Mode, value)
	if err != nil {
		return dtype.Invalid, participle.Wrapf(literal.Pos, err, "invalid literal %s", literal)
	}
	var constant dtype.Value
	switch value := value.(type) {
	case *big.Int:
		if !value.IsInt64() {
			return dtype.Invalid, participle.Errorf(literal.Pos, "integer literal %s overflows %s", value, kind)
		}
		constant = dtype.Int(kind, value.Int64())
	case float64:
		constant = dtype.Float(kind, value)
	case complex128:
		constant = dtype.Complex(kind, value)
	case bool:
		constant = dtype.Int(kind, 0)
		if value {
			constant = dtype.Int(kind, 1)
		}
	}
	a.p.associate(literal, &Annotation{Kind: kind, Constant: &constant})
	return kind, nil
}

func kindList(kinds []dtype.Kind) string {
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, k.String())
	}
	if len(names) == 1 {
		return names[0]
	}
	return "(" + strings.Join(names, ", ") + ")"
}
