// Package codegen emits CUDA device functions for kernel signatures and type
// checked expressions.
package codegen

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"

	"github.com/alecthomas/jitx/analyser"
	"github.com/alecthomas/jitx/codegen/cuda"
	"github.com/alecthomas/jitx/dtype"
	"github.com/alecthomas/jitx/kernel"
	"github.com/alecthomas/jitx/parser"
)

// Generate writes a device function named "name" computing a checked
// expression, preceded by the kernel helpers it calls.
//
// The function takes one parameter per variable in sorted order, and
// returns the result through "out0".
func Generate(w io.Writer, name string, program *analyser.Program) error {
	g := newGenerator()
	fn, err := g.genProgram(name, program)
	if err != nil {
		return err
	}
	return cuda.Write(w, append(g.decls, fn)...)
}

// Kernel writes one device function per signature of a kernel.
func Kernel(w io.Writer, k *kernel.Kernel) error {
	g := newGenerator()
	for _, sig := range k.Signatures() {
		if _, err := g.helper(k, sig); err != nil {
			return err
		}
	}
	return cuda.Write(w, g.decls...)
}

type helperKey struct {
	kernel *kernel.Kernel
	types  string
}

type generator struct {
	decls   []cuda.Node
	helpers map[helperKey]string
	names   map[string]bool
	prelude map[string]bool
	program *analyser.Program
	temps   int
}

func newGenerator() *generator {
	return &generator{
		helpers: map[helperKey]string{},
		names:   map[string]bool{},
		prelude: map[string]bool{},
	}
}

func (g *generator) genProgram(name string, program *analyser.Program) (*cuda.Func, error) {
	g.program = program
	fn := &cuda.Func{Name: name}
	for _, v := range program.Root.Names() {
		if v == "out0" {
			return nil, errors.Errorf("variable name %q is reserved", v)
		}
		kind, _ := program.Root.Resolve(v)
		fn.Params = append(fn.Params, cuda.Param{Type: kind.CType(), Name: v})
	}
	fn.Params = append(fn.Params, cuda.Param{Type: program.Result().CType(), Name: "out0", Out: true})
	value, err := g.genExpr(fn, program.Expr)
	if err != nil {
		return nil, err
	}
	fn.Add(cuda.Assign{Target: "out0", Value: value})
	return fn, nil
}

func (g *generator) genExpr(fn *cuda.Func, expr *parser.Expr) (cuda.Expr, error) {
	switch {
	case expr.Terminal != nil:
		return g.genTerminal(fn, expr.Terminal)

	case expr.Unary != nil:
		operand, err := g.genExpr(fn, expr.Unary.Operand)
		if err != nil {
			return "", err
		}
		return g.genCall(fn, expr.Unary, operand)

	default:
		lhs, err := g.genExpr(fn, expr.Left)
		if err != nil {
			return "", err
		}
		rhs, err := g.genExpr(fn, expr.Right)
		if err != nil {
			return "", err
		}
		return g.genCall(fn, expr, lhs, rhs)
	}
}

// genCall stores the result of the kernel a node resolved to in a new
// temporary.
func (g *generator) genCall(fn *cuda.Func, node parser.Node, args ...cuda.Expr) (cuda.Expr, error) {
	k, sig, ok := g.program.Kernel(node)
	if !ok {
		return "", participle.Errorf(node.Position(), "node was not checked")
	}
	helper, err := g.helper(k, sig)
	if err != nil {
		return "", err
	}
	temp := fmt.Sprintf("_t%d", g.temps)
	g.temps++
	fn.Add(
		cuda.Decl{Type: sig.Out.CType(), Name: temp},
		cuda.Call{Func: helper, Args: append(args, cuda.Expr(temp))},
	)
	return cuda.Expr(temp), nil
}

func (g *generator) genTerminal(fn *cuda.Func, terminal *parser.Terminal) (cuda.Expr, error) {
	var (
		out cuda.Expr
		err error
	)
	switch {
	case terminal.Group != nil && terminal.Group.Cast != "":
		out, err = g.genTerminal(fn, terminal.Group.Operand)
		out = cuda.Expr(fmt.Sprintf("((%s)%s)", g.program.Type(terminal.Group).CType(), out))

	case terminal.Group != nil:
		out, err = g.genExpr(fn, terminal.Group.Expr)

	case terminal.Literal != nil:
		ann := g.program.Annotation(terminal.Literal)
		if ann == nil || ann.Constant == nil {
			return "", participle.Errorf(terminal.Pos, "literal was not checked")
		}
		out = cuda.Constant(*ann.Constant)

	case terminal.Call != nil:
		args := make([]cuda.Expr, 0, len(terminal.Call.Values))
		for _, arg := range terminal.Call.Values {
			a, err := g.genExpr(fn, arg)
			if err != nil {
				return "", err
			}
			args = append(args, a)
		}
		out, err = g.genCall(fn, terminal.Call, args...)

	default:
		out = cuda.Expr(terminal.Ident)
	}
	if err != nil {
		return "", err
	}
	for _, method := range terminal.Methods {
		out = cuda.Expr(fmt.Sprintf("%s.%s()", out, method.Name))
	}
	return out, nil
}

// helper returns the name of the device function implementing one signature
// of a kernel, generating it on first use.
//
// Distinct kernels may share a name, so names are made unique with a numeric
// suffix.
func (g *generator) helper(k *kernel.Kernel, sig kernel.Signature) (string, error) {
	key := helperKey{kernel: k, types: sig.Types()}
	if name, ok := g.helpers[key]; ok {
		return name, nil
	}
	parts := []string{k.Name()}
	for _, in := range sig.In {
		parts = append(parts, in.String())
	}
	base := strings.Join(parts, "_")
	name := base
	for i := 1; g.names[name]; i++ {
		name = fmt.Sprintf("%s_%d", base, i)
	}

	r := &bodyRenderer{sig: sig}
	fn := &cuda.Func{Name: name}
	for i, in := range sig.In {
		fn.Params = append(fn.Params, cuda.Param{Type: in.CType(), Name: fmt.Sprintf("in%d", i)})
	}
	fn.Params = append(fn.Params, cuda.Param{Type: sig.Out.CType(), Name: "out0", Out: true})
	for _, stmt := range k.BodyOf(sig).Statements {
		value, err := r.expr(stmt.Value, true)
		if err != nil {
			return "", errors.Wrapf(err, "%s[%s]", k.Name(), sig)
		}
		fn.Add(cuda.Assign{Target: stmt.Target, Value: cuda.Expr(value)})
	}

	for _, used := range r.used {
		if !g.prelude[used] {
			g.prelude[used] = true
			g.decls = append(g.decls, prelude[used])
		}
	}
	g.helpers[key] = name
	g.names[name] = true
	g.decls = append(g.decls, fn)
	return name, nil
}

// bodyRenderer prints a kernel body as C++, replacing type placeholders
// with the signature's concrete types.
type bodyRenderer struct {
	sig  kernel.Signature
	used []string
}

func (r *bodyRenderer) expr(x *parser.Expr, top bool) (string, error) {
	switch {
	case x.Terminal != nil:
		return r.terminal(x.Terminal)

	case x.Unary != nil:
		operand, err := r.expr(x.Unary.Operand, false)
		if err != nil {
			return "", err
		}
		if x.Unary.Operand.Unary != nil {
			operand = "(" + operand + ")"
		}
		return x.Unary.Op.String() + operand, nil

	default:
		lhs, err := r.expr(x.Left, false)
		if err != nil {
			return "", err
		}
		rhs, err := r.expr(x.Right, false)
		if err != nil {
			return "", err
		}
		out := fmt.Sprintf("%s %s %s", lhs, x.Op, rhs)
		if !top {
			out = "(" + out + ")"
		}
		return out, nil
	}
}

func (r *bodyRenderer) terminal(t *parser.Terminal) (string, error) {
	var out string
	switch {
	case t.Group != nil && t.Group.Cast != "":
		ctype, err := r.ctype(t.Group.Cast)
		if err != nil {
			return "", participle.Wrapf(t.Group.Pos, err, "invalid cast")
		}
		operand, err := r.terminal(t.Group.Operand)
		if err != nil {
			return "", err
		}
		out = "(" + ctype + ")" + operand

	case t.Group != nil:
		inner, err := r.expr(t.Group.Expr, true)
		if err != nil {
			return "", err
		}
		out = "(" + inner + ")"

	case t.Literal != nil:
		out = literal(t.Literal)

	case t.Call != nil:
		name := t.Ident
		if name == "pow" && r.sig.Out.IsInteger() {
			name = "ipow"
		}
		if _, ok := prelude[name]; ok {
			r.use(name)
		}
		args := make([]string, 0, len(t.Call.Values))
		for _, arg := range t.Call.Values {
			a, err := r.expr(arg, true)
			if err != nil {
				return "", err
			}
			args = append(args, a)
		}
		out = name + "(" + strings.Join(args, ", ") + ")"

	default:
		out = t.Ident
	}
	for _, m := range t.Methods {
		out += "." + m.Name + "()"
	}
	return out, nil
}

func (r *bodyRenderer) use(name string) {
	for _, u := range r.used {
		if u == name {
			return
		}
	}
	r.used = append(r.used, name)
}

// ctype resolves a cast target to a C type name.
func (r *bodyRenderer) ctype(name string) (string, error) {
	switch {
	case name == "out0_type":
		return r.sig.Out.CType(), nil
	case strings.HasPrefix(name, "in") && strings.HasSuffix(name, "_type"):
		var index int
		if _, err := fmt.Sscanf(name, "in%d_type", &index); err == nil && index >= 0 && index < len(r.sig.In) {
			return r.sig.In[index].CType(), nil
		}
		return "", errors.Errorf("unknown type placeholder %q", name)
	}
	kind, err := dtype.FromName(name)
	if err != nil {
		return "", err
	}
	return kind.CType(), nil
}

func literal(l *parser.Literal) string {
	switch v := l.Value().(type) {
	case complex128:
		return fmt.Sprintf("complex<double>(%s, %s)", cuda.Float(real(v)), cuda.Float(imag(v)))
	case bool:
		if v {
			return "true"
		}
		return "false"
	}
	return l.String()
}
