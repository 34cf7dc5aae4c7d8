// Package cuda is a minimal syntax tree for CUDA C++ device code.
package cuda

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/jitx/dtype"
)

// Write nodes to w, separated by blank lines.
func Write(w io.Writer, nodes ...Node) error {
	ew := &errWriter{w: w}
	for i, node := range nodes {
		if i > 0 {
			ew.printf("\n")
		}
		node.write("", ew)
	}
	return ew.err
}

// Node in a source file.
type Node interface {
	write(indent string, w *errWriter)
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

// Raw source, written verbatim.
type Raw string

func (r Raw) write(indent string, w *errWriter) {
	for _, line := range strings.SplitAfter(string(r), "\n") {
		if line == "" {
			continue
		}
		w.printf("%s%s", indent, line)
	}
	if !strings.HasSuffix(string(r), "\n") {
		w.printf("\n")
	}
}

// Expr is an expression in C++ syntax.
type Expr string

// Param of a device function. Out parameters are passed by reference.
type Param struct {
	Type string
	Name string
	Out  bool
}

func (p Param) String() string {
	if p.Out {
		return p.Type + "& " + p.Name
	}
	return "const " + p.Type + " " + p.Name
}

// Func is a device function returning its results through out parameters.
type Func struct {
	Name   string
	Params []Param
	Body   []Node
}

// Add statements to the function body.
func (f *Func) Add(stmts ...Node) {
	f.Body = append(f.Body, stmts...)
}

func (f *Func) write(indent string, w *errWriter) {
	params := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		params = append(params, p.String())
	}
	w.printf("%s__device__ void %s(%s) {\n", indent, f.Name, strings.Join(params, ", "))
	for _, stmt := range f.Body {
		stmt.write(indent+"  ", w)
	}
	w.printf("%s}\n", indent)
}

// Decl declares a local variable.
type Decl struct {
	Type string
	Name string
}

func (d Decl) write(indent string, w *errWriter) {
	w.printf("%s%s %s;\n", indent, d.Type, d.Name)
}

// Assign an expression to a variable.
type Assign struct {
	Target string
	Value  Expr
}

func (a Assign) write(indent string, w *errWriter) {
	w.printf("%s%s = %s;\n", indent, a.Target, a.Value)
}

// Call a function as a statement.
type Call struct {
	Func string
	Args []Expr
}

func (c Call) write(indent string, w *errWriter) {
	args := make([]string, 0, len(c.Args))
	for _, a := range c.Args {
		args = append(args, string(a))
	}
	w.printf("%s%s(%s);\n", indent, c.Func, strings.Join(args, ", "))
}

// Constant returns a typed literal for v.
func Constant(v dtype.Value) Expr {
	k := v.Kind()
	switch {
	case k.IsBool():
		return Expr(strconv.FormatBool(v.Bool()))
	case k.IsSigned():
		return Expr(fmt.Sprintf("(%s)%d", k.CType(), v.Int64()))
	case k.IsUnsigned():
		return Expr(fmt.Sprintf("(%s)%dULL", k.CType(), v.Uint64()))
	case k.IsFloat():
		return Expr(fmt.Sprintf("(%s)%s", k.CType(), Float(v.Float64())))
	case k.IsComplex():
		c := v.Complex128()
		return Expr(fmt.Sprintf("%s(%s, %s)", k.CType(), Float(real(c)), Float(imag(c))))
	}
	return Expr("")
}

// Float formats a double literal.
func Float(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	return s
}
