package analyser

import (
	"github.com/alecthomas/jitx/dtype"
	"github.com/alecthomas/jitx/kernel"
	"github.com/alecthomas/jitx/parser"
	"github.com/alecthomas/jitx/typerules"
)

// Annotation is the result of checking an AST node.
type Annotation struct {
	Kind dtype.Kind
	// Kernel and Signature are set on operator and function call nodes.
	Kernel    *kernel.Kernel
	Signature kernel.Signature
	// Constant is set on literals.
	Constant *dtype.Value
}

// Program is a type checked expression.
type Program struct {
	Expr        *parser.Expr
	Mode        typerules.Mode
	Root        *Scope
	annotations map[parser.Node]*Annotation
}

// Associate an AST node with its annotation.
func (p *Program) associate(node parser.Node, ann *Annotation) {
	p.annotations[node] = ann
}

// Annotation returns the annotation for an AST node (if any).
func (p *Program) Annotation(node parser.Node) *Annotation {
	return p.annotations[node]
}

// Type returns the element type of an AST node, or dtype.Invalid.
func (p *Program) Type(node parser.Node) dtype.Kind {
	if ann, ok := p.annotations[node]; ok {
		return ann.Kind
	}
	return dtype.Invalid
}

// Kernel returns the kernel and signature an operator or call node resolved
// to (if any).
func (p *Program) Kernel(node parser.Node) (*kernel.Kernel, kernel.Signature, bool) {
	ann, ok := p.annotations[node]
	if !ok || ann.Kernel == nil {
		return nil, kernel.Signature{}, false
	}
	return ann.Kernel, ann.Signature, true
}

// Result is the element type of the whole expression.
func (p *Program) Result() dtype.Kind { return p.Type(p.Expr) }
