package parser

import (
	"errors"

	"github.com/alecthomas/participle/v2/lexer"
)

// A Node in the AST.
type Node interface {
	Position() lexer.Position
	children() []Node
}

func (b *Body) Position() lexer.Position     { return b.Pos }
func (a *Assign) Position() lexer.Position   { return a.Pos }
func (e *Expr) Position() lexer.Position     { return e.Pos }
func (u *Unary) Position() lexer.Position    { return u.Pos }
func (t *Terminal) Position() lexer.Position { return t.Pos }
func (g *Group) Position() lexer.Position    { return g.Pos }
func (a *Args) Position() lexer.Position     { return a.Pos }
func (m *Method) Position() lexer.Position   { return m.Pos }
func (l *Literal) Position() lexer.Position  { return l.Pos }

func (b *Body) children() []Node {
	out := make([]Node, 0, len(b.Statements))
	for _, s := range b.Statements {
		out = append(out, s)
	}
	return out
}

func (a *Assign) children() []Node { return []Node{a.Value} }

func (e *Expr) children() []Node {
	switch {
	case e.Terminal != nil:
		return []Node{e.Terminal}
	case e.Unary != nil:
		return []Node{e.Unary}
	}
	return []Node{e.Left, e.Right}
}

func (u *Unary) children() []Node { return []Node{u.Operand} }

func (t *Terminal) children() []Node {
	var out []Node
	switch {
	case t.Group != nil:
		out = append(out, t.Group)
	case t.Literal != nil:
		out = append(out, t.Literal)
	case t.Call != nil:
		out = append(out, t.Call)
	}
	for _, m := range t.Methods {
		out = append(out, m)
	}
	return out
}

func (g *Group) children() []Node {
	if g.Operand != nil {
		return []Node{g.Operand}
	}
	return []Node{g.Expr}
}

func (a *Args) children() []Node {
	out := make([]Node, 0, len(a.Values))
	for _, v := range a.Values {
		out = append(out, v)
	}
	return out
}

func (m *Method) children() []Node  { return nil }
func (l *Literal) children() []Node { return nil }

// TerminateRecursion may be returned by a VisitorFunc to skip the children
// of the current node while continuing the walk.
var TerminateRecursion = errors.New("no recurse")

// VisitorFunc is called for each node, parents before children.
type VisitorFunc func(node Node) error

// Visit walks the AST depth first, stopping at the first error.
func Visit(node Node, visit VisitorFunc) error {
	if node == nil {
		return nil
	}
	switch err := visit(node); err {
	case nil:
	case TerminateRecursion:
		return nil
	default:
		return err
	}
	for _, child := range node.children() {
		if err := Visit(child, visit); err != nil {
			return err
		}
	}
	return nil
}
