package parser

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

// Expr node in the AST.
type Expr struct {
	Pos lexer.Position

	// Exactly one of Terminal, Unary or Left+Op+Right will be present.
	Terminal *Terminal
	Unary    *Unary

	Left  *Expr
	Op    Op
	Right *Expr
}

func (e *Expr) String() string {
	switch {
	case e.Terminal != nil:
		return e.Terminal.String()
	case e.Unary != nil:
		return e.Unary.String()
	}
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right)
}

// Parse expressions with a custom precedence climbing implementation.
func (e *Expr) Parse(lex *lexer.PeekingLexer) error {
	if !startsOperand(lex.Peek()) {
		return participle.NextMatch
	}
	ex, err := parseExpr(lex, 0)
	if err != nil {
		return err
	}
	*e = *ex
	return nil
}

// Precedence climbing implementation based on
// https://eli.thegreenplace.net/2012/08/02/parsing-expressions-by-precedence-climbing
func parseExpr(lex *lexer.PeekingLexer, minPrec int) (*Expr, error) {
	lhs, err := parseOperand(lex)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := binaryOp(lex.Peek())
		if !ok || info[op].Priority < minPrec {
			break
		}
		lex.Next()
		nextMinPrec := info[op].Priority
		if !info[op].RightAssociative {
			nextMinPrec++
		}
		rhs, err := parseExpr(lex, nextMinPrec)
		if err != nil {
			return nil, err
		}
		lhs = &Expr{Pos: lhs.Pos, Left: lhs, Op: op, Right: rhs}
	}
	return lhs, nil
}

func parseOperand(lex *lexer.PeekingLexer) (*Expr, error) {
	token := *lex.Peek()
	if op, ok := unaryOp(&token); ok {
		lex.Next()
		prec := info[op].Priority
		if token.Value == "not" {
			prec = notPriority
		}
		operand, err := parseExpr(lex, prec)
		if err != nil {
			return nil, err
		}
		return &Expr{Pos: token.Pos, Unary: &Unary{Pos: token.Pos, Op: op, Operand: operand}}, nil
	}
	if !startsOperand(&token) {
		return nil, participle.Errorf(token.Pos, "unexpected %s, expected an operand", describe(token))
	}
	term, err := terminalParser.ParseFromLexer(lex, participle.AllowTrailing(true))
	if err != nil {
		return nil, err
	}
	return &Expr{Pos: term.Pos, Terminal: term}, nil
}

func binaryOp(token *lexer.Token) (Op, bool) {
	if token.Type != operatorToken && token.Type != keywordToken {
		return OpNone, false
	}
	op, ok := binaryOps[token.Value]
	return op, ok
}

func unaryOp(token *lexer.Token) (Op, bool) {
	if token.Type != operatorToken && token.Type != keywordToken {
		return OpNone, false
	}
	op, ok := unaryOps[token.Value]
	return op, ok
}

func startsOperand(token *lexer.Token) bool {
	switch token.Type {
	case identToken, intToken, floatToken, imagToken:
		return true
	case keywordToken:
		_, ok := unaryOps[token.Value]
		return ok || isBoolKeyword(token.Value)
	case operatorToken:
		_, ok := unaryOps[token.Value]
		return ok
	}
	return token.Value == "("
}

func describe(token lexer.Token) string {
	if token.EOF() {
		return "end of input"
	}
	return strconv.Quote(token.Value)
}

func isBoolKeyword(s string) bool {
	switch s {
	case "True", "False", "true", "false":
		return true
	}
	return false
}

// Unary is an operator applied to a single operand.
type Unary struct {
	Pos lexer.Position

	Op      Op
	Operand *Expr
}

func (u *Unary) String() string {
	return fmt.Sprintf("%s%s", u.Op, u.Operand)
}

// Terminal is an operand: a literal, a parenthesised expression, a cast, a
// variable reference or a function call, followed by optional method calls.
type Terminal struct {
	Pos lexer.Position

	Group   *Group    `(  @@`
	Literal *Literal  ` | @@`
	Ident   string    ` | @Ident`
	Call    *Args     `   @@? )`
	Methods []*Method `@@*`
}

func (t *Terminal) String() string {
	w := &strings.Builder{}
	switch {
	case t.Group != nil:
		w.WriteString(t.Group.String())
	case t.Literal != nil:
		w.WriteString(t.Literal.String())
	default:
		w.WriteString(t.Ident)
		if t.Call != nil {
			w.WriteString(t.Call.String())
		}
	}
	for _, m := range t.Methods {
		fmt.Fprintf(w, ".%s()", m.Name)
	}
	return w.String()
}

// Group is either a C-style cast "(T)x" or a parenthesised expression.
type Group struct {
	Pos lexer.Position

	Cast    string    `"(" ( @TypeName ")"`
	Operand *Terminal `      @@`
	Expr    *Expr     `    | @@ ")" )`
}

func (g *Group) String() string {
	if g.Cast != "" {
		return fmt.Sprintf("(%s)%s", g.Cast, g.Operand)
	}
	return fmt.Sprintf("(%s)", g.Expr)
}

// Args of a function call.
type Args struct {
	Pos lexer.Position

	Values []*Expr `"(" ( @@ ( "," @@ )* )? ")"`
}

func (a *Args) String() string {
	values := make([]string, 0, len(a.Values))
	for _, v := range a.Values {
		values = append(values, v.String())
	}
	return "(" + strings.Join(values, ", ") + ")"
}

// Method is a call of a zero argument method, eg. ".real()".
type Method struct {
	Pos lexer.Position

	Name string `"." @Ident "(" ")"`
}

// Literal scalar.
type Literal struct {
	Pos lexer.Position

	Imag  *Imaginary `  @Imag`
	Float *float64   `| @Float`
	Int   *Integer   `| @Int`
	Bool  *Boolean   `| @( "True" | "False" | "true" | "false" )`
}

// Value returns the literal as a plain Go value: *big.Int, float64,
// complex128 or bool.
func (l *Literal) Value() interface{} {
	switch {
	case l.Imag != nil:
		return complex(0, float64(*l.Imag))
	case l.Float != nil:
		return *l.Float
	case l.Int != nil:
		return l.Int.Big()
	case l.Bool != nil:
		return bool(*l.Bool)
	}
	panic("??")
}

func (l *Literal) String() string {
	switch {
	case l.Imag != nil:
		return strconv.FormatFloat(float64(*l.Imag), 'g', -1, 64) + "j"
	case l.Float != nil:
		s := strconv.FormatFloat(*l.Float, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEIN") {
			s += ".0"
		}
		return s
	case l.Int != nil:
		return l.Int.Big().String()
	case l.Bool != nil:
		return strconv.FormatBool(bool(*l.Bool))
	}
	panic("??")
}

// An Integer is an arbitrary precision integer.
type Integer big.Int

// Big returns a copy of the integer.
func (n *Integer) Big() *big.Int {
	return new(big.Int).Set((*big.Int)(n))
}

func (n *Integer) GoString() string {
	return fmt.Sprintf("parser.Integer(%s)", (*big.Int)(n).String())
}

func (n *Integer) Capture(values []string) error {
	i, ok := new(big.Int).SetString(values[0], 0)
	if !ok {
		return errors.Errorf("invalid integer %q", values[0])
	}
	*n = Integer(*i)
	return nil
}

// Imaginary is the imaginary part of a literal such as "2.5j".
type Imaginary float64

func (i *Imaginary) Capture(values []string) error {
	f, err := strconv.ParseFloat(strings.TrimRight(values[0], "jJ"), 64)
	if err != nil {
		return errors.WithStack(err)
	}
	*i = Imaginary(f)
	return nil
}

// Boolean literal, in either Python or C spelling.
type Boolean bool

func (b *Boolean) Capture(values []string) error {
	*b = values[0] == "True" || values[0] == "true"
	return nil
}
