package parser

import (
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	bodyParser = participle.MustBuild[Body](
		participle.Lexer(lex),
		participle.UseLookahead(2),
	)
	exprParser = participle.MustBuild[Expr](
		participle.Lexer(lex),
	)
	terminalParser = participle.MustBuild[Terminal](
		participle.Lexer(lex),
		participle.UseLookahead(2),
	)
)

// Body of an elementwise kernel: a sequence of assignments to outputs,
// eg. "out0 = (out0_type)in0 / (out0_type)in1".
type Body struct {
	Pos lexer.Position

	Statements []*Assign `@@ ( ";" @@ )* ";"?`
}

// Assign a value to a named output.
type Assign struct {
	Pos lexer.Position

	Target string `@Ident "="`
	Value  *Expr  `@@`
}

// ParseBody parses kernel body source.
func ParseBody(source string) (*Body, error) {
	return bodyParser.ParseString("", source)
}

// ParseExpr parses a single expression.
func ParseExpr(source string) (*Expr, error) {
	return exprParser.ParseString("", source)
}

// ReadExpr parses a single expression from r.
func ReadExpr(filename string, r io.Reader) (*Expr, error) {
	return exprParser.Parse(filename, r)
}
