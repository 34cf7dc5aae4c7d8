package parser

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	lex = lexer.MustSimple([]lexer.SimpleRule{
		{"whitespace", `[ \t\r\n]+`},
		{"Imag", `(\d+\.\d*|\.\d+|\d+)([eE][-+]?\d+)?[jJ]`},
		{"Float", `\d+\.\d*([eE][-+]?\d+)?|\.\d+([eE][-+]?\d+)?|\d+[eE][-+]?\d+`},
		{"Int", `0[xX][0-9a-fA-F]+|0[oO][0-7]+|0[bB][01]+|\d+`},
		{"TypeName", `\b((in|out)\d+_type|bool|u?int(8|16|32|64)|float(16|32|64)|complex(64|128))\b`},
		{"Keyword", `\b(and|or|not|True|False|true|false)\b`},
		{"Ident", `[[:alpha:]_]\w*`},
		{"Operator", `\*\*|//|<<|>>|<=|>=|==|!=|&&|\|\||[-+*/%<>&|^~!]`},
		{"Punct", `[=;,().]`},
	})

	identToken    = lex.Symbols()["Ident"]
	keywordToken  = lex.Symbols()["Keyword"]
	operatorToken = lex.Symbols()["Operator"]
	typeToken     = lex.Symbols()["TypeName"]
	intToken      = lex.Symbols()["Int"]
	floatToken    = lex.Symbols()["Float"]
	imagToken     = lex.Symbols()["Imag"]
)

// Lex source into tokens, excluding whitespace and the trailing EOF.
func Lex(source string) ([]lexer.Token, error) {
	l, err := lex.LexString("", source)
	if err != nil {
		return nil, err
	}
	tokens, err := lexer.ConsumeAll(l)
	if err != nil {
		return nil, err
	}
	return tokens[:len(tokens)-1], nil
}
