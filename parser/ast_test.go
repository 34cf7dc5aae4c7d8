package parser

import (
	"math/big"
	"testing"

	"github.com/alecthomas/repr"
	"github.com/stretchr/testify/require"
)

func TestParseExpr(t *testing.T) {
	tests := []struct {
		source   string
		expected string
	}{
		{"a + b * c", "(a + (b * c))"},
		{"a - b - c", "((a - b) - c)"},
		{"2 ** 3 ** 2", "(2 ** (3 ** 2))"},
		{"-x ** 2", "-(x ** 2)"},
		{"-a * b", "(-a * b)"},
		{"not a == b", "!(a == b)"},
		{"not a and b", "(!a && b)"},
		{"a or b and c", "(a || (b && c))"},
		{"a || b && c", "(a || (b && c))"},
		{"1 << 2 + 3", "(1 << (2 + 3))"},
		{"a & b | c ^ d", "((a & b) | (c ^ d))"},
		{"a // b % c", "((a // b) % c)"},
		{"~a < b", "(~a < b)"},
		{"(a + b) * c", "((a + b) * c)"},
		{"2 ** -y", "(2 ** -y)"},
		{"f(x, 1.5)", "f(x, 1.5)"},
		{"g()", "g()"},
		{"z.real() + z.imag()", "(z.real() + z.imag())"},
		{"(int8)x + 1", "((int8)x + 1)"},
		{"1j", "1j"},
		{"2.5e3j", "2500j"},
		{"3.0", "3.0"},
		{"1e3", "1000.0"},
		{"0x10", "16"},
		{"True", "true"},
		{"false", "false"},
	}
	for _, test := range tests {
		t.Run(test.source, func(t *testing.T) {
			expr, err := ParseExpr(test.source)
			require.NoError(t, err)
			require.Equal(t, test.expected, expr.String())
		})
	}
}

func TestParseExprErrors(t *testing.T) {
	for _, source := range []string{"", "1 +", "a b", "(a", "f(,)", "a = 1", "int32"} {
		t.Run(source, func(t *testing.T) {
			_, err := ParseExpr(source)
			require.Error(t, err)
		})
	}
}

func TestParseBody(t *testing.T) {
	body, err := ParseBody(`out0 = !in0.real() && !in0.imag()`)
	require.NoError(t, err)
	require.Len(t, body.Statements, 1)
	require.Equal(t, "out0", body.Statements[0].Target)
	require.Equal(t, "(!in0.real() && !in0.imag())", body.Statements[0].Value.String())

	body, err = ParseBody("out0 = (out0_type)in0 / (out0_type)in1;")
	require.NoError(t, err)
	value := body.Statements[0].Value
	require.Equal(t, OpDiv, value.Op)
	require.Equal(t, "out0_type", value.Left.Terminal.Group.Cast)
	require.Equal(t, "in0", value.Left.Terminal.Group.Operand.Ident)

	body, err = ParseBody("out0 = in0; out1 = in1")
	require.NoError(t, err)
	require.Len(t, body.Statements, 2)
}

func TestParseBodyErrors(t *testing.T) {
	for _, source := range []string{"", "out0 =", "out0 == in0", "in0 + in1"} {
		t.Run(source, func(t *testing.T) {
			_, err := ParseBody(source)
			require.Error(t, err)
		})
	}
}

func TestLiteralValue(t *testing.T) {
	tests := []struct {
		source   string
		expected interface{}
	}{
		{"2147483648", big.NewInt(2147483648)},
		{"1.5", 1.5},
		{"2j", complex(0, 2)},
		{"True", true},
	}
	for _, test := range tests {
		expr, err := ParseExpr(test.source)
		require.NoError(t, err)
		require.NotNil(t, expr.Terminal)
		require.Equal(t, test.expected, expr.Terminal.Literal.Value(), repr.String(expr))
	}
}

func TestVisit(t *testing.T) {
	expr, err := ParseExpr("a + f(b, -c) * (int32)d")
	require.NoError(t, err)
	idents := []string{}
	err = Visit(expr, func(node Node) error {
		if term, ok := node.(*Terminal); ok && term.Ident != "" {
			idents = append(idents, term.Ident)
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "f", "b", "c", "d"}, idents)

	idents = idents[:0]
	err = Visit(expr, func(node Node) error {
		if term, ok := node.(*Terminal); ok {
			if term.Ident != "" {
				idents = append(idents, term.Ident)
			}
			return TerminateRecursion
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "f"}, idents)
}
