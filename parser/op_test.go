package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseOp(t *testing.T) {
	tests := []struct {
		symbol   string
		unary    bool
		expected Op
		err      string
	}{
		{symbol: "+", expected: OpAdd},
		{symbol: "-", expected: OpSub},
		{symbol: "-", unary: true, expected: OpUSub},
		{symbol: "//", expected: OpFloorDiv},
		{symbol: "and", expected: OpAnd},
		{symbol: "not", expected: OpNot},
		{symbol: "~", expected: OpInvert},
		{symbol: ">=", expected: OpGe},
		{symbol: "+", unary: true, err: `unknown operator "+"`},
		{symbol: "<>", err: `unknown operator "<>"`},
	}
	for _, test := range tests {
		op, err := ParseOp(test.symbol, test.unary)
		if test.err != "" {
			require.EqualError(t, err, test.err)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, test.expected, op)
	}
}

func TestOps(t *testing.T) {
	require.Len(t, Ops, int(OpUSub))
	for _, op := range Ops {
		require.True(t, op.Valid(), "%#v", op)
		require.NotEmpty(t, op.String(), "%#v", op)
	}
	require.False(t, OpNone.Valid())
	require.False(t, Op(100).Valid())
	require.Equal(t, "parser.OpFloorDiv", OpFloorDiv.GoString())
}
