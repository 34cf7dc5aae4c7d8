package parser

import (
	"github.com/pkg/errors"
)

// Op is the kind of an operator node.
type Op int

const (
	OpNone     Op = iota //
	OpAnd                // &&
	OpOr                 // ||
	OpAdd                // +
	OpSub                // -
	OpMul                // *
	OpDiv                // /
	OpFloorDiv           // //
	OpPow                // **
	OpMod                // %
	OpShl                // <<
	OpShr                // >>
	OpBitOr              // |
	OpBitAnd             // &
	OpBitXor             // ^
	OpInvert             // ~
	OpNot                // !
	OpEq                 // ==
	OpNe                 // !=
	OpLt                 // <
	OpLe                 // <=
	OpGt                 // >
	OpGe                 // >=
	OpUSub               // -
)

// Ops is the closed set of operators an expression can contain.
var Ops = []Op{
	OpAnd, OpOr,
	OpAdd, OpSub, OpMul, OpDiv, OpFloorDiv, OpPow, OpMod,
	OpShl, OpShr, OpBitOr, OpBitAnd, OpBitXor, OpInvert,
	OpNot,
	OpEq, OpNe, OpLt, OpLe, OpGt, OpGe,
	OpUSub,
}

var opNames = [...]struct{ symbol, name string }{
	OpNone:     {"", "OpNone"},
	OpAnd:      {"&&", "OpAnd"},
	OpOr:       {"||", "OpOr"},
	OpAdd:      {"+", "OpAdd"},
	OpSub:      {"-", "OpSub"},
	OpMul:      {"*", "OpMul"},
	OpDiv:      {"/", "OpDiv"},
	OpFloorDiv: {"//", "OpFloorDiv"},
	OpPow:      {"**", "OpPow"},
	OpMod:      {"%", "OpMod"},
	OpShl:      {"<<", "OpShl"},
	OpShr:      {">>", "OpShr"},
	OpBitOr:    {"|", "OpBitOr"},
	OpBitAnd:   {"&", "OpBitAnd"},
	OpBitXor:   {"^", "OpBitXor"},
	OpInvert:   {"~", "OpInvert"},
	OpNot:      {"!", "OpNot"},
	OpEq:       {"==", "OpEq"},
	OpNe:       {"!=", "OpNe"},
	OpLt:       {"<", "OpLt"},
	OpLe:       {"<=", "OpLe"},
	OpGt:       {">", "OpGt"},
	OpGe:       {">=", "OpGe"},
	OpUSub:     {"-", "OpUSub"},
}

// Valid returns true for operators in the closed set Ops.
func (o Op) Valid() bool { return o > OpNone && o <= OpUSub }

// String returns the operator's symbol.
func (o Op) String() string {
	if !o.Valid() {
		return ""
	}
	return opNames[o].symbol
}

func (o Op) GoString() string {
	if o < OpNone || o > OpUSub {
		return "parser.Op(??)"
	}
	return "parser." + opNames[o].name
}

// Unary returns true for operators that take a single operand.
func (o Op) Unary() bool { return o == OpInvert || o == OpNot || o == OpUSub }

// Comparison returns true for operators that always produce a bool.
func (o Op) Comparison() bool { return o >= OpEq && o <= OpGe }

var binaryOps = map[string]Op{
	"&&": OpAnd, "and": OpAnd,
	"||": OpOr, "or": OpOr,
	"+": OpAdd, "-": OpSub, "*": OpMul, "/": OpDiv, "//": OpFloorDiv,
	"**": OpPow, "%": OpMod,
	"<<": OpShl, ">>": OpShr,
	"|": OpBitOr, "&": OpBitAnd, "^": OpBitXor,
	"==": OpEq, "!=": OpNe, "<": OpLt, "<=": OpLe, ">": OpGt, ">=": OpGe,
}

var unaryOps = map[string]Op{
	"-": OpUSub, "~": OpInvert, "!": OpNot, "not": OpNot,
}

// Capture a binary operator.
func (o *Op) Capture(values []string) error {
	op, ok := binaryOps[values[0]]
	if !ok {
		return errors.Errorf("unknown operator %q", values[0])
	}
	*o = op
	return nil
}

// ParseOp returns the operator for a symbol or keyword, eg. "+" or "and".
// "-" is subtraction unless unary is true.
func ParseOp(symbol string, unary bool) (Op, error) {
	if unary {
		if op, ok := unaryOps[symbol]; ok {
			return op, nil
		}
	} else if op, ok := binaryOps[symbol]; ok {
		return op, nil
	} else if op, ok := unaryOps[symbol]; ok {
		return op, nil
	}
	return OpNone, errors.Errorf("unknown operator %q", symbol)
}

type opInfo struct {
	RightAssociative bool
	Priority         int
}

// Priority of "not", which binds looser than comparisons.
const notPriority = 3

var info = map[Op]opInfo{
	OpOr:       {Priority: 1},
	OpAnd:      {Priority: 2},
	OpEq:       {Priority: 4},
	OpNe:       {Priority: 4},
	OpLt:       {Priority: 4},
	OpLe:       {Priority: 4},
	OpGt:       {Priority: 4},
	OpGe:       {Priority: 4},
	OpBitOr:    {Priority: 5},
	OpBitXor:   {Priority: 6},
	OpBitAnd:   {Priority: 7},
	OpShl:      {Priority: 8},
	OpShr:      {Priority: 8},
	OpAdd:      {Priority: 9},
	OpSub:      {Priority: 9},
	OpMul:      {Priority: 10},
	OpDiv:      {Priority: 10},
	OpFloorDiv: {Priority: 10},
	OpMod:      {Priority: 10},
	OpUSub:     {Priority: 11},
	OpInvert:   {Priority: 11},
	OpNot:      {Priority: 11},
	OpPow:      {RightAssociative: true, Priority: 12},
}
