package typerules

import (
	"github.com/pkg/errors"

	"github.com/alecthomas/jitx/kernel"
	"github.com/alecthomas/jitx/parser"
	"github.com/alecthomas/jitx/ufunc"
)

// Operator table for Portable mode. It is total over parser.Ops.
var portable = map[parser.Op]*kernel.Kernel{
	parser.OpAnd:      ufunc.LogicalAnd,
	parser.OpOr:       ufunc.LogicalOr,
	parser.OpAdd:      ufunc.Add,
	parser.OpSub:      ufunc.Subtract,
	parser.OpMul:      ufunc.Multiply,
	parser.OpDiv:      trueDivide,
	parser.OpFloorDiv: ufunc.FloorDivide,
	parser.OpPow:      ufunc.Power,
	parser.OpMod:      ufunc.Remainder,
	parser.OpShl:      ufunc.LeftShift,
	parser.OpShr:      ufunc.RightShift,
	parser.OpBitOr:    ufunc.BitwiseOr,
	parser.OpBitAnd:   ufunc.BitwiseAnd,
	parser.OpBitXor:   ufunc.BitwiseXor,
	parser.OpInvert:   invert,
	parser.OpNot:      logicalNot,
	parser.OpEq:       ufunc.Equal,
	parser.OpNe:       ufunc.NotEqual,
	parser.OpLt:       less,
	parser.OpLe:       lessEqual,
	parser.OpGt:       greater,
	parser.OpGe:       greaterEqual,
	parser.OpUSub:     ufunc.Negative,
}

// Resolve returns the kernel implementing an operator.
//
// Every operator resolves in Portable mode. Native mode is not implemented
// and always fails with ErrUnimplemented. An invalid mode or operator fails
// with ErrInvariant.
func Resolve(mode Mode, op parser.Op) (*kernel.Kernel, error) {
	if !mode.Valid() {
		return nil, errors.Wrapf(ErrInvariant, "invalid mode %s", mode)
	}
	if !op.Valid() {
		return nil, errors.Wrapf(ErrInvariant, "invalid operator %#v", op)
	}
	switch mode {
	case Portable:
		k, ok := portable[op]
		if !ok {
			return nil, errors.Wrapf(ErrInvariant, "no kernel for operator %#v", op)
		}
		return k, nil

	case Native:
		return nil, errors.Wrapf(ErrUnimplemented, "operator %s in %s mode", op, mode)
	}
	return nil, errors.Wrapf(ErrInvariant, "invalid mode %s", mode)
}
