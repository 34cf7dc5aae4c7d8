// Package ufunc is the catalog of standard elementwise kernels shared by
// every compilation.
//
// Signature lists follow the host numeric ecosystem: a mixed-type call
// resolves to the first signature both inputs can be safely cast to, so
// (int64, uint64) promotes to float64.
package ufunc

import (
	"github.com/alecthomas/jitx/kernel"
)

var (
	ints = []string{
		"bb->b", "BB->B", "hh->h", "HH->H", "ii->i", "II->I", "ll->l", "LL->L",
	}
	floats   = []string{"ee->e", "ff->f", "dd->d"}
	complexs = []string{"FF->F", "DD->D"}
)

func join(groups ...[]string) []kernel.Decl {
	out := []kernel.Decl{}
	for _, group := range groups {
		out = append(out, kernel.Types(group...)...)
	}
	return out
}

// logical returns the signatures of a logical binary operator: every kind
// maps to bool. Complex operands use the given body override.
func logical(complexBody string) []kernel.Decl {
	out := kernel.Types(
		"??->?", "bb->?", "BB->?", "hh->?", "HH->?", "ii->?", "II->?", "ll->?", "LL->?",
		"ee->?", "ff->?", "dd->?",
	)
	return append(out,
		kernel.Override("FF->?", complexBody),
		kernel.Override("DD->?", complexBody),
	)
}

var (
	LogicalAnd = kernel.Must("logical_and", "out0 = in0 && in1",
		logical("out0 = (in0.real() != 0 || in0.imag() != 0) && (in1.real() != 0 || in1.imag() != 0)")...)
	LogicalOr = kernel.Must("logical_or", "out0 = in0 || in1",
		logical("out0 = (in0.real() != 0 || in0.imag() != 0) || (in1.real() != 0 || in1.imag() != 0)")...)

	Add      = kernel.Must("add", "out0 = in0 + in1", join([]string{"??->?"}, ints, floats, complexs)...)
	Subtract = kernel.Must("subtract", "out0 = in0 - in1", join(ints, floats, complexs)...)
	Multiply = kernel.Must("multiply", "out0 = in0 * in1", join([]string{"??->?"}, ints, floats, complexs)...)
	Power    = kernel.Must("power", "out0 = pow(in0, in1)", join(ints, floats, complexs)...)

	FloorDivide = kernel.Must("floor_divide", "out0 = floordiv(in0, in1)", join(ints, floats)...)
	Remainder   = kernel.Must("remainder", "out0 = mod(in0, in1)", join(ints, floats)...)

	LeftShift  = kernel.Must("left_shift", "out0 = in0 << in1", join(ints)...)
	RightShift = kernel.Must("right_shift", "out0 = in0 >> in1", join(ints)...)

	BitwiseOr  = kernel.Must("bitwise_or", "out0 = in0 | in1", join([]string{"??->?"}, ints)...)
	BitwiseAnd = kernel.Must("bitwise_and", "out0 = in0 & in1", join([]string{"??->?"}, ints)...)
	BitwiseXor = kernel.Must("bitwise_xor", "out0 = in0 ^ in1", join([]string{"??->?"}, ints)...)

	Equal    = kernel.MustComparison("equal", "==")
	NotEqual = kernel.MustComparison("not_equal", "!=")

	Negative = kernel.Must("negative", "out0 = -in0",
		join([]string{"b->b", "B->B", "h->h", "H->H", "i->i", "I->I", "l->l", "L->L", "e->e", "f->f", "d->d", "F->F", "D->D"})...)
)

// All kernels in the catalog, in declaration order.
var All = []*kernel.Kernel{
	LogicalAnd, LogicalOr,
	Add, Subtract, Multiply, Power, FloorDivide, Remainder,
	LeftShift, RightShift,
	BitwiseOr, BitwiseAnd, BitwiseXor,
	Equal, NotEqual,
	Negative,
}

// Lookup returns the catalog kernel with the given name.
func Lookup(name string) (*kernel.Kernel, bool) {
	for _, k := range All {
		if k.Name() == name {
			return k, true
		}
	}
	return nil, false
}
