package typerules

import (
	"github.com/alecthomas/jitx/dtype"
	"github.com/alecthomas/jitx/kernel"
)

// Kernels the shared catalog does not provide in the form needed here.
var (
	trueDivide = kernel.Must("numpy_scalar_true_divide",
		"out0 = (out0_type)in0 / (out0_type)in1",
		kernel.Types(
			"??->d", "?i->d", "i?->d",
			"bb->d", "bi->d", "BB->d", "Bi->d",
			"hh->d", "HH->d", "ii->d", "II->d", "ll->d", "LL->d",
			"ee->e", "ff->f", "dd->d",
			"FF->F", "DD->D",
		)...)

	// Bitwise complement of a C bool is always true, so bool is inverted
	// logically as numpy does: ~True is False, not a raw C complement.
	invert = kernel.Must("numpy_scalar_invert", "out0 = ~in0",
		append(
			[]kernel.Decl{kernel.Override("?->?", "out0 = !in0")},
			kernel.Types("b->b", "B->B", "h->h", "H->H", "i->i", "I->I", "l->l", "L->L")...,
		)...)

	logicalNot = kernel.Must("numpy_scalar_logical_not", "out0 = !in0", logicalNotDecls()...)

	// TODO: the four relational kernels share the name "scalar_less". Give
	// them distinct names once nothing keys off it.
	less         = kernel.MustComparison("scalar_less", "<")
	lessEqual    = kernel.MustComparison("scalar_less", "<=")
	greater      = kernel.MustComparison("scalar_less", ">")
	greaterEqual = kernel.MustComparison("scalar_less", ">=")
)

// A complex number is falsy only when both components are zero.
func logicalNotDecls() []kernel.Decl {
	out := make([]kernel.Decl, 0, len(dtype.Kinds))
	for _, k := range dtype.Kinds {
		types := string(k.Char()) + "->?"
		if k.IsComplex() {
			out = append(out, kernel.Override(types, "out0 = !in0.real() && !in0.imag()"))
			continue
		}
		out = append(out, kernel.Decl{Types: types})
	}
	return out
}
