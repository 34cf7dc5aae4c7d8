package kernel

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/alecthomas/jitx/dtype"
)

// NewComparison builds a kernel comparing two values of the same element
// type with one of the operators ==, !=, <, <=, > or >=. The output is
// always bool.
//
// Complex numbers are ordered lexicographically: by real part, then by
// imaginary part.
func NewComparison(name, op string) (*Kernel, error) {
	var strict string
	switch op {
	case "==", "!=":
	case "<", "<=":
		strict = "<"
	case ">", ">=":
		strict = ">"
	default:
		return nil, errors.Errorf("%s: %q is not a comparison operator", name, op)
	}
	decls := make([]Decl, 0, len(dtype.Kinds))
	for _, k := range dtype.Kinds {
		types := fmt.Sprintf("%c%c->?", k.Char(), k.Char())
		if k.IsComplex() && strict != "" {
			decls = append(decls, Override(types, fmt.Sprintf(
				"out0 = in0.real() %s in1.real() || (in0.real() == in1.real() && in0.imag() %s in1.imag())",
				strict, op)))
			continue
		}
		decls = append(decls, Decl{Types: types})
	}
	return New(name, fmt.Sprintf("out0 = in0 %s in1", op), decls...)
}

// MustComparison is NewComparison that panics on error.
func MustComparison(name, op string) *Kernel {
	k, err := NewComparison(name, op)
	if err != nil {
		panic(err)
	}
	return k
}
