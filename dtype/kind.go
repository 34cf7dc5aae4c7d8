// Package dtype describes the element types kernels operate on.
package dtype

import (
	"strings"

	"github.com/pkg/errors"
)

// Kind is an element type code.
//
// Kinds are declared in promotion order: a kind never ranks below a kind it
// can be safely cast from.
type Kind int

const (
	Invalid Kind = iota
	Bool
	Int8
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Float16
	Float32
	Float64
	Complex64
	Complex128
)

// Kinds lists every valid kind in promotion order.
var Kinds = []Kind{
	Bool,
	Int8, Uint8, Int16, Uint16, Int32, Uint32, Int64, Uint64,
	Float16, Float32, Float64,
	Complex64, Complex128,
}

type kindInfo struct {
	name  string
	char  byte
	ctype string
	size  int
}

var kindInfos = [...]kindInfo{
	Invalid:    {"invalid", 0, "", 0},
	Bool:       {"bool", '?', "bool", 1},
	Int8:       {"int8", 'b', "signed char", 1},
	Uint8:      {"uint8", 'B', "unsigned char", 1},
	Int16:      {"int16", 'h', "short", 2},
	Uint16:     {"uint16", 'H', "unsigned short", 2},
	Int32:      {"int32", 'i', "int", 4},
	Uint32:     {"uint32", 'I', "unsigned int", 4},
	Int64:      {"int64", 'l', "long long", 8},
	Uint64:     {"uint64", 'L', "unsigned long long", 8},
	Float16:    {"float16", 'e', "float16", 2},
	Float32:    {"float32", 'f', "float", 4},
	Float64:    {"float64", 'd', "double", 8},
	Complex64:  {"complex64", 'F', "complex<float>", 8},
	Complex128: {"complex128", 'D', "complex<double>", 16},
}

// Valid returns true if k is one of the declared kinds.
func (k Kind) Valid() bool { return k > Invalid && k <= Complex128 }

func (k Kind) info() kindInfo {
	if !k.Valid() {
		return kindInfos[Invalid]
	}
	return kindInfos[k]
}

func (k Kind) String() string { return k.info().name }

func (k Kind) GoString() string {
	if !k.Valid() {
		return "dtype.Invalid"
	}
	return "dtype." + strings.Title(k.String()) // nolint: staticcheck
}

// Char is the one character type code, as used in signature strings.
func (k Kind) Char() byte { return k.info().char }

// CType is the name of the type in generated device code.
func (k Kind) CType() string { return k.info().ctype }

// Size in bytes.
func (k Kind) Size() int { return k.info().size }

func (k Kind) IsBool() bool     { return k == Bool }
func (k Kind) IsSigned() bool   { return k == Int8 || k == Int16 || k == Int32 || k == Int64 }
func (k Kind) IsUnsigned() bool { return k == Uint8 || k == Uint16 || k == Uint32 || k == Uint64 }
func (k Kind) IsInteger() bool  { return k.IsSigned() || k.IsUnsigned() }
func (k Kind) IsFloat() bool    { return k == Float16 || k == Float32 || k == Float64 }
func (k Kind) IsComplex() bool  { return k == Complex64 || k == Complex128 }

// Bits is the width of an integer kind, or of one component of a float or
// complex kind.
func (k Kind) Bits() int {
	if k.IsComplex() {
		return k.Size() * 4
	}
	return k.Size() * 8
}

// Component returns the float kind of each half of a complex kind, or k
// itself for every other kind.
func (k Kind) Component() Kind {
	switch k {
	case Complex64:
		return Float32
	case Complex128:
		return Float64
	}
	return k
}

// FromChar returns the kind for a one character type code.
func FromChar(c byte) (Kind, error) {
	switch c {
	case 'q':
		return Int64, nil
	case 'Q':
		return Uint64, nil
	}
	for _, k := range Kinds {
		if k.Char() == c {
			return k, nil
		}
	}
	return Invalid, errors.Errorf("unknown type code %q", c)
}

// FromName returns the kind with the given name, eg. "int32".
func FromName(name string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == name {
			return k, nil
		}
	}
	return Invalid, errors.Errorf("unknown element type %q", name)
}

// UnmarshalText allows kinds to be decoded from flags and config files.
func (k *Kind) UnmarshalText(text []byte) error {
	kind, err := FromName(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, errors.Errorf("invalid element type %d", int(k))
	}
	return []byte(k.String()), nil
}
