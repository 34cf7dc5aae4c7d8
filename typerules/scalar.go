package typerules

import (
	"fmt"
	"math"
	"math/big"

	"github.com/pkg/errors"

	"github.com/alecthomas/jitx/dtype"
)

var (
	minInt32 = big.NewInt(math.MinInt32)
	maxInt32 = big.NewInt(math.MaxInt32)
)

// InferScalar returns the element type of a literal.
//
// Typed values (dtype.Value and sized Go numbers such as int32, float32 or
// float16.Float16) keep their own type in every mode. Untyped values are
// the default types of Go constants, plus *big.Int for integers of any
// magnitude. A plain bool is an integer, 0 or 1:
//
//	value                     Portable     Native
//	bool, int, uint, *big.Int int64        int32 if it fits, otherwise int64
//	float64                   float64      float32
//	complex128                complex128   complex64
//
// Anything else fails with *UnsupportedConstantError.
func InferScalar(mode Mode, value interface{}) (dtype.Kind, error) {
	if v, ok := dtype.Of(value); ok {
		if !v.Kind().Valid() {
			return dtype.Invalid, unsupported(value)
		}
		return v.Kind(), nil
	}
	var (
		integer *big.Int
		kind    dtype.Kind
	)
	switch value := value.(type) {
	case bool:
		integer = big.NewInt(0)
		if value {
			integer.SetInt64(1)
		}
	case int:
		integer = big.NewInt(int64(value))
	case uint:
		integer = new(big.Int).SetUint64(uint64(value))
	case *big.Int:
		if value == nil {
			return dtype.Invalid, unsupported(value)
		}
		integer = value
	case float64:
		kind = dtype.Float64
	case complex128:
		kind = dtype.Complex128
	default:
		return dtype.Invalid, unsupported(value)
	}
	if integer != nil {
		kind = dtype.Int64
	}

	switch mode {
	case Portable:
		return kind, nil

	case Native:
		switch kind {
		case dtype.Int64:
			if integer.Cmp(minInt32) >= 0 && integer.Cmp(maxInt32) <= 0 {
				return dtype.Int32, nil
			}
			return dtype.Int64, nil
		case dtype.Float64:
			return dtype.Float32, nil
		case dtype.Complex128:
			return dtype.Complex64, nil
		}
		return kind, nil
	}
	return dtype.Invalid, errors.Wrapf(ErrInvariant, "invalid mode %s", mode)
}

func unsupported(value interface{}) error {
	return &UnsupportedConstantError{Value: value, HostType: fmt.Sprintf("%T", value)}
}
