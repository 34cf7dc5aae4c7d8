package kernel

import (
	"math"
	"math/cmplx"

	"github.com/pkg/errors"

	"github.com/alecthomas/jitx/dtype"
)

type builtin func(k dtype.Kind, x, y dtype.Value) (dtype.Value, error)

// Functions available to kernel bodies. Each takes two arguments which are
// converted to their common arithmetic type.
var builtins = map[string]builtin{
	"pow":      pow,
	"floordiv": floorDiv,
	"mod":      mod,
}

func call(name string, args []dtype.Value) (dtype.Value, error) {
	fn, ok := builtins[name]
	if !ok {
		return dtype.Value{}, errors.Errorf("unknown function %q", name)
	}
	if len(args) != 2 {
		return dtype.Value{}, errors.Errorf("%s() takes 2 arguments, got %d", name, len(args))
	}
	k := arithmeticType(args[0].Kind(), args[1].Kind())
	return fn(k, args[0].Cast(k), args[1].Cast(k))
}

func pow(k dtype.Kind, x, y dtype.Value) (dtype.Value, error) {
	switch {
	case k.IsSigned():
		if y.Int64() < 0 {
			return dtype.Value{}, errors.New("integers to negative integer powers are not allowed")
		}
		return dtype.Int(k, int64(ipow(uint64(x.Int64()), y.Uint64()))), nil
	case k.IsUnsigned():
		return dtype.Uint(k, ipow(x.Uint64(), y.Uint64())), nil
	case k.IsFloat():
		return dtype.Float(k, math.Pow(x.Float64(), y.Float64())), nil
	default:
		return dtype.Complex(k, cmplx.Pow(x.Complex128(), y.Complex128())), nil
	}
}

// ipow is exponentiation by squaring with wrap-around.
func ipow(base, exp uint64) uint64 {
	result := uint64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

// floorDiv rounds the quotient towards negative infinity. Integer division
// by zero yields zero.
func floorDiv(k dtype.Kind, x, y dtype.Value) (dtype.Value, error) {
	switch {
	case k.IsSigned():
		a, b := x.Int64(), y.Int64()
		if b == 0 {
			return dtype.Zero(k), nil
		}
		q := a / b
		if (a%b != 0) && ((a < 0) != (b < 0)) {
			q--
		}
		return dtype.Int(k, q), nil
	case k.IsUnsigned():
		if y.Uint64() == 0 {
			return dtype.Zero(k), nil
		}
		return dtype.Uint(k, x.Uint64()/y.Uint64()), nil
	case k.IsFloat():
		return dtype.Float(k, math.Floor(x.Float64()/y.Float64())), nil
	}
	return dtype.Value{}, errors.Errorf("floordiv() is not defined for %s", k)
}

// mod returns the remainder with the sign of the divisor. Integer division
// by zero yields zero.
func mod(k dtype.Kind, x, y dtype.Value) (dtype.Value, error) {
	switch {
	case k.IsSigned():
		a, b := x.Int64(), y.Int64()
		if b == 0 {
			return dtype.Zero(k), nil
		}
		r := a % b
		if r != 0 && (r < 0) != (b < 0) {
			r += b
		}
		return dtype.Int(k, r), nil
	case k.IsUnsigned():
		if y.Uint64() == 0 {
			return dtype.Zero(k), nil
		}
		return dtype.Uint(k, x.Uint64()%y.Uint64()), nil
	case k.IsFloat():
		a, b := x.Float64(), y.Float64()
		r := math.Mod(a, b)
		if r != 0 && (r < 0) != (b < 0) {
			r += b
		}
		return dtype.Float(k, r), nil
	}
	return dtype.Value{}, errors.Errorf("mod() is not defined for %s", k)
}
