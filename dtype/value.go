package dtype

import (
	"fmt"
	"math"
	"strconv"

	"github.com/x448/float16"
)

// Value is a scalar tagged with its element type.
//
// The payload field in use depends on the kind: i for bool and signed
// integers, u for unsigned integers, f for floats and c for complex numbers.
// Constructors normalise the payload to the kind's range and precision.
type Value struct {
	kind Kind
	i    int64
	u    uint64
	f    float64
	c    complex128
}

// Of returns the typed value for a sized Go value.
//
// int, uint, float64 and complex128 are not considered typed: they are the
// default types of untyped Go constants.
func Of(x interface{}) (Value, bool) {
	switch x := x.(type) {
	case Value:
		return x, true
	case int8:
		return Int(Int8, int64(x)), true
	case int16:
		return Int(Int16, int64(x)), true
	case int32:
		return Int(Int32, int64(x)), true
	case int64:
		return Int(Int64, x), true
	case uint8:
		return Uint(Uint8, uint64(x)), true
	case uint16:
		return Uint(Uint16, uint64(x)), true
	case uint32:
		return Uint(Uint32, uint64(x)), true
	case uint64:
		return Uint(Uint64, x), true
	case float16.Float16:
		return Float(Float16, float64(x.Float32())), true
	case float32:
		return Float(Float32, float64(x)), true
	case complex64:
		return Complex(Complex64, complex128(x)), true
	}
	return Value{}, false
}

// BoolValue returns a bool value.
func BoolValue(b bool) Value {
	if b {
		return Value{kind: Bool, i: 1}
	}
	return Value{kind: Bool}
}

// Int returns v converted to kind k.
func Int(k Kind, v int64) Value { return Value{kind: Int64, i: v}.Cast(k) }

// Uint returns v converted to kind k.
func Uint(k Kind, v uint64) Value { return Value{kind: Uint64, u: v}.Cast(k) }

// Float returns v converted to kind k.
func Float(k Kind, v float64) Value { return Value{kind: Float64, f: v}.Cast(k) }

// Complex returns v converted to kind k.
func Complex(k Kind, v complex128) Value { return Value{kind: Complex128, c: v}.Cast(k) }

// Zero value of kind k.
func Zero(k Kind) Value { return Value{kind: k} }

func (v Value) Kind() Kind { return v.kind }

// Bool returns the truth value: true for any non-zero value. A complex value
// is true unless both of its components are zero.
func (v Value) Bool() bool {
	switch {
	case v.kind.IsUnsigned():
		return v.u != 0
	case v.kind.IsFloat():
		return v.f != 0
	case v.kind.IsComplex():
		return real(v.c) != 0 || imag(v.c) != 0
	}
	return v.i != 0
}

// Int64 returns the value converted as a C cast to a 64-bit signed integer.
func (v Value) Int64() int64 {
	switch {
	case v.kind.IsUnsigned():
		return int64(v.u)
	case v.kind.IsFloat():
		return floatToInt(v.f)
	case v.kind.IsComplex():
		return floatToInt(real(v.c))
	}
	return v.i
}

// Uint64 returns the value converted as a C cast to a 64-bit unsigned integer.
func (v Value) Uint64() uint64 {
	switch {
	case v.kind.IsUnsigned():
		return v.u
	case v.kind.IsFloat():
		return floatToUint(v.f)
	case v.kind.IsComplex():
		return floatToUint(real(v.c))
	}
	return uint64(v.i)
}

// Float64 returns the value as a float, discarding any imaginary part.
func (v Value) Float64() float64 {
	switch {
	case v.kind.IsUnsigned():
		return float64(v.u)
	case v.kind.IsFloat():
		return v.f
	case v.kind.IsComplex():
		return real(v.c)
	}
	return float64(v.i)
}

// Complex128 returns the value as a complex number.
func (v Value) Complex128() complex128 {
	if v.kind.IsComplex() {
		return v.c
	}
	return complex(v.Float64(), 0)
}

// Real part of the value, typed as the component kind.
func (v Value) Real() Value {
	if !v.kind.IsComplex() {
		return v
	}
	return Float(v.kind.Component(), real(v.c))
}

// Imag part of the value, typed as the component kind.
func (v Value) Imag() Value {
	if !v.kind.IsComplex() {
		return Zero(v.kind)
	}
	return Float(v.kind.Component(), imag(v.c))
}

// Cast converts v to kind k with C conversion semantics: integers wrap,
// floats round to the target precision and complex values drop their
// imaginary part when cast to a real kind.
func (v Value) Cast(k Kind) Value {
	switch k {
	case Bool:
		return BoolValue(v.Bool())
	case Int8:
		return Value{kind: k, i: int64(int8(v.Int64()))}
	case Int16:
		return Value{kind: k, i: int64(int16(v.Int64()))}
	case Int32:
		return Value{kind: k, i: int64(int32(v.Int64()))}
	case Int64:
		return Value{kind: k, i: v.Int64()}
	case Uint8:
		return Value{kind: k, u: uint64(uint8(v.Uint64()))}
	case Uint16:
		return Value{kind: k, u: uint64(uint16(v.Uint64()))}
	case Uint32:
		return Value{kind: k, u: uint64(uint32(v.Uint64()))}
	case Uint64:
		return Value{kind: k, u: v.Uint64()}
	case Float16:
		return Value{kind: k, f: roundHalf(v.Float64())}
	case Float32:
		return Value{kind: k, f: float64(float32(v.Float64()))}
	case Float64:
		return Value{kind: k, f: v.Float64()}
	case Complex64:
		return Value{kind: k, c: complex128(complex64(v.Complex128()))}
	case Complex128:
		return Value{kind: k, c: v.Complex128()}
	}
	return Value{}
}

func (v Value) String() string {
	if !v.kind.Valid() {
		return "invalid"
	}
	return fmt.Sprintf("%s(%s)", v.kind, v.format())
}

func (v Value) format() string {
	switch {
	case v.kind == Bool:
		return strconv.FormatBool(v.i != 0)
	case v.kind.IsSigned():
		return strconv.FormatInt(v.i, 10)
	case v.kind.IsUnsigned():
		return strconv.FormatUint(v.u, 10)
	case v.kind.IsFloat():
		return strconv.FormatFloat(v.f, 'g', -1, v.kind.Component().floatBits())
	default:
		bits := v.kind.Component().floatBits()
		return "(" + strconv.FormatFloat(real(v.c), 'g', -1, bits) +
			signed(strconv.FormatFloat(imag(v.c), 'g', -1, bits)) + "j)"
	}
}

func (k Kind) floatBits() int {
	if k == Float64 {
		return 64
	}
	return 32
}

func signed(s string) string {
	if s[0] == '-' || s[0] == '+' {
		return s
	}
	return "+" + s
}

func roundHalf(f float64) float64 {
	return float64(float16.Fromfloat32(float32(f)).Float32())
}

func floatToInt(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return math.MinInt64
	}
	return int64(f)
}

func floatToUint(f float64) uint64 {
	if f < 0 {
		return uint64(floatToInt(f))
	}
	if math.IsNaN(f) || f >= 1<<64 {
		return 1 << 63
	}
	return uint64(f)
}
