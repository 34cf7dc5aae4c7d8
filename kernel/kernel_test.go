package kernel

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/alecthomas/jitx/dtype"
)

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name   string
		kernel string
		body   string
		decls  []Decl
		err    string
	}{
		{name: "NoName", body: "out0 = in0", decls: Types("i->i"),
			err: "kernel name is required"},
		{name: "NoSignatures", kernel: "k", body: "out0 = in0",
			err: "k: at least one signature is required"},
		{name: "BadArrow", kernel: "k", body: "out0 = in0", decls: Types("ii"),
			err: `k: signature "ii" must have the form "<inputs>-><output>"`},
		{name: "TwoOutputs", kernel: "k", body: "out0 = in0", decls: Types("i->ii"),
			err: `k: signature "i->ii" must have exactly one output`},
		{name: "BadCode", kernel: "k", body: "out0 = in0", decls: Types("x->i"),
			err: `k: signature "x->i": unknown type code 'x'`},
		{name: "Arity", kernel: "k", body: "out0 = in0", decls: Types("i->i", "ii->i"),
			err: `k: signature "ii->i" has 2 inputs, expected 1`},
		{name: "NoBody", kernel: "k", decls: Types("i->i"),
			err: `k: signature "i->i" has no body`},
		{name: "BadTarget", kernel: "k", body: "out1 = in0", decls: Types("i->i"),
			err: `k: 1:1: can only assign to out0, not "out1"`},
		{name: "UnknownInput", kernel: "k", body: "out0 = in1", decls: Types("i->i"),
			err: `k: 1:8: unknown identifier "in1"`},
		{name: "UnknownFunction", kernel: "k", body: "out0 = sqrt(in0)", decls: Types("i->i"),
			err: `k: 1:8: unknown function "sqrt"`},
		{name: "UnknownMethod", kernel: "k", body: "out0 = in0.conj()", decls: Types("F->F"),
			err: `k: 1:11: unknown method "conj"`},
		{name: "UnknownCast", kernel: "k", body: "out0 = (in3_type)in0", decls: Types("i->i"),
			err: `k: 1:8: unknown type "in3_type"`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := New(test.kernel, test.body, test.decls...)
			require.EqualError(t, err, test.err)
		})
	}
}

func TestDuplicateSignature(t *testing.T) {
	_, err := New("k", "out0 = in0 + in1", Types("ll->l", "qq->l")...)
	require.True(t, errors.Is(err, ErrDuplicateSignature), "%v", err)
	require.EqualError(t, err, `k: "qq->l": duplicate signature`)
}

func TestSignatures(t *testing.T) {
	k := Must("k", "out0 = in0 + in1",
		append(Types("ii->i", "ll->l"), Override("dd->d", "out0 = in0 - in1"))...)
	require.Equal(t, "k", k.Name())
	require.Equal(t, 2, k.NIn())
	sigs := k.Signatures()
	require.Len(t, sigs, 3)
	require.Equal(t, "ii->i", sigs[0].Types())
	require.Equal(t, "out0 = in0 + in1", k.SourceOf(sigs[1]))
	require.Equal(t, "out0 = in0 - in1", k.SourceOf(sigs[2]))
	require.NotSame(t, k.BodyOf(sigs[1]), k.BodyOf(sigs[2]))
	sigs[0].Out = dtype.Bool
	require.Equal(t, dtype.Int32, k.Signatures()[0].Out)
}

func TestResolve(t *testing.T) {
	k := Must("k", "out0 = in0 + in1", Types("ii->i", "ll->l", "dd->d")...)
	tests := []struct {
		in       []dtype.Kind
		expected string
	}{
		{[]dtype.Kind{dtype.Int32, dtype.Int32}, "ii->i"},
		{[]dtype.Kind{dtype.Bool, dtype.Int8}, "ii->i"},
		{[]dtype.Kind{dtype.Uint16, dtype.Int16}, "ii->i"},
		{[]dtype.Kind{dtype.Uint32, dtype.Int32}, "ll->l"},
		{[]dtype.Kind{dtype.Int64, dtype.Uint64}, "dd->d"},
		{[]dtype.Kind{dtype.Float32, dtype.Int8}, "dd->d"},
	}
	for _, test := range tests {
		sig, err := k.Resolve(test.in...)
		require.NoError(t, err)
		require.Equal(t, test.expected, sig.Types(), "%v", test.in)
	}

	_, err := k.Resolve(dtype.Complex64, dtype.Int32)
	require.EqualError(t, err, "k: no signature matches input types (complex64, int32)")
	var noMatch *NoMatchError
	require.True(t, errors.As(err, &noMatch))
	require.Equal(t, []dtype.Kind{dtype.Complex64, dtype.Int32}, noMatch.In)

	_, err = k.Resolve(dtype.Int32)
	require.Error(t, err)
}

func TestCall(t *testing.T) {
	divide := Must("divide", "out0 = (out0_type)in0 / (out0_type)in1", Types("ii->d", "ff->f", "DD->D")...)
	tests := []struct {
		name     string
		kernel   *Kernel
		args     []dtype.Value
		expected dtype.Value
	}{
		{"IntDivide", divide, []dtype.Value{dtype.Int(dtype.Int32, 1), dtype.Int(dtype.Int32, 4)},
			dtype.Float(dtype.Float64, 0.25)},
		{"BoolDivide", divide, []dtype.Value{dtype.BoolValue(true), dtype.BoolValue(false)},
			dtype.Float(dtype.Float64, math.Inf(1))},
		{"FloatDivide", divide, []dtype.Value{dtype.Float(dtype.Float32, 1), dtype.Float(dtype.Float32, 3)},
			dtype.Float(dtype.Float32, 1.0/3)},
		{"ComplexDivide", divide, []dtype.Value{dtype.Complex(dtype.Complex128, 2i), dtype.Complex(dtype.Complex128, 2)},
			dtype.Complex(dtype.Complex128, 1i)},
		{"WrapInt8", Must("add", "out0 = in0 + in1", Types("bb->b")...),
			[]dtype.Value{dtype.Int(dtype.Int8, 127), dtype.Int(dtype.Int8, 1)},
			dtype.Int(dtype.Int8, -128)},
		{"BoolAddIsOr", Must("add", "out0 = in0 + in1", Types("??->?")...),
			[]dtype.Value{dtype.BoolValue(true), dtype.BoolValue(true)},
			dtype.BoolValue(true)},
		{"UnsignedNegate", Must("negative", "out0 = -in0", Types("B->B")...),
			[]dtype.Value{dtype.Uint(dtype.Uint8, 1)},
			dtype.Uint(dtype.Uint8, 255)},
		{"ShiftOut", Must("shl", "out0 = in0 << in1", Types("ll->l")...),
			[]dtype.Value{dtype.Int(dtype.Int64, 1), dtype.Int(dtype.Int64, 64)},
			dtype.Int(dtype.Int64, 0)},
		{"ArithmeticShift", Must("shr", "out0 = in0 >> in1", Types("ii->i")...),
			[]dtype.Value{dtype.Int(dtype.Int32, -8), dtype.Int(dtype.Int32, 40)},
			dtype.Int(dtype.Int32, -1)},
		{"IntDivideByZero", Must("div", "out0 = in0 / in1", Types("ii->i")...),
			[]dtype.Value{dtype.Int(dtype.Int32, 7), dtype.Int(dtype.Int32, 0)},
			dtype.Int(dtype.Int32, 0)},
		{"Pow", Must("power", "out0 = pow(in0, in1)", Types("ii->i", "dd->d")...),
			[]dtype.Value{dtype.Int(dtype.Int32, 3), dtype.Int(dtype.Int32, 4)},
			dtype.Int(dtype.Int32, 81)},
		{"FloorDivide", Must("floor_divide", "out0 = floordiv(in0, in1)", Types("ii->i")...),
			[]dtype.Value{dtype.Int(dtype.Int32, -7), dtype.Int(dtype.Int32, 2)},
			dtype.Int(dtype.Int32, -4)},
		{"Remainder", Must("remainder", "out0 = mod(in0, in1)", Types("ii->i", "dd->d")...),
			[]dtype.Value{dtype.Float(dtype.Float64, -1), dtype.Float(dtype.Float64, 3)},
			dtype.Float(dtype.Float64, 2)},
		{"IntRemainder", Must("remainder", "out0 = mod(in0, in1)", Types("ii->i")...),
			[]dtype.Value{dtype.Int(dtype.Int32, 7), dtype.Int(dtype.Int32, -3)},
			dtype.Int(dtype.Int32, -2)},
		{"Literal", Must("k", "out0 = in0 * 2 + 0.5", Types("f->f")...),
			[]dtype.Value{dtype.Float(dtype.Float32, 1)},
			dtype.Float(dtype.Float32, 2.5)},
		{"Statements", Must("k", "out0 = in0 + 1; out0 = out0 * 3", Types("i->i")...),
			[]dtype.Value{dtype.Int(dtype.Int32, 1)},
			dtype.Int(dtype.Int32, 6)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual, err := test.kernel.Call(test.args...)
			require.NoError(t, err)
			require.Equal(t, test.expected, actual)
		})
	}
}

func TestCallErrors(t *testing.T) {
	invert := Must("invert", "out0 = ~in0", Types("d->d")...)
	_, err := invert.Call(dtype.Float(dtype.Float64, 1))
	require.EqualError(t, err, "invert[d->d]: operator ~ is not defined for float64")

	not := Must("not", "out0 = !in0", Types("D->?")...)
	_, err = not.Call(dtype.Complex(dtype.Complex128, 0))
	require.EqualError(t, err, "not[D->?]: operator ! is not defined for complex128")

	power := Must("power", "out0 = pow(in0, in1)", Types("ii->i")...)
	_, err = power.Call(dtype.Int(dtype.Int32, 2), dtype.Int(dtype.Int32, -1))
	require.Error(t, err)

	realPart := Must("real", "out0 = in0.real()", Types("d->d")...)
	_, err = realPart.Call(dtype.Float(dtype.Float64, 1))
	require.EqualError(t, err, "real[d->d]: 1:11: float64 has no method real()")

	_, err = invert.Call(dtype.Complex(dtype.Complex64, 1))
	var noMatch *NoMatchError
	require.True(t, errors.As(err, &noMatch))
}

func TestComparison(t *testing.T) {
	less := MustComparison("less", "<")
	lessEqual := MustComparison("less_equal", "<=")
	equal := MustComparison("equal", "==")
	for _, k := range []*Kernel{less, lessEqual, equal} {
		for _, sig := range k.Signatures() {
			require.Equal(t, dtype.Bool, sig.Out)
		}
		require.Len(t, k.Signatures(), len(dtype.Kinds))
	}

	call := func(k *Kernel, a, b dtype.Value) bool {
		t.Helper()
		v, err := k.Call(a, b)
		require.NoError(t, err)
		require.Equal(t, dtype.Bool, v.Kind())
		return v.Bool()
	}
	require.True(t, call(less, dtype.Int(dtype.Int8, -1), dtype.Uint(dtype.Uint8, 0)))
	require.True(t, call(less, dtype.Int(dtype.Int64, -1), dtype.Uint(dtype.Uint64, 0)))
	require.True(t, call(less, dtype.Complex(dtype.Complex64, 1+5i), dtype.Complex(dtype.Complex64, 2)))
	require.True(t, call(less, dtype.Complex(dtype.Complex64, 1+1i), dtype.Complex(dtype.Complex64, 1+2i)))
	require.False(t, call(less, dtype.Complex(dtype.Complex64, 1+2i), dtype.Complex(dtype.Complex64, 1+2i)))
	require.True(t, call(lessEqual, dtype.Complex(dtype.Complex64, 1+2i), dtype.Complex(dtype.Complex64, 1+2i)))
	require.False(t, call(less, dtype.Float(dtype.Float64, math.NaN()), dtype.Float(dtype.Float64, 1)))
	require.True(t, call(equal, dtype.Complex(dtype.Complex128, 1i), dtype.Complex(dtype.Complex64, 1i)))

	_, err := NewComparison("bad", "<>")
	require.EqualError(t, err, `bad: "<>" is not a comparison operator`)
}
