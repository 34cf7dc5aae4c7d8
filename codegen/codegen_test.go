package codegen

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/alecthomas/jitx/analyser"
	"github.com/alecthomas/jitx/dtype"
	"github.com/alecthomas/jitx/parser"
	"github.com/alecthomas/jitx/typerules"
)

func generate(t *testing.T, source string, vars map[string]dtype.Kind) string {
	t.Helper()
	p, err := analyser.CheckString(typerules.Portable, source, vars)
	assert.NoError(t, err)
	w := &strings.Builder{}
	err = Generate(w, "f", p)
	assert.NoError(t, err)
	return w.String()
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		vars     map[string]dtype.Kind
		expected string
	}{
		{name: "Arithmetic",
			source: "a + b * 2",
			vars:   map[string]dtype.Kind{"a": dtype.Int8, "b": dtype.Int16},
			expected: `
__device__ void multiply_int64_int64(const long long in0, const long long in1, long long& out0) {
  out0 = in0 * in1;
}

__device__ void add_int64_int64(const long long in0, const long long in1, long long& out0) {
  out0 = in0 + in1;
}

__device__ void f(const signed char a, const short b, long long& out0) {
  long long _t0;
  multiply_int64_int64(b, (long long)2, _t0);
  long long _t1;
  add_int64_int64(a, _t0, _t1);
  out0 = _t1;
}
`},
		{name: "TrueDivide",
			source: "x / y",
			vars:   map[string]dtype.Kind{"x": dtype.Bool, "y": dtype.Int32},
			expected: `
__device__ void numpy_scalar_true_divide_bool_int32(const bool in0, const int in1, double& out0) {
  out0 = (double)in0 / (double)in1;
}

__device__ void f(const bool x, const int y, double& out0) {
  double _t0;
  numpy_scalar_true_divide_bool_int32(x, y, _t0);
  out0 = _t0;
}
`},
		{name: "CastAndMethod",
			source: "(float64)z.real()",
			vars:   map[string]dtype.Kind{"z": dtype.Complex64},
			expected: `
__device__ void f(const complex<float> z, double& out0) {
  out0 = ((double)z.real());
}
`},
		{name: "LogicalNotComplex",
			source: "not z",
			vars:   map[string]dtype.Kind{"z": dtype.Complex128},
			expected: `
__device__ void numpy_scalar_logical_not_complex128(const complex<double> in0, bool& out0) {
  out0 = !in0.real() && !in0.imag();
}

__device__ void f(const complex<double> z, bool& out0) {
  bool _t0;
  numpy_scalar_logical_not_complex128(z, _t0);
  out0 = _t0;
}
`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual := generate(t, test.source, test.vars)
			assert.Equal(t, strings.TrimSpace(test.expected), strings.TrimSpace(actual))
		})
	}
}

func TestGenerateSharedKernelNames(t *testing.T) {
	actual := generate(t, "(a < b) & (a >= b)", map[string]dtype.Kind{"a": dtype.Int32, "b": dtype.Int32})
	assert.Contains(t, actual, "__device__ void scalar_less_int32_int32(const int in0, const int in1, bool& out0) {\n  out0 = in0 < in1;\n}")
	assert.Contains(t, actual, "__device__ void scalar_less_int32_int32_1(const int in0, const int in1, bool& out0) {\n  out0 = in0 >= in1;\n}")
	assert.Contains(t, actual, "  scalar_less_int32_int32(a, b, _t0);\n")
	assert.Contains(t, actual, "  scalar_less_int32_int32_1(a, b, _t1);\n")
	assert.Contains(t, actual, "  bitwise_and_bool_bool(_t0, _t1, _t2);\n")
}

func TestGeneratePrelude(t *testing.T) {
	actual := generate(t, "floor_divide(x, 2)", map[string]dtype.Kind{"x": dtype.Int32})
	assert.HasPrefix(t, actual, "template <typename T>\n__device__ T floordiv(T x, T y) {\n")
	assert.Contains(t, actual, "  out0 = floordiv(in0, in1);\n")
	assert.Equal(t, 1, strings.Count(actual, "__device__ T floordiv"))

	actual = generate(t, "x ** y", map[string]dtype.Kind{"x": dtype.Int64, "y": dtype.Int64})
	assert.Contains(t, actual, "__device__ T ipow(T x, T y)")
	assert.Contains(t, actual, "  out0 = ipow(in0, in1);\n")

	actual = generate(t, "x ** y", map[string]dtype.Kind{"x": dtype.Float64, "y": dtype.Float64})
	assert.NotContains(t, actual, "ipow")
	assert.Contains(t, actual, "  out0 = pow(in0, in1);\n")
}

func TestGenerateReservedName(t *testing.T) {
	p, err := analyser.CheckString(typerules.Portable, "out0 + 1", map[string]dtype.Kind{"out0": dtype.Int32})
	assert.NoError(t, err)
	err = Generate(&strings.Builder{}, "f", p)
	assert.EqualError(t, err, `variable name "out0" is reserved`)
}

func TestKernel(t *testing.T) {
	k, err := typerules.Resolve(typerules.Portable, parser.OpDiv)
	assert.NoError(t, err)
	w := &strings.Builder{}
	err = Kernel(w, k)
	assert.NoError(t, err)
	actual := w.String()
	assert.Equal(t, len(k.Signatures()), strings.Count(actual, "__device__ void "))
	assert.Contains(t, actual, "__device__ void numpy_scalar_true_divide_bool_bool(const bool in0, const bool in1, double& out0) {\n  out0 = (double)in0 / (double)in1;\n}")
	assert.Contains(t, actual, "__device__ void numpy_scalar_true_divide_complex64_complex64(const complex<float> in0, const complex<float> in1, complex<float>& out0) {\n  out0 = (complex<float>)in0 / (complex<float>)in1;\n}")

	k, err = typerules.Resolve(typerules.Portable, parser.OpLt)
	assert.NoError(t, err)
	w = &strings.Builder{}
	err = Kernel(w, k)
	assert.NoError(t, err)
	assert.Contains(t, w.String(), "  out0 = (in0.real() < in1.real()) || ((in0.real() == in1.real()) && (in0.imag() < in1.imag()));\n")
}
