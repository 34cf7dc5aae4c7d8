package main

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alecthomas/jitx/dtype"
	"github.com/alecthomas/jitx/typerules"
)

func TestParseVar(t *testing.T) {
	tests := []struct {
		decl  string
		name  string
		kind  dtype.Kind
		value string
		err   string
	}{
		{decl: "x=int32", name: "x", kind: dtype.Int32},
		{decl: "x=int32:-5", name: "x", kind: dtype.Int32, value: "int32(-5)"},
		{decl: "n=uint8:0x10", name: "n", kind: dtype.Uint8, value: "uint8(16)"},
		{decl: "b=bool:true", name: "b", kind: dtype.Bool, value: "bool(true)"},
		{decl: "f=float64:1.5", name: "f", kind: dtype.Float64, value: "float64(1.5)"},
		{decl: "c=complex128:(1+2i)", name: "c", kind: dtype.Complex128, value: "complex128((1+2j))"},
		{decl: "x", err: "expected name=type or name=type:value"},
		{decl: "=int32", err: "expected name=type or name=type:value"},
		{decl: "x=int", err: `unknown element type "int"`},
		{decl: "x=int8:300", err: `strconv.ParseInt: parsing "300": value out of range`},
		{decl: "x=uint8:-1", err: `strconv.ParseUint: parsing "-1": invalid syntax`},
	}
	for _, test := range tests {
		t.Run(test.decl, func(t *testing.T) {
			v, err := parseVar(test.decl)
			if test.err != "" {
				require.EqualError(t, err, test.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.name, v.name)
			require.Equal(t, test.kind, v.kind)
			if test.value == "" {
				require.Nil(t, v.value)
			} else {
				require.NotNil(t, v.value)
				require.Equal(t, test.value, v.value.String())
			}
		})
	}
}

func TestParseConfig(t *testing.T) {
	cfg, err := parseConfig([]byte(`
mode: native
vars:
  y: float64:1.5
  x: int32
`))
	require.NoError(t, err)
	require.Equal(t, "native", cfg.Mode)
	require.Equal(t, []string{"x", "y"}, cfg.varNames())

	_, err = parseConfig([]byte("vars: [1, 2"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid config")
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	require.Nil(t, cfg)
}

func TestMode(t *testing.T) {
	opts := &globalOptions{}
	mode, err := opts.mode()
	require.NoError(t, err)
	require.Equal(t, typerules.Portable, mode)

	opts.config = &config{Mode: "cuda"}
	mode, err = opts.mode()
	require.NoError(t, err)
	require.Equal(t, typerules.Native, mode)

	opts.Mode = "numpy"
	mode, err = opts.mode()
	require.NoError(t, err)
	require.Equal(t, typerules.Portable, mode)

	opts.Mode = "gpu"
	_, err = opts.mode()
	require.EqualError(t, err, `unknown mode "gpu", expected one of portable, native`)
}

func TestVariables(t *testing.T) {
	opts := &globalOptions{
		config: &config{Vars: map[string]string{
			"x": "int32:1",
			"y": "float32:2.5",
		}},
		Vars: []string{"x=int64", "z=uint8:7"},
	}
	kinds, values, err := opts.variables()
	require.NoError(t, err)
	require.Equal(t, map[string]dtype.Kind{
		"x": dtype.Int64,
		"y": dtype.Float32,
		"z": dtype.Uint8,
	}, kinds)
	require.Equal(t, map[string]dtype.Value{
		"y": dtype.Float(dtype.Float32, 2.5),
		"z": dtype.Uint(dtype.Uint8, 7),
	}, values)

	opts.Vars = []string{"bad"}
	_, _, err = opts.variables()
	require.EqualError(t, err, `invalid variable "bad": expected name=type or name=type:value`)
}

func TestLiteralValue(t *testing.T) {
	tests := []struct {
		source   string
		expected interface{}
		err      string
	}{
		{source: "5", expected: big.NewInt(5)},
		{source: "-5", expected: big.NewInt(-5)},
		{source: "-1.5", expected: -1.5},
		{source: "2j", expected: complex(0, 2)},
		{source: "-2j", expected: complex(0, -2)},
		{source: "True", expected: true},
		{source: "-True", err: `"-True" is not a numeric literal`},
		{source: "x", err: `"x" is not a literal`},
		{source: "1 + 2", err: `"1 + 2" is not a literal`},
	}
	for _, test := range tests {
		t.Run(test.source, func(t *testing.T) {
			value, err := literalValue(test.source)
			if test.err != "" {
				require.EqualError(t, err, test.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.expected, value)
		})
	}
}
