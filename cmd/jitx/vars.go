package main

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/alecthomas/jitx/dtype"
)

type variable struct {
	name  string
	kind  dtype.Kind
	value *dtype.Value
}

// parseVar parses "name=type" or "name=type:value".
func parseVar(decl string) (variable, error) {
	name, rest, ok := strings.Cut(decl, "=")
	if !ok || name == "" {
		return variable{}, errors.New("expected name=type or name=type:value")
	}
	typ, text, hasValue := strings.Cut(rest, ":")
	kind, err := dtype.FromName(typ)
	if err != nil {
		return variable{}, err
	}
	v := variable{name: name, kind: kind}
	if !hasValue {
		return v, nil
	}
	value, err := parseValue(kind, text)
	if err != nil {
		return variable{}, err
	}
	v.value = &value
	return v, nil
}

func parseValue(kind dtype.Kind, text string) (dtype.Value, error) {
	switch {
	case kind.IsBool():
		b, err := strconv.ParseBool(text)
		if err != nil {
			return dtype.Value{}, errors.WithStack(err)
		}
		return dtype.BoolValue(b), nil

	case kind.IsSigned():
		i, err := strconv.ParseInt(text, 0, kind.Bits())
		if err != nil {
			return dtype.Value{}, errors.WithStack(err)
		}
		return dtype.Int(kind, i), nil

	case kind.IsUnsigned():
		u, err := strconv.ParseUint(text, 0, kind.Bits())
		if err != nil {
			return dtype.Value{}, errors.WithStack(err)
		}
		return dtype.Uint(kind, u), nil

	case kind.IsFloat():
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return dtype.Value{}, errors.WithStack(err)
		}
		return dtype.Float(kind, f), nil

	default:
		c, err := strconv.ParseComplex(text, 128)
		if err != nil {
			return dtype.Value{}, errors.WithStack(err)
		}
		return dtype.Complex(kind, c), nil
	}
}
