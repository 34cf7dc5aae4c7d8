package kernel

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/alecthomas/jitx/dtype"
	"github.com/alecthomas/jitx/parser"
)

// evaluate interprets a kernel body with C semantics, the way the emitted
// device code would execute it.
func evaluate(body *parser.Body, sig Signature, args []dtype.Value) (dtype.Value, error) {
	e := &evaluator{sig: sig, vars: map[string]dtype.Value{}}
	for i, arg := range args {
		e.vars["in"+strconv.Itoa(i)] = arg.Cast(sig.In[i])
	}
	for _, stmt := range body.Statements {
		v, err := e.expr(stmt.Value)
		if err != nil {
			return dtype.Value{}, err
		}
		e.vars[stmt.Target] = v.Cast(sig.Out)
	}
	out, ok := e.vars["out0"]
	if !ok {
		return dtype.Value{}, errors.New("out0 was not assigned")
	}
	return out, nil
}

type evaluator struct {
	sig  Signature
	vars map[string]dtype.Value
}

func (e *evaluator) expr(x *parser.Expr) (dtype.Value, error) {
	switch {
	case x.Terminal != nil:
		return e.terminal(x.Terminal)

	case x.Unary != nil:
		v, err := e.expr(x.Unary.Operand)
		if err != nil {
			return dtype.Value{}, err
		}
		return unary(x.Unary.Op, v)

	default:
		l, err := e.expr(x.Left)
		if err != nil {
			return dtype.Value{}, err
		}
		r, err := e.expr(x.Right)
		if err != nil {
			return dtype.Value{}, err
		}
		return binary(x.Op, l, r)
	}
}

func (e *evaluator) terminal(t *parser.Terminal) (dtype.Value, error) {
	var (
		v   dtype.Value
		err error
	)
	switch {
	case t.Group != nil && t.Group.Cast != "":
		kind, kerr := e.typeOf(t.Group.Cast)
		if kerr != nil {
			return dtype.Value{}, kerr
		}
		v, err = e.terminal(t.Group.Operand)
		v = v.Cast(kind)

	case t.Group != nil:
		v, err = e.expr(t.Group.Expr)

	case t.Literal != nil:
		v, err = literal(t.Literal)

	case t.Call != nil:
		args := make([]dtype.Value, 0, len(t.Call.Values))
		for _, arg := range t.Call.Values {
			a, aerr := e.expr(arg)
			if aerr != nil {
				return dtype.Value{}, aerr
			}
			args = append(args, a)
		}
		v, err = call(t.Ident, args)

	default:
		var ok bool
		v, ok = e.vars[t.Ident]
		if !ok {
			return dtype.Value{}, errors.Errorf("%s: undefined %q", t.Pos, t.Ident)
		}
	}
	if err != nil {
		return dtype.Value{}, err
	}
	for _, m := range t.Methods {
		if !v.Kind().IsComplex() {
			return dtype.Value{}, errors.Errorf("%s: %s has no method %s()", m.Pos, v.Kind(), m.Name)
		}
		switch m.Name {
		case "real":
			v = v.Real()
		case "imag":
			v = v.Imag()
		default:
			return dtype.Value{}, errors.Errorf("%s: unknown method %s()", m.Pos, m.Name)
		}
	}
	return v, nil
}

// typeOf resolves a cast target: a placeholder or an element type name.
func (e *evaluator) typeOf(name string) (dtype.Kind, error) {
	if strings.HasSuffix(name, "_type") {
		placeholder := strings.TrimSuffix(name, "_type")
		if placeholder == "out0" {
			return e.sig.Out, nil
		}
		if index, ok := placeholderIndex(placeholder, "in"); ok && index < len(e.sig.In) {
			return e.sig.In[index], nil
		}
		return dtype.Invalid, errors.Errorf("unknown type placeholder %q", name)
	}
	return dtype.FromName(name)
}

var (
	minInt64  = big.NewInt(math.MinInt64)
	maxInt64  = big.NewInt(math.MaxInt64)
	maxUint64 = new(big.Int).SetUint64(math.MaxUint64)
)

// literal types follow C: integers are int if they fit, then long long,
// then unsigned long long; floats are double.
func literal(l *parser.Literal) (dtype.Value, error) {
	switch v := l.Value().(type) {
	case *big.Int:
		switch {
		case v.IsInt64() && v.Int64() >= math.MinInt32 && v.Int64() <= math.MaxInt32:
			return dtype.Int(dtype.Int32, v.Int64()), nil
		case v.Cmp(minInt64) >= 0 && v.Cmp(maxInt64) <= 0:
			return dtype.Int(dtype.Int64, v.Int64()), nil
		case v.Sign() > 0 && v.Cmp(maxUint64) <= 0:
			return dtype.Uint(dtype.Uint64, v.Uint64()), nil
		}
		return dtype.Value{}, errors.Errorf("%s: integer literal %s is out of range", l.Pos, v)
	case float64:
		return dtype.Float(dtype.Float64, v), nil
	case complex128:
		return dtype.Complex(dtype.Complex128, v), nil
	case bool:
		return dtype.BoolValue(v), nil
	}
	return dtype.Value{}, errors.Errorf("%s: invalid literal", l.Pos)
}

// arithmeticType applies the C usual arithmetic conversions.
func arithmeticType(a, b dtype.Kind) dtype.Kind {
	switch {
	case a.IsComplex() || b.IsComplex():
		if a.Component() == dtype.Float64 || b.Component() == dtype.Float64 {
			return dtype.Complex128
		}
		return dtype.Complex64
	case a.IsFloat() && b.IsFloat():
		if a > b {
			return a
		}
		return b
	case a.IsFloat():
		return a
	case b.IsFloat():
		return b
	}
	a, b = promoteInteger(a), promoteInteger(b)
	switch {
	case a == b:
		return a
	case a.IsSigned() == b.IsSigned():
		if a.Size() > b.Size() {
			return a
		}
		return b
	}
	signed, unsigned := a, b
	if a.IsUnsigned() {
		signed, unsigned = b, a
	}
	if unsigned.Size() >= signed.Size() {
		return unsigned
	}
	return signed
}

// promoteInteger widens types smaller than int to int.
func promoteInteger(k dtype.Kind) dtype.Kind {
	if k.Size() < 4 {
		return dtype.Int32
	}
	return k
}

func unary(op parser.Op, v dtype.Value) (dtype.Value, error) {
	k := v.Kind()
	switch op {
	case parser.OpNot:
		if k.IsComplex() {
			return dtype.Value{}, errors.Errorf("operator ! is not defined for %s", k)
		}
		return dtype.BoolValue(!v.Bool()), nil

	case parser.OpUSub:
		k = arithmeticType(k, k)
		v = v.Cast(k)
		switch {
		case k.IsSigned():
			return dtype.Int(k, -v.Int64()), nil
		case k.IsUnsigned():
			return dtype.Uint(k, -v.Uint64()), nil
		case k.IsFloat():
			return dtype.Float(k, -v.Float64()), nil
		default:
			return dtype.Complex(k, -v.Complex128()), nil
		}

	case parser.OpInvert:
		if !k.IsInteger() && !k.IsBool() {
			return dtype.Value{}, errors.Errorf("operator ~ is not defined for %s", k)
		}
		k = arithmeticType(k, k)
		v = v.Cast(k)
		if k.IsSigned() {
			return dtype.Int(k, ^v.Int64()), nil
		}
		return dtype.Uint(k, ^v.Uint64()), nil
	}
	return dtype.Value{}, errors.Errorf("%q is not a unary operator", op)
}

func binary(op parser.Op, l, r dtype.Value) (dtype.Value, error) {
	switch op {
	case parser.OpAnd, parser.OpOr:
		if l.Kind().IsComplex() || r.Kind().IsComplex() {
			return dtype.Value{}, errors.Errorf("operator %s is not defined for %s and %s", op, l.Kind(), r.Kind())
		}
		if op == parser.OpAnd {
			return dtype.BoolValue(l.Bool() && r.Bool()), nil
		}
		return dtype.BoolValue(l.Bool() || r.Bool()), nil

	case parser.OpFloorDiv, parser.OpPow:
		return dtype.Value{}, errors.Errorf("operator %s is not supported in kernel bodies", op)
	}

	k := arithmeticType(l.Kind(), r.Kind())
	if op == parser.OpShl || op == parser.OpShr {
		k = promoteInteger(l.Kind())
	}
	if op.Comparison() {
		return compare(op, k, l.Cast(k), r.Cast(k))
	}
	l = l.Cast(k)
	if op != parser.OpShl && op != parser.OpShr {
		r = r.Cast(k)
	}
	switch {
	case k.IsSigned():
		return signedArith(op, k, l.Int64(), r.Int64())
	case k.IsUnsigned():
		return unsignedArith(op, k, l.Uint64(), r.Uint64())
	case k.IsFloat():
		return floatArith(op, k, l.Float64(), r.Float64())
	default:
		return complexArith(op, k, l.Complex128(), r.Complex128())
	}
}

func compare(op parser.Op, k dtype.Kind, l, r dtype.Value) (dtype.Value, error) {
	var c int
	switch {
	case k.IsComplex():
		switch op {
		case parser.OpEq:
			return dtype.BoolValue(l.Complex128() == r.Complex128()), nil
		case parser.OpNe:
			return dtype.BoolValue(l.Complex128() != r.Complex128()), nil
		}
		return dtype.Value{}, errors.Errorf("operator %s is not defined for %s", op, k)

	case k.IsSigned():
		c = cmp3(l.Int64() < r.Int64(), l.Int64() > r.Int64())
	case k.IsUnsigned():
		c = cmp3(l.Uint64() < r.Uint64(), l.Uint64() > r.Uint64())
	default:
		x, y := l.Float64(), r.Float64()
		if math.IsNaN(x) || math.IsNaN(y) {
			return dtype.BoolValue(op == parser.OpNe), nil
		}
		c = cmp3(x < y, x > y)
	}
	switch op {
	case parser.OpEq:
		return dtype.BoolValue(c == 0), nil
	case parser.OpNe:
		return dtype.BoolValue(c != 0), nil
	case parser.OpLt:
		return dtype.BoolValue(c < 0), nil
	case parser.OpLe:
		return dtype.BoolValue(c <= 0), nil
	case parser.OpGt:
		return dtype.BoolValue(c > 0), nil
	default:
		return dtype.BoolValue(c >= 0), nil
	}
}

func cmp3(less, greater bool) int {
	switch {
	case less:
		return -1
	case greater:
		return 1
	}
	return 0
}

func signedArith(op parser.Op, k dtype.Kind, x, y int64) (dtype.Value, error) {
	var out int64
	switch op {
	case parser.OpAdd:
		out = x + y
	case parser.OpSub:
		out = x - y
	case parser.OpMul:
		out = x * y
	case parser.OpDiv:
		if y != 0 {
			out = x / y
		}
	case parser.OpMod:
		if y != 0 {
			out = x % y
		}
	case parser.OpBitAnd:
		out = x & y
	case parser.OpBitOr:
		out = x | y
	case parser.OpBitXor:
		out = x ^ y
	case parser.OpShl:
		if y >= 0 && y < int64(k.Bits()) {
			out = x << uint(y)
		}
	case parser.OpShr:
		switch {
		case y >= 0 && y < int64(k.Bits()):
			out = x >> uint(y)
		case x < 0:
			out = -1
		}
	default:
		return dtype.Value{}, errors.Errorf("operator %s is not defined for %s", op, k)
	}
	return dtype.Int(k, out), nil
}

func unsignedArith(op parser.Op, k dtype.Kind, x, y uint64) (dtype.Value, error) {
	var out uint64
	switch op {
	case parser.OpAdd:
		out = x + y
	case parser.OpSub:
		out = x - y
	case parser.OpMul:
		out = x * y
	case parser.OpDiv:
		if y != 0 {
			out = x / y
		}
	case parser.OpMod:
		if y != 0 {
			out = x % y
		}
	case parser.OpBitAnd:
		out = x & y
	case parser.OpBitOr:
		out = x | y
	case parser.OpBitXor:
		out = x ^ y
	case parser.OpShl:
		if y < uint64(k.Bits()) {
			out = x << y
		}
	case parser.OpShr:
		if y < uint64(k.Bits()) {
			out = x >> y
		}
	default:
		return dtype.Value{}, errors.Errorf("operator %s is not defined for %s", op, k)
	}
	return dtype.Uint(k, out), nil
}

func floatArith(op parser.Op, k dtype.Kind, x, y float64) (dtype.Value, error) {
	var out float64
	switch op {
	case parser.OpAdd:
		out = x + y
	case parser.OpSub:
		out = x - y
	case parser.OpMul:
		out = x * y
	case parser.OpDiv:
		out = x / y
	default:
		return dtype.Value{}, errors.Errorf("operator %s is not defined for %s", op, k)
	}
	return dtype.Float(k, out), nil
}

func complexArith(op parser.Op, k dtype.Kind, x, y complex128) (dtype.Value, error) {
	var out complex128
	switch op {
	case parser.OpAdd:
		out = x + y
	case parser.OpSub:
		out = x - y
	case parser.OpMul:
		out = x * y
	case parser.OpDiv:
		out = x / y
	default:
		return dtype.Value{}, errors.Errorf("operator %s is not defined for %s", op, k)
	}
	return dtype.Complex(k, out), nil
}
