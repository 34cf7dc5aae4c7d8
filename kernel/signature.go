package kernel

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/alecthomas/jitx/dtype"
	"github.com/alecthomas/jitx/parser"
)

// Signature is one overload of a kernel.
type Signature struct {
	In  []dtype.Kind
	Out dtype.Kind
	// Override replaces the kernel's generic body for this signature.
	Override string

	body *parser.Body
}

// Types returns the signature in type code notation, eg. "ii->d".
func (s Signature) Types() string {
	w := &strings.Builder{}
	for _, k := range s.In {
		w.WriteByte(k.Char())
	}
	w.WriteString("->")
	w.WriteByte(s.Out.Char())
	return w.String()
}

func (s Signature) String() string { return s.Types() }

// Accepts returns true if every input kind can be safely cast to the
// corresponding signature input.
func (s Signature) Accepts(in []dtype.Kind) bool {
	if len(in) != len(s.In) {
		return false
	}
	for i, k := range in {
		if !dtype.CanCast(k, s.In[i]) {
			return false
		}
	}
	return true
}

func (s Signature) key() string {
	return s.Types()[:len(s.In)]
}

// Decl declares a signature in type code notation with an optional body
// override.
type Decl struct {
	Types string
	Body  string
}

// Types declares signatures that all use the kernel's generic body.
func Types(types ...string) []Decl {
	out := make([]Decl, 0, len(types))
	for _, t := range types {
		out = append(out, Decl{Types: t})
	}
	return out
}

// Override declares a signature with its own body.
func Override(types, body string) Decl {
	return Decl{Types: types, Body: body}
}

func parseTypes(types string) (Signature, error) {
	parts := strings.Split(types, "->")
	if len(parts) != 2 {
		return Signature{}, errors.Errorf("signature %q must have the form \"<inputs>-><output>\"", types)
	}
	if len(parts[1]) != 1 {
		return Signature{}, errors.Errorf("signature %q must have exactly one output", types)
	}
	sig := Signature{}
	for i := 0; i < len(parts[0]); i++ {
		k, err := dtype.FromChar(parts[0][i])
		if err != nil {
			return Signature{}, errors.Wrapf(err, "signature %q", types)
		}
		sig.In = append(sig.In, k)
	}
	out, err := dtype.FromChar(parts[1][0])
	if err != nil {
		return Signature{}, errors.Wrapf(err, "signature %q", types)
	}
	sig.Out = out
	return sig, nil
}
