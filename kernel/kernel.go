// Package kernel builds polymorphic elementwise kernels from type signatures
// and resolves the signature to use for a set of input types.
package kernel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/alecthomas/jitx/dtype"
	"github.com/alecthomas/jitx/parser"
)

// ErrDuplicateSignature is returned by New when two signatures share the
// same input types.
var ErrDuplicateSignature = errors.New("duplicate signature")

// NoMatchError is returned when no signature of a kernel accepts the input
// types.
type NoMatchError struct {
	Kernel string
	In     []dtype.Kind
}

func (n *NoMatchError) Error() string {
	names := make([]string, 0, len(n.In))
	for _, k := range n.In {
		names = append(names, k.String())
	}
	return fmt.Sprintf("%s: no signature matches input types (%s)", n.Kernel, strings.Join(names, ", "))
}

// A Kernel is an immutable, named, polymorphic elementwise operation.
type Kernel struct {
	name       string
	body       string
	generic    *parser.Body
	signatures []Signature
}

// New builds a kernel.
//
// "body" is used by every signature that does not override it. Bodies assign
// "out0" from the inputs "in0", "in1", ... and may cast with the
// placeholders "in0_type", "out0_type", ... which are replaced by the
// signature's concrete types.
func New(name, body string, decls ...Decl) (*Kernel, error) {
	if name == "" {
		return nil, errors.New("kernel name is required")
	}
	if len(decls) == 0 {
		return nil, errors.Errorf("%s: at least one signature is required", name)
	}
	k := &Kernel{name: name, body: body}
	seen := map[string]bool{}
	for _, decl := range decls {
		sig, err := parseTypes(decl.Types)
		if err != nil {
			return nil, errors.Wrap(err, name)
		}
		if len(k.signatures) > 0 && len(sig.In) != len(k.signatures[0].In) {
			return nil, errors.Errorf("%s: signature %q has %d inputs, expected %d", name, decl.Types, len(sig.In), len(k.signatures[0].In))
		}
		if seen[sig.key()] {
			return nil, errors.Wrapf(ErrDuplicateSignature, "%s: %q", name, decl.Types)
		}
		seen[sig.key()] = true
		if decl.Body != "" {
			sig.Override = decl.Body
			sig.body, err = compileBody(decl.Body, len(sig.In))
			if err != nil {
				return nil, errors.Wrapf(err, "%s: %q", name, decl.Types)
			}
		} else if k.generic == nil {
			if body == "" {
				return nil, errors.Errorf("%s: signature %q has no body", name, decl.Types)
			}
			k.generic, err = compileBody(body, len(sig.In))
			if err != nil {
				return nil, errors.Wrap(err, name)
			}
		}
		k.signatures = append(k.signatures, sig)
	}
	return k, nil
}

// Must is New that panics on error.
func Must(name, body string, decls ...Decl) *Kernel {
	k, err := New(name, body, decls...)
	if err != nil {
		panic(err)
	}
	return k
}

// Name of the kernel.
func (k *Kernel) Name() string { return k.name }

func (k *Kernel) String() string { return k.name }

// Body is the generic body shared by signatures without an override.
func (k *Kernel) Body() string { return k.body }

// NIn is the number of inputs.
func (k *Kernel) NIn() int { return len(k.signatures[0].In) }

// Signatures returns a copy of the kernel's signatures in resolution order.
func (k *Kernel) Signatures() []Signature {
	out := make([]Signature, len(k.signatures))
	copy(out, k.signatures)
	return out
}

// Resolve returns the first signature accepting the given input types.
func (k *Kernel) Resolve(in ...dtype.Kind) (Signature, error) {
	for _, sig := range k.signatures {
		if sig.Accepts(in) {
			return sig, nil
		}
	}
	return Signature{}, &NoMatchError{Kernel: k.name, In: in}
}

// BodyOf returns the parsed body used by a signature of this kernel.
func (k *Kernel) BodyOf(sig Signature) *parser.Body {
	if sig.body != nil {
		return sig.body
	}
	return k.generic
}

// SourceOf returns the body source used by a signature of this kernel.
func (k *Kernel) SourceOf(sig Signature) string {
	if sig.Override != "" {
		return sig.Override
	}
	return k.body
}

// Call resolves a signature for the argument types, casts the arguments to
// the signature's input types and evaluates the body.
func (k *Kernel) Call(args ...dtype.Value) (dtype.Value, error) {
	in := make([]dtype.Kind, 0, len(args))
	for _, arg := range args {
		in = append(in, arg.Kind())
	}
	sig, err := k.Resolve(in...)
	if err != nil {
		return dtype.Value{}, err
	}
	out, err := evaluate(k.BodyOf(sig), sig, args)
	if err != nil {
		return dtype.Value{}, errors.Wrapf(err, "%s[%s]", k.name, sig)
	}
	return out, nil
}

// compileBody parses a body and checks that it only refers to the kernel's
// inputs and assigns its output.
func compileBody(source string, nin int) (*parser.Body, error) {
	body, err := parser.ParseBody(source)
	if err != nil {
		return nil, err
	}
	assigned := false
	for _, stmt := range body.Statements {
		if stmt.Target != "out0" {
			return nil, errors.Errorf("%s: can only assign to out0, not %q", stmt.Pos, stmt.Target)
		}
		assigned = true
	}
	if !assigned {
		return nil, errors.New("body does not assign out0")
	}
	err = parser.Visit(body, func(node parser.Node) error {
		switch node := node.(type) {
		case *parser.Terminal:
			if node.Ident == "" {
				return nil
			}
			if node.Call != nil {
				if _, ok := builtins[node.Ident]; !ok {
					return errors.Errorf("%s: unknown function %q", node.Pos, node.Ident)
				}
				return nil
			}
			if node.Ident == "out0" {
				return nil
			}
			if index, ok := placeholderIndex(node.Ident, "in"); !ok || index >= nin {
				return errors.Errorf("%s: unknown identifier %q", node.Pos, node.Ident)
			}

		case *parser.Group:
			if node.Cast == "" {
				return nil
			}
			if index, ok := placeholderIndex(strings.TrimSuffix(node.Cast, "_type"), "in"); ok && index < nin {
				return nil
			}
			if node.Cast == "out0_type" {
				return nil
			}
			if _, err := dtype.FromName(node.Cast); err != nil {
				return errors.Errorf("%s: unknown type %q", node.Pos, node.Cast)
			}

		case *parser.Method:
			if node.Name != "real" && node.Name != "imag" {
				return errors.Errorf("%s: unknown method %q", node.Pos, node.Name)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// placeholderIndex parses names of the form "<prefix><index>", eg. "in1".
func placeholderIndex(name, prefix string) (int, bool) {
	if !strings.HasPrefix(name, prefix) {
		return 0, false
	}
	index, err := strconv.Atoi(name[len(prefix):])
	if err != nil || index < 0 {
		return 0, false
	}
	return index, true
}
