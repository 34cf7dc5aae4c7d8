package analyser

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/alecthomas/jitx/dtype"
)

// Scope resolves variables to their element types.
type Scope struct {
	symbols map[string]dtype.Kind
}

func makeScope() *Scope {
	return &Scope{symbols: map[string]dtype.Kind{}}
}

// NewScope creates a scope declaring the given variables.
func NewScope(vars map[string]dtype.Kind) (*Scope, error) {
	s := makeScope()
	for _, name := range sortedKeys(vars) {
		if err := s.Add(name, vars[name]); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Scope) Symbols() map[string]dtype.Kind { return s.symbols }

// Names of all variables in the scope, sorted.
func (s *Scope) Names() []string { return sortedKeys(s.symbols) }

func (s *Scope) Resolve(ident string) (dtype.Kind, bool) {
	kind, ok := s.symbols[ident]
	return kind, ok
}

func (s *Scope) Add(name string, kind dtype.Kind) error {
	if name == "" {
		return errors.New("variable name is required")
	}
	if !kind.Valid() {
		return errors.Errorf("%q has an invalid type", name)
	}
	_, ok := s.symbols[name]
	if ok {
		return errors.Errorf("%q redeclared", name)
	}
	s.symbols[name] = kind
	return nil
}

func sortedKeys(m map[string]dtype.Kind) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
