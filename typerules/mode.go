package typerules

import (
	"fmt"

	"github.com/pkg/errors"
)

// Mode selects the type promotion policy of a compilation unit.
//
// The zero value is not a valid mode.
type Mode int

const (
	// Portable emulates the promotion rules of the host numeric ecosystem.
	Portable Mode = iota + 1
	// Native favours the narrowest device friendly widths.
	Native
)

// Modes lists every valid mode.
var Modes = []Mode{Portable, Native}

// Valid returns true if m is Portable or Native.
func (m Mode) Valid() bool { return m == Portable || m == Native }

func (m Mode) String() string {
	switch m {
	case Portable:
		return "portable"
	case Native:
		return "native"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses a mode name. "numpy" and "cuda" are accepted as aliases of
// "portable" and "native".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "portable", "numpy":
		return Portable, nil
	case "native", "cuda":
		return Native, nil
	}
	return 0, errors.Errorf("unknown mode %q, expected one of portable, native", s)
}

func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, errors.Wrapf(ErrInvariant, "invalid mode %s", m)
	}
	return []byte(m.String()), nil
}
