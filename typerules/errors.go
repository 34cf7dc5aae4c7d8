package typerules

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnimplemented is returned when resolving operators in Native mode.
	ErrUnimplemented = errors.New("not implemented")
	// ErrInvariant is returned when a caller passes an invalid mode or
	// operator. It indicates a bug in the caller.
	ErrInvariant = errors.New("internal invariant violated")
)

// UnsupportedConstantError is returned by InferScalar for values with no
// element type.
type UnsupportedConstantError struct {
	Value interface{}
	// HostType is the Go type of Value, eg. "string".
	HostType string
}

func (u *UnsupportedConstantError) Error() string {
	return fmt.Sprintf("%v is not supported as a constant", u.Value)
}
