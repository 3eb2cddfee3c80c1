package memgen

import (
	"errors"
	"fmt"

	"github.com/raymyers/ramcc/pkg/cabs"
)

var (
	// ErrNotImplemented marks declarations and initializers the generator
	// cannot lower yet.
	ErrNotImplemented = errors.New("not yet implemented")
	// ErrOutOfMemory marks a static allocation past the end of memory.
	ErrOutOfMemory = errors.New("out of memory")
)

// Error is a generation failure at a declaration. Kind is one of the
// sentinels above or ctypes.ErrUnknownType.
type Error struct {
	Pos  cabs.Position
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func errorf(pos cabs.Position, kind error, format string, args ...any) *Error {
	return &Error{Pos: pos, Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
