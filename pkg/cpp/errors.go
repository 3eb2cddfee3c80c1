package cpp

import (
	"errors"
	"fmt"
)

var (
	// ErrNotImplemented marks directives that are recognized but unsupported.
	ErrNotImplemented = errors.New("not yet implemented")
	// ErrUnterminatedLiteral marks a string or character literal without a closing quote.
	ErrUnterminatedLiteral = errors.New("unterminated literal")
	// ErrUnexpectedChar marks a character outside the preprocessing alphabet.
	ErrUnexpectedChar = errors.New("unexpected character")
	// ErrRecursiveMacro marks a macro whose expansion reaches itself again.
	ErrRecursiveMacro = errors.New("recursive macro expansion")
	// ErrBadDirective marks a malformed #define.
	ErrBadDirective = errors.New("malformed directive")
)

// Error is a preprocessing failure at a source location. Kind is one of
// the sentinel errors above and is reachable through errors.Is.
type Error struct {
	Loc  SourceLoc
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Loc.File, e.Loc.Line, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func errorf(loc SourceLoc, kind error, format string, args ...any) *Error {
	return &Error{Loc: loc, Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
