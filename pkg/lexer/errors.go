package lexer

import (
	"fmt"
	"strconv"

	"github.com/raymyers/ramcc/pkg/cabs"
)

// Error is a syntax error: the input at Pos did not match Expected.
type Error struct {
	Pos      cabs.Position
	Expected string
	Found    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: Expecting %s got %s", e.Pos, strconv.Quote(e.Expected), strconv.Quote(e.Found))
}
