package lexer

import (
	"fmt"

	"github.com/glyphlang/glyphc/internal/source"
)

// Error is a lexical error: a message anchored to a byte range of the
// offending source.
type Error struct {
	Range   source.Range
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s", e.Message)
}

func newError(r source.Range, format string, args ...any) *Error {
	return &Error{Range: r, Message: fmt.Sprintf(format, args...)}
}
