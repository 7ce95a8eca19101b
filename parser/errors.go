package parser

import (
	"errors"
	"fmt"
)

// ErrSyntax is wrapped by every error the parser itself produces.
var ErrSyntax = errors.New("syntax error")

// Error describes an unexpected or missing token.
type Error struct {
	Offset  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", ErrSyntax, e.Offset, e.Message)
}

func (e *Error) Unwrap() error {
	return ErrSyntax
}

// Position returns the byte offset of the offending token.
func (e *Error) Position() int {
	return e.Offset
}

func syntaxError(offset int, format string, args ...any) error {
	return &Error{Offset: offset, Message: fmt.Sprintf(format, args...)}
}
