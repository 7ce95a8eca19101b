package lexer

import (
	"errors"
	"fmt"
)

// ErrLexical is wrapped by every error returned from Tokenize.
var ErrLexical = errors.New("lexical error")

// Error describes why tokenization stopped and where.
type Error struct {
	Offset  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", ErrLexical, e.Offset, e.Message)
}

func (e *Error) Unwrap() error {
	return ErrLexical
}

// Position returns the byte offset of the failure.
func (e *Error) Position() int {
	return e.Offset
}

func lexError(offset int, format string, args ...any) error {
	return &Error{Offset: offset, Message: fmt.Sprintf(format, args...)}
}
