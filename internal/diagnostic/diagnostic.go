// Package diagnostic renders expression errors with a caret under the
// offending position.
package diagnostic

import (
	"errors"
	"strings"

	"github.com/rivo/uniseg"
)

type positioned interface {
	error
	Position() int
}

// Offset returns the byte offset carried by err, if any.
func Offset(err error) (int, bool) {
	var p positioned
	if !errors.As(err, &p) {
		return 0, false
	}
	return p.Position(), true
}

// Format returns err followed by the line of expression that contains the
// failing offset and a caret beneath it. Errors without an offset are
// returned as their message alone.
func Format(expression string, err error) string {
	if err == nil {
		return ""
	}

	offset, ok := Offset(err)
	if !ok {
		return err.Error() + "\n"
	}
	offset = min(max(offset, 0), len(expression))

	lineStart := strings.LastIndexByte(expression[:offset], '\n') + 1
	lineEnd := len(expression)
	if i := strings.IndexByte(expression[offset:], '\n'); i >= 0 {
		lineEnd = offset + i
	}
	line := expression[lineStart:lineEnd]
	column := Column(line, offset-lineStart)

	var b strings.Builder
	b.WriteString(err.Error())
	b.WriteString("\n  ")
	b.WriteString(strings.ReplaceAll(line, "\t", " "))
	b.WriteString("\n  ")
	b.WriteString(strings.Repeat(" ", column))
	b.WriteString("^\n")
	return b.String()
}

// Column returns the display width of line[:offset], counting each
// grapheme cluster by its terminal width.
func Column(line string, offset int) int {
	offset = min(max(offset, 0), len(line))
	return uniseg.StringWidth(strings.ReplaceAll(line[:offset], "\t", " "))
}
