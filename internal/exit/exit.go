package exit

import (
	"fmt"
	"io"
)

// Exit codes returned by jp.
const (
	CodeSuccess = 0
	CodeFailure = 1
	CodeUsage   = 2
)

// Result holds the output destination and exit code for program termination.
type Result struct {
	Output   io.Writer
	ExitCode int
	Message  string
}

// Print writes the result message to the configured output destination.
func (r *Result) Print() {
	if r.Message == "" {
		return
	}
	fmt.Fprint(r.Output, r.Message)
}

// Success creates a result that writes message to w with exit code 0.
func Success(w io.Writer, message string) *Result {
	return &Result{Output: w, ExitCode: CodeSuccess, Message: message}
}

// Failure creates a result for an expression or suite that did not pass.
func Failure(w io.Writer, message string) *Result {
	return &Result{Output: w, ExitCode: CodeFailure, Message: message}
}

// Usage creates a result for invalid flags, arguments or input files.
func Usage(w io.Writer, message string) *Result {
	return &Result{Output: w, ExitCode: CodeUsage, Message: message}
}

// Usagef creates a usage result with formatted message.
func Usagef(w io.Writer, format string, a ...any) *Result {
	return Usage(w, fmt.Sprintf(format, a...))
}
