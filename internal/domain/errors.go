package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrArgument indicates an empty or malformed input value.
	ErrArgument = errors.New("invalid argument")

	// ErrStructural indicates a source document the transform cannot proceed with.
	ErrStructural = errors.New("structural input error")

	// ErrAuthoring indicates a recoverable problem in the source document.
	ErrAuthoring = errors.New("authoring error")
)

// StructuralError aborts the transform of a unit.
type StructuralError struct {
	// Unit names the operation, component or document being transformed.
	Unit    string
	Message string
	Cause   error
}

// Error returns a human-readable error message.
func (e *StructuralError) Error() string {
	msg := e.Message
	if e.Unit != "" {
		msg = fmt.Sprintf("%s: %s", e.Unit, msg)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *StructuralError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrStructural.
func (e *StructuralError) Is(target error) bool {
	return target == ErrStructural
}

// Structuralf builds a StructuralError.
func Structuralf(unit, format string, args ...any) error {
	return &StructuralError{Unit: unit, Message: fmt.Sprintf(format, args...)}
}

// AuthoringError is collected by Diagnostics; the offending node degrades to
// an empty placeholder and the run continues.
type AuthoringError struct {
	Unit    string
	Message string
}

// Error returns a human-readable error message.
func (e *AuthoringError) Error() string {
	if e.Unit == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Unit, e.Message)
}

// Is reports whether target is ErrAuthoring.
func (e *AuthoringError) Is(target error) bool {
	return target == ErrAuthoring
}
