package load

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for decoding failures.
var (
	// ErrMissingKey indicates a required key is absent.
	ErrMissingKey = errors.New("schemagen: missing key")
	// ErrMalformed indicates a value of the wrong shape.
	ErrMalformed = errors.New("schemagen: malformed document")
)

// KeyError reports a required key missing from the mapping at Path.
type KeyError struct {
	Path string
	Key  string
	Line int
}

// Error implements the error interface.
func (e *KeyError) Error() string {
	var b strings.Builder
	b.WriteString("schemagen: missing key ")
	fmt.Fprintf(&b, "%q", e.Key)
	if e.Path != "" {
		b.WriteString(" in ")
		b.WriteString(e.Path)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " (line %d)", e.Line)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for KeyError.
func (e *KeyError) Is(target error) bool {
	return target == ErrMissingKey
}

// SyntaxError reports a value that does not have the expected shape, or
// input that is not a document at all.
type SyntaxError struct {
	Path    string
	Line    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	var b strings.Builder
	b.WriteString("schemagen: malformed document")
	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " (line %d)", e.Line)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *SyntaxError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for SyntaxError.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrMalformed
}

// IsKeyError reports whether the error is a KeyError.
func IsKeyError(err error) bool {
	var keyErr *KeyError
	return errors.As(err, &keyErr)
}
