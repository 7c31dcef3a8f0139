package store

import (
	"errors"
	"strings"
)

// Kind identifies a category of store failure. The string value is stable
// and is the lookup key the message bundle uses to render user-facing text;
// the store itself never formats messages.
type Kind string

const (
	// KindMissingGroupName indicates SetDefaultGroup was called with an
	// empty group name.
	KindMissingGroupName Kind = "MissingGroupName"

	// KindNotFound indicates a read of a backing file that does not exist
	// on a store without create-if-missing semantics.
	KindNotFound Kind = "NotFound"

	// KindParseError indicates the backing file held malformed JSON.
	KindParseError Kind = "ParseError"

	// KindInvalidGroupShape indicates a persisted document whose top-level
	// value is not itself an object.
	KindInvalidGroupShape Kind = "InvalidGroupShape"
)

// Error is a structured store failure: a stable kind plus the positional
// tokens (path, group name, offending entry) a message formatter needs to
// render something actionable.
type Error struct {
	Kind   Kind
	Tokens []string
	Err    error
}

// NewError creates an Error of the given kind with positional tokens.
func NewError(kind Kind, tokens ...string) *Error {
	return &Error{Kind: kind, Tokens: tokens}
}

// WrapError creates an Error of the given kind wrapping an underlying cause.
func WrapError(err error, kind Kind, tokens ...string) *Error {
	return &Error{Kind: kind, Tokens: tokens, Err: err}
}

// Error implements the error interface. The output is diagnostic, not
// user-facing; user-facing text comes from the messages package.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if len(e.Tokens) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Tokens, ", "))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is (or wraps) a store Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}
