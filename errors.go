package frombase

import (
	"errors"
	"fmt"
)

// Error kinds. Every *LabeledError returned by this package wraps exactly one
// of these, so callers can test with errors.Is.
var (
	ErrUnknownCharacter     = errors.New("unknown character")
	ErrMissingRadix         = errors.New("missing radix")
	ErrMissingTable         = errors.New("missing table")
	ErrRadixTableMismatch   = errors.New("radix does not match table length")
	ErrInvalidRadix         = errors.New("invalid radix")
	ErrUnsupportedInputType = errors.New("unsupported input type")
	ErrUnknownCommand       = errors.New("unknown command")
	ErrUnknownTable         = errors.New("unknown table")
)

// LabeledError is an error meant for display by a host shell: a short label
// shown next to the offending span plus a longer message.
type LabeledError struct {
	Kind  error
	Label string
	Msg   string
	Span  *Span
}

func (e *LabeledError) Error() string {
	return fmt.Sprintf("%s: %s", e.Label, e.Msg)
}

// Unwrap returns the error kind, or the underlying cause when there is one.
func (e *LabeledError) Unwrap() error {
	return e.Kind
}

// UnknownCharacterError reports a character of the input that has no entry
// in the table. Pos counts characters, Offset counts bytes.
type UnknownCharacterError struct {
	Char   rune
	Pos    int
	Offset int
}

func (e *UnknownCharacterError) Error() string {
	return fmt.Sprintf("character %q at position %d is not in table", e.Char, e.Pos)
}

// Is reports ErrUnknownCharacter as a match.
func (e *UnknownCharacterError) Is(target error) bool {
	return target == ErrUnknownCharacter
}

func labeled(kind error, span Span, label, msg string) *LabeledError {
	return &LabeledError{
		Kind:  kind,
		Label: label,
		Msg:   msg,
		Span:  &span,
	}
}
