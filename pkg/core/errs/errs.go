package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a runtime failure.
type Kind string

const (
	UndefinedVariableOrFunction Kind = "UndefinedVariableOrFunction"
	DivisionOrModuloByZero      Kind = "DivisionOrModuloByZero"
	NumberOverflow              Kind = "NumberOverflow"
	NumberUnderflow             Kind = "NumberUnderflow"
	TypeMismatch                Kind = "TypeMismatch"
	ArgumentCountMismatch       Kind = "ArgumentCountMismatch"
	IndexOutOfRange             Kind = "IndexOutOfRange"
	UnsupportedOperation        Kind = "UnsupportedOperation"

	// Resource and naming guards.
	StackOverflow     Kind = "StackOverflow"
	StepLimitExceeded Kind = "StepLimitExceeded"
	NameCollision     Kind = "NameCollision"
)

// Error is a runtime failure. Line and Col locate the innermost node that
// failed; zero means unknown.
type Error struct {
	Kind   Kind
	Detail string
	Line   int
	Col    int
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at line %d, column %d", e.Summary(), e.Line, e.Col)
	}
	return e.Summary()
}

// Summary is the message without its position.
func (e *Error) Summary() string {
	if e.Detail == "" {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Detail
}

func (e *Error) Position() (line, col int) {
	return e.Line, e.Col
}

// At records the position unless an inner node already did.
func (e *Error) At(line, col int) *Error {
	if e.Line == 0 {
		e.Line, e.Col = line, col
	}
	return e
}

// Is reports whether err is a runtime failure of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// KindOf returns the kind of a runtime failure, or "" for other errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
