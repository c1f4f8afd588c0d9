package game

import (
	"errors"
	"fmt"
)

// ErrorKind classifies domain failures.
type ErrorKind int

const (
	KindInvalidInput ErrorKind = iota + 1
	KindIllegalOperation
	KindCorruptSnapshot
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindIllegalOperation:
		return "illegal operation"
	case KindCorruptSnapshot:
		return "corrupt snapshot"
	}

	return "unknown"
}

// Common errors. Use errors.Is to match any *Error of the same kind.
var (
	ErrInvalidInput     = &Error{Kind: KindInvalidInput}
	ErrIllegalOperation = &Error{Kind: KindIllegalOperation}
	ErrCorruptSnapshot  = &Error{Kind: KindCorruptSnapshot}
)

// Error is returned by every game operation that refuses to run. Reason is
// meant for humans and may be shown to players as is.
type Error struct {
	Kind   ErrorKind
	Op     string
	Reason string
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Kind.String()
	}

	return fmt.Sprintf("%v: %v: %v", e.Op, e.Kind, e.Reason)
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return t.Kind == e.Kind
}

func invalidInput(op, format string, args ...any) error {
	return &Error{Kind: KindInvalidInput, Op: op, Reason: fmt.Sprintf(format, args...)}
}

func illegalOperation(op, format string, args ...any) error {
	return &Error{Kind: KindIllegalOperation, Op: op, Reason: fmt.Sprintf(format, args...)}
}

func corruptSnapshot(format string, args ...any) error {
	return &Error{Kind: KindCorruptSnapshot, Op: "restore", Reason: fmt.Sprintf(format, args...)}
}
