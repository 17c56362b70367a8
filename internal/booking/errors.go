package booking

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can decide whether to fix input,
// pick another slot, or retry later.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is returned by every Service operation that fails.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Kind == KindInternal {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the Kind of err. Errors that did not come from this package
// are internal.
func KindOf(err error) Kind {
	var bookingErr *Error
	if errors.As(err, &bookingErr) {
		return bookingErr.Kind
	}
	return KindInternal
}

func validationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// asError passes booking errors through and wraps anything else as internal.
func asError(message string, err error) error {
	if err == nil {
		return nil
	}
	var bookingErr *Error
	if errors.As(err, &bookingErr) {
		return bookingErr
	}
	return internal(message, err)
}
