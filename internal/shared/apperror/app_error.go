// Package apperror holds the failure taxonomy shared by every domain.
package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidFormat
	KindOutOfRange
	KindInvalidIdentifier
	KindStorageFailure
)

// Sentinels, one per kind. Match them with errors.Is.
var (
	ErrInvalidFormat     = errors.New("invalid format")
	ErrOutOfRange        = errors.New("value out of range")
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrStorageFailure    = errors.New("storage failure")
)

func (k Kind) String() string {
	switch k {
	case KindInvalidFormat:
		return "INVALID_FORMAT"
	case KindOutOfRange:
		return "OUT_OF_RANGE"
	case KindInvalidIdentifier:
		return "INVALID_IDENTIFIER"
	case KindStorageFailure:
		return "STORAGE_FAILURE"
	default:
		return "INTERNAL_ERROR"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindInvalidFormat:
		return ErrInvalidFormat
	case KindOutOfRange:
		return ErrOutOfRange
	case KindInvalidIdentifier:
		return ErrInvalidIdentifier
	case KindStorageFailure:
		return ErrStorageFailure
	default:
		return nil
	}
}

// Error is a classified failure. Field names the offending field, if any.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Is reports whether target is the sentinel of e's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

func (e *Error) Unwrap() error {
	return e.Err
}

func InvalidFormat(field, msg string) *Error {
	return &Error{Kind: KindInvalidFormat, Field: field, Message: msg}
}

func OutOfRange(field, msg string) *Error {
	return &Error{Kind: KindOutOfRange, Field: field, Message: msg}
}

func InvalidIdentifier(field, msg string, cause error) *Error {
	return &Error{Kind: KindInvalidIdentifier, Field: field, Message: msg, Err: cause}
}

// StorageFailure wraps any data-store error, including rows that fail validation on the way out.
func StorageFailure(msg string, cause error) *Error {
	return &Error{Kind: KindStorageFailure, Message: msg, Err: cause}
}

// KindOf returns the kind of the outermost *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
