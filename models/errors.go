package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures surfaced to the user.
type ErrorKind string

const (
	KindValidation       ErrorKind = "validation"
	KindAuth             ErrorKind = "auth"
	KindNetwork          ErrorKind = "network"
	KindRateLimit        ErrorKind = "rate_limit"
	KindUnsupportedMedia ErrorKind = "unsupported_media"
	KindFormat           ErrorKind = "format"
	KindInternal         ErrorKind = "internal"
)

// Error is the typed failure returned by every pipeline stage.
// Message is safe to show to the user; Err keeps the underlying cause.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match on kind, e.g. errors.Is(err, &models.Error{Kind: models.KindAuth}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func newError(kind ErrorKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func ValidationError(format string, args ...any) *Error {
	return newError(KindValidation, nil, format, args...)
}

func AuthError(err error, format string, args ...any) *Error {
	return newError(KindAuth, err, format, args...)
}

func NetworkError(err error, format string, args ...any) *Error {
	return newError(KindNetwork, err, format, args...)
}

func RateLimitError(err error, format string, args ...any) *Error {
	return newError(KindRateLimit, err, format, args...)
}

func UnsupportedMediaError(err error, format string, args ...any) *Error {
	return newError(KindUnsupportedMedia, err, format, args...)
}

func FormatError(err error, format string, args ...any) *Error {
	return newError(KindFormat, err, format, args...)
}

func InternalError(err error, format string, args ...any) *Error {
	return newError(KindInternal, err, format, args...)
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// UserMessage returns the message to render for err.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "An unexpected error occurred"
}
