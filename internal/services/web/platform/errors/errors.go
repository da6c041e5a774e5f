// Package errors defines the typed failures web handlers map to HTTP
// statuses and localized messages.
package errors

import (
	stderrors "errors"
	"net/http"
	"strings"
)

// Kind classifies a failure.
type Kind string

const (
	KindUnknown      Kind = "unknown"
	KindInvalidInput Kind = "invalid_input"
	KindUnauthorized Kind = "unauthorized"
	KindUnavailable  Kind = "unavailable"
)

var statusByKind = map[Kind]int{
	KindInvalidInput: http.StatusBadRequest,
	KindUnauthorized: http.StatusUnauthorized,
	KindUnavailable:  http.StatusServiceUnavailable,
}

// Error is a classified failure with an optional catalog key for the
// message shown to users. Message is for logs only.
type Error struct {
	Kind    Kind
	Key     string
	Message string
	Cause   error
}

func (e Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Kind)
}

func (e Error) Unwrap() error { return e.Cause }

// E returns an Error without a catalog key.
func E(kind Kind, message string) error {
	return Error{Kind: kind, Message: message}
}

// EK returns an Error whose user-facing text is the catalog entry key.
func EK(kind Kind, key string, message string) error {
	return Error{Kind: kind, Key: strings.TrimSpace(key), Message: message}
}

// Wrap classifies cause, keeping it reachable through errors.Is.
func Wrap(kind Kind, key string, cause error) error {
	err := Error{Kind: kind, Key: strings.TrimSpace(key), Cause: cause}
	if cause != nil {
		err.Message = cause.Error()
	}
	return err
}

func classify(err error) (Error, bool) {
	var typed Error
	ok := err != nil && stderrors.As(err, &typed)
	return typed, ok
}

// KindOf returns the kind of the first Error in err's chain.
func KindOf(err error) Kind {
	if typed, ok := classify(err); ok {
		return typed.Kind
	}
	return KindUnknown
}

// LocalizationKey returns the catalog key carried by err, if any.
func LocalizationKey(err error) string {
	typed, _ := classify(err)
	return typed.Key
}

// HTTPStatus maps err to a response status. Unclassified errors are 500.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if status, ok := statusByKind[KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}
