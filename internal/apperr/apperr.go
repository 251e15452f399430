// Package apperr defines the error taxonomy shared by the repository,
// service and handler layers. Errors are classified by Kind so transport
// code can map them without inspecting messages.
package apperr

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies an error for the transport layer.
type Kind int

const (
	// KindInternal is the default for unexpected failures.
	KindInternal Kind = iota
	// KindInvalidArgument marks caller mistakes that cannot be normalized away.
	KindInvalidArgument
	// KindNotFound marks lookups of entities that do not exist.
	KindNotFound
	// KindUnavailable marks timeouts, cancellations and datastore outages.
	// It is the only retryable kind.
	KindUnavailable
)

// Error carries a Kind alongside the wrapped cause.
type Error struct {
	kind Kind
	err  error
}

func (e *Error) Error() string { return e.err.Error() }
func (e *Error) Unwrap() error { return e.err }
func (e *Error) Kind() Kind    { return e.kind }

// New creates a classified error from a message.
func New(kind Kind, msg string) error {
	return &Error{kind: kind, err: errors.New(msg)}
}

// Newf creates a classified error from a format string.
func Newf(kind Kind, format string, args ...any) error {
	return &Error{kind: kind, err: fmt.Errorf(format, args...)}
}

// Wrap classifies an existing error, preserving the chain for errors.Is/As.
// A nil error stays nil. Context cancellation and deadline expiry are always
// classified as unavailable, regardless of the requested kind.
func Wrap(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		kind = KindUnavailable
	}
	return &Error{kind: kind, err: fmt.Errorf("%s: %w", msg, err)}
}

// KindOf extracts the classification of an error. Unclassified errors are
// internal; context errors are unavailable.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae.kind
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindUnavailable
	}
	return KindInternal
}

// IsInvalidArgument reports whether err is classified as a caller mistake.
func IsInvalidArgument(err error) bool { return KindOf(err) == KindInvalidArgument }

// IsNotFound reports whether err is classified as a missing entity.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsUnavailable reports whether err is retryable.
func IsUnavailable(err error) bool { return KindOf(err) == KindUnavailable }
