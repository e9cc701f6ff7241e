package models

import (
	"errors"
	"fmt"
)

// Kind classifies an operation failure so callers can react without parsing
// messages. Every error leaving a service carries exactly one kind.
type Kind string

const (
	KindConflict           Kind = "conflict"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindNotApproved        Kind = "not_approved"
	KindUnauthenticated    Kind = "unauthenticated"
	KindForbidden          Kind = "forbidden"
	KindNotFound           Kind = "not_found"
	KindInvalidInput       Kind = "invalid_input"
	KindInvalidFile        Kind = "invalid_file"
	KindAlreadyApproved    Kind = "already_approved"
	KindInvalidState       Kind = "invalid_state"
	KindLastSuperAdmin     Kind = "last_super_admin"
	KindSelfDeletion       Kind = "self_deletion"
	KindUploadFailed       Kind = "upload_failed"
	KindInternal           Kind = "internal"
)

// Error is the service-level error type. Message is safe to return to
// callers; Err holds the underlying cause for logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// E builds a caller-visible error with no underlying cause.
func E(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Internal wraps an unexpected collaborator failure. The message shown to
// callers stays generic; the cause is preserved for logging.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
