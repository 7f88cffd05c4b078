package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the layers above can react without parsing
// backend error text.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindSchemaMismatch
	KindStoreUnavailable
	KindCollaboratorFailure
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION"
	case KindSchemaMismatch:
		return "SCHEMA_MISMATCH"
	case KindStoreUnavailable:
		return "STORE_UNAVAILABLE"
	case KindCollaboratorFailure:
		return "COLLABORATOR_FAILURE"
	default:
		return "UNKNOWN"
	}
}

// Error carries a user-safe message plus the wrapped cause. The cause never
// reaches HTTP responses; it is for logs only.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func SchemaMismatch(message string, cause error) *Error {
	return &Error{Kind: KindSchemaMismatch, Message: message, Cause: cause}
}

func StoreUnavailable(message string, cause error) *Error {
	return &Error{Kind: KindStoreUnavailable, Message: message, Cause: cause}
}

func CollaboratorFailure(message string, cause error) *Error {
	return &Error{Kind: KindCollaboratorFailure, Message: message, Cause: cause}
}

// KindOf extracts the classification from an error chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

func IsSchemaMismatch(err error) bool {
	return KindOf(err) == KindSchemaMismatch
}

func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

func IsStoreUnavailable(err error) bool {
	return KindOf(err) == KindStoreUnavailable
}

func IsCollaboratorFailure(err error) bool {
	return KindOf(err) == KindCollaboratorFailure
}
