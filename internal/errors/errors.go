// Package errors defines the closed error taxonomy shared by every storage
// backend, its mapping to HTTP status codes, and the msgpack payload returned
// at the system boundary.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind is the tag of one variant in the closed taxonomy. The set is stable:
// new backends may add infra kinds, but KindUnknown always remains as the
// catch-all for forward compatibility.
type Kind string

const (
	// KindInvalidEmail indicates a syntactically invalid email address (HTTP 400).
	KindInvalidEmail Kind = "invalid_email"
	// KindFormValidation aggregates field validation failures (HTTP 400).
	KindFormValidation Kind = "form_validation"
	// KindUnauthorized indicates a failed credential check (HTTP 401).
	KindUnauthorized Kind = "unauthorized"
	// KindUnauthenticated indicates a missing or invalid session (HTTP 401).
	KindUnauthenticated Kind = "unauthenticated"
	// KindNotFound indicates a missing user or email (HTTP 404).
	KindNotFound Kind = "not_found"
	// KindConflict indicates a duplicate email (HTTP 409).
	KindConflict Kind = "conflict"
	// KindStorage wraps any lower-level driver or I/O fault (HTTP 500).
	KindStorage Kind = "storage"
	// KindSerialization wraps encode/decode failures (HTTP 500).
	KindSerialization Kind = "serialization"
	// KindCrypto wraps credential-hash parsing failures (HTTP 500).
	KindCrypto Kind = "crypto"
	// KindConversion indicates a failed type conversion while scanning (HTTP 500).
	KindConversion Kind = "conversion"
	// KindLockCorrupted indicates the serialized decorator's connection was
	// left in an unknown state by a prior holder (HTTP 500).
	KindLockCorrupted Kind = "lock_corrupted"
	// KindUnknown is the catch-all for unclassified faults (HTTP 500).
	KindUnknown Kind = "unknown"
)

// Canonical user-facing messages for the domain kinds. Adapters and handlers
// raise these verbatim so every backend reports identical wording.
const (
	MsgInvalidEmail   = "That is not a valid email address."
	MsgEmailExists    = "That email address already exists. Try logging in."
	MsgUserNotFound   = "Could not find any user that fits the specified requirements."
	MsgBadCredentials = "Incorrect email or password"
)

// MsgEmailNotRegistered renders the login failure for an unknown email.
func MsgEmailNotRegistered(email string) string {
	return fmt.Sprintf("The email %q is not registered. Try signing up first.", email)
}

// Error is one tagged variant of the taxonomy. Immutable once constructed.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
	// Codes holds the field error codes of a form validation failure,
	// concatenated verbatim into the user-facing message.
	Codes []string
}

// Error implements the error interface with full internal detail.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus maps the kind to its protocol status code. The mapping is exact
// and stable; tests pin it.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindInvalidEmail, KindFormValidation:
		return http.StatusBadRequest
	case KindUnauthorized, KindUnauthenticated:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage renders the message shown to end users. Domain kinds expose
// their exact message, form validation concatenates its field codes, and all
// infra kinds collapse to the literal "undefined" unless debug is on.
func (e *Error) UserMessage(debug bool) string {
	switch e.Kind {
	case KindInvalidEmail, KindConflict, KindUnauthorized, KindNotFound:
		return e.Message
	case KindFormValidation:
		return strings.Join(e.Codes, "")
	default:
		if debug {
			return e.Error()
		}
		return "undefined"
	}
}

// InvalidEmail creates an invalid-email error with an exact user message.
func InvalidEmail(message string) *Error {
	return &Error{Kind: KindInvalidEmail, Message: message}
}

// FormValidation creates a validation error from explicit field codes.
func FormValidation(codes ...string) *Error {
	return &Error{Kind: KindFormValidation, Message: "form validation failed", Codes: codes}
}

// FromValidation converts a validator result into a form validation error,
// collecting the failed tag of every field error as its code.
func FromValidation(err error) *Error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &Error{Kind: KindFormValidation, Message: "form validation failed", Cause: err}
	}

	codes := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		codes = append(codes, fe.Tag())
	}
	return &Error{Kind: KindFormValidation, Message: "form validation failed", Cause: err, Codes: codes}
}

// Unauthorized creates a failed-credentials error (HTTP 401).
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Unauthenticated creates a missing-session error (HTTP 401).
func Unauthenticated() *Error {
	return &Error{Kind: KindUnauthenticated, Message: "client is not authenticated"}
}

// NotFound creates a missing-record error (HTTP 404).
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict creates a duplicate-record error (HTTP 409).
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Storage wraps a driver or I/O fault. The cause is preserved for diagnostics
// but never shown to end users outside debug mode.
func Storage(cause error) *Error {
	return &Error{Kind: KindStorage, Message: "storage backend error", Cause: cause}
}

// Serialization wraps an encode/decode failure.
func Serialization(cause error) *Error {
	return &Error{Kind: KindSerialization, Message: "serialization error", Cause: cause}
}

// Crypto wraps a credential-hash parsing failure.
func Crypto(cause error) *Error {
	return &Error{Kind: KindCrypto, Message: "crypto error", Cause: cause}
}

// Conversion creates a type conversion error.
func Conversion(message string) *Error {
	return &Error{Kind: KindConversion, Message: message}
}

// LockCorrupted signals that the exclusive lock's protected connection is in
// an unknown state after a prior holder failed mid-operation.
func LockCorrupted() *Error {
	return &Error{Kind: KindLockCorrupted, Message: "connection lock corrupted by a failed operation"}
}

// As converts any error into a taxonomy Error. Taxonomy values pass through
// unchanged, anything else becomes KindUnknown.
func As(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindUnknown, Message: "unclassified error", Cause: err}
}

// IsKind reports whether err is (or wraps) a taxonomy Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
