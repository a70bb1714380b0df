package relay

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// ErrorKind categorizes relay failures for HTTP status mapping and
// user-facing messages.
type ErrorKind string

const (
	// KindValidation marks bad or missing submission input (HTTP 400)
	KindValidation ErrorKind = "validation"
	// KindAuthorization marks a shared-secret mismatch (HTTP 401)
	KindAuthorization ErrorKind = "authorization"
	// KindConfiguration marks an unusable transport configuration,
	// including a failed OAuth2 token exchange (HTTP 500)
	KindConfiguration ErrorKind = "configuration"
	// KindMethodNotAllowed marks a request with the wrong HTTP method (405)
	KindMethodNotAllowed ErrorKind = "method_not_allowed"

	// Provider failure subkinds, classified heuristically from the
	// provider's error response (all HTTP 500)
	KindAuthenticationFailure ErrorKind = "authentication_failure"
	KindDomainNotFound        ErrorKind = "domain_not_found"
	KindNetwork               ErrorKind = "network"
	KindUnknown               ErrorKind = "unknown"
)

// HTTPStatus returns the response status code for the kind
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return 400
	case KindAuthorization:
		return 401
	case KindMethodNotAllowed:
		return 405
	default:
		return 500
	}
}

// UserMessage returns the generic user-facing message for the kind.
// Raw provider detail is only exposed outside production.
func (k ErrorKind) UserMessage() string {
	switch k {
	case KindAuthenticationFailure:
		return "Email service authentication failed."
	case KindDomainNotFound:
		return "Email service configuration error."
	case KindNetwork:
		return "Network error. Please check your connection."
	case KindConfiguration:
		return "Email service is not properly configured. Please try again later."
	default:
		return "Failed to send email. Please try again later."
	}
}

// Error is a relay failure with a kind attached. The wrapped error, when
// present, carries provider detail that must not reach production callers.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a relay error with the given kind and message
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError creates a relay error wrapping an underlying cause
func WrapError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the ErrorKind from err, classifying unrecognized errors
// as a provider failure.
func KindOf(err error) ErrorKind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return ClassifyProvider(0, err.Error())
}

// ClassifyProvider maps a provider error status and message onto a failure
// subkind. Matching is best-effort substring and status inspection, mirroring
// how provider SDK error strings have historically been interpreted.
func ClassifyProvider(status int, message string) ErrorKind {
	switch status {
	case 401, 403:
		return KindAuthenticationFailure
	case 404:
		return KindDomainNotFound
	}
	switch {
	case strings.Contains(message, "Forbidden"), strings.Contains(message, "Unauthorized"):
		return KindAuthenticationFailure
	case strings.Contains(message, "Domain not found"):
		return KindDomainNotFound
	case strings.Contains(message, "Network"):
		return KindNetwork
	default:
		return KindUnknown
	}
}

// ClassifySendError wraps a transport send error with a provider failure
// kind. Relay errors that already carry a kind pass through unchanged;
// network-level errors are recognized by type.
func ClassifySendError(err error) *Error {
	var re *Error
	if errors.As(err, &re) {
		return re
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return WrapError(KindNetwork, "provider unreachable", err)
	}
	return WrapError(ClassifyProvider(0, err.Error()), "provider send failed", err)
}
