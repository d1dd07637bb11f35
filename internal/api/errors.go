package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an API error so callers can branch on the condition
// rather than the status code.
type Kind string

const (
	KindNotFound        Kind = "not_found"       // missing dataset/release, carries the resource name
	KindUnauthenticated Kind = "unauthenticated" // bad or expired API key
	KindValidation      Kind = "validation"      // input rejected by remote policy
	KindNameTaken       Kind = "name_taken"      // dataset/release name collision
	KindRateLimited     Kind = "rate_limited"
	KindServer          Kind = "server"
	KindNetwork         Kind = "network"
)

// Error is a structured failure from the remote service.
type Error struct {
	StatusCode int
	Kind       Kind
	Message    string `json:"error"`
	// Resource identifies what the request was addressing, e.g. a
	// team/dataset slug. Populated by the operation wrappers so the
	// user never sees a bare status code.
	Resource string
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Resource != "" {
		return fmt.Sprintf("%s: %s (status %d)", e.Resource, msg, e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
}

// Retryable reports whether the request may be retried as-is.
// Authentication, validation and not-found conditions never are.
func (e *Error) Retryable() bool {
	return e.Kind == KindRateLimited || e.Kind == KindServer || e.Kind == KindNetwork
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindUnauthenticated
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindNameTaken
	case status == http.StatusUnprocessableEntity || status == http.StatusBadRequest:
		return KindValidation
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status >= 500:
		return KindServer
	default:
		return KindServer
	}
}

// IsNotFound reports whether err is a structured not-found from the service.
func IsNotFound(err error) bool { return hasKind(err, KindNotFound) }

// IsUnauthenticated reports whether err is a credential failure. These are
// fatal to the current operation and require re-authentication.
func IsUnauthenticated(err error) bool { return hasKind(err, KindUnauthenticated) }

// IsValidation reports whether err is an input rejected by remote policy.
func IsValidation(err error) bool { return hasKind(err, KindValidation) }

// IsNameTaken reports whether err is a name collision.
func IsNameTaken(err error) bool { return hasKind(err, KindNameTaken) }

func hasKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}
