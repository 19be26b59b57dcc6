package dispatch

import "fmt"

// Kind categorizes a failed API call.
type Kind string

const (
	KindAuthentication      Kind = "authentication"
	KindPermission          Kind = "permission"
	KindQuotaExceeded       Kind = "quota_exceeded"
	KindRateLimited         Kind = "rate_limited"
	KindInvalidArgument     Kind = "invalid_argument"
	KindResourceUnavailable Kind = "resource_unavailable"
	KindServerError         Kind = "server_error"
	KindTransientNetwork    Kind = "transient_network"
	KindUnknown             Kind = "unknown"
)

// Retryable reports whether failures of this kind may be retried with
// backoff. Everything else surfaces immediately.
func (k Kind) Retryable() bool {
	switch k {
	case KindRateLimited, KindServerError, KindTransientNetwork:
		return true
	default:
		return false
	}
}

// Error is the typed failure surfaced by the dispatcher.
type Error struct {
	Kind       Kind
	Message    string
	Endpoint   string
	HTTPStatus int
	AppCode    int
	RequestID  string
}

func (e *Error) Error() string {
	if e.HTTPStatus > 0 {
		return fmt.Sprintf("%s: %s (%s, http %d, code %d)", e.Kind, e.Message, e.Endpoint, e.HTTPStatus, e.AppCode)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Endpoint)
}

// KindOf extracts the failure kind from an error returned by Execute.
func KindOf(err error) Kind {
	if derr, ok := err.(*Error); ok && derr != nil {
		return derr.Kind
	}
	return KindUnknown
}
