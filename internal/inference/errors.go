package inference

import (
	"errors"
	"fmt"
)

// Kind classifies a request failure so callers can render a meaningful
// message and the client can decide whether a retry is worthwhile.
type Kind string

const (
	KindMissingCredential Kind = "missing_credential"
	KindInvalidURL        Kind = "invalid_url"
	KindNetwork           Kind = "network"
	KindHTTP              Kind = "http"
	KindEmptyResponse     Kind = "empty_response"
	KindInvalidJSON       Kind = "invalid_json"
	// KindSchemaMismatch is the invalid-JSON variant raised when the payload
	// parses but lacks required fields or holds out-of-range values.
	KindSchemaMismatch Kind = "schema_mismatch"
)

// Error is the typed failure surfaced by the inference client.
type Error struct {
	Kind       Kind
	StatusCode int
	Detail     string
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindHTTP && e.Detail != "":
		return fmt.Sprintf("%s error %d: %s", e.Kind, e.StatusCode, e.Detail)
	case e.Kind == KindHTTP:
		return fmt.Sprintf("%s error %d", e.Kind, e.StatusCode)
	case e.Err != nil && e.Detail != "":
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Detail, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s error: %s", e.Kind, e.Detail)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an inference Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var infErr *Error
	if !errors.As(err, &infErr) {
		return false
	}
	return infErr.Kind == kind
}

// ErrorKind returns the kind of err, or an empty Kind for foreign errors.
func ErrorKind(err error) Kind {
	var infErr *Error
	if !errors.As(err, &infErr) {
		return ""
	}
	return infErr.Kind
}
