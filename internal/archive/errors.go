package archive

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed archive request so callers can render a
// useful failure indicator instead of a generic one.
type ErrorKind int

const (
	// KindNetwork covers transport failures: DNS, refused connections,
	// timeouts, cancelled contexts.
	KindNetwork ErrorKind = iota
	// KindStatus covers non-2xx responses from the archive.
	KindStatus
	// KindDecode covers responses whose body could not be decoded.
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// RequestError reports a failed archive request. Every error returned by
// Client methods is one of these; nothing is swallowed.
type RequestError struct {
	Kind   ErrorKind
	URL    string
	Status int    // HTTP status code, set when Kind == KindStatus
	Detail string // server-provided detail, when available
	Err    error
}

func (e *RequestError) Error() string {
	switch e.Kind {
	case KindStatus:
		if e.Detail != "" {
			return fmt.Sprintf("archive returned %d for %s: %s", e.Status, e.URL, e.Detail)
		}
		return fmt.Sprintf("archive returned %d for %s", e.Status, e.URL)
	case KindDecode:
		return fmt.Sprintf("decoding response from %s: %v", e.URL, e.Err)
	default:
		return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// AsRequestError unwraps err to a *RequestError, if it is one.
func AsRequestError(err error) (*RequestError, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is a 404 from the archive.
func IsNotFound(err error) bool {
	reqErr, ok := AsRequestError(err)
	return ok && reqErr.Kind == KindStatus && reqErr.Status == 404
}
