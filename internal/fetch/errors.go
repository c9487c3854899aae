package fetch

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	// KindTransport is a response that arrived with a status other than 200.
	KindTransport ErrorKind = iota
	// KindFatal is a request that never got a response (dns, tls, timeouts).
	KindFatal
	// KindDecode is a body that could not be decoded into the requested format.
	KindDecode
	// KindValidation is a call made without the arguments it needs.
	KindValidation
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindFatal:
		return "fatal"
	case KindDecode:
		return "decode"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error is the failure of a single call on a Session. Its text is what ends up in a cell.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Body       string
	Format     Format
	Message    string
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindTransport:
		return fmt.Sprintf("(%d) %s", e.StatusCode, e.Body)
	case KindFatal:
		if e.Err != nil {
			return e.Err.Error()
		}
		return e.Message
	case KindDecode:
		return fmt.Sprintf("No data was returned (%s)", e.Format)
	default:
		return e.Message
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrMissingParameters is returned by the convenience calls when no url was given.
var ErrMissingParameters = &Error{Kind: KindValidation, Message: "Missing parameters"}

// IsKind reports whether err is a fetch Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ferr *Error
	if !errors.As(err, &ferr) {
		return false
	}
	return ferr.Kind == kind
}
