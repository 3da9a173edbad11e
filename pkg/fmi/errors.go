package fmi

import (
	"errors"
	"fmt"
)

// Sentinel errors for the error classes callers branch on. Wrapped errors
// carry the detail; match with errors.Is.
var (
	// ErrInvalidQuery marks a request rejected before any transport call:
	// inverted time range, unsupported resolution, explicitly empty
	// parameter list.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrUnsupportedQuery marks a domain/mode pair with no stored query.
	ErrUnsupportedQuery = errors.New("unsupported query")

	// ErrEmptyResponse marks a well-formed zero-record response under
	// strict mode.
	ErrEmptyResponse = errors.New("empty response")

	// ErrMalformedResponse marks a response document that cannot be
	// decoded: broken XML, inconsistent tuple widths, declared-but-empty
	// separators, unparseable timestamps or values.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrInvalidPattern marks a catalog search pattern that is not a
	// valid regular expression.
	ErrInvalidPattern = errors.New("invalid pattern")
)

// TransportError reports a failed exchange with the service: a transport
// level failure (Err set) or a non-200 status (StatusCode set, Message
// holding the OWS exception text when the body carried one).
type TransportError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("transport error: %v", e.Err)
	case e.Message != "":
		return fmt.Sprintf("transport error: status %d: %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("transport error: status %d", e.StatusCode)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }
