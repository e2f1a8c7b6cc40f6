package gateway

import (
	"errors"
	"net/http"
)

// Kind classifies why a gateway call failed.
type Kind int

const (
	KindTransport   Kind = iota + 1 // connection refused, DNS, timeout, broken body
	KindHTTP                        // server answered with a non-2xx status
	KindDecode                      // success status but the body is not JSON
	KindEncode                      // request body could not be serialized
	KindCanceled                    // caller's context was cancelled
	KindCircuitOpen                 // breaker is open; no call was made
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport_error"
	case KindHTTP:
		return "http_error"
	case KindDecode:
		return "decode_error"
	case KindEncode:
		return "encode_error"
	case KindCanceled:
		return "canceled"
	case KindCircuitOpen:
		return "circuit_open"
	default:
		return "unknown"
	}
}

// Error is the single failure type the gateway returns. Error() is only the
// message, so callers can surface it verbatim.
type Error struct {
	Kind    Kind
	Status  int // HTTP status for KindHTTP, zero otherwise
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// StatusOf returns the HTTP status carried by err, or zero.
func StatusOf(err error) int {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Status
	}
	return 0
}

// IsUnauthorized reports an expired or rejected token.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

// KindOf returns the failure kind of err, or zero for non-gateway errors.
func KindOf(err error) Kind {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Kind
	}
	return 0
}
