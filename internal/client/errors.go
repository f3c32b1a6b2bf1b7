package client

import (
	"fmt"
	"net/http"
)

// Reason classifies why a request failed.
type Reason string

// Failure reasons.
const (
	ReasonStatus    Reason = "status"
	ReasonTransport Reason = "transport"
	ReasonTimeout   Reason = "timeout"
	ReasonDecode    Reason = "decode"
)

// RequestError is returned for any request that did not succeed: a non-2xx
// response, a transport failure, a timeout or a malformed body.
type RequestError struct {
	Op     string
	Reason Reason
	Status int
	// Message is the server's "message" field, if the error body had one.
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("%s: %s (%d)", e.Op, e.Message, e.Status)
	case e.Reason == ReasonStatus:
		return fmt.Sprintf("%s: %d %s", e.Op, e.Status, http.StatusText(e.Status))
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Reason, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Reason)
	}
}

func (e *RequestError) Unwrap() error { return e.Err }

// Timeout reports whether the request exceeded its deadline.
func (e *RequestError) Timeout() bool { return e.Reason == ReasonTimeout }
