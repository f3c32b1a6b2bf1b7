package bridge

import (
	"context"
	"errors"

	"github.com/CSCI-GA-2820-SU24-001/inventory/internal/client"
)

// Status messages.
const (
	MsgSuccess = "Success"
	MsgDeleted = "Item has been deleted!"
	MsgNeedID  = "Please enter an ID"
	MsgNoItems = "No items found"
	MsgTimeout = "Request timed out"
)

// ValidationError is detected before any request is sent. The call is not
// made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// failureMessage picks the text shown for err. Validation messages and
// timeouts always win; server messages are shown only when surface is set.
func failureMessage(err error, fallback string, surface bool) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return MsgTimeout
	}
	var rerr *client.RequestError
	if errors.As(err, &rerr) {
		if rerr.Timeout() {
			return MsgTimeout
		}
		if surface && rerr.Message != "" {
			return rerr.Message
		}
	}
	return fallback
}
