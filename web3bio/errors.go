package web3bio

import (
	"context"
	"errors"
	"fmt"
)

// Error messages reported by the API.
const (
	MsgNotFound        = "Not Found"
	MsgInvalidResolver = "Invalid Resolver Address"
	MsgInvalidResolved = "Invalid Resolved Address"
	MsgNotExist        = "Does Not Exist"
	MsgInvalidIdentity = "Invalid Identity or Domain"
	MsgInvalidAddress  = "Invalid Address"
	MsgUnknownError    = "Unknown Error Occurred"
	MsgNetworkError    = "Network Error"
)

// Common errors that can be checked with errors.Is.
var (
	// ErrInvalidIdentity is returned before any network call when a
	// platform-qualified identity cannot be normalized.
	ErrInvalidIdentity = errors.New(MsgInvalidIdentity)

	ErrNotFound        = errors.New(MsgNotFound)
	ErrNotExist        = errors.New(MsgNotExist)
	ErrInvalidResolver = errors.New(MsgInvalidResolver)
	ErrInvalidResolved = errors.New(MsgInvalidResolved)
	ErrInvalidAddress  = errors.New(MsgInvalidAddress)
	ErrUnknown         = errors.New(MsgUnknownError)
)

var apiSentinels = map[string]error{
	MsgNotFound:        ErrNotFound,
	MsgNotExist:        ErrNotExist,
	MsgInvalidResolver: ErrInvalidResolver,
	MsgInvalidResolved: ErrInvalidResolved,
	MsgInvalidIdentity: ErrInvalidIdentity,
	MsgInvalidAddress:  ErrInvalidAddress,
	MsgUnknownError:    ErrUnknown,
}

// HTTPError is a non-2xx response.
type HTTPError struct {
	Status int
	// Body is the raw response body, kept for diagnostics.
	Body string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("API error: %d", e.Status)
}

// APIError is a 2xx response whose body carries an error field.
// Message is the server's text verbatim.
type APIError struct {
	Endpoint string
	Message  string
}

func (e *APIError) Error() string {
	return e.Message
}

// Is maps well-known server messages onto the sentinel errors.
func (e *APIError) Is(target error) bool {
	sentinel, ok := apiSentinels[e.Message]
	return ok && sentinel == target
}

// IsCanceled reports whether err is a caller-initiated cancellation.
// Cancellations are expected teardown and never surface as query errors.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
