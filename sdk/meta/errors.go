package meta

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// ErrorReason is a single entry from the "errors" list of an API error
// envelope.
type ErrorReason struct {
	Domain  string `json:"domain,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrAPI represents any non-success response from the API. The more specific
// error types in this package embed it, so every error originating from an
// HTTP response carries at least a code and a message.
type ErrAPI struct {
	// Code is the HTTP status code of the response.
	Code int `json:"code"`
	// Message is the server-provided message. If the server didn't provide
	// one, this is the standard text for Code.
	Message string `json:"message"`
	// Errors holds any additional detail the server provided.
	Errors []ErrorReason `json:"errors,omitempty"`
}

// NewErrAPI returns an ErrAPI for the given status code and message. An empty
// message is replaced with the standard text for the status code.
func NewErrAPI(code int, message string) ErrAPI {
	if message == "" {
		message = http.StatusText(code)
	}
	return ErrAPI{
		Code:    code,
		Message: message,
	}
}

func (e *ErrAPI) Error() string {
	return fmt.Sprintf("received %d from API server: %s", e.Code, e.Message)
}

// StatusCode returns the HTTP status code of the response this error was
// derived from.
func (e *ErrAPI) StatusCode() int {
	return e.Code
}

// ErrAuthentication represents an error wherein the API server was unable to
// authenticate the request or the client was unable to obtain credentials.
type ErrAuthentication struct {
	ErrAPI
	Reason string `json:"reason,omitempty"`
}

func (e *ErrAuthentication) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = e.Message
	}
	return fmt.Sprintf("Could not authenticate the request: %s", reason)
}

// ErrAuthorization represents an error wherein the request was authenticated
// but the principal is not permitted to perform the operation.
type ErrAuthorization struct {
	ErrAPI
}

func (e *ErrAuthorization) Error() string {
	if e.Message == "" {
		return "The request is not authorized."
	}
	return fmt.Sprintf("The request is not authorized: %s", e.Message)
}

// ErrBadRequest represents an error wherein the API server rejected a
// malformed request.
type ErrBadRequest struct {
	ErrAPI
	Details []string `json:"details,omitempty"`
}

func (e *ErrBadRequest) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("Bad request: %s", e.Message)
	}
	msg := fmt.Sprintf("Bad request: %s:", e.Message)
	for i, detail := range e.Details {
		msg = fmt.Sprintf("%s\n  %d. %s", msg, i, detail)
	}
	return msg
}

// ErrNotFound represents an error wherein the requested resource does not
// exist.
type ErrNotFound struct {
	ErrAPI
	Type string `json:"type,omitempty"`
	ID   string `json:"id,omitempty"`
}

func (e *ErrNotFound) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("Resource not found: %s", e.Message)
	}
	return fmt.Sprintf("%s %q not found.", e.Type, e.ID)
}

// ErrConflict represents an error wherein the request conflicts with the
// current state of the resource.
type ErrConflict struct {
	ErrAPI
}

func (e *ErrConflict) Error() string {
	return fmt.Sprintf("Conflict: %s", e.Message)
}

// ErrInternalServer represents a failure on the API server's side.
type ErrInternalServer struct {
	ErrAPI
}

func (e *ErrInternalServer) Error() string {
	if e.Message == "" {
		return "An internal server error occurred."
	}
	return fmt.Sprintf("An internal server error occurred: %s", e.Message)
}

// ErrNotSupported represents an error wherein an operation was invoked on a
// resource that doesn't support it. No request is made in this case.
type ErrNotSupported struct {
	Details string `json:"reason"`
}

func (e *ErrNotSupported) Error() string {
	return e.Details
}

// ErrTransport represents a failure to exchange a request and response with
// the API server at all; e.g. DNS, connection, or TLS failures.
type ErrTransport struct {
	Err error
}

func (e *ErrTransport) Error() string {
	return fmt.Sprintf("error invoking API: %s", e.Err)
}

func (e *ErrTransport) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code associated with err, looking past
// any wrapping. It returns 0 if err did not originate from an API response.
func StatusCode(err error) int {
	if coded, ok := errors.Cause(err).(interface{ StatusCode() int }); ok {
		return coded.StatusCode()
	}
	return 0
}
