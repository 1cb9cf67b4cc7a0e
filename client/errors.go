package client

import (
	"errors"
	"fmt"
)

// AuthError reports an HTTP 401 on a plain request.
type AuthError struct {
	// Message describes the failure.
	Message string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return "client: " + e.Message
}

// ProtocolError reports a response that arrived but not in the expected
// shape: wrong content type, missing body, or an unexpected status.
type ProtocolError struct {
	// Message describes the failure.
	Message string
	// StatusCode is the HTTP status, when relevant.
	StatusCode int
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	return "client: " + e.Message
}

// RemoteError is a server-reported application-level error embedded in a
// REST response body's error field.
type RemoteError struct {
	// Message is the server's error message.
	Message string
	// Type is the server's error type, stringified.
	Type string
	// Code is the server's numeric error code.
	Code int64
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("client: remote error %s: %s (code %d)", e.Type, e.Message, e.Code)
	}
	return fmt.Sprintf("client: remote error: %s (code %d)", e.Message, e.Code)
}

// IsAuth checks if an error is an authentication error.
func IsAuth(err error) bool {
	var e *AuthError
	return errors.As(err, &e)
}

// IsProtocol checks if an error is a protocol error.
func IsProtocol(err error) bool {
	var e *ProtocolError
	return errors.As(err, &e)
}

// IsRemote checks if an error is a server-reported error.
func IsRemote(err error) bool {
	var e *RemoteError
	return errors.As(err, &e)
}

// AsRemote extracts a RemoteError from an error chain.
func AsRemote(err error) (*RemoteError, bool) {
	var e *RemoteError
	ok := errors.As(err, &e)
	return e, ok
}
