// Package rpc holds the JSON-RPC wire envelope used by the client's Call
// path: a {method, params, id} request and a {result}/{error} response.
package rpc

import (
	"encoding/json"
	"fmt"
)

// Request is the JSON-RPC request envelope. Params is serialized even when
// nil, so the server always sees an explicit params member.
type Request struct {
	Method string `json:"method"`
	Params any    `json:"params"`
	ID     uint64 `json:"id"`
}

// Response is the JSON-RPC response envelope. Exactly one of Result and
// Error is meaningful.
type Response struct {
	Result json.RawMessage `json:"result"`
	Error  *Error          `json:"error"`
}

// Error is a JSON-RPC error, either server-reported or locally synthesized.
// Code holds the unsigned 32-bit representation of the wire code, so the
// conventional negative JSON-RPC codes wrap (-1 becomes 4294967295).
type Error struct {
	Code    uint32
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("rpc: %s (code %d)", e.Message, e.Code)
}

// NewError creates an Error from a signed wire code.
func NewError(code int64, message string) *Error {
	return &Error{Code: uint32(code), Message: message}
}

// MarshalJSON writes the signed wire representation of the code.
func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Code    int32  `json:"code"`
		Message string `json:"message"`
	}{Code: int32(e.Code), Message: e.Message})
}

// UnmarshalJSON accepts signed wire codes and stores their unsigned 32-bit
// representation.
func (e *Error) UnmarshalJSON(data []byte) error {
	var wire struct {
		Code    int64  `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	e.Code = uint32(wire.Code)
	e.Message = wire.Message
	return nil
}
