// Package transport defines the I/O collaborators the client depends on and
// provides default implementations for both.
//
// The HTTP interface executes one fully-described request (Descriptor) and
// returns the server's normalized view of the response. The Dialer interface
// opens a persistent bidirectional connection. Both are plain interfaces so
// tests and alternative transports can be swapped in without touching the
// client.
//
// Adapter is the default HTTP implementation over net/http, with request-id
// stamping, client tracing spans, debug logging, and optional retry of
// connection-level failures. NetDialer is the default Dialer over net and
// crypto/tls.
package transport
