package transport

import (
	"context"
	"encoding/json"
	"mime"
	"net"
	"strings"
)

// Descriptor fully describes one outbound HTTP request. Exactly one of
// Query and Body is set: Query for GET requests, Body (JSON-encoded) for
// everything else.
type Descriptor struct {
	// Method is the HTTP method.
	Method string
	// UseTLS selects https.
	UseTLS bool
	// Host is the server hostname.
	Host string
	// Port is the server port.
	Port uint16
	// Path is the full request path.
	Path string
	// Username and Password are basic auth credentials. Both empty disables
	// basic auth.
	Username string
	Password string
	// Query holds URL query parameters (GET requests).
	Query map[string]string
	// Body is JSON-encoded into the request body (non-GET requests).
	Body any
	// UsePool hints that the underlying connection should be reused. It has
	// no effect on response semantics.
	UsePool bool
}

// Response is the transport's normalized view of one HTTP response.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// ContentType is the response media type, already stripped of
	// parameters (e.g. "application/json").
	ContentType string
	// Body is the raw response body.
	Body []byte
}

// IsJSON reports whether the response carries a JSON content type.
func (r *Response) IsJSON() bool {
	mt := r.ContentType
	if mt == "" {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// JSON decodes the response body into v.
func (r *Response) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

// classifyContentType strips media type parameters, tolerating malformed
// headers by falling back to the raw value.
func classifyContentType(header string) string {
	if header == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(header)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(header))
	}
	return mt
}

// HTTP executes one HTTP request. Implementations own connection pooling,
// timeouts, and cancellation; callers own status-code semantics.
type HTTP interface {
	Do(ctx context.Context, d Descriptor) (*Response, error)
}

// Dialer opens a persistent bidirectional connection to the server.
// Exactly one outcome occurs per call: a live connection or an error.
type Dialer interface {
	Dial(ctx context.Context, host string, port uint16, useTLS bool) (net.Conn, error)
}
