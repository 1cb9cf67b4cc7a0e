package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/kbukum/apiclient/options"
	"github.com/kbukum/apiclient/transport"
)

// Client issues HTTP requests and JSON-RPC calls against one remote API
// server. The resolved connection configuration is immutable; the only
// mutable state is the JSON-RPC id counter.
type Client struct {
	config options.Config
	http   transport.HTTP
	dialer transport.Dialer
	log    zerolog.Logger
	callID atomic.Uint64
}

// Option configures a Client.
type Option func(*Client)

// WithTransport replaces the default HTTP transport.
func WithTransport(h transport.HTTP) Option {
	return func(c *Client) { c.http = h }
}

// WithDialer replaces the default connection dialer.
func WithDialer(d transport.Dialer) Option {
	return func(c *Client) { c.dialer = d }
}

// WithLogger sets the client logger. The default discards.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New resolves raw connection options and creates a client. Malformed
// options fail here with *options.ValidationError; nothing is retried.
func New(src options.Source, opts ...Option) (*Client, error) {
	cfg, err := options.Resolve(src)
	if err != nil {
		return nil, err
	}

	c := &Client{config: cfg, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = transport.NewAdapter(transport.Config{Logger: &c.log})
	}
	if c.dialer == nil {
		c.dialer = transport.NewNetDialer(transport.DialerConfig{Logger: &c.log})
	}
	return c, nil
}

// Config returns the resolved connection configuration.
func (c *Client) Config() options.Config {
	return c.config
}

// Get issues a GET request. Params are sent as query parameters.
func (c *Client) Get(ctx context.Context, endpoint string, params map[string]any) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodGet, endpoint, params)
}

// Post issues a POST request. Params are sent as a JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, params map[string]any) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodPost, endpoint, params)
}

// Put issues a PUT request. Params are sent as a JSON body.
func (c *Client) Put(ctx context.Context, endpoint string, params map[string]any) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodPut, endpoint, params)
}

// Delete issues a DELETE request. Params are sent as a JSON body.
func (c *Client) Delete(ctx context.Context, endpoint string, params map[string]any) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodDelete, endpoint, params)
}

// Request issues one HTTP request and normalizes the response. The auth
// token, when configured, is injected into params under "token"; the
// caller's map is never mutated. A 404 yields (nil, nil): not found is a
// normal outcome for lookup endpoints, not an error.
func (c *Client) Request(ctx context.Context, method, endpoint string, params map[string]any) (json.RawMessage, error) {
	if method == "" {
		return nil, fmt.Errorf("client: request method must not be empty")
	}

	merged := make(map[string]any, len(params)+1)
	for k, v := range params {
		merged[k] = v
	}
	if c.config.AuthToken != "" {
		merged["token"] = c.config.AuthToken
	}

	d := transport.Descriptor{
		Method:   method,
		UseTLS:   c.config.UseTLS,
		Host:     c.config.Host,
		Port:     c.config.Port,
		Path:     c.config.BasePath + endpoint,
		Username: c.config.Username,
		Password: c.config.Password,
		UsePool:  true,
	}
	if method == http.MethodGet {
		if len(merged) > 0 {
			d.Query = stringifyParams(merged)
		}
	} else {
		d.Body = merged
	}

	c.log.Debug().Str("method", method).Str("path", d.Path).Msg("request")

	resp, err := c.http.Do(ctx, d)
	if err != nil {
		return nil, err
	}
	return normalizeREST(resp)
}

// normalizeREST maps a transport response to a result, an absent value, or
// a typed error. The checks run in fixed priority order.
func normalizeREST(resp *transport.Response) (json.RawMessage, error) {
	switch resp.StatusCode {
	case http.StatusNotFound:
		return nil, nil
	case http.StatusUnauthorized:
		return nil, &AuthError{Message: "Unauthorized (bad API key)."}
	}

	if !resp.IsJSON() {
		return nil, &ProtocolError{Message: "Bad response (wrong content-type).", StatusCode: resp.StatusCode}
	}

	body := bytes.TrimSpace(resp.Body)
	if len(body) == 0 || bytes.Equal(body, jsonNull) || !json.Valid(body) {
		return nil, &ProtocolError{Message: "Bad response (no body).", StatusCode: resp.StatusCode}
	}

	if remote := remoteError(body); remote != nil {
		return nil, remote
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ProtocolError{
			Message:    fmt.Sprintf("Status code: %d.", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}
	return json.RawMessage(body), nil
}

var jsonNull = []byte("null")

// remoteError extracts a server-reported error from a JSON object body.
// Non-object bodies carry no error field and return nil.
func remoteError(body []byte) *RemoteError {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil
	}
	if len(envelope.Error) == 0 || bytes.Equal(envelope.Error, jsonNull) {
		return nil
	}

	var eb struct {
		Message string          `json:"message"`
		Type    json.RawMessage `json:"type"`
		Code    int64           `json:"code"`
	}
	if err := json.Unmarshal(envelope.Error, &eb); err != nil {
		// error field holds a bare value; stringify it as the message
		var msg string
		if json.Unmarshal(envelope.Error, &msg) != nil {
			msg = string(envelope.Error)
		}
		return &RemoteError{Message: msg}
	}
	return &RemoteError{Message: eb.Message, Type: stringifyType(eb.Type), Code: eb.Code}
}

// stringifyType renders an error's type field as a string whatever its
// JSON shape.
func stringifyType(raw json.RawMessage) string {
	if len(raw) == 0 || bytes.Equal(raw, jsonNull) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// stringifyParams renders query parameter values. Scalars use their plain
// form; composite values are JSON-encoded.
func stringifyParams(params map[string]any) map[string]string {
	out := make(map[string]string, len(params))
	for k, v := range params {
		switch val := v.(type) {
		case string:
			out[k] = val
		case nil:
			out[k] = ""
		case bool, int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			float32, float64, json.Number:
			out[k] = fmt.Sprint(val)
		default:
			if data, err := json.Marshal(val); err == nil {
				out[k] = string(data)
			} else {
				out[k] = fmt.Sprint(val)
			}
		}
	}
	return out
}
