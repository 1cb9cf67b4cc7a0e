package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTimeout = 30 * time.Second

// Config configures the default HTTP adapter.
type Config struct {
	// Timeout is the per-request timeout. Defaults to 30s.
	Timeout time.Duration
	// MaxRetries is the number of additional attempts for connection-level
	// failures. Zero disables retry. Responses are never retried, whatever
	// their status.
	MaxRetries uint
	// TLS overrides TLS settings for the underlying transport.
	TLS *tls.Config
	// Logger receives debug-level request/response traces. Nil discards.
	Logger *zerolog.Logger
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Adapter is the default HTTP transport over net/http.
type Adapter struct {
	httpClient *http.Client
	config     Config
	log        zerolog.Logger
	tracer     trace.Tracer
}

// compile-time assertion
var _ HTTP = (*Adapter)(nil)

// NewAdapter creates the default HTTP adapter.
func NewAdapter(cfg Config) *Adapter {
	cfg.ApplyDefaults()

	t := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.TLS != nil {
		t.TLSClientConfig = cfg.TLS
	}

	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}

	return &Adapter{
		httpClient: &http.Client{Transport: t, Timeout: cfg.Timeout},
		config:     cfg,
		log:        log,
		tracer:     otel.Tracer("github.com/kbukum/apiclient/transport"),
	}
}

// Do executes an HTTP request described by d and returns the complete
// response, retrying connection-level failures when configured.
func (a *Adapter) Do(ctx context.Context, d Descriptor) (*Response, error) {
	if a.config.MaxRetries == 0 {
		return a.doOnce(ctx, d)
	}

	operation := func() (*Response, error) {
		resp, err := a.doOnce(ctx, d)
		if err != nil && !IsConnection(err) {
			return nil, backoff.Permanent(err)
		}
		return resp, err
	}
	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(a.config.MaxRetries+1),
	)
}

// doOnce builds and sends a single HTTP request.
func (a *Adapter) doOnce(ctx context.Context, d Descriptor) (*Response, error) {
	ctx, span := a.tracer.Start(ctx, d.Method+" "+d.Path, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.request.method", d.Method),
		attribute.String("server.address", d.Host),
		attribute.Int("server.port", int(d.Port)),
		attribute.String("url.path", d.Path),
	)

	req, err := a.buildRequest(ctx, d)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	a.log.Debug().
		Str("method", d.Method).
		Str("url", req.URL.String()).
		Str("request_id", reqID).
		Msg("sending request")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		if ctx.Err() != nil {
			return nil, NewTimeoutError(err)
		}
		return nil, NewConnectionError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, NewConnectionError(fmt.Errorf("read response body: %w", err))
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	a.log.Debug().
		Int("status", resp.StatusCode).
		Str("request_id", reqID).
		Int("body_bytes", len(body)).
		Msg("received response")

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: classifyContentType(resp.Header.Get("Content-Type")),
		Body:        body,
	}, nil
}

// buildRequest constructs an *http.Request from a Descriptor.
func (a *Adapter) buildRequest(ctx context.Context, d Descriptor) (*http.Request, error) {
	scheme := "http"
	if d.UseTLS {
		scheme = "https"
	}
	u := url.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(int(d.Port))),
		Path:   d.Path,
	}

	var body io.Reader
	if d.Body != nil {
		data, err := json.Marshal(d.Body)
		if err != nil {
			return nil, fmt.Errorf("transport: encode body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, d.Method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("transport: create request: %w", err)
	}

	if len(d.Query) > 0 {
		q := req.URL.Query()
		for k, v := range d.Query {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}

	if d.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if d.Username != "" || d.Password != "" {
		req.SetBasicAuth(d.Username, d.Password)
	}

	req.Close = !d.UsePool
	return req, nil
}
