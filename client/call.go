package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kbukum/apiclient/rpc"
	"github.com/kbukum/apiclient/transport"
)

// Call issues a JSON-RPC call: a {method, params, id} envelope POSTed to
// endpoint. Ids come from a per-client atomic counter starting at 1, so
// concurrent calls observe strictly increasing, never-repeated ids. The
// call always authenticates with the configured basic auth credentials and
// never injects the query token.
//
// The returned raw message is the envelope's result member and may be any
// JSON value, including null.
func (c *Client) Call(ctx context.Context, endpoint, method string, params any) (json.RawMessage, error) {
	if method == "" {
		return nil, fmt.Errorf("client: call method must not be empty")
	}

	id := c.callID.Add(1)
	d := transport.Descriptor{
		Method:   http.MethodPost,
		UseTLS:   c.config.UseTLS,
		Host:     c.config.Host,
		Port:     c.config.Port,
		Path:     c.config.BasePath + endpoint,
		Username: c.config.Username,
		Password: c.config.Password,
		Body:     rpc.Request{Method: method, Params: params, ID: id},
		UsePool:  true,
	}

	c.log.Debug().Str("rpc_method", method).Uint64("rpc_id", id).Str("path", d.Path).Msg("rpc call")

	resp, err := c.http.Do(ctx, d)
	if err != nil {
		return nil, err
	}
	return normalizeRPC(resp)
}

// normalizeRPC maps a transport response to a JSON-RPC result or a typed
// error. The checks run in fixed priority order.
func normalizeRPC(resp *transport.Response) (json.RawMessage, error) {
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, rpc.NewError(-1, "Unauthorized (bad API key).")
	}

	if !resp.IsJSON() {
		return nil, &ProtocolError{Message: "Bad response (wrong content-type).", StatusCode: resp.StatusCode}
	}

	body := bytes.TrimSpace(resp.Body)
	if len(body) == 0 || bytes.Equal(body, jsonNull) {
		return nil, &ProtocolError{Message: "No body for JSON-RPC response.", StatusCode: resp.StatusCode}
	}

	var envelope rpc.Response
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &ProtocolError{Message: "No body for JSON-RPC response.", StatusCode: resp.StatusCode}
	}

	if envelope.Error != nil {
		return nil, envelope.Error
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ProtocolError{
			Message:    fmt.Sprintf("Status code: %d.", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}
	return envelope.Result, nil
}
