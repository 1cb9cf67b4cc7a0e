package client

import (
	"context"
	"net"
)

// Connect opens a persistent bidirectional connection to the configured
// server. Exactly one outcome occurs: a live connection or the dialer's
// error. Timeouts and cancellation belong to the dialer and the context.
func (c *Client) Connect(ctx context.Context) (net.Conn, error) {
	c.log.Debug().Str("host", c.config.Host).Uint16("port", c.config.Port).Bool("tls", c.config.UseTLS).Msg("connect")
	return c.dialer.Dial(ctx, c.config.Host, c.config.Port, c.config.UseTLS)
}
