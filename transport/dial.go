package transport

import (
	"context"
	"crypto/tls"
	"net"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

const defaultDialTimeout = 10 * time.Second

// DialerConfig configures the default dialer.
type DialerConfig struct {
	// Timeout bounds the dial (and TLS handshake). Defaults to 10s.
	Timeout time.Duration
	// TLS overrides the TLS client configuration. ServerName is filled in
	// from the dialed host when unset.
	TLS *tls.Config
	// Logger receives debug-level dial traces. Nil discards.
	Logger *zerolog.Logger
}

// NetDialer is the default Dialer over net and crypto/tls.
type NetDialer struct {
	config DialerConfig
	log    zerolog.Logger
}

// compile-time assertion
var _ Dialer = (*NetDialer)(nil)

// NewNetDialer creates the default dialer.
func NewNetDialer(cfg DialerConfig) *NetDialer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultDialTimeout
	}
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	return &NetDialer{config: cfg, log: log}
}

// Dial opens a TCP connection to host:port, upgrading to TLS when useTLS is
// set. Exactly one outcome occurs: a live connection or an error.
func (d *NetDialer) Dial(ctx context.Context, host string, port uint16, useTLS bool) (net.Conn, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(int(port)))

	ctx, cancel := context.WithTimeout(ctx, d.config.Timeout)
	defer cancel()

	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		if ctx.Err() != nil {
			return nil, NewTimeoutError(err)
		}
		return nil, NewConnectionError(err)
	}

	if !useTLS {
		d.log.Debug().Str("addr", addr).Msg("connection open")
		return conn, nil
	}

	tlsCfg := d.config.TLS
	if tlsCfg == nil {
		tlsCfg = &tls.Config{}
	} else {
		tlsCfg = tlsCfg.Clone()
	}
	if tlsCfg.ServerName == "" {
		tlsCfg.ServerName = host
	}

	tlsConn := tls.Client(conn, tlsCfg)
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		_ = conn.Close()
		if ctx.Err() != nil {
			return nil, NewTimeoutError(err)
		}
		return nil, NewConnectionError(err)
	}

	d.log.Debug().Str("addr", addr).Msg("tls connection open")
	return tlsConn, nil
}
