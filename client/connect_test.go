package client

import (
	"context"
	"net"
	"testing"

	"github.com/kbukum/apiclient/options"
	"github.com/kbukum/apiclient/transport"
)

type fakeDialer struct {
	conn   net.Conn
	err    error
	host   string
	port   uint16
	useTLS bool
}

func (f *fakeDialer) Dial(_ context.Context, host string, port uint16, useTLS bool) (net.Conn, error) {
	f.host, f.port, f.useTLS = host, port, useTLS
	return f.conn, f.err
}

func TestConnect_UsesResolvedTarget(t *testing.T) {
	local, remote := net.Pipe()
	defer local.Close()
	defer remote.Close()

	fd := &fakeDialer{conn: local}
	c, err := New(options.Fields{SSL: true, Host: "api.example.com"}, WithDialer(fd))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	conn, err := c.Connect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conn != local {
		t.Error("expected the dialer's connection")
	}
	if fd.host != "api.example.com" || fd.port != 443 || !fd.useTLS {
		t.Errorf("dialed %s:%d tls=%v", fd.host, fd.port, fd.useTLS)
	}
}

func TestConnect_PropagatesError(t *testing.T) {
	fd := &fakeDialer{err: transport.NewConnectionError(net.ErrClosed)}
	c, err := New(options.Fields{}, WithDialer(fd))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = c.Connect(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !transport.IsConnection(err) {
		t.Errorf("expected connection error, got %v", err)
	}
}
