// Package transport implements a unified byte-stream abstraction: the same
// read/write/flush/close contract whether the underlying connection is
// plain TCP or TLS-wrapped TCP. Callers never branch on which one they
// have — Connect picks net.Dial or tls.Dial based on whether a server name
// is configured, and hands back the same Stream interface either way.
package transport

import (
	"context"
	"crypto/tls"
	"net"
	"strings"
	"time"

	"github.com/kestrelgraph/boltcore/codec"
	"github.com/kestrelgraph/boltcore/internal/log"
	"github.com/kestrelgraph/boltcore/observability"
)

// Stream is the unified byte-stream contract: reads and writes block only
// on network I/O, and shutdown propagates a clean close (TLS close-notify,
// when applicable). The codec and structure layers above this package only
// ever see a Stream — they are agnostic to whether bytes are moving over
// plain TCP or TLS.
type Stream interface {
	// Read reads into p, per io.Reader.
	Read(p []byte) (int, error)
	// Write writes p, per io.Writer.
	Write(p []byte) (int, error)
	// Flush has no effect beyond what the underlying net.Conn already
	// guarantees: this abstraction adds no buffering semantics of its own.
	// It's exposed for symmetry with Read/Write/Close and to let a future
	// buffered implementation hook in without changing the interface.
	Flush() error
	// Close shuts the stream down cleanly. For a TLS stream this sends a
	// close-notify alert before closing the underlying TCP connection.
	Close() error
	// SetDeadline sets a read/write deadline on the underlying connection,
	// used by Handshake.
	SetDeadline(t time.Time) error

	// LocalAddr and RemoteAddr expose the underlying net.Conn's addresses.
	LocalAddr() net.Addr
	RemoteAddr() net.Addr
}

// streamConn wraps any net.Conn (plain *net.TCPConn or *tls.Conn both
// satisfy it) to implement Stream. Flush is a no-op since net.Conn has no
// buffering of its own to flush.
type streamConn struct {
	net.Conn
}

func (s streamConn) Flush() error { return nil }

// Options configures Connect.
type Options struct {
	// ServerName selects TLS when non-empty: dial TCP, then perform a TLS
	// handshake verifying the peer certificate against the named server and
	// the system/bundled trust roots. If empty, Connect returns a plain TCP
	// stream.
	ServerName string
	// TLS carries certificate/trust-store configuration; if nil and
	// ServerName is set, DefaultTLSConfig() is used.
	TLS *TLSConfig
	// DialTimeout bounds the initial TCP dial and, for TLS, the handshake
	// as well. Zero means no timeout beyond the context passed to Connect.
	DialTimeout time.Duration
	// Logger receives connect/handshake events: Debug lines, plus a Warn
	// line when the TLS handshake fails. Defaults to a no-op logger: silent
	// unless a caller opts in.
	Logger log.Logger
}

// Connect opens a plain TCP connection when opts.ServerName is empty, or a
// TCP connection immediately upgraded to TLS (verifying against
// opts.ServerName) otherwise. Errors are Io for dial failures,
// TlsHandshake for handshake failures, and InvalidServerName when
// opts.ServerName contains whitespace.
func Connect(ctx context.Context, addr string, opts Options) (Stream, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.NoOp{}
	}

	dialer := &net.Dialer{Timeout: opts.DialTimeout}

	if opts.ServerName == "" {
		logger.Debug("dialing plain TCP", "address", addr)
		ctx, span := observability.StartSpan(ctx, "bolt.transport.connect")
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		observability.EndSpan(span, err)
		if err != nil {
			return nil, codec.Wrap(codec.Io, "dial tcp "+addr, err)
		}
		return streamConn{conn}, nil
	}

	if strings.ContainsAny(opts.ServerName, " \t\n\r") {
		return nil, codec.Newf(codec.InvalidServerName, "server name %q contains whitespace", opts.ServerName)
	}

	tlsCfg := opts.TLS
	if tlsCfg == nil {
		tlsCfg = DefaultTLSConfig()
	}

	logger.Debug("dialing TLS", "address", addr, "server_name", opts.ServerName)
	ctx, connectSpan := observability.StartSpan(ctx, "bolt.transport.connect")
	rawConn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		observability.EndSpan(connectSpan, err)
		return nil, codec.Wrap(codec.Io, "dial tcp "+addr, err)
	}
	observability.EndSpan(connectSpan, nil)

	_, hsSpan := observability.StartSpan(ctx, "bolt.transport.tls_handshake")
	tlsConn := tls.Client(rawConn, tlsCfg.build(opts.ServerName))
	if opts.DialTimeout > 0 {
		_ = tlsConn.SetDeadline(time.Now().Add(opts.DialTimeout))
	}
	err = tlsConn.HandshakeContext(ctx)
	observability.EndSpan(hsSpan, err)
	if opts.DialTimeout > 0 {
		_ = tlsConn.SetDeadline(time.Time{})
	}
	if err != nil {
		_ = rawConn.Close()
		logger.Warn("TLS handshake failed", "address", addr, "error", err)
		return nil, codec.Wrap(codec.TlsHandshake, "tls handshake with "+addr, err)
	}

	logger.Debug("TLS handshake complete", "address", addr)
	return streamConn{tlsConn}, nil
}
