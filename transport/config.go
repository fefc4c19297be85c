package transport

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"os"
)

// TLSConfig configures certificate verification for a TLS-wrapped stream.
// The zero value is usable but weak (no minimum version floor); use
// DefaultTLSConfig for a sane starting point.
type TLSConfig struct {
	// Config, if set, is used directly (cloned), bypassing every other
	// field — an escape hatch for callers who already build tls.Config
	// themselves (e.g. from a secrets manager) and don't want this type
	// reconstructing it from parts.
	Config *tls.Config

	// InsecureSkipVerify disables certificate verification entirely. This is
	// a deliberate opt-out a caller must set explicitly; it is never the
	// default.
	InsecureSkipVerify bool

	// ServerName is the name verified against the peer certificate. If
	// empty, it defaults to the server name passed to Connect
	// (Options.ServerName, with any ":port" suffix stripped), so a caller
	// does not have to keep a second copy of the same name in sync. The
	// address Connect dials is not used for this.
	ServerName string

	ClientCertificates []tls.Certificate
	RootCAs            *x509.CertPool
	ClientCAs          *x509.CertPool
	MinVersion         uint16
	MaxVersion         uint16
	CipherSuites       []uint16
}

// DefaultTLSConfig returns a TLSConfig requiring TLS 1.2+ and full
// certificate verification.
func DefaultTLSConfig() *TLSConfig {
	return &TLSConfig{MinVersion: tls.VersionTLS12}
}

// NewTLSConfigFromCertFiles builds a TLSConfig for mutual TLS: a client
// certificate/key pair and/or a custom CA bundle, loaded from disk. Either
// path argument may be empty to skip that half of the configuration.
func NewTLSConfigFromCertFiles(certFile, keyFile, caFile string) (*TLSConfig, error) {
	cfg := DefaultTLSConfig()

	if certFile != "" && keyFile != "" {
		cert, err := tls.LoadX509KeyPair(certFile, keyFile)
		if err != nil {
			return nil, fmt.Errorf("transport: load client certificate: %w", err)
		}
		cfg.ClientCertificates = []tls.Certificate{cert}
	}

	if caFile == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("transport: read CA file %s: %w", caFile, err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(data) {
		return nil, fmt.Errorf("transport: parse CA certificate from %s", caFile)
	}
	cfg.RootCAs = pool

	return cfg, nil
}

// hostOnly strips a ":port" suffix from addr, for deriving a certificate
// server name from a dial address. Addresses without a port (or malformed
// ones) pass through unchanged — SplitHostPort's error just means there was
// nothing to strip.
func hostOnly(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// build produces a *tls.Config for verifying against dialedServerName. When
// RootCAs is nil, Go's tls package falls back to the platform trust store
// (the bundled Mozilla root set or platform equivalent) unless the caller
// injected a custom trust store above.
func (tc *TLSConfig) build(dialedServerName string) *tls.Config {
	if tc.Config != nil {
		return tc.Config.Clone()
	}

	cfg := &tls.Config{
		InsecureSkipVerify: tc.InsecureSkipVerify,
		ServerName:         tc.ServerName,
		Certificates:       tc.ClientCertificates,
		RootCAs:            tc.RootCAs,
		ClientCAs:          tc.ClientCAs,
		MinVersion:         tc.MinVersion,
		MaxVersion:         tc.MaxVersion,
		CipherSuites:       tc.CipherSuites,
	}
	if cfg.ServerName == "" {
		cfg.ServerName = hostOnly(dialedServerName)
	}
	return cfg
}
