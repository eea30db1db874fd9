// Package tlsutil builds tls.Config values for the websocket dialer from the
// client's TLS options.
package tlsutil

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	"github.com/coingaming/gremlex/config"
	"github.com/coingaming/gremlex/errors"
)

// LoadClientTLSConfig creates a tls.Config for wss:// connections. The system
// CA bundle is always trusted; CAFiles add further trusted roots, and an
// optional client certificate enables mutual TLS.
func LoadClientTLSConfig(opts config.TLSOpts) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		MinVersion: parseTLSVersion(opts.MinVersion),
	}

	rootCAs, err := x509.SystemCertPool()
	if err != nil {
		rootCAs = x509.NewCertPool()
	}
	for _, caFile := range opts.CAFiles {
		caPEM, err := os.ReadFile(caFile)
		if err != nil {
			return nil, errors.WrapFatal(err, "tlsutil", "LoadClientTLSConfig",
				fmt.Sprintf("read CA file %s", caFile))
		}
		if !rootCAs.AppendCertsFromPEM(caPEM) {
			return nil, errors.WrapFatal(
				fmt.Errorf("invalid PEM data"),
				"tlsutil", "LoadClientTLSConfig",
				fmt.Sprintf("parse CA certificate from %s", caFile))
		}
	}
	tlsConfig.RootCAs = rootCAs

	if opts.CertFile != "" || opts.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(opts.CertFile, opts.KeyFile)
		if err != nil {
			return nil, errors.WrapFatal(err, "tlsutil", "LoadClientTLSConfig",
				"load client certificate")
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	// Intentional opt-in via config; operators know the security implications
	if opts.InsecureSkipVerify {
		tlsConfig.InsecureSkipVerify = true // #nosec G402
	}

	return tlsConfig, nil
}

func parseTLSVersion(version string) uint16 {
	switch version {
	case "1.3":
		return tls.VersionTLS13
	case "1.1":
		return tls.VersionTLS11
	default:
		return tls.VersionTLS12
	}
}
