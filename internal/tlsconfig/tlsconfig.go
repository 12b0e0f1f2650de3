// Package tlsconfig loads client TLS settings from PEM files for the HTTP and gRPC builders.
package tlsconfig

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
)

// ErrIncompleteKeyPair is returned when only one of CertFile and KeyFile is set.
var ErrIncompleteKeyPair = errors.New("tlsconfig: client certificate and key must be provided together")

// Files names the PEM files and verification settings of a client TLS configuration.
// The zero value yields TLS 1.2+ with the system roots.
type Files struct {
	// CAFile is a PEM bundle of roots used to verify servers. Empty keeps the system roots.
	CAFile string
	// CertFile and KeyFile hold the client key pair presented for mTLS.
	CertFile string
	KeyFile  string
	// ServerName overrides the name verified against the server certificate.
	ServerName string
	// InsecureSkipVerify disables server verification. Tests only.
	InsecureSkipVerify bool
}

// IsZero reports whether no setting deviates from the defaults.
func (f Files) IsZero() bool {
	return f == Files{}
}

// Load reads the referenced files and returns a fresh *tls.Config.
func (f Files) Load() (*tls.Config, error) {
	if (f.CertFile == "") != (f.KeyFile == "") {
		return nil, ErrIncompleteKeyPair
	}

	config := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		ServerName:         f.ServerName,
		InsecureSkipVerify: f.InsecureSkipVerify, // #nosec G402
	}

	if f.CAFile != "" {
		pool, err := loadCertPool(f.CAFile)
		if err != nil {
			return nil, err
		}
		config.RootCAs = pool
	}

	if f.CertFile != "" {
		cert, err := tls.LoadX509KeyPair(f.CertFile, f.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("tlsconfig: load client certificate: %w", err)
		}
		config.Certificates = []tls.Certificate{cert}
	}

	return config, nil
}

func loadCertPool(path string) (*x509.CertPool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tlsconfig: read CA file: %w", err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(data) {
		return nil, fmt.Errorf("tlsconfig: no PEM certificates in %s", path)
	}
	return pool, nil
}
