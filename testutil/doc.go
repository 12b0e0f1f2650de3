// Package testutil provides test helpers for go-gcpauth packages.
//
// It includes utilities to spin up IPv4-only local HTTP servers (avoiding IPv6 in sandboxes),
// mock OAuth2 token endpoints without real sockets, and generate keys and self-signed certificates
// for credential and TLS/mTLS tests.
//
// # Utilities
//
//   - NewLocalHTTPServer: start httptest server bound to 127.0.0.1
//   - NewLocalTLSServer: HTTPS variant that exports its certificate as a CA file and can require client certificates
//   - MockOAuth2Server, StaticJSONResponse and JSONResponse: stub token endpoints and capture requests
//   - RoundTripFunc: inline http.RoundTripper implementations
//   - GenerateRSAPrivateKeyPEM / WriteCredentialFile: service account and authorized user fixtures
//   - WriteTestCACert / WriteTestCertAndKey: generate temporary CA and leaf certificates for tests
//
// These helpers are designed for tests and may mutate http.DefaultClient/Transport; they restore previous values via tb.Cleanup.
package testutil
