// Package httpclient offers HTTP client construction helpers with OAuth2 authentication and TLS/mTLS options.
//
// It provides a fluent Builder that can create an http.Client with Bearer token injection from the
// token cached by an oauth2client.Client, configurable TLS (custom CA, mTLS, insecure for tests), timeouts,
// base transports and redirect handling. OAuth2Transport can wrap any RoundTripper.
//
// The transport never fetches tokens. Call Client.FetchAccessToken before the first request and again
// whenever the token should be renewed; requests sent before the first fetch fail with an error wrapping
// oauth2client.ErrNoAccessToken.
//
// # Features
//
//   - Fluent builder for http.Client with optional bearer token injection
//   - TLS 1.2+ by default, with custom CA/mTLS and optional InsecureSkipVerify
//   - Custom timeouts, base transport override, and redirect disabling
//   - Reusable OAuth2Transport for manual composition
//
// # Quick Start
//
//	cred, err := credentials.Find()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	oc := oauth2client.NewClient(oauth2client.ConfigFromAuthorizedUser(cred.AuthorizedUser,
//	    "https://www.googleapis.com/auth/bigquery"))
//	if err := oc.FetchAccessToken(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	client, err := httpclient.NewBuilder().
//	    WithOAuth2Client(oc).
//	    WithTimeout(60 * time.Second).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := client.Get("https://bigquery.googleapis.com/bigquery/v2/projects")
//
// # One TLS Setup for Token Exchange and API Calls
//
// A builder without an OAuth2 client yields the client for the token endpoint. Adding the
// OAuth2 client afterwards yields the API client with the same TLS settings:
//
//	builder := httpclient.NewBuilder().WithTLS("/etc/ssl/corp-ca.pem", "", "")
//	tokenHTTP, err := builder.Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	oc := oauth2client.NewClient(config, oauth2client.WithHTTPClient(tokenHTTP))
//	if err := oc.FetchAccessToken(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	api, err := builder.WithOAuth2Client(oc).Build()
//
// # Manual Transport Wrapping
//
//	transport := httpclient.NewOAuth2Transport(oc, nil)
//	client := &http.Client{Transport: transport}
//
// All components are safe for concurrent use.
package httpclient
