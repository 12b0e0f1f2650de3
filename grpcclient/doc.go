// Package grpcclient provides a fluent builder for secure gRPC client connections authenticated
// with Google OAuth2 access tokens obtained from a refresh token.
//
// It defaults to TLS 1.2+ using system roots to avoid accidental plaintext connections. Optional
// methods let you add OAuth2 interceptors, custom CA or mTLS credentials, and extra dial options.
//
// # Features
//
//   - Fluent builder for gRPC clients
//   - Bearer token interceptors backed by an oauth2client.Client
//   - Initial token fetch at Build time when the client holds no token yet
//   - Secure-by-default TLS; optional custom CA and mTLS
//   - Additional dial options via WithDialOptions
//
// # Quick Start
//
//	cred, err := credentials.Find()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	conn, err := grpcclient.NewBuilder().
//	    WithAddress("pubsub.googleapis.com:443").
//	    WithAuthorizedUser(cred.AuthorizedUser, "https://www.googleapis.com/auth/pubsub").
//	    Build(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Close()
//
//	client := pb.NewPublisherClient(conn)
//
// The builder never refreshes tokens. Keep a reference to the oauth2client.Client (via
// WithOAuth2Client) and call FetchAccessToken before the token expires.
//
// # TLS Behavior
//
// TLS is enabled by default with system CAs and TLS 1.2 minimum. WithTLS allows supplying a custom
// root CA and optional client cert/key for mTLS; both cert and key must be provided together.
package grpcclient
