// Package oauth2client provides an OAuth2 refresh-token client that caches a bearer access token
// and decorates outgoing HTTP requests and gRPC calls with it.
//
// A Client is built from a Config (currently only RefreshTokenConfig). FetchAccessToken performs the
// refresh-token grant exchange against the token endpoint and stores the result; Decorate and
// NewRequest attach the cached token as "Authorization: Bearer <token>". The token cache is guarded
// by a mutex that is never held while waiting on the network.
//
// # Features
//
//   - Refresh-token grant exchange with form-encoded requests and JSON responses
//   - Typed errors: *HTTPError (transport), *AuthError (endpoint rejection), *DecodeError (bad body)
//   - Concurrency-safe token cache; a failed fetch keeps the previous token
//   - oauth2.TokenSource implementation for use with golang.org/x/oauth2 transports
//   - gRPC unary and stream client interceptors that inject Bearer tokens
//   - Optional logging (WithLogger, WithLoggingEnabled)
//
// # Quick Start
//
//	cred, err := credentials.Find()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client := oauth2client.NewClient(
//	    oauth2client.ConfigFromAuthorizedUser(cred.AuthorizedUser, "https://www.googleapis.com/auth/bigquery"),
//	    oauth2client.WithLoggingEnabled(),
//	)
//	if err := client.FetchAccessToken(ctx); err != nil {
//	    var authErr *oauth2client.AuthError
//	    if errors.As(err, &authErr) && authErr.Kind == oauth2client.InvalidGrant {
//	        log.Fatal("refresh token revoked, run gcloud auth application-default login")
//	    }
//	    log.Fatal(err)
//	}
//
//	req, err := client.NewRequest(ctx, http.MethodPost, url, body)
//
// # Notes
//
//   - Tokens are never refreshed automatically. Use Expiry to decide when to fetch again.
//   - Decorate and NewRequest panic with ErrNoAccessToken when called before the first successful
//     fetch; Token and the interceptors return ErrNoAccessToken instead.
//   - Concurrent fetches are not coalesced; the last one to finish wins.
package oauth2client
