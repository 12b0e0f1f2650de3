package httpclient

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/AmmannChristian/go-gcpauth/oauth2client"
)

// OAuth2Transport is an http.RoundTripper that adds the cached OAuth2 bearer token of an
// oauth2client.Client to outgoing HTTP requests.
//
// It wraps an existing transport (typically http.DefaultTransport) and injects the
// Authorization header before each request. It never fetches tokens itself.
type OAuth2Transport struct {
	// Base is the underlying HTTP transport. If nil, http.DefaultTransport is used.
	Base http.RoundTripper

	// Client provides the cached access token.
	Client *oauth2client.Client
}

// RoundTrip implements http.RoundTripper interface.
// It reads the cached token and adds it as "Authorization: Bearer <token>" to a clone of
// the request before delegating to the base transport. Requests made before the client has
// fetched a token fail with an error wrapping oauth2client.ErrNoAccessToken.
func (t *OAuth2Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Client == nil {
		closeBody(req)
		return nil, errors.New("httpclient: Client is nil")
	}

	token, err := t.Client.Token()
	if err != nil {
		closeBody(req)
		return nil, fmt.Errorf("httpclient: failed to get token: %w", err)
	}

	// Clone the request to avoid modifying the original
	reqClone := req.Clone(req.Context())
	token.SetAuthHeader(reqClone)

	// Use base transport or default
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	return base.RoundTrip(reqClone)
}

// closeBody honours the RoundTripper contract of closing the body on early errors.
func closeBody(req *http.Request) {
	if req.Body != nil {
		_ = req.Body.Close()
	}
}

// NewOAuth2Transport creates a new OAuth2Transport for the given client.
// The base transport defaults to http.DefaultTransport if not specified.
func NewOAuth2Transport(c *oauth2client.Client, base http.RoundTripper) *OAuth2Transport {
	if base == nil {
		base = http.DefaultTransport
	}

	return &OAuth2Transport{
		Base:   base,
		Client: c,
	}
}
