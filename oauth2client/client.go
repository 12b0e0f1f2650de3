package oauth2client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// Logger is an interface for optional logging in Client.
// Implementations can log token fetch events if desired. Token values are never logged.
type Logger interface {
	Printf(format string, args ...any)
}

// Client fetches access tokens with its Config and decorates outgoing requests with the
// cached bearer token. It is safe for concurrent use.
//
// The cached token is never refreshed automatically: callers decide when to call
// FetchAccessToken again, for example based on Expiry.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     Logger
	now        func() time.Time
	state      tokenState
}

var _ oauth2.TokenSource = (*Client)(nil)

// Option is a functional option for configuring Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for the grant exchange.
// Without it, the client stored under oauth2.HTTPClient in the fetch context is used,
// falling back to http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets a custom logger for token fetch events.
// If not set, no logging will occur.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithLoggingEnabled enables logging using the default Go log package.
// This is a convenience option that sets the logger to log.Default().
func WithLoggingEnabled() Option {
	return func(c *Client) {
		c.logger = log.Default()
	}
}

// WithClock overrides the time source used to stamp fetched tokens.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient binds config to a new Client with an empty token cache. It performs no I/O.
func NewClient(config Config, opts ...Option) *Client {
	c := &Client{
		config: cloneConfig(config),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func cloneConfig(config Config) Config {
	switch cfg := config.(type) {
	case RefreshTokenConfig:
		cfg.Scope = append([]string(nil), cfg.Scope...)
		return cfg
	case *RefreshTokenConfig:
		if cfg == nil {
			return nil
		}
		return cloneConfig(*cfg)
	default:
		return config
	}
}

// FetchAccessToken performs the grant exchange and replaces the cached token on success.
//
// Errors are *HTTPError for transport failures, *AuthError when the endpoint rejects the
// grant and *DecodeError when the response body cannot be understood. A failed fetch leaves
// any previously cached token in place. There are no retries. ctx must not be nil.
func (c *Client) FetchAccessToken(ctx context.Context) error {
	if c.config == nil {
		return errors.New("oauth2: client has no configuration")
	}

	token, err := c.config.fetchAccessToken(ctx, c.client(ctx), c.now)
	if err != nil {
		var authErr *AuthError
		if c.logger != nil && errors.As(err, &authErr) {
			c.logger.Printf("oauth2: token endpoint rejected grant: %s", authErr.Kind)
		}
		return err
	}

	c.state.set(token)

	if c.logger != nil {
		c.logger.Printf("oauth2: obtained new access token (expires: %s)", token.expiry().Format(time.RFC3339))
	}

	return nil
}

func (c *Client) client(ctx context.Context) *http.Client {
	if c.httpClient != nil {
		return c.httpClient
	}
	if hc, ok := ctx.Value(oauth2.HTTPClient).(*http.Client); ok && hc != nil {
		return hc
	}
	return http.DefaultClient
}

// Expiry returns the instant the cached token expires, acquisition time plus expires_in.
// ok is false before the first successful fetch.
func (c *Client) Expiry() (expiry time.Time, ok bool) {
	token, ok := c.state.get()
	if !ok {
		return time.Time{}, false
	}
	return token.expiry(), true
}

// Token returns the cached token as an *oauth2.Token, or ErrNoAccessToken before the first
// successful fetch. It never fetches.
func (c *Client) Token() (*oauth2.Token, error) {
	token, ok := c.state.get()
	if !ok {
		return nil, ErrNoAccessToken
	}
	return &oauth2.Token{
		AccessToken: token.value,
		TokenType:   "Bearer",
		Expiry:      token.expiry(),
		ExpiresIn:   int64(token.expiresIn / time.Second),
	}, nil
}

// bearer returns the cached token value for header injection.
func (c *Client) bearer() (string, error) {
	token, ok := c.state.get()
	if !ok {
		return "", ErrNoAccessToken
	}
	return token.value, nil
}

// Decorate sets "Authorization: Bearer <token>" on req using the cached token.
//
// Calling Decorate before FetchAccessToken has succeeded is a programming error and panics
// with ErrNoAccessToken.
func (c *Client) Decorate(req *http.Request) {
	token, err := c.bearer()
	if err != nil {
		panic(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

// NewRequest builds a request like http.NewRequestWithContext and decorates it with the
// cached bearer token. Like Decorate, it panics with ErrNoAccessToken when no token has been
// fetched yet.
func (c *Client) NewRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("oauth2: build request: %w", err)
	}
	c.Decorate(req)
	return req, nil
}
