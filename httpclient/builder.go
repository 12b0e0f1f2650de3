package httpclient

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/AmmannChristian/go-gcpauth/internal/tlsconfig"
	"github.com/AmmannChristian/go-gcpauth/oauth2client"
)

// DefaultTimeout bounds every request of a built client unless WithTimeout says otherwise.
const DefaultTimeout = 30 * time.Second

// Builder assembles an *http.Client for Google APIs.
//
// Without an OAuth2 client it produces the plain TLS-configured client that performs the token
// exchange (pass it to oauth2client.WithHTTPClient). With WithOAuth2Client the same settings
// produce the API client whose requests carry the cached bearer token. A Builder may be built
// more than once.
type Builder struct {
	oauth2Client *oauth2client.Client
	tls          tlsconfig.Files
	timeout      time.Duration
	base         http.RoundTripper
	noRedirects  bool
}

// NewBuilder creates a builder with DefaultTimeout, redirects followed and TLS 1.2+ against
// the system roots.
func NewBuilder() *Builder {
	return &Builder{timeout: DefaultTimeout}
}

// WithOAuth2Client attaches the cached token of c to every request.
// c must have fetched a token before the first request is sent.
func (b *Builder) WithOAuth2Client(c *oauth2client.Client) *Builder {
	b.oauth2Client = c
	return b
}

// WithTLS sets the CA bundle used to verify servers and the client key pair for mTLS.
// Empty arguments keep the defaults; certFile and keyFile must be given together.
func (b *Builder) WithTLS(caFile, certFile, keyFile string) *Builder {
	b.tls.CAFile = caFile
	b.tls.CertFile = certFile
	b.tls.KeyFile = keyFile
	return b
}

// WithInsecureSkipVerify disables server certificate verification. Never use it in production.
func (b *Builder) WithInsecureSkipVerify() *Builder {
	b.tls.InsecureSkipVerify = true
	return b
}

// WithTimeout sets the overall timeout of each request. Zero means no timeout.
func (b *Builder) WithTimeout(timeout time.Duration) *Builder {
	b.timeout = timeout
	return b
}

// WithBaseTransport replaces the TLS-configured transport with rt. It cannot be combined with
// WithTLS or WithInsecureSkipVerify.
func (b *Builder) WithBaseTransport(rt http.RoundTripper) *Builder {
	b.base = rt
	return b
}

// WithoutRedirects makes the client return 3xx responses instead of following them.
func (b *Builder) WithoutRedirects() *Builder {
	b.noRedirects = true
	return b
}

// Build returns a new client from the current settings.
func (b *Builder) Build() (*http.Client, error) {
	transport, err := b.transport()
	if err != nil {
		return nil, err
	}
	if b.oauth2Client != nil {
		transport = NewOAuth2Transport(b.oauth2Client, transport)
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   b.timeout,
	}
	if b.noRedirects {
		client.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	return client, nil
}

func (b *Builder) transport() (http.RoundTripper, error) {
	if b.base != nil {
		if !b.tls.IsZero() {
			return nil, errors.New("httpclient: TLS settings cannot be combined with a base transport")
		}
		return b.base, nil
	}

	tlsConfig, err := b.tls.Load()
	if err != nil {
		return nil, fmt.Errorf("httpclient: TLS config failed: %w", err)
	}

	defaultTransport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		// http.DefaultTransport has been replaced, usually by a test stub.
		if !b.tls.IsZero() {
			return nil, errors.New("httpclient: http.DefaultTransport is not an *http.Transport, TLS settings cannot be applied")
		}
		return http.DefaultTransport, nil
	}

	transport := defaultTransport.Clone()
	transport.TLSClientConfig = tlsConfig
	return transport, nil
}

// NewHTTPClient returns a client with DefaultTimeout that decorates requests with the cached
// token of c. Use Builder for TLS or redirect settings.
//
// Example:
//
//	client := oauth2client.NewClient(oauth2client.ConfigFromAuthorizedUser(cred.AuthorizedUser))
//	if err := client.FetchAccessToken(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	hc := httpclient.NewHTTPClient(client)
//	resp, err := hc.Get("https://bigquery.googleapis.com/bigquery/v2/projects")
func NewHTTPClient(c *oauth2client.Client) *http.Client {
	return &http.Client{
		Transport: NewOAuth2Transport(c, nil),
		Timeout:   DefaultTimeout,
	}
}
