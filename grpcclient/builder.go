package grpcclient

import (
	"context"
	"errors"
	"fmt"

	gcpcreds "github.com/AmmannChristian/go-gcpauth/credentials"
	"github.com/AmmannChristian/go-gcpauth/internal/tlsconfig"
	"github.com/AmmannChristian/go-gcpauth/oauth2client"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
)

// Builder provides a fluent interface for constructing gRPC client connections
// with optional OAuth2 authentication and TLS/mTLS support.
type Builder struct {
	address string

	// OAuth2 configuration
	oauth2Client *oauth2client.Client
	oauth2Config *oauth2client.RefreshTokenConfig
	oauth2Opts   []oauth2client.Option

	// TLS 1.2+ against the system roots unless WithTLS says otherwise
	tls tlsconfig.Files

	// Additional dial options
	dialOpts []grpc.DialOption
}

// NewBuilder creates a new gRPC client builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithAddress sets the server address (e.g., "server.example.com:9090").
func (b *Builder) WithAddress(address string) *Builder {
	b.address = address
	return b
}

// WithOAuth2Client attaches the cached access token of c to every RPC through unary and
// stream interceptors. If c has not fetched a token yet, Build fetches one.
func (b *Builder) WithOAuth2Client(c *oauth2client.Client) *Builder {
	b.oauth2Client = c
	b.oauth2Config = nil
	return b
}

// WithAuthorizedUser creates an OAuth2 client for an authorized user credential at Build time.
//
// Parameters:
//   - cred: Authorized user credential, usually from credentials.Find
//   - scopes: OAuth2 scopes requested with every refresh (e.g., "https://www.googleapis.com/auth/pubsub")
func (b *Builder) WithAuthorizedUser(cred *gcpcreds.AuthorizedUserCredential, scopes ...string) *Builder {
	b.oauth2Client = nil
	if cred == nil {
		b.oauth2Config = &oauth2client.RefreshTokenConfig{}
		return b
	}
	config := oauth2client.ConfigFromAuthorizedUser(cred, scopes...)
	b.oauth2Config = &config
	return b
}

// WithOAuth2Options sets options for the client created by WithAuthorizedUser.
func (b *Builder) WithOAuth2Options(opts ...oauth2client.Option) *Builder {
	b.oauth2Opts = append(b.oauth2Opts, opts...)
	return b
}

// WithTLS customizes the transport credentials.
//
// Parameters:
//   - caFile: Path to CA bundle for server verification (optional, system roots otherwise)
//   - certFile: Path to client certificate for mTLS (optional, must be paired with keyFile)
//   - keyFile: Path to client private key for mTLS (optional, must be paired with certFile)
//   - serverName: Expected server name for TLS verification (optional, overrides the target authority)
func (b *Builder) WithTLS(caFile, certFile, keyFile, serverName string) *Builder {
	b.tls = tlsconfig.Files{
		CAFile:     caFile,
		CertFile:   certFile,
		KeyFile:    keyFile,
		ServerName: serverName,
	}
	return b
}

// WithDialOptions adds custom gRPC dial options.
// These options are applied after OAuth2 and TLS options.
func (b *Builder) WithDialOptions(opts ...grpc.DialOption) *Builder {
	b.dialOpts = append(b.dialOpts, opts...)
	return b
}

// Build constructs the gRPC client connection with the configured options.
//
// Returns:
//   - *grpc.ClientConn: Established gRPC connection
//   - error: Error if connection fails
func (b *Builder) Build(ctx context.Context) (*grpc.ClientConn, error) {
	if b.address == "" {
		return nil, errors.New("grpcclient: server address is required")
	}

	var opts []grpc.DialOption

	// Add OAuth2 interceptors if enabled
	oc, err := b.resolveOAuth2Client(ctx)
	if err != nil {
		return nil, err
	}
	if oc != nil {
		opts = append(opts,
			grpc.WithUnaryInterceptor(oc.UnaryClientInterceptor()),
			grpc.WithStreamInterceptor(oc.StreamClientInterceptor()),
		)
	}

	// Plaintext requires overriding the credentials through WithDialOptions.
	tlsConfig, err := b.tls.Load()
	if err != nil {
		return nil, fmt.Errorf("grpcclient: TLS config failed: %w", err)
	}
	opts = append(opts, grpc.WithTransportCredentials(credentials.NewTLS(tlsConfig)))

	// Add custom dial options
	opts = append(opts, b.dialOpts...)

	// Create connection
	conn, err := grpc.NewClient(b.address, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpcclient: dial failed: %w", err)
	}

	return conn, nil
}

// resolveOAuth2Client returns the configured OAuth2 client, creating it from the
// authorized user configuration if needed, and makes sure it holds a token.
func (b *Builder) resolveOAuth2Client(ctx context.Context) (*oauth2client.Client, error) {
	oc := b.oauth2Client
	if oc == nil && b.oauth2Config != nil {
		if err := b.validateOAuth2Config(); err != nil {
			return nil, err
		}
		oc = oauth2client.NewClient(*b.oauth2Config, b.oauth2Opts...)
	}
	if oc == nil {
		return nil, nil
	}

	if _, ok := oc.Expiry(); !ok {
		if err := oc.FetchAccessToken(ctx); err != nil {
			return nil, fmt.Errorf("grpcclient: initial token fetch failed: %w", err)
		}
	}
	return oc, nil
}

// validateOAuth2Config ensures OAuth2 configuration is complete.
func (b *Builder) validateOAuth2Config() error {
	if b.oauth2Config.ClientID == "" {
		return errors.New("grpcclient: OAuth2 client ID is required")
	}
	if b.oauth2Config.ClientSecret == "" {
		return errors.New("grpcclient: OAuth2 client secret is required")
	}
	if b.oauth2Config.RefreshToken == "" {
		return errors.New("grpcclient: OAuth2 refresh token is required")
	}
	return nil
}
