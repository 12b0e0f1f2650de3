// Package commands implements the gcpauth command line tool.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/AmmannChristian/go-gcpauth/credentials"
	"github.com/AmmannChristian/go-gcpauth/httpclient"
	"github.com/AmmannChristian/go-gcpauth/oauth2client"
)

// options holds the flags shared by all subcommands.
type options struct {
	credentialsFile string
	fromEnv         bool
	tokenURI        string
	scopes          []string
	timeout         time.Duration
	verbose         bool

	caFile             string
	certFile           string
	keyFile            string
	insecureSkipVerify bool
}

// NewCommand returns the gcpauth root command.
func NewCommand() *cobra.Command {
	opts := &options{}

	command := &cobra.Command{
		Use:   "gcpauth",
		Short: "Call Google Cloud APIs with an access token obtained from a refresh token",
		Long: `gcpauth loads Google application default credentials, exchanges the refresh token
for an access token and sends authenticated requests to Google Cloud REST APIs.

Credentials are read from --credentials-file, from GOOGLE_* environment variables
when --from-env is set or GOOGLE_ACCOUNT_TYPE is present, and otherwise from
$GOOGLE_APPLICATION_CREDENTIALS or ~/.config/gcloud/application_default_credentials.json.`,
		SilenceUsage: true,
	}

	flags := command.PersistentFlags()
	flags.StringVar(&opts.credentialsFile, "credentials-file", "", "Path to an application default credentials JSON file")
	flags.BoolVar(&opts.fromEnv, "from-env", false, "Read credentials from GOOGLE_* environment variables")
	flags.StringVar(&opts.tokenURI, "token-uri", oauth2client.GoogleTokenURI, "OAuth2 token endpoint")
	flags.StringArrayVar(&opts.scopes, "scope", []string{"https://www.googleapis.com/auth/cloud-platform"}, "OAuth2 scope to request (repeatable)")
	flags.DurationVar(&opts.timeout, "timeout", httpclient.DefaultTimeout, "Timeout for each HTTP request")
	flags.StringVar(&opts.caFile, "ca-file", "", "PEM bundle of CAs trusted for the token endpoint and APIs (default system roots)")
	flags.StringVar(&opts.certFile, "cert-file", "", "PEM client certificate for mTLS, requires --key-file")
	flags.StringVar(&opts.keyFile, "key-file", "", "PEM client private key for mTLS, requires --cert-file")
	flags.BoolVar(&opts.insecureSkipVerify, "insecure-skip-verify", false, "Skip server certificate verification (testing only)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log token refreshes to stderr")

	command.AddCommand(newRequestCommand(opts))
	command.AddCommand(newBigQueryQueryCommand(opts))

	return command
}

// loadCredential resolves the default credential according to the flags.
func (o *options) loadCredential() (*credentials.DefaultCredential, error) {
	switch {
	case o.credentialsFile != "" && o.fromEnv:
		return nil, errors.New("--credentials-file and --from-env are mutually exclusive")
	case o.credentialsFile != "":
		return credentials.FromFile(o.credentialsFile)
	case o.fromEnv:
		return credentials.FromEnv()
	default:
		return credentials.Find()
	}
}

// httpBuilder returns a builder carrying the TLS and timeout flags. The token exchange and
// every API call of a command start from it.
func (o *options) httpBuilder() *httpclient.Builder {
	b := httpclient.NewBuilder().
		WithTimeout(o.timeout).
		WithTLS(o.caFile, o.certFile, o.keyFile)
	if o.insecureSkipVerify {
		b = b.WithInsecureSkipVerify()
	}
	return b
}

// newOAuth2Client builds an OAuth2 client for cred and fetches the first access token.
func (o *options) newOAuth2Client(ctx context.Context, cred *credentials.DefaultCredential, stderr io.Writer) (*oauth2client.Client, error) {
	if cred.Type != credentials.AuthorizedUser {
		return nil, fmt.Errorf("%s credentials are not supported, use an %s credential", cred.Type, credentials.AuthorizedUser)
	}

	config := oauth2client.ConfigFromAuthorizedUser(cred.AuthorizedUser, o.scopes...)
	if o.tokenURI != "" {
		config.TokenCredentialURI = o.tokenURI
	}

	tokenHTTPClient, err := o.httpBuilder().Build()
	if err != nil {
		return nil, err
	}

	clientOpts := []oauth2client.Option{
		oauth2client.WithHTTPClient(tokenHTTPClient),
	}
	if o.verbose {
		clientOpts = append(clientOpts, oauth2client.WithLogger(log.New(stderr, "", log.LstdFlags)))
	}

	client := oauth2client.NewClient(config, clientOpts...)

	if err := client.FetchAccessToken(ctx); err != nil {
		return nil, fmt.Errorf("failed to obtain access token: %w", err)
	}

	return client, nil
}

// writeResponse prints the status line, the redirect target if any, and the body of resp.
// It fails for non-2xx statuses.
func writeResponse(out io.Writer, resp *http.Response) error {
	if _, err := fmt.Fprintln(out, resp.Status); err != nil {
		return err
	}
	if location := resp.Header.Get("Location"); location != "" {
		if _, err := fmt.Fprintln(out, "Location: "+location); err != nil {
			return err
		}
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("request failed with status %s", resp.Status)
	}
	return nil
}
