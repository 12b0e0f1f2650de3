package oauth2client

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AmmannChristian/go-gcpauth/credentials"
	"github.com/go-json-experiment/json"
)

// Google OAuth2 endpoints used by ConfigFromAuthorizedUser.
const (
	GoogleTokenURI         = "https://oauth2.googleapis.com/token"
	GoogleAuthorizationURI = "https://accounts.google.com/o/oauth2/auth"
)

// maxResponseBytes caps how much of a token endpoint response is read.
const maxResponseBytes = 1 << 20

// Config selects the grant a Client performs. RefreshTokenConfig is the only implementation.
type Config interface {
	fetchAccessToken(ctx context.Context, hc *http.Client, now func() time.Time) (*accessToken, error)
}

// RefreshTokenConfig configures the refresh-token grant.
type RefreshTokenConfig struct {
	TokenCredentialURI string
	AuthorizationURI   string
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	// Scope is sent space-joined.
	Scope []string
}

var _ Config = RefreshTokenConfig{}

// ConfigFromAuthorizedUser builds a refresh-token configuration against the Google endpoints.
func ConfigFromAuthorizedUser(cred *credentials.AuthorizedUserCredential, scopes ...string) RefreshTokenConfig {
	return RefreshTokenConfig{
		TokenCredentialURI: GoogleTokenURI,
		AuthorizationURI:   GoogleAuthorizationURI,
		ClientID:           cred.ClientID,
		ClientSecret:       cred.ClientSecret,
		RefreshToken:       cred.RefreshToken,
		Scope:              append([]string(nil), scopes...),
	}
}

// form returns the grant exchange request body.
func (c RefreshTokenConfig) form() url.Values {
	return url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {c.RefreshToken},
		"client_id":     {c.ClientID},
		"client_secret": {c.ClientSecret},
		"scope":         {strings.Join(c.Scope, " ")},
	}
}

// tokenResponse is the success body of the token endpoint.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
	IDToken      string `json:"id_token,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

func (c RefreshTokenConfig) fetchAccessToken(ctx context.Context, hc *http.Client, now func() time.Time) (*accessToken, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.TokenCredentialURI, strings.NewReader(c.form().Encode()))
	if err != nil {
		return nil, &HTTPError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, &HTTPError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &HTTPError{Err: fmt.Errorf("read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeAuthError(resp.StatusCode, body)
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, &DecodeError{StatusCode: resp.StatusCode, Err: err}
	}
	if tr.AccessToken == "" {
		return nil, &DecodeError{StatusCode: resp.StatusCode, Err: fmt.Errorf("missing access_token")}
	}
	if tr.ExpiresIn < 0 {
		return nil, &DecodeError{StatusCode: resp.StatusCode, Err: fmt.Errorf("negative expires_in %d", tr.ExpiresIn)}
	}
	// Larger values overflow time.Duration.
	if tr.ExpiresIn > math.MaxUint32 {
		return nil, &DecodeError{StatusCode: resp.StatusCode, Err: fmt.Errorf("expires_in %d out of range", tr.ExpiresIn)}
	}

	return &accessToken{
		value:      tr.AccessToken,
		expiresIn:  time.Duration(tr.ExpiresIn) * time.Second,
		acquiredAt: now(),
	}, nil
}

func decodeAuthError(status int, body []byte) error {
	var authErr AuthError
	if err := json.Unmarshal(body, &authErr); err != nil {
		return &DecodeError{StatusCode: status, Err: err}
	}
	if authErr.Kind == 0 {
		return &DecodeError{StatusCode: status, Err: fmt.Errorf("missing error code")}
	}
	return &authErr
}
