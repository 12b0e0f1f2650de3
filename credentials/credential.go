package credentials

import (
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/golang-jwt/jwt/v5"
)

// AccountType discriminates the active variant of a DefaultCredential.
type AccountType string

const (
	// ServiceAccount selects ServiceAccountCredential.
	ServiceAccount AccountType = "service_account"
	// AuthorizedUser selects AuthorizedUserCredential.
	AuthorizedUser AccountType = "authorized_user"
)

// DefaultCredential is a locally discoverable credential. Exactly one of ServiceAccount and
// AuthorizedUser is set, matching Type.
type DefaultCredential struct {
	Type           AccountType
	ServiceAccount *ServiceAccountCredential
	AuthorizedUser *AuthorizedUserCredential
}

// ServiceAccountCredential is the service_account variant of DefaultCredential.
type ServiceAccountCredential struct {
	ProjectID               string `json:"project_id,omitempty"`
	PrivateKeyID            string `json:"private_key_id,omitempty"`
	PrivateKey              string `json:"private_key"`
	ClientEmail             string `json:"client_email"`
	ClientID                string `json:"client_id,omitempty"`
	AuthURI                 string `json:"auth_uri,omitempty"`
	TokenURI                string `json:"token_uri,omitempty"`
	AuthProviderX509CertURL string `json:"auth_provider_x509_cert_url,omitempty"`
	ClientX509CertURL       string `json:"client_x509_cert_url,omitempty"`
}

// AuthorizedUserCredential is the authorized_user variant of DefaultCredential.
type AuthorizedUserCredential struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RefreshToken string `json:"refresh_token"`
	ProjectID    string `json:"project_id,omitempty"`
}

// UnknownAccountTypeError is returned when a credential document carries an unsupported type.
type UnknownAccountTypeError struct {
	Type string
}

func (e *UnknownAccountTypeError) Error() string {
	return fmt.Sprintf("credentials: unknown account type %q", e.Type)
}

// ProjectID returns the project id of the active variant, if any.
func (c *DefaultCredential) ProjectID() string {
	switch {
	case c.ServiceAccount != nil:
		return c.ServiceAccount.ProjectID
	case c.AuthorizedUser != nil:
		return c.AuthorizedUser.ProjectID
	default:
		return ""
	}
}

// MarshalJSON encodes the credential in the credential file layout.
func (c DefaultCredential) MarshalJSON() ([]byte, error) {
	switch c.Type {
	case ServiceAccount:
		if c.ServiceAccount == nil {
			return nil, errors.New("credentials: service_account credential is nil")
		}
		return json.Marshal(struct {
			Type AccountType `json:"type"`
			*ServiceAccountCredential `json:",inline"`
		}{c.Type, c.ServiceAccount})
	case AuthorizedUser:
		if c.AuthorizedUser == nil {
			return nil, errors.New("credentials: authorized_user credential is nil")
		}
		return json.Marshal(struct {
			Type AccountType `json:"type"`
			*AuthorizedUserCredential `json:",inline"`
		}{c.Type, c.AuthorizedUser})
	default:
		return nil, &UnknownAccountTypeError{Type: string(c.Type)}
	}
}

// UnmarshalJSON decodes the credential file layout, rejecting unknown account types
// and variants with missing required fields.
func (c *DefaultCredential) UnmarshalJSON(data []byte) error {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	var fields map[string]jsontext.Value
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	switch AccountType(head.Type) {
	case ServiceAccount:
		var sa ServiceAccountCredential
		if err := json.Unmarshal(data, &sa); err != nil {
			return err
		}
		if err := requireFields(ServiceAccount, fields, "private_key", "client_email"); err != nil {
			return err
		}
		*c = DefaultCredential{Type: ServiceAccount, ServiceAccount: &sa}
	case AuthorizedUser:
		var au AuthorizedUserCredential
		if err := json.Unmarshal(data, &au); err != nil {
			return err
		}
		if err := requireFields(AuthorizedUser, fields, "client_id", "client_secret", "refresh_token"); err != nil {
			return err
		}
		*c = DefaultCredential{Type: AuthorizedUser, AuthorizedUser: &au}
	default:
		return &UnknownAccountTypeError{Type: head.Type}
	}

	return nil
}

// requireFields rejects names that are absent or null in the document. Empty strings pass.
func requireFields(t AccountType, fields map[string]jsontext.Value, names ...string) error {
	for _, name := range names {
		if v, ok := fields[name]; !ok || v.Kind() == 'n' {
			return fmt.Errorf("credentials: %s credential missing field %q", t, name)
		}
	}
	return nil
}

// ParsePrivateKey parses the PEM encoded RSA private key of the service account.
func (c *ServiceAccountCredential) ParsePrivateKey() (*rsa.PrivateKey, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(c.PrivateKey))
	if err != nil {
		return nil, fmt.Errorf("credentials: parse private key: %w", err)
	}
	return key, nil
}
