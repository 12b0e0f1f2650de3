package credentials

import (
	"os"
	"unicode/utf8"
)

// Environment variables read by FromEnv.
const (
	EnvAccountType  = "GOOGLE_ACCOUNT_TYPE"
	EnvPrivateKey   = "GOOGLE_PRIVATE_KEY"
	EnvClientEmail  = "GOOGLE_CLIENT_EMAIL"
	EnvClientID     = "GOOGLE_CLIENT_ID"
	EnvClientSecret = "GOOGLE_CLIENT_SECRET"
	EnvRefreshToken = "GOOGLE_REFRESH_TOKEN"
	EnvProjectID    = "GOOGLE_PROJECT_ID"
)

// LookupFunc retrieves an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// EnvNotPresentError reports a required environment variable that is not set.
type EnvNotPresentError struct {
	Name string
}

func (e *EnvNotPresentError) Error() string {
	return "credentials: environment variable not found: " + e.Name
}

// InvalidEnvError reports an environment variable that is set but not usable,
// either because it is not valid UTF-8 text or because it holds an unrecognized value.
type InvalidEnvError struct {
	Name string
}

func (e *InvalidEnvError) Error() string {
	return "credentials: invalid environment variable: " + e.Name
}

// FromEnv loads a DefaultCredential from the process environment.
func FromEnv() (*DefaultCredential, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup loads a DefaultCredential from the variables returned by lookup.
//
// GOOGLE_ACCOUNT_TYPE selects the variant. Any other value than service_account or
// authorized_user yields an *InvalidEnvError naming GOOGLE_ACCOUNT_TYPE.
func FromLookup(lookup LookupFunc) (*DefaultCredential, error) {
	env := envReader{lookup: lookup}

	accountType, err := env.required(EnvAccountType)
	if err != nil {
		return nil, err
	}

	switch AccountType(accountType) {
	case ServiceAccount:
		sa, err := serviceAccountFromEnv(env)
		if err != nil {
			return nil, err
		}
		return &DefaultCredential{Type: ServiceAccount, ServiceAccount: sa}, nil
	case AuthorizedUser:
		au, err := authorizedUserFromEnv(env)
		if err != nil {
			return nil, err
		}
		return &DefaultCredential{Type: AuthorizedUser, AuthorizedUser: au}, nil
	default:
		return nil, &InvalidEnvError{Name: EnvAccountType}
	}
}

func serviceAccountFromEnv(env envReader) (*ServiceAccountCredential, error) {
	privateKey, err := env.required(EnvPrivateKey)
	if err != nil {
		return nil, err
	}
	clientEmail, err := env.required(EnvClientEmail)
	if err != nil {
		return nil, err
	}
	projectID, err := env.optional(EnvProjectID)
	if err != nil {
		return nil, err
	}

	return &ServiceAccountCredential{
		PrivateKey:  unescapePrivateKey(privateKey),
		ClientEmail: clientEmail,
		ProjectID:   projectID,
	}, nil
}

func authorizedUserFromEnv(env envReader) (*AuthorizedUserCredential, error) {
	clientID, err := env.required(EnvClientID)
	if err != nil {
		return nil, err
	}
	clientSecret, err := env.required(EnvClientSecret)
	if err != nil {
		return nil, err
	}
	refreshToken, err := env.required(EnvRefreshToken)
	if err != nil {
		return nil, err
	}
	projectID, err := env.optional(EnvProjectID)
	if err != nil {
		return nil, err
	}

	return &AuthorizedUserCredential{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RefreshToken: refreshToken,
		ProjectID:    projectID,
	}, nil
}

type envReader struct {
	lookup LookupFunc
}

func (r envReader) required(name string) (string, error) {
	v, ok := r.lookup(name)
	if !ok {
		return "", &EnvNotPresentError{Name: name}
	}
	if !utf8.ValidString(v) {
		return "", &InvalidEnvError{Name: name}
	}
	return v, nil
}

func (r envReader) optional(name string) (string, error) {
	v, ok := r.lookup(name)
	if !ok {
		return "", nil
	}
	if !utf8.ValidString(v) {
		return "", &InvalidEnvError{Name: name}
	}
	return v, nil
}

// unescapePrivateKey turns every literal `\n` into a newline and then strips one pair of
// enclosing double quotes. No other escape sequence is interpreted.
func unescapePrivateKey(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && s[i+1] == 'n' {
			out = append(out, '\n')
			i++
			continue
		}
		out = append(out, s[i])
	}

	if len(out) >= 2 && out[0] == '"' && out[len(out)-1] == '"' {
		out = out[1 : len(out)-1]
	}
	return string(out)
}

