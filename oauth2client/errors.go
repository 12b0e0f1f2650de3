package oauth2client

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoAccessToken reports that no access token has been fetched yet.
var ErrNoAccessToken = errors.New("oauth2: no access token, FetchAccessToken has not succeeded yet")

// AuthErrorKind is the error code of an OAuth2 error response.
type AuthErrorKind int

// Error codes defined for token endpoint error responses.
const (
	InvalidRequest AuthErrorKind = iota + 1
	InvalidClient
	InvalidGrant
	UnauthorizedClient
	AccessDenied
	UnsupportedResponseType
	UnsupportedGrantType
	InvalidScope
	ServerError
	TemporarilyUnavailable
)

// temporarilyUnavailableWire is the wire token for TemporarilyUnavailable. The misspelling is
// what the endpoint contract uses and must be kept for compatibility.
const temporarilyUnavailableWire = "temporarily_unavaiable"

var authErrorKindNames = map[AuthErrorKind]string{
	InvalidRequest:          "invalid_request",
	InvalidClient:           "invalid_client",
	InvalidGrant:            "invalid_grant",
	UnauthorizedClient:      "unauthorized_client",
	AccessDenied:            "access_denied",
	UnsupportedResponseType: "unsupported_response_type",
	UnsupportedGrantType:    "unsupported_grant_type",
	InvalidScope:            "invalid_scope",
	ServerError:             "server_error",
	TemporarilyUnavailable:  temporarilyUnavailableWire,
}

var authErrorKindValues = func() map[string]AuthErrorKind {
	m := make(map[string]AuthErrorKind, len(authErrorKindNames))
	for k, v := range authErrorKindNames {
		m[v] = k
	}
	return m
}()

// UnknownAuthErrorKindError is returned when decoding an error code outside the known set.
type UnknownAuthErrorKindError struct {
	Value string
}

func (e *UnknownAuthErrorKindError) Error() string {
	return fmt.Sprintf("oauth2: unknown error code %q", e.Value)
}

// ParseAuthErrorKind maps a wire token to its AuthErrorKind.
func ParseAuthErrorKind(s string) (AuthErrorKind, error) {
	if k, ok := authErrorKindValues[s]; ok {
		return k, nil
	}
	return 0, &UnknownAuthErrorKindError{Value: s}
}

// String returns the wire token of k.
func (k AuthErrorKind) String() string {
	if s, ok := authErrorKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("AuthErrorKind(%d)", int(k))
}

// Temporary reports whether the endpoint signalled a transient condition worth retrying later.
func (k AuthErrorKind) Temporary() bool {
	return k == ServerError || k == TemporarilyUnavailable
}

// MarshalText implements encoding.TextMarshaler.
func (k AuthErrorKind) MarshalText() ([]byte, error) {
	s, ok := authErrorKindNames[k]
	if !ok {
		return nil, fmt.Errorf("oauth2: invalid error code %d", int(k))
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *AuthErrorKind) UnmarshalText(text []byte) error {
	parsed, err := ParseAuthErrorKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// AuthError is an OAuth2 error response returned by the token endpoint.
type AuthError struct {
	Kind        AuthErrorKind `json:"error"`
	Description string        `json:"error_description,omitempty"`
	URI         string        `json:"error_uri,omitempty"`
	State       string        `json:"state,omitempty"`
}

// Error renders the code, then ": description" and " (uri)" when present.
func (e *AuthError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Description != "" {
		b.WriteString(": ")
		b.WriteString(e.Description)
	}
	if e.URI != "" {
		b.WriteString(" (")
		b.WriteString(e.URI)
		b.WriteString(")")
	}
	return b.String()
}

// HTTPError wraps a failure to complete the HTTP exchange with the token endpoint.
type HTTPError struct {
	Err error
}

func (e *HTTPError) Error() string {
	return "oauth2: HTTP request error: " + e.Err.Error()
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// DecodeError reports a token endpoint response body that matches neither the success
// nor the error shape.
type DecodeError struct {
	StatusCode int
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("oauth2: decode token endpoint response (status %d): %v", e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
