package oauth2client

import (
	"errors"
	"testing"

	"github.com/go-json-experiment/json"
	"github.com/google/go-cmp/cmp"
)

var wireTokens = map[AuthErrorKind]string{
	InvalidRequest:          "invalid_request",
	InvalidClient:           "invalid_client",
	InvalidGrant:            "invalid_grant",
	UnauthorizedClient:      "unauthorized_client",
	AccessDenied:            "access_denied",
	UnsupportedResponseType: "unsupported_response_type",
	UnsupportedGrantType:    "unsupported_grant_type",
	InvalidScope:            "invalid_scope",
	ServerError:             "server_error",
	TemporarilyUnavailable:  "temporarily_unavaiable",
}

func TestAuthErrorKind_RoundTrip(t *testing.T) {
	if len(wireTokens) != 10 {
		t.Fatalf("expected 10 error codes, got %d", len(wireTokens))
	}

	for kind, token := range wireTokens {
		t.Run(token, func(t *testing.T) {
			text, err := kind.MarshalText()
			if err != nil {
				t.Fatalf("MarshalText failed: %v", err)
			}
			if string(text) != token {
				t.Errorf("expected wire token %q, got %q", token, text)
			}

			var decoded AuthErrorKind
			if err := decoded.UnmarshalText(text); err != nil {
				t.Fatalf("UnmarshalText failed: %v", err)
			}
			if decoded != kind {
				t.Errorf("expected %v, got %v", kind, decoded)
			}

			if kind.String() != token {
				t.Errorf("String() = %q, want %q", kind.String(), token)
			}
		})
	}
}

func TestAuthErrorKind_TemporarilyUnavailableSpelling(t *testing.T) {
	if TemporarilyUnavailable.String() != "temporarily_unavaiable" {
		t.Errorf("wire spelling must be preserved, got %q", TemporarilyUnavailable.String())
	}

	if _, err := ParseAuthErrorKind("temporarily_unavailable"); err == nil {
		t.Error("the standard spelling is not part of the wire contract and should be rejected")
	}
}

func TestParseAuthErrorKind_Unknown(t *testing.T) {
	for _, input := range []string{"", "slow_down", "INVALID_GRANT", "invalid_grant "} {
		_, err := ParseAuthErrorKind(input)

		var unknown *UnknownAuthErrorKindError
		if !errors.As(err, &unknown) {
			t.Fatalf("ParseAuthErrorKind(%q): expected *UnknownAuthErrorKindError, got %v", input, err)
		}
		if unknown.Value != input {
			t.Errorf("expected original string %q to be preserved, got %q", input, unknown.Value)
		}
	}
}

func TestAuthErrorKind_MarshalInvalid(t *testing.T) {
	if _, err := AuthErrorKind(0).MarshalText(); err == nil {
		t.Error("expected error for zero kind")
	}
	if got := AuthErrorKind(42).String(); got != "AuthErrorKind(42)" {
		t.Errorf("unexpected String for invalid kind: %s", got)
	}
}

func TestAuthErrorKind_Temporary(t *testing.T) {
	for kind := range wireTokens {
		want := kind == ServerError || kind == TemporarilyUnavailable
		if kind.Temporary() != want {
			t.Errorf("%s.Temporary() = %v, want %v", kind, kind.Temporary(), want)
		}
	}
}

func TestAuthError_JSON(t *testing.T) {
	var authErr AuthError
	err := json.Unmarshal([]byte(`{
		"error": "temporarily_unavaiable",
		"error_description": "try later",
		"error_uri": "https://example.com/errors",
		"state": "xyz"
	}`), &authErr)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	want := AuthError{
		Kind:        TemporarilyUnavailable,
		Description: "try later",
		URI:         "https://example.com/errors",
		State:       "xyz",
	}
	if diff := cmp.Diff(want, authErr); diff != "" {
		t.Errorf("AuthError mismatch (-want +got):\n%s", diff)
	}

	encoded, err := json.Marshal(&AuthError{Kind: InvalidScope})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(encoded) != `{"error":"invalid_scope"}` {
		t.Errorf("unexpected encoding: %s", encoded)
	}
}

func TestAuthError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  AuthError
		want string
	}{
		{
			name: "code only",
			err:  AuthError{Kind: InvalidGrant},
			want: "invalid_grant",
		},
		{
			name: "code and description",
			err:  AuthError{Kind: InvalidGrant, Description: "Token has been expired or revoked."},
			want: "invalid_grant: Token has been expired or revoked.",
		},
		{
			name: "code and uri",
			err:  AuthError{Kind: AccessDenied, URI: "https://example.com/help"},
			want: "access_denied (https://example.com/help)",
		},
		{
			name: "all fields",
			err:  AuthError{Kind: ServerError, Description: "boom", URI: "https://example.com", State: "ignored"},
			want: "server_error: boom (https://example.com)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHTTPErrorAndDecodeError_Unwrap(t *testing.T) {
	cause := errors.New("cause")

	if !errors.Is(&HTTPError{Err: cause}, cause) {
		t.Error("HTTPError should unwrap to its cause")
	}
	if !errors.Is(&DecodeError{StatusCode: 200, Err: cause}, cause) {
		t.Error("DecodeError should unwrap to its cause")
	}
}
