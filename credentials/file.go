package credentials

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-json-experiment/json"
)

// EnvApplicationCredentials overrides the credential file path used by DefaultFilePath.
const EnvApplicationCredentials = "GOOGLE_APPLICATION_CREDENTIALS"

// wellKnownFile is the gcloud application default credentials location relative to $HOME.
var wellKnownFile = filepath.Join(".config", "gcloud", "application_default_credentials.json")

// FromJSON decodes a credential document.
func FromJSON(data []byte) (*DefaultCredential, error) {
	var cred DefaultCredential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, fmt.Errorf("credentials: decode credential: %w", err)
	}
	return &cred, nil
}

// FromReader decodes a credential document read from r.
func FromReader(r io.Reader) (*DefaultCredential, error) {
	var cred DefaultCredential
	if err := json.UnmarshalRead(r, &cred); err != nil {
		return nil, fmt.Errorf("credentials: decode credential: %w", err)
	}
	return &cred, nil
}

// FromFile loads a credential document from path.
func FromFile(path string) (*DefaultCredential, error) {
	f, err := os.Open(path) // #nosec G304 -- path is chosen by the caller
	if err != nil {
		return nil, fmt.Errorf("credentials: open credential file: %w", err)
	}
	defer f.Close()

	return FromReader(f)
}

// DefaultFilePath returns $GOOGLE_APPLICATION_CREDENTIALS when set, otherwise the gcloud
// application default credentials file in the user's home directory.
func DefaultFilePath() (string, error) {
	if path, ok := os.LookupEnv(EnvApplicationCredentials); ok && path != "" {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("credentials: locate home directory: %w", err)
	}
	return filepath.Join(home, wellKnownFile), nil
}

// Find loads the default credential. The environment wins when GOOGLE_ACCOUNT_TYPE is set;
// otherwise the file at DefaultFilePath is read.
func Find() (*DefaultCredential, error) {
	if _, ok := os.LookupEnv(EnvAccountType); ok {
		return FromEnv()
	}

	path, err := DefaultFilePath()
	if err != nil {
		return nil, err
	}

	cred, err := FromFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("credentials: no default credential found (set %s or create %s): %w", EnvAccountType, path, err)
	}
	return cred, err
}
