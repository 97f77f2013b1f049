// Package realtime owns the live channel to the order-event server: one
// channel per authenticated viewer, heartbeat liveness, and bounded
// reconnection.
package realtime

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// minTokenLength guards against obviously truncated credentials before any
// connection attempt is made.
const minTokenLength = 20

// ErrNoCredential indicates no usable access token is available.
var ErrNoCredential = errors.New("no valid access credential")

// CredentialStore supplies the stored access token for the current viewer.
type CredentialStore interface {
	AccessToken() (string, error)
}

// FileCredentialStore reads the access token from a file in the state
// directory, the client-storage equivalent for a CLI process.
type FileCredentialStore struct {
	path string
}

// NewFileCredentialStore creates a store reading from path.
func NewFileCredentialStore(path string) *FileCredentialStore {
	return &FileCredentialStore{path: path}
}

// AccessToken returns the stored token after structural validation.
func (s *FileCredentialStore) AccessToken() (string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoCredential
		}
		return "", fmt.Errorf("read credential file: %w", err)
	}
	token := strings.TrimSpace(string(raw))
	if err := ValidateToken(token); err != nil {
		return "", err
	}
	return token, nil
}

// ValidateToken checks the token is structurally plausible: long enough and
// parseable as a JWT. The signature is the server's concern, not ours.
func ValidateToken(token string) error {
	if len(token) < minTokenLength {
		return ErrNoCredential
	}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, jwt.MapClaims{}); err != nil {
		return fmt.Errorf("%w: %v", ErrNoCredential, err)
	}
	return nil
}

// StaticCredentialStore returns a fixed token. Used by tests and by callers
// that already hold a token in memory.
type StaticCredentialStore struct {
	Token string
}

// AccessToken returns the fixed token after structural validation.
func (s StaticCredentialStore) AccessToken() (string, error) {
	if err := ValidateToken(s.Token); err != nil {
		return "", err
	}
	return s.Token, nil
}
