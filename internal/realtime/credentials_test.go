package realtime

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateToken(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{name: "well-formed jwt", token: testToken, wantErr: false},
		{name: "empty", token: "", wantErr: true},
		{name: "too short", token: "abc.def.ghi", wantErr: true},
		{name: "long but not a jwt", token: "this-is-not-a-json-web-token-at-all", wantErr: true},
		{name: "two segments", token: "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxIn0", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateToken(tt.token)
			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, ErrNoCredential)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestFileCredentialStore(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		s := NewFileCredentialStore(filepath.Join(dir, "absent"))
		_, err := s.AccessToken()
		require.ErrorIs(t, err, ErrNoCredential)
	})

	t.Run("valid token with surrounding whitespace", func(t *testing.T) {
		path := filepath.Join(dir, "token")
		require.NoError(t, os.WriteFile(path, []byte("  "+testToken+"\n"), 0600))
		s := NewFileCredentialStore(path)
		got, err := s.AccessToken()
		require.NoError(t, err)
		require.Equal(t, testToken, got)
	})

	t.Run("garbage token", func(t *testing.T) {
		path := filepath.Join(dir, "garbage")
		require.NoError(t, os.WriteFile(path, []byte("not-a-token"), 0600))
		s := NewFileCredentialStore(path)
		_, err := s.AccessToken()
		require.ErrorIs(t, err, ErrNoCredential)
	})
}

func TestStaticCredentialStore(t *testing.T) {
	_, err := StaticCredentialStore{Token: "nope"}.AccessToken()
	require.ErrorIs(t, err, ErrNoCredential)

	got, err := StaticCredentialStore{Token: testToken}.AccessToken()
	require.NoError(t, err)
	require.Equal(t, testToken, got)
}
