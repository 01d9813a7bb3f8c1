package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore persists credentials as a JSON file with owner-only permissions.
// When a passphrase is configured the payload is sealed at rest.
type FileStore struct {
	path       string
	passphrase string
}

// NewFileStore targets the provided path. An empty passphrase stores the
// credential as plain JSON; a non-empty one seals it.
func NewFileStore(path, passphrase string) *FileStore {
	return &FileStore{path: path, passphrase: passphrase}
}

// Load reads the persisted credential, returning ErrNotFound when absent.
func (s *FileStore) Load(_ context.Context) (Credentials, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Credentials{}, ErrNotFound
		}
		return Credentials{}, fmt.Errorf("read credentials file: %w", err)
	}

	if s.passphrase != "" {
		raw, err = open(s.passphrase, raw)
		if err != nil {
			return Credentials{}, err
		}
	}

	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return Credentials{}, fmt.Errorf("parse credentials file: %w", err)
	}
	if creds.Token == "" || creds.AuthorID == "" {
		return Credentials{}, ErrNotFound
	}
	return creds, nil
}

// Save writes the credential, creating parent directories as needed.
func (s *FileStore) Save(_ context.Context, creds Credentials) error {
	raw, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	if s.passphrase != "" {
		raw, err = seal(s.passphrase, raw)
		if err != nil {
			return err
		}
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create credentials directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write credentials file: %w", err)
	}
	return nil
}

// Clear removes the persisted credential. A missing file is not an error.
func (s *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove credentials file: %w", err)
	}
	return nil
}
