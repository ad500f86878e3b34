// Package tokenstore provides the durable homes for the credential pair.
// Exactly two string values are persisted — the access token and the
// refresh token — and the presence of the first is the authentication
// signal consumed everywhere else.
package tokenstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mawa3id/booking-client/internal/core/domain"
	"github.com/mawa3id/booking-client/internal/core/ports"
)

// File persists the credential pair as a mode-0600 JSON file. A missing
// file means anonymous.
type File struct {
	path string
}

var _ ports.TokenStorage = (*File)(nil)

// NewFile returns a File store backed by path. An empty path defaults to
// $HOME/.mawa3id/credentials.json.
func NewFile(path string) (*File, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("tokenstore: resolve home dir: %w", err)
		}
		path = filepath.Join(home, ".mawa3id", "credentials.json")
	}
	return &File{path: path}, nil
}

func (f *File) Load() (domain.Credentials, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Credentials{}, nil
	}
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("tokenstore: read %s: %w", f.path, err)
	}
	var creds domain.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return domain.Credentials{}, fmt.Errorf("tokenstore: decode %s: %w", f.path, err)
	}
	return creds, nil
}

func (f *File) Store(creds domain.Credentials) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("tokenstore: create dir: %w", err)
	}
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("tokenstore: encode credentials: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("tokenstore: write %s: %w", f.path, err)
	}
	return nil
}

func (f *File) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("tokenstore: remove %s: %w", f.path, err)
	}
	return nil
}
