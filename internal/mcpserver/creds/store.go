// Package creds reads and writes the on-disk bearer credentials the bridge
// authenticates to the range backend with. The bridge re-reads the store on
// demand so a login performed by a separate CLI invocation is picked up
// without a restart.
package creds

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Credentials is the bearer credential pair sourced from the store
type Credentials struct {
	AuthToken     string `json:"authToken"`
	EncryptionKey string `json:"encryptionKey,omitempty"`
}

// IsZero reports whether no credential is present
func (c Credentials) IsZero() bool {
	return c.AuthToken == ""
}

// Equal reports whether two credential pairs are identical
func (c Credentials) Equal(other Credentials) bool {
	return c.AuthToken == other.AuthToken && c.EncryptionKey == other.EncryptionKey
}

// Store is a file-backed credential store
type Store struct {
	path string
}

// NewStore creates a store bound to the given file path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the file path backing the store
func (s *Store) Path() string {
	return s.path
}

// Load reads the current credentials. A missing file is not an error; it
// yields zero credentials (anonymous).
func (s *Store) Load() (Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Credentials{}, nil
		}
		return Credentials{}, fmt.Errorf("failed to read credentials: %w", err)
	}

	var c Credentials
	if err := json.Unmarshal(data, &c); err != nil {
		return Credentials{}, fmt.Errorf("failed to parse credentials: %w", err)
	}

	return c, nil
}

// Save writes credentials back to the store. Only login (and logout, which
// saves zero credentials) ever writes; everything else is read-only.
func (s *Store) Save(c Credentials) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}

	return nil
}
