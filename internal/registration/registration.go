package registration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store records which executable the session login process should run.
type Store interface {
	// SetSelf registers the current executable as the session shell.
	SetSelf() error
	// RestoreDefault restores the default shell registration.
	RestoreDefault(defaultShell string) error
}

// Disabled is a no-op store used whenever dangerous operations are
// disabled. Both operations succeed without touching anything.
type Disabled struct{}

// NewDisabled creates a no-op registration store.
func NewDisabled() *Disabled { return &Disabled{} }

// SetSelf does nothing.
func (*Disabled) SetSelf() error { return nil }

// RestoreDefault does nothing.
func (*Disabled) RestoreDefault(string) error { return nil }

// record is the persisted shape of the registration value.
type record struct {
	Shell string `json:"shell"`
}

// FileStore persists the registration as a JSON file. It stands in for the
// registry-backed collaborator during development.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed registration store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// SetSelf writes the current executable path as the registered shell.
func (f *FileStore) SetSelf() error {
	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to resolve own executable: %w", err)
	}
	return f.write(record{Shell: self})
}

// RestoreDefault writes the default shell as the registered shell.
func (f *FileStore) RestoreDefault(defaultShell string) error {
	return f.write(record{Shell: defaultShell})
}

func (f *FileStore) write(rec record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode registration: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("failed to create registration dir: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write registration: %w", err)
	}
	return nil
}
