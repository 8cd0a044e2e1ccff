// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jeranaias/bottrainer-tui/internal/util"
)

// =============================================================================
// BACKEND INTERFACE
// =============================================================================

// Backend is the durable layer behind a Store. Implementations must
// tolerate Load before any Save and Clear on a missing record.
type Backend interface {
	Load() ([]byte, error)
	Save(data []byte) error
	Clear() error
}

// =============================================================================
// FILE BACKEND
// =============================================================================

// FileBackend persists session state as a JSON file.
type FileBackend struct {
	path string
}

// NewFileBackend creates a backend writing to the given path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// DefaultPath returns the per-user session file location. The path is
// stable across invocations so a login from one command is visible to
// the next; the file lives next to the rest of the client state under
// the user's home directory and is removed on logout.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "bottrainer-session.json")
	}
	return filepath.Join(home, ".bottrainer", "session.json")
}

// Path returns the file location.
func (b *FileBackend) Path() string {
	return b.path
}

// Load reads the persisted session. A missing file is not an error.
func (b *FileBackend) Load() ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	return data, err
}

// Save writes session state atomically with owner-only permissions.
func (b *FileBackend) Save(data []byte) error {
	if err := util.AtomicWriteFile(b.path, data, 0600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Clear removes the session file.
func (b *FileBackend) Clear() error {
	err := os.Remove(b.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// =============================================================================
// DIRECT STORAGE READS
// =============================================================================

// ReadStoredToken loads the access token straight from the session
// file, bypassing any in-memory Store. The HTTP layer reads the token
// this way on every request so a wipe by another component takes
// effect immediately.
func ReadStoredToken(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return ""
	}
	return st.Token
}

// WipeStored deletes the session file. Errors are ignored; a missing
// file already satisfies the caller.
func WipeStored(path string) {
	_ = os.Remove(path)
}
