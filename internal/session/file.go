package session

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// FileStore keeps the token in a single file, so a CLI profile keeps its
// session across invocations.
type FileStore struct {
	fs   afero.Fs
	path string
}

// NewFileStore returns a FileStore writing to path on fs.
func NewFileStore(fs afero.Fs, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

// DefaultPath is $HOME/.panel/session, or a relative .panel/session when
// the home directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".panel", "session")
	}
	return filepath.Join(home, ".panel", "session")
}

func (s *FileStore) Get() (Token, bool) {
	raw, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("session file unreadable", "path", s.path, "error", err)
		}
		return "", false
	}
	t := Token(strings.TrimSpace(string(raw)))
	return t, t.Present()
}

func (s *FileStore) Set(t Token) {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		slog.Error("failed to create session directory", "path", s.path, "error", err)
		return
	}
	if err := afero.WriteFile(s.fs, s.path, []byte(t), 0o600); err != nil {
		slog.Error("failed to write session file", "path", s.path, "error", err)
	}
}

func (s *FileStore) Clear() {
	if err := s.fs.Remove(s.path); err != nil && !os.IsNotExist(err) {
		slog.Error("failed to remove session file", "path", s.path, "error", err)
	}
}
