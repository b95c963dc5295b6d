package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/cleanaid/internal/errors"
)

// DefaultFileName is the session file inside the cleanaid home directory.
const DefaultFileName = "session.yaml"

// FileStore persists the session as YAML, readable only by the owner.
type FileStore struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// NewFileStore creates a store backed by path. The file is created on the first Set.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

// DefaultPath returns ~/.cleanaid/session.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeConfigMissing, "cannot resolve home directory", err)
	}
	return filepath.Join(home, ".cleanaid", DefaultFileName), nil
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// Get reads the session file. A missing, empty or expired session reads as ErrNoSession.
func (f *FileStore) Get(ctx context.Context) (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, fmt.Sprintf("failed to read session file: %s", f.path), err)
	}

	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.NewFileUnmarshalError(f.path, "YAML", err)
	}
	if !s.usable(f.now()) {
		return nil, ErrNoSession
	}
	return &s, nil
}

// Set writes the session atomically with mode 0600.
func (f *FileStore) Set(ctx context.Context, s *Session) error {
	if s == nil || s.Token == "" {
		return errInvalidSession()
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to encode session", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to create session directory", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, fmt.Sprintf("failed to write session file: %s", tmp), err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeFileWriteFailed, fmt.Sprintf("failed to replace session file: %s", f.path), err)
	}
	return nil
}

// Clear removes the session file.
func (f *FileStore) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, fmt.Sprintf("failed to remove session file: %s", f.path), err)
	}
	return nil
}

func errInvalidSession() error {
	return errors.New(errors.ErrCodeSessionInvalid, "session must carry a token")
}
