package client

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Session is the locally persisted login state.
type Session struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	User         json.RawMessage `json:"user"`
	IsNewUser    bool            `json:"is_new_user,omitempty"`
}

// SessionStore keeps the login state between client restarts.
type SessionStore interface {
	// Load returns the stored session and whether one exists.
	Load() (Session, bool, error)
	Save(Session) error
	Clear() error
}

// MemoryStore holds the session in process memory only.
type MemoryStore struct {
	mu   sync.Mutex
	sess Session
	ok   bool
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Load() (Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess, m.ok, nil
}

func (m *MemoryStore) Save(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = s
	m.ok = true
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = Session{}
	m.ok = false
	return nil
}

// FileStore persists the session as a JSON file, created with owner-only
// permissions since it holds tokens.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

func (f *FileStore) Load() (Session, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	buf, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, err
	}
	var s Session
	if err := json.Unmarshal(buf, &s); err != nil {
		return Session{}, false, err
	}
	return s, true, nil
}

func (f *FileStore) Save(s Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	buf, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.path, buf, 0o600)
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
