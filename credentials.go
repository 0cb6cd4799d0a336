package farmacia

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// MemoryStore is a process-local CredentialStore for tests and sessions that
// should not outlive the process.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	has   bool
}

var _ CredentialStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Put(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.has = true
	return nil
}

func (m *MemoryStore) Get() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.has {
		return "", false
	}
	return m.token, true
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.has = false
	return nil
}

// FileStore persists the raw token in a single file so the session survives a
// full process restart. Writes go through a temp file and rename so a crash
// never leaves a half-written credential behind.
type FileStore struct {
	mu   sync.Mutex
	path string
}

var _ CredentialStore = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Put(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".credential-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(token); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, f.path)
}

func (f *FileStore) Get() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", false
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", false
	}
	return token, true
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
