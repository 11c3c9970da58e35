package client

import (
    "os"
    "strings"
    "sync"
)

// TokenStore persists the session token between runs, the way the web app
// kept it in browser-local storage.
type TokenStore interface {
    Load() (string, error)
    Save(token string) error
    Clear() error
}

type FileTokenStore struct {
    Path string
}

func (f *FileTokenStore) Load() (string, error) {
    data, err := os.ReadFile(f.Path)
    if err != nil {
        if os.IsNotExist(err) {
            return "", nil
        }
        return "", err
    }
    return strings.TrimSpace(string(data)), nil
}

func (f *FileTokenStore) Save(token string) error {
    return os.WriteFile(f.Path, []byte(token), 0o600)
}

func (f *FileTokenStore) Clear() error {
    err := os.Remove(f.Path)
    if os.IsNotExist(err) {
        return nil
    }
    return err
}

type MemoryTokenStore struct {
    mu    sync.Mutex
    token string
}

func NewMemoryTokenStore() *MemoryTokenStore {
    return &MemoryTokenStore{}
}

func (m *MemoryTokenStore) Load() (string, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    return m.token, nil
}

func (m *MemoryTokenStore) Save(token string) error {
    m.mu.Lock()
    defer m.mu.Unlock()
    m.token = token
    return nil
}

func (m *MemoryTokenStore) Clear() error {
    m.mu.Lock()
    defer m.mu.Unlock()
    m.token = ""
    return nil
}
