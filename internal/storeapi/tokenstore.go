package storeapi

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// TokenTTL matches the session cookie lifetime used by the proxy.
const TokenTTL = 30 * 24 * time.Hour

// TokenStore persists the opaque cart session token between requests.
// Load returns the empty string when no usable token exists.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
}

// MemoryTokenStore keeps the token for the lifetime of the process.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (m *MemoryTokenStore) Load() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

func (m *MemoryTokenStore) Save(token string) error {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

// FileTokenStore keeps the token durable across process restarts, the
// client-side counterpart of the proxy's session cookie. Tokens older
// than TokenTTL are treated as absent.
type FileTokenStore struct {
	mu   sync.Mutex
	path string
	ttl  time.Duration
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path, ttl: TokenTTL}
}

type storedToken struct {
	Token   string    `json:"token"`
	SavedAt time.Time `json:"savedAt"`
}

func (f *FileTokenStore) Load() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}

	var st storedToken
	if err := json.Unmarshal(data, &st); err != nil {
		// A corrupt file is the same as no session.
		return "", nil
	}
	if st.Token == "" || time.Since(st.SavedAt) > f.ttl {
		return "", nil
	}
	return st.Token, nil
}

func (f *FileTokenStore) Save(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(storedToken{Token: token, SavedAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o600)
}
