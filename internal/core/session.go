package core

import (
	"carecore/pkg/domain"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sync"
)

// SessionCache persists the authenticated user's public identity between
// process restarts, the way the legacy system kept it in tab-scoped storage.
// Implementations must never be handed a credential; the service strips it
// before caching.
type SessionCache interface {
	Load() (domain.User, bool, error)
	Save(user domain.User) error
	Clear() error
}

// WithSessionCache attaches a session cache. On construction the service
// restores any cached identity so startup can bypass the login screen.
func WithSessionCache(cache SessionCache) ServiceOption {
	return func(s *Service) {
		if cache == nil {
			return
		}
		s.sessionCache = cache
		if user, ok, err := cache.Load(); err != nil {
			s.logger.Warn("session restore failed", "error", err)
		} else if ok {
			public := user.Public()
			s.session = &public
		}
	}
}

// MemorySessionCache keeps the session in process memory.
type MemorySessionCache struct {
	mu   sync.Mutex
	user *domain.User
}

// NewMemorySessionCache returns an empty in-memory session cache.
func NewMemorySessionCache() *MemorySessionCache { return &MemorySessionCache{} }

func (c *MemorySessionCache) Load() (domain.User, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return domain.User{}, false, nil
	}
	return *c.user, true, nil
}

func (c *MemorySessionCache) Save(user domain.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	u := user
	c.user = &u
	return nil
}

func (c *MemorySessionCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = nil
	return nil
}

// FileSessionCache stores the session as a small JSON file.
type FileSessionCache struct {
	path string
	mu   sync.Mutex
}

// NewFileSessionCache returns a cache persisting to path.
func NewFileSessionCache(path string) *FileSessionCache {
	return &FileSessionCache{path: path}
}

func (c *FileSessionCache) Load() (domain.User, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, err
	}
	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return domain.User{}, false, err
	}
	return user, true, nil
}

func (c *FileSessionCache) Save(user domain.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, raw, 0o600)
}

func (c *FileSessionCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := os.Remove(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
