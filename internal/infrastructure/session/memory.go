package session

import "sync"

// MemoryStorage is an in-process TokenStorage used by tests and by
// sessions that should not outlive the process.
type MemoryStorage struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStorage returns an empty in-memory TokenStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Load() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

func (s *MemoryStorage) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
