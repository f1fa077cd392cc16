package credstore

import (
	"context"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// MemoryStore keeps credentials in process memory. Accounts do not survive a
// restart; it exists for tests and throwaway deployments.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]string // username -> bcrypt hash
}

func NewMemory() *MemoryStore {
	return &MemoryStore{users: make(map[string]string)}
}

func (s *MemoryStore) Register(_ context.Context, username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; exists {
		return ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	s.users[username] = string(hashed)
	return nil
}

func (s *MemoryStore) Validate(_ context.Context, username, password string) (bool, error) {
	s.mu.RLock()
	hashed, exists := s.users[username]
	s.mu.RUnlock()

	if !exists {
		return false, nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
	return err == nil, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
