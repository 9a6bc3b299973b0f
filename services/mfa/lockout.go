package mfa

import (
	"sync"
	"time"

	"github.com/tech-arch1tect/mfakit/config"
)

// LockoutState tracks failed verification attempts for one identity.
// LockedUntil is zero while the identity is not locked.
type LockoutState struct {
	Failures    int
	LockedUntil time.Time
}

// LockoutStore holds lockout state keyed by identity. The default memory
// store is volatile; multi-instance deployments can supply a durable
// implementation.
type LockoutStore interface {
	Get(key string) (LockoutState, bool)
	Set(key string, state LockoutState)
	Reset(key string)
}

type MemoryLockoutStore struct {
	mu   sync.RWMutex
	data map[string]LockoutState
}

func NewMemoryLockoutStore() *MemoryLockoutStore {
	store := &MemoryLockoutStore{
		data: make(map[string]LockoutState),
	}

	go store.cleanup()

	return store
}

func (s *MemoryLockoutStore) Get(key string) (LockoutState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, exists := s.data[key]
	return state, exists
}

func (s *MemoryLockoutStore) Set(key string, state LockoutState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = state
}

func (s *MemoryLockoutStore) Reset(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
}

func (s *MemoryLockoutStore) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		now := time.Now()

		for key, state := range s.data {
			if !state.LockedUntil.IsZero() && now.After(state.LockedUntil) {
				delete(s.data, key)
			}
		}

		s.mu.Unlock()
	}
}

func NewLockoutStore(lockoutConfig *config.LockoutConfig) LockoutStore {
	var store LockoutStore
	switch lockoutConfig.Store {
	case "memory":
		fallthrough
	default:
		store = NewMemoryLockoutStore()
	}

	return store
}
