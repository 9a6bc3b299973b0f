package mfa

import (
	"testing"
	"time"

	"github.com/tech-arch1tect/mfakit/config"
)

func TestMemoryLockoutStore(t *testing.T) {
	t.Run("NewMemoryLockoutStore", func(t *testing.T) {
		store := NewMemoryLockoutStore()
		if store == nil {
			t.Fatal("expected store to be created")
		}
		if store.data == nil {
			t.Error("expected data map to be initialized")
		}
	})

	t.Run("Get non-existent key", func(t *testing.T) {
		store := NewMemoryLockoutStore()

		state, exists := store.Get("non-existent")
		if exists {
			t.Error("expected key to not exist")
		}
		if state.Failures != 0 {
			t.Errorf("expected zero failures, got %d", state.Failures)
		}
		if !state.LockedUntil.IsZero() {
			t.Error("expected zero locked-until time")
		}
	})

	t.Run("Set and Get", func(t *testing.T) {
		store := NewMemoryLockoutStore()
		lockedUntil := time.Now().Add(15 * time.Minute)

		store.Set("u1", LockoutState{Failures: 3, LockedUntil: lockedUntil})

		state, exists := store.Get("u1")
		if !exists {
			t.Fatal("expected key to exist")
		}
		if state.Failures != 3 {
			t.Errorf("expected 3 failures, got %d", state.Failures)
		}
		if !state.LockedUntil.Equal(lockedUntil) {
			t.Errorf("expected locked-until %v, got %v", lockedUntil, state.LockedUntil)
		}
	})

	t.Run("Reset", func(t *testing.T) {
		store := NewMemoryLockoutStore()

		store.Set("u1", LockoutState{Failures: 4})
		store.Reset("u1")

		if _, exists := store.Get("u1"); exists {
			t.Error("expected key to be removed")
		}
	})

	t.Run("Reset unknown key is a no-op", func(t *testing.T) {
		store := NewMemoryLockoutStore()
		store.Reset("never-seen")
	})

	t.Run("keys are independent", func(t *testing.T) {
		store := NewMemoryLockoutStore()

		store.Set("u1", LockoutState{Failures: 2})
		store.Set("u2", LockoutState{Failures: 5})
		store.Reset("u1")

		if _, exists := store.Get("u1"); exists {
			t.Error("expected u1 to be removed")
		}
		state, exists := store.Get("u2")
		if !exists || state.Failures != 5 {
			t.Errorf("expected u2 untouched with 5 failures, got %+v exists=%v", state, exists)
		}
	})
}

func TestNewLockoutStore(t *testing.T) {
	t.Run("memory store", func(t *testing.T) {
		store := NewLockoutStore(&config.LockoutConfig{Store: "memory"})
		if _, ok := store.(*MemoryLockoutStore); !ok {
			t.Errorf("expected *MemoryLockoutStore, got %T", store)
		}
	})

	t.Run("unknown store falls back to memory", func(t *testing.T) {
		store := NewLockoutStore(&config.LockoutConfig{Store: "carrier-pigeon"})
		if _, ok := store.(*MemoryLockoutStore); !ok {
			t.Errorf("expected *MemoryLockoutStore, got %T", store)
		}
	})
}
