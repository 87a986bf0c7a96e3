package users

import (
	"context"
	"sync"
)

// Memory is a process-local Repository. Records vanish when the process
// exits.
type Memory struct {
	mu    sync.Mutex
	users map[string]User
}

// NewMemory returns an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{users: make(map[string]User)}
}

func (m *Memory) LoadAll(_ context.Context) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := NewSnapshot()
	for name, u := range m.users {
		snap.Users[name] = u.Clone()
	}
	return snap, nil
}

func (m *Memory) Get(_ context.Context, username string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	c := u.Clone()
	return &c, nil
}

func (m *Memory) Upsert(_ context.Context, u User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.Username] = u.Clone()
	return nil
}
