// Copyright (C) 2026 AgentMesh Project
//
// This file is part of agentauth-go.
//
// agentauth-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// agentauth-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with agentauth-go.  If not, see <https://www.gnu.org/licenses/>.

package session

import (
	"context"
	"sync"
)

// Store is the persistence boundary for sessions. The Manager accepts
// any implementation, so deployments can swap the in-memory default
// for a shared backend. Implementations must treat stored Sessions as
// immutable values.
type Store interface {
	// Put inserts or replaces a session keyed by its ID.
	Put(ctx context.Context, s *Session) error

	// Get returns the session for the token, or ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes the session. Deleting an absent ID is not an error.
	Delete(ctx context.Context, id string) error

	// Range calls fn for each stored session until fn returns false.
	Range(ctx context.Context, fn func(*Session) bool) error

	// Len reports the number of stored sessions, tombstones included.
	Len(ctx context.Context) (int, error)
}

// MemoryStore is the default in-process Store: a map guarded by an
// RWMutex. Validation traffic takes only the read lock, so concurrent
// lookups of different sessions do not contend.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

// Put inserts or replaces a session.
func (ms *MemoryStore) Put(_ context.Context, s *Session) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.sessions[s.ID] = s
	return nil
}

// Get returns the session for the token, or ErrNotFound.
func (ms *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	s, ok := ms.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete removes the session if present.
func (ms *MemoryStore) Delete(_ context.Context, id string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.sessions, id)
	return nil
}

// Range iterates a snapshot of the stored sessions, so fn may call back
// into the store without deadlocking.
func (ms *MemoryStore) Range(_ context.Context, fn func(*Session) bool) error {
	ms.mu.RLock()
	snapshot := make([]*Session, 0, len(ms.sessions))
	for _, s := range ms.sessions {
		snapshot = append(snapshot, s)
	}
	ms.mu.RUnlock()

	for _, s := range snapshot {
		if !fn(s) {
			return nil
		}
	}
	return nil
}

// Len reports the number of stored sessions.
func (ms *MemoryStore) Len(_ context.Context) (int, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.sessions), nil
}
