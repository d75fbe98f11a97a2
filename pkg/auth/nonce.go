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

package auth

import (
	"context"
	"sync"
	"time"

	"github.com/agentmesh-project/agentauth-go/pkg/did"
)

// DefaultNonceWindow is how long a used nonce is remembered. It must
// cover the timestamp window on both sides, otherwise a replay could
// arrive after the nonce was forgotten but still inside the accepted
// clock skew.
const DefaultNonceWindow = 10 * time.Minute

// NonceTracker remembers which nonces a caller has already used.
// Implementations must make Seen atomic: when two requests race on the
// same (caller, nonce) pair, exactly one observes false.
type NonceTracker interface {
	Seen(ctx context.Context, caller did.AgentDID, nonce string) (bool, error)
}

// MemoryNonceTracker is the default in-process tracker: a mutex-guarded
// map pruned of entries older than the window.
type MemoryNonceTracker struct {
	window time.Duration
	now    func() time.Time

	mu        sync.Mutex
	seen      map[nonceKey]time.Time
	lastPrune time.Time
}

type nonceKey struct {
	caller did.AgentDID
	nonce  string
}

var _ NonceTracker = (*MemoryNonceTracker)(nil)

// NewMemoryNonceTracker creates a tracker with the given replay
// window; zero or negative selects DefaultNonceWindow.
func NewMemoryNonceTracker(window time.Duration) *MemoryNonceTracker {
	if window <= 0 {
		window = DefaultNonceWindow
	}
	return &MemoryNonceTracker{
		window: window,
		now:    time.Now,
		seen:   make(map[nonceKey]time.Time),
	}
}

// Seen records the nonce and reports whether the caller already used
// it inside the window.
func (t *MemoryNonceTracker) Seen(_ context.Context, caller did.AgentDID, nonce string) (bool, error) {
	key := nonceKey{caller: caller, nonce: nonce}
	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.pruneLocked(now)

	if at, ok := t.seen[key]; ok && now.Sub(at) <= t.window {
		return true, nil
	}
	t.seen[key] = now
	return false, nil
}

// pruneLocked drops entries older than the window. Runs at most once
// per window quarter so steady traffic does not rescan the map on
// every request.
func (t *MemoryNonceTracker) pruneLocked(now time.Time) {
	if now.Sub(t.lastPrune) < t.window/4 {
		return
	}
	t.lastPrune = now
	for key, at := range t.seen {
		if now.Sub(at) > t.window {
			delete(t.seen, key)
		}
	}
}

// Len reports the number of remembered nonces, stale entries included.
func (t *MemoryNonceTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seen)
}
