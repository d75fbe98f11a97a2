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
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/agentmesh-project/agentauth-go/pkg/did"
	"github.com/agentmesh-project/agentauth-go/pkg/observe"
)

// Defaults applied by NewManager.
const (
	// DefaultTTL is the lifetime of a newly issued session.
	DefaultTTL = time.Hour

	// DefaultSweepInterval is how often expired entries are collected.
	DefaultSweepInterval = time.Minute

	// DefaultTombstoneTTL is how long expired and revoked entries are
	// kept so that validation can still report why a token stopped
	// working instead of a bare not-found.
	DefaultTombstoneTTL = 10 * time.Minute

	// tokenSize is the entropy of a session token in bytes.
	tokenSize = 32
)

// Manager issues and validates session tokens. All methods are safe
// for concurrent use.
type Manager struct {
	store         Store
	ttl           time.Duration
	sweepInterval time.Duration
	tombstoneTTL  time.Duration
	now           func() time.Time
	logger        *slog.Logger
	metrics       *observe.Metrics

	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// Option configures a Manager.
type Option func(*Manager)

// WithStore replaces the in-memory session store.
func WithStore(s Store) Option {
	return func(m *Manager) { m.store = s }
}

// WithTTL sets the lifetime of newly issued sessions.
func WithTTL(d time.Duration) Option {
	return func(m *Manager) { m.ttl = d }
}

// WithSweepInterval sets how often expired entries are collected.
// Zero disables the background sweeper.
func WithSweepInterval(d time.Duration) Option {
	return func(m *Manager) { m.sweepInterval = d }
}

// WithTombstoneTTL sets how long expired and revoked entries remain
// observable before the sweeper removes them.
func WithTombstoneTTL(d time.Duration) Option {
	return func(m *Manager) { m.tombstoneTTL = d }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithMetrics enables instrument recording.
func WithMetrics(mx *observe.Metrics) Option {
	return func(m *Manager) { m.metrics = mx }
}

// NewManager creates a Manager and, unless the sweep interval is zero,
// starts its background sweeper. Call Stop when done with it.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		store:         NewMemoryStore(),
		ttl:           DefaultTTL,
		sweepInterval: DefaultSweepInterval,
		tombstoneTTL:  DefaultTombstoneTTL,
		now:           time.Now,
		logger:        observe.NopLogger(),
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.sweepInterval > 0 {
		m.wg.Add(1)
		go m.sweepLoop()
	}
	return m
}

// Stop halts the background sweeper. It does not touch stored sessions.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() { close(m.done) })
	m.wg.Wait()
}

// TTL returns the lifetime applied to new sessions.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create issues a session for an authenticated caller/target pairing
// and returns it with a fresh token in ID.
func (m *Manager) Create(ctx context.Context, caller, target did.AgentDID) (*Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	now := m.now()
	s := &Session{
		ID:        token,
		CallerDID: caller,
		TargetDID: target,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Put(ctx, s); err != nil {
		return nil, fmt.Errorf("session: store: %w", err)
	}

	m.metrics.AddActiveSessions(ctx, 1)
	m.logger.Debug("session issued",
		"component", "session",
		"caller", s.CallerDID,
		"expires_at", s.ExpiresAt)
	return s, nil
}

// Validate returns the session for a token. It distinguishes unknown
// tokens (ErrNotFound), expired sessions (ErrExpired), and revoked
// sessions (ErrRevoked).
func (m *Manager) Validate(ctx context.Context, token string) (*Session, error) {
	s, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if s.Revoked() {
		return nil, ErrRevoked
	}
	if s.Expired(m.now()) {
		return nil, ErrExpired
	}
	return s, nil
}

// Extend moves a live session's expiry to now+d and returns the
// updated session. Expired and revoked sessions cannot be extended.
func (m *Manager) Extend(ctx context.Context, token string, d time.Duration) (*Session, error) {
	if d <= 0 {
		return nil, fmt.Errorf("session: non-positive extension %v", d)
	}
	s, err := m.Validate(ctx, token)
	if err != nil {
		return nil, err
	}

	next := s.clone()
	next.ExpiresAt = m.now().Add(d)
	if err := m.store.Put(ctx, next); err != nil {
		return nil, fmt.Errorf("session: store: %w", err)
	}
	return next, nil
}

// Revoke invalidates a session immediately. Revoking an already
// revoked session is a no-op; revoking an unknown token reports
// ErrNotFound.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	s, err := m.store.Get(ctx, token)
	if err != nil {
		return err
	}
	if s.Revoked() {
		return nil
	}

	next := s.clone()
	next.RevokedAt = m.now()
	if err := m.store.Put(ctx, next); err != nil {
		return fmt.Errorf("session: store: %w", err)
	}

	m.metrics.AddActiveSessions(ctx, -1)
	m.logger.Debug("session revoked", "component", "session", "caller", s.CallerDID)
	return nil
}

// Count reports the number of live sessions, excluding tombstones.
func (m *Manager) Count(ctx context.Context) (int, error) {
	now := m.now()
	n := 0
	err := m.store.Range(ctx, func(s *Session) bool {
		if !s.Revoked() && !s.Expired(now) {
			n++
		}
		return true
	})
	return n, err
}

// Sweep removes entries whose tombstone period has lapsed and returns
// how many were deleted. The background sweeper calls this on its
// interval; it is exported so deployments with the sweeper disabled
// can collect on their own schedule.
func (m *Manager) Sweep(ctx context.Context) (int, error) {
	now := m.now()
	var stale []*Session
	err := m.store.Range(ctx, func(s *Session) bool {
		switch {
		case s.Revoked() && now.Sub(s.RevokedAt) > m.tombstoneTTL:
			stale = append(stale, s)
		case s.Expired(now) && now.Sub(s.ExpiresAt) > m.tombstoneTTL:
			stale = append(stale, s)
		}
		return true
	})
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, s := range stale {
		if err := m.store.Delete(ctx, s.ID); err != nil {
			return removed, err
		}
		if !s.Revoked() {
			// Expired entries leave the gauge here; revoked ones left
			// it when Revoke ran.
			m.metrics.AddActiveSessions(ctx, -1)
		}
		removed++
	}
	return removed, nil
}

func (m *Manager) sweepLoop() {
	defer m.wg.Done()
	ticker := time.NewTicker(m.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			n, err := m.Sweep(context.Background())
			if err != nil {
				m.logger.Warn("session sweep failed", "component", "session", "error", err)
				continue
			}
			if n > 0 {
				m.logger.Debug("session sweep", "component", "session", "removed", n)
			}
		}
	}
}

func newToken() (string, error) {
	buf := make([]byte, tokenSize)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("session: token entropy: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
