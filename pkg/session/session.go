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
	"errors"
	"time"

	"github.com/agentmesh-project/agentauth-go/pkg/did"
)

// Validation errors. ErrExpired and ErrRevoked are only observable
// while the tombstone is still held; once sweeping removes the entry
// the same token reports ErrNotFound.
var (
	ErrNotFound = errors.New("session: not found")
	ErrExpired  = errors.New("session: expired")
	ErrRevoked  = errors.New("session: revoked")
)

// Session records one authenticated pairing between two agents.
// Sessions are immutable once stored; Extend and Revoke replace the
// stored value instead of mutating it, so a Session read from the
// store is always safe to use without locking.
type Session struct {
	// ID is the session token handed to the caller, 32 random bytes in
	// base64url form.
	ID string

	// CallerDID is the authenticated requesting agent.
	CallerDID did.AgentDID

	// TargetDID is the agent the session was issued by.
	TargetDID did.AgentDID

	// CreatedAt is the issue time.
	CreatedAt time.Time

	// ExpiresAt is the moment after which the session stops validating.
	// The boundary itself is inclusive.
	ExpiresAt time.Time

	// RevokedAt is zero for live sessions.
	RevokedAt time.Time
}

// Revoked reports whether the session has been explicitly invalidated.
func (s *Session) Revoked() bool {
	return !s.RevokedAt.IsZero()
}

// Expired reports whether the session is past its expiry at the given
// instant. A session is still valid exactly at ExpiresAt.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

func (s *Session) clone() *Session {
	c := *s
	return &c
}
