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

// Package session issues and tracks the bearer tokens that let an
// authenticated agent skip re-signing every request.
//
// # Lifecycle
//
// A session is created after a signed request verifies, lives for a
// configurable TTL (one hour by default), and can be extended or
// revoked at any point:
//
//	mgr := session.NewManager(session.WithTTL(30 * time.Minute))
//	defer mgr.Stop()
//
//	s, err := mgr.Create(ctx, callerDID, targetDID)
//	...
//	s, err = mgr.Validate(ctx, token)
//
// Validation keeps the failure modes apart: unknown tokens report
// ErrNotFound, while recently expired or revoked tokens report
// ErrExpired and ErrRevoked until the background sweeper retires the
// tombstone.
//
// # Storage
//
// The Manager persists through the Store interface. The default
// MemoryStore keeps sessions in an RWMutex-guarded map; deployments
// that need sessions shared across processes implement Store over
// their own backend and pass it with WithStore.
package session
