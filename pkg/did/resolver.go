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

package did

import (
	"context"
	"errors"
)

var (
	// ErrDocumentNotFound is returned by resolvers when the DID has no
	// document. Distinguishable from transient resolution failure.
	ErrDocumentNotFound = errors.New("did: document not found")

	// ErrResolutionTimeout is returned when resolution exceeds the
	// caller's deadline.
	ErrResolutionTimeout = errors.New("did: resolution timed out")
)

// Resolver resolves a DID to its document. Implementations live outside
// the authentication core (filesystem, cache, network); the core only
// consumes this contract. Resolve must honor ctx's deadline and surface
// ErrResolutionTimeout instead of hanging.
type Resolver interface {
	Resolve(ctx context.Context, d AgentDID) (*Document, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, d AgentDID) (*Document, error)

func (f ResolverFunc) Resolve(ctx context.Context, d AgentDID) (*Document, error) {
	return f(ctx, d)
}
