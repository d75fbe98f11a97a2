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

package resolver

import (
	"context"
	"fmt"
	"sync"

	"github.com/agentmesh-project/agentauth-go/pkg/did"
)

// Composite routes each resolution to the child resolver mounted for
// the DID's method.
type Composite struct {
	mu       sync.RWMutex
	children map[string]did.Resolver
}

var _ did.Resolver = (*Composite)(nil)

// NewComposite creates an empty composite resolver.
func NewComposite() *Composite {
	return &Composite{children: make(map[string]did.Resolver)}
}

// NewDefault creates a composite with the standard mounts: did:wba
// over HTTP and did:key derived locally.
func NewDefault(opts ...HTTPOption) *Composite {
	c := NewComposite()
	c.Mount(did.MethodWBA, NewHTTP(opts...))
	c.Mount(did.MethodKey, NewKey())
	return c
}

// Mount installs or replaces the resolver for a method.
func (c *Composite) Mount(method string, r did.Resolver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.children[method] = r
}

// Resolve dispatches to the child for the DID's method. DIDs of a
// method with no mount report did.ErrUnknownMethod.
func (c *Composite) Resolve(ctx context.Context, d did.AgentDID) (*did.Document, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	method := d.Method()
	c.mu.RLock()
	child, ok := c.children[method]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: no resolver for method %q", did.ErrUnknownMethod, method)
	}
	return child.Resolve(ctx, d)
}
