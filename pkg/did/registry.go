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
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrDuplicateMethod is returned when registering a method name that
	// already has a handler. Registration conflicts are configuration
	// errors and must fail fast at startup.
	ErrDuplicateMethod = errors.New("did: method already registered")

	// ErrUnknownMethod is returned when no handler is registered for a
	// DID's method token.
	ErrUnknownMethod = errors.New("did: unknown DID method")
)

// MethodHandler verifies identities of one DID method. Handlers are
// registered once at startup and invoked concurrently afterwards; they must
// be stateless or internally synchronized.
type MethodHandler interface {
	// Method returns the method token this handler serves, e.g. "wba".
	Method() string

	// ValidateDID checks the method-specific identifier syntax.
	ValidateDID(d AgentDID) error

	// ParseDocument parses and validates a resolved document for this
	// method.
	ParseDocument(raw []byte) (*Document, error)

	// VerifySignature verifies signature over message against the
	// verification method vmRef inside doc.
	VerifySignature(doc *Document, vmRef string, message, signature []byte) (bool, error)
}

// Registry dispatches DIDs to method handlers by their method token.
// Writes happen at startup behind a mutex; lookups are concurrent reads.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]MethodHandler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]MethodHandler)}
}

// DefaultRegistry creates a registry with the wba, key and example handlers
// registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	// Shipped handlers cannot collide in a fresh registry.
	_ = r.Register(NewWBAHandler())
	_ = r.Register(NewKeyHandler())
	_ = r.Register(NewStandardHandler(MethodExample))
	return r
}

// Register adds a handler under its method name. Registering a method twice
// fails with ErrDuplicateMethod; use RegisterOverride to replace a handler
// deliberately.
func (r *Registry) Register(h MethodHandler) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[h.Method()]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateMethod, h.Method())
	}
	r.handlers[h.Method()] = h
	return nil
}

// RegisterOverride replaces any existing handler for the method.
func (r *Registry) RegisterOverride(h MethodHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[h.Method()] = h
}

// ResolveHandler returns the handler for the DID's method token.
func (r *Registry) ResolveHandler(d AgentDID) (MethodHandler, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	method := d.Method()

	r.mu.RLock()
	h, ok := r.handlers[method]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	return h, nil
}

// Methods returns the registered method names, sorted.
func (r *Registry) Methods() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// VerifySignature dispatches signature verification to the handler for the
// DID's method: the verification method vmRef is looked up inside doc and
// the signature checked with the algorithm that method declares.
func (r *Registry) VerifySignature(d AgentDID, doc *Document, vmRef string, message, signature []byte) (bool, error) {
	h, err := r.ResolveHandler(d)
	if err != nil {
		return false, err
	}
	return h.VerifySignature(doc, vmRef, message, signature)
}
