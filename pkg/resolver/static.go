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

// Static resolves DIDs from a fixed in-memory document set. It backs
// the did:example method and gives tests full control over what
// resolves to what.
type Static struct {
	mu   sync.RWMutex
	docs map[did.AgentDID]*did.Document
}

var _ did.Resolver = (*Static)(nil)

// NewStatic creates a resolver pre-loaded with the given documents,
// indexed by their IDs.
func NewStatic(docs ...*did.Document) *Static {
	s := &Static{docs: make(map[did.AgentDID]*did.Document, len(docs))}
	for _, doc := range docs {
		s.docs[doc.ID] = doc
	}
	return s
}

// Add registers or replaces a document under its ID.
func (s *Static) Add(doc *did.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
}

// Remove drops the document for a DID if present.
func (s *Static) Remove(d did.AgentDID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, d)
}

// Resolve returns the stored document or did.ErrDocumentNotFound.
func (s *Static) Resolve(_ context.Context, d did.AgentDID) (*did.Document, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[d]
	if !ok {
		return nil, fmt.Errorf("%w: %s", did.ErrDocumentNotFound, d)
	}
	return doc, nil
}
