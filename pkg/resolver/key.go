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

	"github.com/agentmesh-project/agentauth-go/pkg/did"
)

// Key resolves did:key identifiers by deriving the document from the
// key embedded in the DID. No network or storage is involved, so
// resolution never fails for a well-formed did:key.
type Key struct {
	handler *did.KeyHandler
}

var _ did.Resolver = (*Key)(nil)

// NewKey creates a did:key resolver.
func NewKey() *Key {
	return &Key{handler: did.NewKeyHandler()}
}

// Resolve derives the document for a did:key identifier.
func (k *Key) Resolve(_ context.Context, d did.AgentDID) (*did.Document, error) {
	return k.handler.DeriveDocument(d)
}
