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

// Package did provides DID parsing, DID documents, and the pluggable
// method registry the authentication core dispatches through.
//
// # DIDs and Documents
//
//	d := did.AgentDID("did:wba:example.com:agents:alice")
//	method := d.Method() // "wba"
//
//	doc, err := did.ParseDocument(raw)
//	vm, err := doc.FindVerificationMethod("#key-1")
//	key, alg, err := vm.PublicKey()
//
// Documents are validated twice on ingestion: against an embedded JSON
// schema, then structurally (every authentication reference must resolve to
// a verification method in the same document).
//
// # Method Registry
//
// The registry maps a DID's method token to the handler that can validate
// identifiers and verify signatures for that method:
//
//	registry := did.DefaultRegistry() // wba, key, example
//
//	err := registry.Register(myHandler)          // ErrDuplicateMethod on conflict
//	handler, err := registry.ResolveHandler(d)   // ErrUnknownMethod if unregistered
//	ok, err := registry.VerifySignature(d, doc, "#key-1", message, sig)
//
// Handlers are registered at startup; lookups afterwards are concurrent
// lock-free reads. New identity schemes plug in without touching the
// authentication state machine.
//
// # Shipped Methods
//
//   - wba: web-based-agent DIDs; documents served from the DID's domain
//     (did:wba:example.com:agents:alice →
//     https://example.com/agents/alice/did.json, pathless DIDs →
//     /.well-known/did.json)
//   - key: self-certifying did:key; the document derives from the
//     identifier, no resolution round-trip
//   - example: static documents supplied out of band (tests, demos)
//
// # Resolution
//
// Resolution is external to this package: implementations of the Resolver
// contract live in pkg/resolver. Misses return ErrDocumentNotFound and
// deadline overruns ErrResolutionTimeout so callers can tell identity-not-
// found apart from infrastructure failure.
package did
