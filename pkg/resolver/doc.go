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

// Package resolver provides did.Resolver implementations for turning a
// DID into its document.
//
// # Resolvers
//
//   - HTTP fetches did:wba documents from the web location encoded in
//     the DID, with single-flight deduplication and a TTL cache.
//   - Key derives did:key documents locally from the embedded key.
//   - Static serves a fixed in-memory set, backing did:example.
//   - File loads documents from *.json files in a directory.
//   - Composite routes to any of the above by DID method.
//
// A typical production mount:
//
//	res := resolver.NewDefault()
//
// and for tests:
//
//	res := resolver.NewStatic(aliceDoc, bobDoc)
//
// # did:wba Document Locations
//
// The method-specific ID is a host followed by optional colon-separated
// path segments; a percent-encoded colon carries a port. Examples:
//
//	did:wba:example.com              -> https://example.com/.well-known/did.json
//	did:wba:example.com:user:alice   -> https://example.com/user/alice/did.json
//	did:wba:example.com%3A8800:svc   -> https://example.com:8800/svc/did.json
package resolver
