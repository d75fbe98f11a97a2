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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"

	"github.com/agentmesh-project/agentauth-go/pkg/crypto"
	"github.com/agentmesh-project/agentauth-go/pkg/did"
	"github.com/agentmesh-project/agentauth-go/pkg/resolver"
)

// This example serves DID documents over HTTP the way a did:wba agent
// would publish them, then resolves them with the caching HTTP
// resolver and a composite that also understands did:key.
func main() {
	fmt.Println("agentauth-go - DID Resolution Example")
	fmt.Println("=====================================")

	ctx := context.Background()

	// 1. Start a document server. Documents are registered after the
	// listener is up, once the host:port is known.
	fmt.Println("\n1. Starting DID document server...")

	var fetches atomic.Int64
	documents := map[string][]byte{}
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		raw, ok := documents[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fetches.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write(raw)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	host := strings.TrimPrefix(srv.URL, "http://")
	fmt.Printf("   Serving on %s\n", host)

	// 2. Publish a did:wba document for an agent on this host
	fmt.Println("\n2. Publishing a did:wba document...")

	keyPair, err := crypto.GenerateEd25519KeyPair()
	if err != nil {
		log.Fatalf("Failed to generate key pair: %v", err)
	}

	// The port is percent-encoded inside the DID's host segment.
	agentDID := did.AgentDID("did:wba:" + strings.ReplaceAll(host, ":", "%3A") + ":agents:alice")
	doc, err := did.NewKeyDocument(agentDID, "#key-1", keyPair.Algorithm(), keyPair.PublicKey())
	if err != nil {
		log.Fatalf("Failed to build document: %v", err)
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal document: %v", err)
	}
	documents["/agents/alice/did.json"] = raw

	fmt.Printf("   Agent DID: %s\n", agentDID)
	fmt.Println("   Document served at /agents/alice/did.json")

	// 3. Resolve it over HTTP
	fmt.Println("\n3. Resolving over HTTP...")

	// Insecure fetching is for local demos only.
	httpResolver := resolver.NewHTTP(resolver.WithInsecure())
	resolved, err := httpResolver.Resolve(ctx, agentDID)
	if err != nil {
		log.Fatalf("Resolution failed: %v", err)
	}
	fmt.Printf("   Resolved %s\n", resolved.ID)
	fmt.Printf("   Verification methods: %d\n", len(resolved.VerificationMethod))
	fmt.Printf("   Fetches so far: %d\n", fetches.Load())

	// 4. Resolve again: served from cache, no second fetch
	fmt.Println("\n4. Resolving again (cache)...")

	if _, err := httpResolver.Resolve(ctx, agentDID); err != nil {
		log.Fatalf("Resolution failed: %v", err)
	}
	fmt.Printf("   Fetches so far: %d (cache hit)\n", fetches.Load())

	// 5. Invalidate and resolve: refetched
	fmt.Println("\n5. Invalidating the cache entry...")

	httpResolver.Invalidate(agentDID)
	if _, err := httpResolver.Resolve(ctx, agentDID); err != nil {
		log.Fatalf("Resolution failed: %v", err)
	}
	fmt.Printf("   Fetches so far: %d (refetched)\n", fetches.Load())

	// 6. Composite resolution: did:wba over HTTP, did:key derived locally
	fmt.Println("\n6. Composite resolution with did:key...")

	composite := resolver.NewComposite()
	composite.Mount(did.MethodWBA, httpResolver)
	composite.Mount(did.MethodKey, resolver.NewKey())

	keyDID, err := did.KeyDID(keyPair.Algorithm(), keyPair.PublicKey())
	if err != nil {
		log.Fatalf("Failed to build did:key: %v", err)
	}
	derived, err := composite.Resolve(ctx, keyDID)
	if err != nil {
		log.Fatalf("Resolution failed: %v", err)
	}
	fmt.Printf("   %s\n", keyDID)
	fmt.Printf("   Derived locally, no fetch: %d fetches total\n", fetches.Load())
	fmt.Printf("   Verification method type: %s\n", derived.VerificationMethod[0].Type)

	if _, err := composite.Resolve(ctx, agentDID); err != nil {
		log.Fatalf("Resolution failed: %v", err)
	}
	fmt.Println("   did:wba still routes through the HTTP resolver")

	fmt.Println("\n✅ Example completed!")
}
