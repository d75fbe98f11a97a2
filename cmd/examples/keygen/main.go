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
	"os"
	"path/filepath"

	"github.com/agentmesh-project/agentauth-go/pkg/crypto"
	"github.com/agentmesh-project/agentauth-go/pkg/did"
	"github.com/agentmesh-project/agentauth-go/pkg/resolver"
)

// This example generates keys for an agent that signs with either
// algorithm, assembles its DID document, and writes it where the file
// resolver can load it.
func main() {
	fmt.Println("=== Multi-Key Agent Document Example ===")

	ctx := context.Background()

	// Step 1: Create an agent DID
	fmt.Println("Step 1: Creating multi-key agent...")
	agentDID := did.AgentDID("did:example:multikey")
	fmt.Printf("  Agent DID: %s\n\n", agentDID)

	// Step 2: Generate one key per supported algorithm
	fmt.Println("Step 2: Generating cryptographic keys...")

	fmt.Println("  Generating secp256k1 key (ES256K)...")
	secpKey, err := crypto.GenerateSecp256k1KeyPair()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("  ✓ secp256k1 key generated")

	fmt.Println("  Generating Ed25519 key (EdDSA)...")
	edKey, err := crypto.GenerateEd25519KeyPair()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("  ✓ Ed25519 key generated")
	fmt.Println()

	// Step 3: Assemble the DID document with both verification methods
	fmt.Println("Step 3: Assembling the DID document...")

	secpMB, err := did.EncodePublicKeyMultibase(secpKey.Algorithm(), secpKey.PublicKey())
	if err != nil {
		log.Fatal(err)
	}
	edMB, err := did.EncodePublicKeyMultibase(edKey.Algorithm(), edKey.PublicKey())
	if err != nil {
		log.Fatal(err)
	}

	doc, err := did.NewDocument(agentDID, []did.VerificationMethod{
		{
			ID:                 string(agentDID) + "#key-1",
			Type:               did.VMTypeEcdsaSecp256k1_2019,
			Controller:         string(agentDID),
			PublicKeyMultibase: secpMB,
		},
		{
			ID:                 string(agentDID) + "#key-2",
			Type:               did.VMTypeEd25519_2020,
			Controller:         string(agentDID),
			PublicKeyMultibase: edMB,
		},
	}, []string{
		string(agentDID) + "#key-1",
		string(agentDID) + "#key-2",
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("  ✓ Document carries %d verification methods\n", len(doc.VerificationMethod))
	fmt.Printf("    #key-1: %s\n", doc.VerificationMethod[0].Type)
	fmt.Printf("    #key-2: %s\n\n", doc.VerificationMethod[1].Type)

	// Step 4: Write the document for the file resolver
	fmt.Println("Step 4: Writing did.json...")

	dir, err := os.MkdirTemp("", "agentauth-docs-")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	path := filepath.Join(dir, "multikey.json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("  ✓ Written to %s\n\n", path)
	fmt.Println(string(raw))

	// Step 5: Load it back through the file resolver
	fmt.Println("\nStep 5: Resolving from disk...")

	fileResolver, err := resolver.NewFile(dir)
	if err != nil {
		log.Fatal(err)
	}
	resolved, err := fileResolver.Resolve(ctx, agentDID)
	if err != nil {
		log.Fatal(err)
	}

	// Either key can carry an authentication.
	for _, ref := range []string{"#key-1", "#key-2"} {
		vm, err := resolved.FindVerificationMethod(ref)
		if err != nil {
			log.Fatal(err)
		}
		_, alg, err := vm.PublicKey()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("  ✓ %s resolves to a %s key\n", ref, alg)
	}

	// Step 6: The Ed25519 key also works as a self-certifying did:key
	fmt.Println("\nStep 6: Deriving a did:key identifier...")

	keyDID, err := did.KeyDID(edKey.Algorithm(), edKey.PublicKey())
	if err != nil {
		log.Fatal(err)
	}
	derived, err := resolver.NewKey().Resolve(ctx, keyDID)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("  %s\n", keyDID)
	fmt.Printf("  ✓ Document derived locally with %d verification method\n", len(derived.VerificationMethod))

	fmt.Println("\n=== Example completed successfully! ===")
}
