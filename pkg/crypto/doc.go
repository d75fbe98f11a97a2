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

// Package crypto provides the signature primitives used by the DID
// authentication protocol.
//
// Two algorithm families are supported, selected by an explicit tag:
//
//   - ES256K (ECDSA over secp256k1, SHA-256 digest) for EVM-style identities
//   - EdDSA (Ed25519) for Ed25519-based identities
//
// # Key Pairs
//
//	kp, err := crypto.GenerateEd25519KeyPair()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sig, err := kp.Sign([]byte("message"))
//	ok, err := crypto.Verify(kp.Algorithm(), kp.PublicKey(), []byte("message"), sig)
//
// # Raw Key Material
//
// Verification works from the raw public key bytes carried in DID documents,
// without reconstructing a key pair:
//
//	ok, err := crypto.Verify(crypto.AlgorithmES256K, compressedPub, msg, sig)
//
// Public keys are wire-encoded as compressed SEC1 (33 bytes) for secp256k1
// and raw 32 bytes for Ed25519. Signatures are 64 bytes for both algorithms;
// ES256K signatures are the R || S concatenation without a recovery id.
//
// # Concurrency
//
// All functions are pure and safe for concurrent use; key pairs are immutable
// after construction.
package crypto
