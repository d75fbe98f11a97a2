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

// Package header implements the Authorization header codec for
// DID-based agent authentication.
//
// # Wire Format
//
// A signed request carries a DIDAuth header:
//
//	Authorization: DIDAuth did="did:wba:a.example:agent",
//	    target_did="did:wba:b.example:agent",
//	    verification_method="#key-1", nonce="7d3a...",
//	    timestamp="2026-01-02T15:04:05Z", alg="EdDSA",
//	    signature="dGVzdC1zaWduYXR1cmU"
//
// Parameters appear in a fixed order, values are quoted and
// percent-escaped, and the signature is base64url without padding.
// Decoding is strict and round-trips exactly: for any valid
// Authorization a, Decode(a.Encode()) reproduces a.
//
// Follow-up requests inside an established session use the compact
// Bearer form instead:
//
//	Authorization: Bearer mJ1u...
//
// # Signature Base
//
// The signature covers a canonical byte string derived from the
// request, one component per line:
//
//	"@method": POST
//	"@target-uri": https://b.example/rpc
//	"@did": did:wba:a.example:agent
//	"@target-did": did:wba:b.example:agent
//	"@nonce": 7d3a...
//	"@created": 2026-01-02T15:04:05Z
//
// Signer and verifier both rebuild this base from the live request, so
// any tampering with the covered components invalidates the signature.
//
// # Signing
//
// Sign assembles and signs an Authorization in one step:
//
//	auth, err := header.Sign("POST", "https://b.example/rpc",
//	    callerDID, targetDID, "#key-1", nonce, time.Now(), keyPair)
//	req.Header.Set(header.HeaderAuthorization, auth.Encode())
package header
