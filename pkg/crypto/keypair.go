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

package crypto

// KeyPair is a signing key with its algorithm tag. Implementations are
// immutable after construction and safe for concurrent use.
type KeyPair interface {
	// Algorithm returns the signature algorithm this key pair uses.
	Algorithm() Algorithm

	// Sign signs the message per the key's algorithm, producing a wire
	// signature (64 bytes for both supported algorithms).
	Sign(message []byte) ([]byte, error)

	// PublicKey returns the wire encoding of the public key: compressed
	// SEC1 (33 bytes) for secp256k1, raw 32 bytes for Ed25519.
	PublicKey() []byte

	// PrivateKey returns the raw private key material. Callers own the
	// custody of the returned bytes.
	PrivateKey() []byte
}
