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
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/multiformats/go-multibase"

	"github.com/agentmesh-project/agentauth-go/pkg/crypto"
)

// Multicodec varint prefixes for the supported public key types.
var (
	multicodecEd25519Pub   = []byte{0xed, 0x01}
	multicodecSecp256k1Pub = []byte{0xe7, 0x01}
)

// EncodePublicKeyMultibase encodes a raw public key as a base58btc
// multibase string with its multicodec prefix — the publicKeyMultibase
// representation used in documents and in did:key identifiers.
func EncodePublicKeyMultibase(alg crypto.Algorithm, key []byte) (string, error) {
	var prefix []byte
	switch alg {
	case crypto.AlgorithmEdDSA:
		if len(key) != ed25519.PublicKeySize {
			return "", fmt.Errorf("%w: ed25519 public key must be %d bytes",
				crypto.ErrInvalidKey, ed25519.PublicKeySize)
		}
		prefix = multicodecEd25519Pub
	case crypto.AlgorithmES256K:
		if len(key) != crypto.Secp256k1PublicKeySize {
			return "", fmt.Errorf("%w: secp256k1 public key must be %d compressed bytes",
				crypto.ErrInvalidKey, crypto.Secp256k1PublicKeySize)
		}
		prefix = multicodecSecp256k1Pub
	default:
		return "", fmt.Errorf("%w: %q", crypto.ErrUnsupportedAlgorithm, alg)
	}
	return multibase.Encode(multibase.Base58BTC, append(append([]byte{}, prefix...), key...))
}

// DecodePublicKeyMultibase decodes a publicKeyMultibase string into the raw
// public key bytes and the algorithm implied by the multicodec prefix.
func DecodePublicKeyMultibase(s string) ([]byte, crypto.Algorithm, error) {
	_, data, err := multibase.Decode(s)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", crypto.ErrInvalidKey, err)
	}
	switch {
	case bytes.HasPrefix(data, multicodecEd25519Pub):
		key := data[len(multicodecEd25519Pub):]
		if len(key) != ed25519.PublicKeySize {
			return nil, "", fmt.Errorf("%w: ed25519 key payload is %d bytes",
				crypto.ErrInvalidKey, len(key))
		}
		return key, crypto.AlgorithmEdDSA, nil
	case bytes.HasPrefix(data, multicodecSecp256k1Pub):
		key := data[len(multicodecSecp256k1Pub):]
		if len(key) != crypto.Secp256k1PublicKeySize {
			return nil, "", fmt.Errorf("%w: secp256k1 key payload is %d bytes",
				crypto.ErrInvalidKey, len(key))
		}
		return key, crypto.AlgorithmES256K, nil
	default:
		return nil, "", fmt.Errorf("%w: unknown multicodec prefix", crypto.ErrInvalidKey)
	}
}
