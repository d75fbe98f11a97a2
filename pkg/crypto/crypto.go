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

import (
	"crypto/ed25519"
	"crypto/sha256"
	"errors"
	"fmt"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// Algorithm identifies a signature algorithm. The tag travels on the wire
// alongside signatures and inside DID documents; it is always explicit and
// never inferred from key length.
type Algorithm string

const (
	// AlgorithmES256K is ECDSA over the secp256k1 curve. Messages are
	// hashed with SHA-256 before signing; wire signatures are the 64-byte
	// R || S concatenation.
	AlgorithmES256K Algorithm = "ES256K"

	// AlgorithmEdDSA is Ed25519. The message is signed directly (Ed25519
	// hashes internally); wire signatures are the standard 64 bytes.
	AlgorithmEdDSA Algorithm = "EdDSA"
)

const (
	// SignatureSize is the wire size of signatures for both supported
	// algorithms.
	SignatureSize = 64

	// Secp256k1PublicKeySize is the compressed SEC1 public key size used
	// on the wire and in DID documents.
	Secp256k1PublicKeySize = 33

	// Secp256k1PrivateKeySize is the raw private scalar size.
	Secp256k1PrivateKeySize = 32
)

var (
	// ErrUnsupportedAlgorithm is returned for algorithm tags this package
	// does not implement.
	ErrUnsupportedAlgorithm = errors.New("crypto: unsupported algorithm")

	// ErrInvalidKey is returned for malformed key material.
	ErrInvalidKey = errors.New("crypto: invalid key material")
)

// ParseAlgorithm validates an algorithm tag from the wire.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case AlgorithmES256K:
		return AlgorithmES256K, nil
	case AlgorithmEdDSA:
		return AlgorithmEdDSA, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, s)
	}
}

// Sign signs message with the given raw private key under the given
// algorithm. For ES256K the key is the 32-byte secp256k1 scalar; for EdDSA
// either the 32-byte seed or the 64-byte expanded private key is accepted.
func Sign(alg Algorithm, privateKey, message []byte) ([]byte, error) {
	switch alg {
	case AlgorithmES256K:
		kp, err := Secp256k1KeyPairFromBytes(privateKey)
		if err != nil {
			return nil, err
		}
		return kp.Sign(message)
	case AlgorithmEdDSA:
		kp, err := Ed25519KeyPairFromBytes(privateKey)
		if err != nil {
			return nil, err
		}
		return kp.Sign(message)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg)
	}
}

// Verify reports whether signature is a valid signature of message by the
// holder of publicKey under the given algorithm. A well-formed but wrong
// signature yields (false, nil); malformed key material or an unsupported
// algorithm yields a non-nil error.
func Verify(alg Algorithm, publicKey, message, signature []byte) (bool, error) {
	switch alg {
	case AlgorithmES256K:
		if len(publicKey) != Secp256k1PublicKeySize {
			return false, fmt.Errorf("%w: secp256k1 public key must be %d bytes, got %d",
				ErrInvalidKey, Secp256k1PublicKeySize, len(publicKey))
		}
		if len(signature) != SignatureSize {
			return false, nil
		}
		digest := sha256.Sum256(message)
		return ethcrypto.VerifySignature(publicKey, digest[:], signature), nil
	case AlgorithmEdDSA:
		if len(publicKey) != ed25519.PublicKeySize {
			return false, fmt.Errorf("%w: ed25519 public key must be %d bytes, got %d",
				ErrInvalidKey, ed25519.PublicKeySize, len(publicKey))
		}
		if len(signature) != SignatureSize {
			return false, nil
		}
		return ed25519.Verify(ed25519.PublicKey(publicKey), message, signature), nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg)
	}
}
