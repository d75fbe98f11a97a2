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
	"crypto/ecdsa"
	"crypto/sha256"
	"fmt"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// secp256k1KeyPair implements KeyPair over the secp256k1 curve.
type secp256k1KeyPair struct {
	priv *ecdsa.PrivateKey
}

var _ KeyPair = (*secp256k1KeyPair)(nil)

// GenerateSecp256k1KeyPair generates a new secp256k1 key pair.
func GenerateSecp256k1KeyPair() (KeyPair, error) {
	priv, err := ethcrypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate secp256k1 key: %w", err)
	}
	return &secp256k1KeyPair{priv: priv}, nil
}

// Secp256k1KeyPairFromBytes loads a key pair from the 32-byte private
// scalar.
func Secp256k1KeyPairFromBytes(d []byte) (KeyPair, error) {
	if len(d) != Secp256k1PrivateKeySize {
		return nil, fmt.Errorf("%w: secp256k1 private key must be %d bytes, got %d",
			ErrInvalidKey, Secp256k1PrivateKeySize, len(d))
	}
	priv, err := ethcrypto.ToECDSA(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return &secp256k1KeyPair{priv: priv}, nil
}

func (k *secp256k1KeyPair) Algorithm() Algorithm {
	return AlgorithmES256K
}

// Sign hashes the message with SHA-256 and signs the digest. The recovery
// id produced by the underlying library is stripped; wire signatures are
// R || S only.
func (k *secp256k1KeyPair) Sign(message []byte) ([]byte, error) {
	digest := sha256.Sum256(message)
	sig, err := ethcrypto.Sign(digest[:], k.priv)
	if err != nil {
		return nil, fmt.Errorf("secp256k1 signing failed: %w", err)
	}
	return sig[:SignatureSize], nil
}

func (k *secp256k1KeyPair) PublicKey() []byte {
	return ethcrypto.CompressPubkey(&k.priv.PublicKey)
}

func (k *secp256k1KeyPair) PrivateKey() []byte {
	return ethcrypto.FromECDSA(k.priv)
}
