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
	"crypto/rand"
	"fmt"
)

// ed25519KeyPair implements KeyPair for Ed25519.
type ed25519KeyPair struct {
	priv ed25519.PrivateKey
}

var _ KeyPair = (*ed25519KeyPair)(nil)

// GenerateEd25519KeyPair generates a new Ed25519 key pair.
func GenerateEd25519KeyPair() (KeyPair, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ed25519 key: %w", err)
	}
	return &ed25519KeyPair{priv: priv}, nil
}

// Ed25519KeyPairFromBytes loads a key pair from either the 32-byte seed or
// the 64-byte expanded private key.
func Ed25519KeyPairFromBytes(d []byte) (KeyPair, error) {
	switch len(d) {
	case ed25519.SeedSize:
		return &ed25519KeyPair{priv: ed25519.NewKeyFromSeed(d)}, nil
	case ed25519.PrivateKeySize:
		priv := make(ed25519.PrivateKey, ed25519.PrivateKeySize)
		copy(priv, d)
		return &ed25519KeyPair{priv: priv}, nil
	default:
		return nil, fmt.Errorf("%w: ed25519 private key must be %d or %d bytes, got %d",
			ErrInvalidKey, ed25519.SeedSize, ed25519.PrivateKeySize, len(d))
	}
}

func (k *ed25519KeyPair) Algorithm() Algorithm {
	return AlgorithmEdDSA
}

func (k *ed25519KeyPair) Sign(message []byte) ([]byte, error) {
	return ed25519.Sign(k.priv, message), nil
}

func (k *ed25519KeyPair) PublicKey() []byte {
	return []byte(k.priv.Public().(ed25519.PublicKey))
}

func (k *ed25519KeyPair) PrivateKey() []byte {
	out := make([]byte, len(k.priv))
	copy(out, k.priv)
	return out
}
