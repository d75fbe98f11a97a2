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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test key pair generation for both algorithms
func TestGenerateKeyPairs(t *testing.T) {
	tests := []struct {
		name        string
		generate    func() (KeyPair, error)
		algorithm   Algorithm
		pubKeySize  int
		privKeySize int
	}{
		{
			name:        "secp256k1",
			generate:    GenerateSecp256k1KeyPair,
			algorithm:   AlgorithmES256K,
			pubKeySize:  Secp256k1PublicKeySize,
			privKeySize: Secp256k1PrivateKeySize,
		},
		{
			name:        "ed25519",
			generate:    GenerateEd25519KeyPair,
			algorithm:   AlgorithmEdDSA,
			pubKeySize:  ed25519.PublicKeySize,
			privKeySize: ed25519.PrivateKeySize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kp, err := tt.generate()
			require.NoError(t, err)

			assert.Equal(t, tt.algorithm, kp.Algorithm())
			assert.Len(t, kp.PublicKey(), tt.pubKeySize)
			assert.Len(t, kp.PrivateKey(), tt.privKeySize)
		})
	}
}

// Test sign/verify round-trip for both algorithms
func TestSignVerify_RoundTrip(t *testing.T) {
	message := []byte("authenticate me")

	for _, generate := range []func() (KeyPair, error){
		GenerateSecp256k1KeyPair,
		GenerateEd25519KeyPair,
	} {
		kp, err := generate()
		require.NoError(t, err)

		sig, err := kp.Sign(message)
		require.NoError(t, err)
		assert.Len(t, sig, SignatureSize)

		ok, err := Verify(kp.Algorithm(), kp.PublicKey(), message, sig)
		require.NoError(t, err)
		assert.True(t, ok, "algorithm %s", kp.Algorithm())
	}
}

// Test that a single-bit mutation of the message fails verification
func TestVerify_MutatedMessage(t *testing.T) {
	message := []byte("original message")

	for _, generate := range []func() (KeyPair, error){
		GenerateSecp256k1KeyPair,
		GenerateEd25519KeyPair,
	} {
		kp, err := generate()
		require.NoError(t, err)

		sig, err := kp.Sign(message)
		require.NoError(t, err)

		mutated := make([]byte, len(message))
		copy(mutated, message)
		mutated[0] ^= 0x01

		ok, err := Verify(kp.Algorithm(), kp.PublicKey(), mutated, sig)
		require.NoError(t, err)
		assert.False(t, ok, "algorithm %s", kp.Algorithm())
	}
}

// Test that a single-bit mutation of the signature fails verification
func TestVerify_MutatedSignature(t *testing.T) {
	message := []byte("original message")

	for _, generate := range []func() (KeyPair, error){
		GenerateSecp256k1KeyPair,
		GenerateEd25519KeyPair,
	} {
		kp, err := generate()
		require.NoError(t, err)

		sig, err := kp.Sign(message)
		require.NoError(t, err)

		sig[10] ^= 0x01

		ok, err := Verify(kp.Algorithm(), kp.PublicKey(), message, sig)
		require.NoError(t, err)
		assert.False(t, ok, "algorithm %s", kp.Algorithm())
	}
}

// Test verification with the wrong public key
func TestVerify_WrongKey(t *testing.T) {
	message := []byte("message")

	signer, err := GenerateEd25519KeyPair()
	require.NoError(t, err)
	other, err := GenerateEd25519KeyPair()
	require.NoError(t, err)

	sig, err := signer.Sign(message)
	require.NoError(t, err)

	ok, err := Verify(AlgorithmEdDSA, other.PublicKey(), message, sig)
	require.NoError(t, err)
	assert.False(t, ok)
}

// Test that a truncated signature verifies false without error
func TestVerify_TruncatedSignature(t *testing.T) {
	message := []byte("message")

	kp, err := GenerateSecp256k1KeyPair()
	require.NoError(t, err)

	sig, err := kp.Sign(message)
	require.NoError(t, err)

	ok, err := Verify(AlgorithmES256K, kp.PublicKey(), message, sig[:32])
	require.NoError(t, err)
	assert.False(t, ok)
}

// Test malformed public key material
func TestVerify_InvalidKey(t *testing.T) {
	message := []byte("message")
	sig := make([]byte, SignatureSize)

	ok, err := Verify(AlgorithmES256K, []byte{0x01, 0x02}, message, sig)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrInvalidKey)

	ok, err = Verify(AlgorithmEdDSA, []byte{0x01, 0x02}, message, sig)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrInvalidKey)
}

// Test unsupported algorithm tags
func TestUnsupportedAlgorithm(t *testing.T) {
	_, err := Sign(Algorithm("RS256"), []byte{0x01}, []byte("m"))
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)

	ok, err := Verify(Algorithm("RS256"), []byte{0x01}, []byte("m"), []byte{0x02})
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}

// Test package-level Sign with raw key material
func TestSign_RawKeys(t *testing.T) {
	message := []byte("raw key signing")

	// Test Case 1: secp256k1 private scalar
	skp, err := GenerateSecp256k1KeyPair()
	require.NoError(t, err)

	sig, err := Sign(AlgorithmES256K, skp.PrivateKey(), message)
	require.NoError(t, err)

	ok, err := Verify(AlgorithmES256K, skp.PublicKey(), message, sig)
	require.NoError(t, err)
	assert.True(t, ok)

	// Test Case 2: ed25519 full private key
	ekp, err := GenerateEd25519KeyPair()
	require.NoError(t, err)

	sig, err = Sign(AlgorithmEdDSA, ekp.PrivateKey(), message)
	require.NoError(t, err)

	ok, err = Verify(AlgorithmEdDSA, ekp.PublicKey(), message, sig)
	require.NoError(t, err)
	assert.True(t, ok)

	// Test Case 3: ed25519 seed form
	seed := ekp.PrivateKey()[:ed25519.SeedSize]
	sig, err = Sign(AlgorithmEdDSA, seed, message)
	require.NoError(t, err)

	ok, err = Verify(AlgorithmEdDSA, ekp.PublicKey(), message, sig)
	require.NoError(t, err)
	assert.True(t, ok)
}

// Test loading key pairs from raw bytes preserves the public key
func TestKeyPairFromBytes_RoundTrip(t *testing.T) {
	skp, err := GenerateSecp256k1KeyPair()
	require.NoError(t, err)

	loaded, err := Secp256k1KeyPairFromBytes(skp.PrivateKey())
	require.NoError(t, err)
	assert.Equal(t, skp.PublicKey(), loaded.PublicKey())

	ekp, err := GenerateEd25519KeyPair()
	require.NoError(t, err)

	loaded, err = Ed25519KeyPairFromBytes(ekp.PrivateKey())
	require.NoError(t, err)
	assert.Equal(t, ekp.PublicKey(), loaded.PublicKey())
}

// Test key loaders reject wrong-length material
func TestKeyPairFromBytes_InvalidLength(t *testing.T) {
	_, err := Secp256k1KeyPairFromBytes(make([]byte, 16))
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = Ed25519KeyPairFromBytes(make([]byte, 16))
	assert.ErrorIs(t, err, ErrInvalidKey)
}

// Test ParseAlgorithm accepts known tags and rejects others
func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		input   string
		want    Algorithm
		wantErr bool
	}{
		{"ES256K", AlgorithmES256K, false},
		{"EdDSA", AlgorithmEdDSA, false},
		{"es256k", "", true},
		{"RS256", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		alg, err := ParseAlgorithm(tt.input)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnsupportedAlgorithm, "input %q", tt.input)
		} else {
			require.NoError(t, err, "input %q", tt.input)
			assert.Equal(t, tt.want, alg)
		}
	}
}
