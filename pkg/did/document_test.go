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
	"encoding/base64"
	"encoding/json"
	"testing"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentmesh-project/agentauth-go/pkg/crypto"
)

// newTestDocument builds a valid document for d with the key pair's public
// key registered under the given fragment.
func newTestDocument(t *testing.T, d AgentDID, kp crypto.KeyPair, fragment string) *Document {
	t.Helper()

	mb, err := EncodePublicKeyMultibase(kp.Algorithm(), kp.PublicKey())
	require.NoError(t, err)

	vmType := VMTypeEd25519_2020
	if kp.Algorithm() == crypto.AlgorithmES256K {
		vmType = VMTypeEcdsaSecp256k1_2019
	}

	vmID := string(d) + fragment
	return &Document{
		Context: jsonContext{ContextDIDv1},
		ID:      d,
		VerificationMethod: []VerificationMethod{{
			ID:                 vmID,
			Type:               vmType,
			Controller:         string(d),
			PublicKeyMultibase: mb,
		}},
		Authentication: []string{vmID},
	}
}

// Test parsing a marshaled document round-trips
func TestParseDocument_RoundTrip(t *testing.T) {
	kp, err := crypto.GenerateEd25519KeyPair()
	require.NoError(t, err)

	doc := newTestDocument(t, "did:example:A", kp, "#key-1")
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	parsed, err := ParseDocument(raw)
	require.NoError(t, err)

	assert.Equal(t, doc.ID, parsed.ID)
	require.Len(t, parsed.VerificationMethod, 1)
	assert.Equal(t, doc.VerificationMethod[0].ID, parsed.VerificationMethod[0].ID)
	assert.Equal(t, doc.Authentication, parsed.Authentication)
}

// Test parsing a hand-written document with a string @context
func TestParseDocument_StringContext(t *testing.T) {
	raw := []byte(`{
		"@context": "https://www.w3.org/ns/did/v1",
		"id": "did:example:B",
		"verificationMethod": [{
			"id": "did:example:B#key-1",
			"type": "Ed25519VerificationKey2020",
			"controller": "did:example:B",
			"publicKeyMultibase": "z6MkhaXgBZDvotDkL5257faiztiGiC2QtKLGpbnnEGta2doK"
		}],
		"authentication": ["did:example:B#key-1"]
	}`)

	doc, err := ParseDocument(raw)
	require.NoError(t, err)
	assert.Equal(t, AgentDID("did:example:B"), doc.ID)
	assert.Equal(t, []string{ContextDIDv1}, []string(doc.Context))
}

// Test schema rejection of malformed documents
func TestParseDocument_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{{`},
		{"missing id", `{"verificationMethod": []}`},
		{"id not a DID", `{"id": "example.com", "verificationMethod": []}`},
		{"vm missing type", `{"id": "did:example:A", "verificationMethod": [{"id": "did:example:A#k"}]}`},
		{"authentication as object", `{"id": "did:example:A", "verificationMethod": [], "authentication": [{"id": "x"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tt.raw))
			assert.ErrorIs(t, err, ErrInvalidDocument)
		})
	}
}

// Test the authentication-reference invariant
func TestDocument_Validate_DanglingAuthenticationRef(t *testing.T) {
	kp, err := crypto.GenerateEd25519KeyPair()
	require.NoError(t, err)

	doc := newTestDocument(t, "did:example:A", kp, "#key-1")
	doc.Authentication = append(doc.Authentication, "#key-2")

	err = doc.Validate()
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

// Test verification method lookup in all reference forms
func TestDocument_FindVerificationMethod(t *testing.T) {
	kp, err := crypto.GenerateEd25519KeyPair()
	require.NoError(t, err)
	doc := newTestDocument(t, "did:example:A", kp, "#key-1")

	// Absolute reference
	vm, err := doc.FindVerificationMethod("did:example:A#key-1")
	require.NoError(t, err)
	assert.Equal(t, "did:example:A#key-1", vm.ID)

	// Fragment reference
	vm, err = doc.FindVerificationMethod("#key-1")
	require.NoError(t, err)
	assert.Equal(t, "did:example:A#key-1", vm.ID)

	// Document storing fragment-only ids
	doc.VerificationMethod[0].ID = "#key-1"
	vm, err = doc.FindVerificationMethod("did:example:A#key-1")
	require.NoError(t, err)
	assert.Equal(t, "#key-1", vm.ID)

	// Missing
	_, err = doc.FindVerificationMethod("#key-2")
	assert.ErrorIs(t, err, ErrVerificationMethodNotFound)
}

// Test multibase public key encode/decode round-trip for both algorithms
func TestPublicKeyMultibase_RoundTrip(t *testing.T) {
	for _, generate := range []func() (crypto.KeyPair, error){
		crypto.GenerateEd25519KeyPair,
		crypto.GenerateSecp256k1KeyPair,
	} {
		kp, err := generate()
		require.NoError(t, err)

		mb, err := EncodePublicKeyMultibase(kp.Algorithm(), kp.PublicKey())
		require.NoError(t, err)
		assert.Equal(t, byte('z'), mb[0], "base58btc multibase prefix")

		key, alg, err := DecodePublicKeyMultibase(mb)
		require.NoError(t, err)
		assert.Equal(t, kp.Algorithm(), alg)
		assert.Equal(t, kp.PublicKey(), key)
	}
}

// Test multibase decode failures
func TestDecodePublicKeyMultibase_Errors(t *testing.T) {
	// Not multibase at all
	_, _, err := DecodePublicKeyMultibase("!!!")
	assert.ErrorIs(t, err, crypto.ErrInvalidKey)

	// Valid base58btc but unknown multicodec prefix
	_, _, err = DecodePublicKeyMultibase("z3vQB7B6MrGQZaxCuFg4oh")
	assert.ErrorIs(t, err, crypto.ErrInvalidKey)
}

// Test extracting a public key from the multibase form
func TestVerificationMethod_PublicKey_Multibase(t *testing.T) {
	kp, err := crypto.GenerateSecp256k1KeyPair()
	require.NoError(t, err)

	doc := newTestDocument(t, "did:example:A", kp, "#key-1")
	key, alg, err := doc.VerificationMethod[0].PublicKey()
	require.NoError(t, err)
	assert.Equal(t, crypto.AlgorithmES256K, alg)
	assert.Equal(t, kp.PublicKey(), key)
}

// Test extracting public keys from JWK form
func TestVerificationMethod_PublicKey_JWK(t *testing.T) {
	// Test Case 1: Ed25519 OKP key
	ekp, err := crypto.GenerateEd25519KeyPair()
	require.NoError(t, err)

	vm := VerificationMethod{
		ID:   "did:example:A#key-1",
		Type: VMTypeJsonWebKey2020,
		PublicKeyJwk: &JWK{
			Kty: "OKP",
			Crv: "Ed25519",
			X:   base64.RawURLEncoding.EncodeToString(ekp.PublicKey()),
		},
	}
	key, alg, err := vm.PublicKey()
	require.NoError(t, err)
	assert.Equal(t, crypto.AlgorithmEdDSA, alg)
	assert.Equal(t, ekp.PublicKey(), key)

	// Test Case 2: secp256k1 EC key
	skp, err := crypto.GenerateSecp256k1KeyPair()
	require.NoError(t, err)
	pub, err := ethcrypto.DecompressPubkey(skp.PublicKey())
	require.NoError(t, err)

	xb := pub.X.Bytes()
	yb := pub.Y.Bytes()
	vm = VerificationMethod{
		ID:   "did:example:A#key-2",
		Type: VMTypeJsonWebKey2020,
		PublicKeyJwk: &JWK{
			Kty: "EC",
			Crv: "secp256k1",
			X:   base64.RawURLEncoding.EncodeToString(xb),
			Y:   base64.RawURLEncoding.EncodeToString(yb),
		},
	}
	key, alg, err = vm.PublicKey()
	require.NoError(t, err)
	assert.Equal(t, crypto.AlgorithmES256K, alg)
	assert.Equal(t, skp.PublicKey(), key)

	// Test Case 3: unsupported curve
	vm.PublicKeyJwk = &JWK{Kty: "EC", Crv: "P-256", X: "AA", Y: "AA"}
	_, _, err = vm.PublicKey()
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

// Test verification method without key material
func TestVerificationMethod_PublicKey_Missing(t *testing.T) {
	vm := VerificationMethod{ID: "did:example:A#key-1", Type: VMTypeEd25519_2020}
	_, _, err := vm.PublicKey()
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

// Test the exported single-key document constructor
func TestNewKeyDocument(t *testing.T) {
	kp, err := crypto.GenerateEd25519KeyPair()
	require.NoError(t, err)

	doc, err := NewKeyDocument("did:example:carol", "#key-1", crypto.AlgorithmEdDSA, kp.PublicKey())
	require.NoError(t, err)
	assert.Equal(t, AgentDID("did:example:carol"), doc.ID)
	require.Len(t, doc.VerificationMethod, 1)
	assert.Equal(t, "did:example:carol#key-1", doc.VerificationMethod[0].ID)
	assert.Equal(t, VMTypeEd25519_2020, doc.VerificationMethod[0].Type)

	key, alg, err := doc.VerificationMethod[0].PublicKey()
	require.NoError(t, err)
	assert.Equal(t, crypto.AlgorithmEdDSA, alg)
	assert.Equal(t, kp.PublicKey(), key)

	// The constructed document survives strict parsing.
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	parsed, err := ParseDocument(raw)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, parsed.ID)

	// Test Case 1: fragment must start with '#'.
	_, err = NewKeyDocument("did:example:carol", "key-1", crypto.AlgorithmEdDSA, kp.PublicKey())
	assert.ErrorIs(t, err, ErrInvalidDocument)

	// Test Case 2: dangling authentication reference.
	_, err = NewDocument("did:example:carol", nil, []string{"#missing"})
	assert.ErrorIs(t, err, ErrInvalidDocument)
}
