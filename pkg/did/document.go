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
	"errors"
	"fmt"
	"strings"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/agentmesh-project/agentauth-go/pkg/crypto"
)

// Verification method type identifiers accepted in documents.
const (
	VMTypeEcdsaSecp256k1_2019 = "EcdsaSecp256k1VerificationKey2019"
	VMTypeEd25519_2018        = "Ed25519VerificationKey2018"
	VMTypeEd25519_2020        = "Ed25519VerificationKey2020"
	VMTypeJsonWebKey2020      = "JsonWebKey2020"
)

// ContextDIDv1 is the W3C DID core JSON-LD context.
const ContextDIDv1 = "https://www.w3.org/ns/did/v1"

var (
	// ErrInvalidDocument is returned when a DID document fails parsing,
	// schema validation, or its internal invariants.
	ErrInvalidDocument = errors.New("did: invalid document")

	// ErrVerificationMethodNotFound is returned when a referenced
	// verification method is absent from the document.
	ErrVerificationMethodNotFound = errors.New("did: verification method not found")
)

// Document is a resolved DID document. Documents are read-only once
// resolved; the authentication core never mutates them.
type Document struct {
	Context            jsonContext          `json:"@context,omitempty"`
	ID                 AgentDID             `json:"id"`
	Controller         string               `json:"controller,omitempty"`
	VerificationMethod []VerificationMethod `json:"verificationMethod"`
	Authentication     []string             `json:"authentication,omitempty"`
	Service            []Service            `json:"service,omitempty"`
}

// VerificationMethod is a named public key entry inside a document. Key
// material is carried as publicKeyMultibase (multicodec-prefixed base58btc)
// or publicKeyJwk.
type VerificationMethod struct {
	ID                 string `json:"id"`
	Type               string `json:"type"`
	Controller         string `json:"controller,omitempty"`
	PublicKeyMultibase string `json:"publicKeyMultibase,omitempty"`
	PublicKeyJwk       *JWK   `json:"publicKeyJwk,omitempty"`
}

// JWK is the subset of RFC 7517 needed for the supported key types.
type JWK struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	Y   string `json:"y,omitempty"`
}

// Service is an optional service endpoint entry.
type Service struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	ServiceEndpoint string `json:"serviceEndpoint"`
}

// jsonContext tolerates both string and array forms of @context.
type jsonContext []string

func (c *jsonContext) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*c = jsonContext{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*c = jsonContext(many)
	return nil
}

func (c jsonContext) MarshalJSON() ([]byte, error) {
	if len(c) == 1 {
		return json.Marshal(c[0])
	}
	return json.Marshal([]string(c))
}

// NewDocument assembles a document with the standard @context and
// validates it. Authentication references may use absolute or bare
// fragment form; each must match one of the verification methods.
func NewDocument(id AgentDID, vms []VerificationMethod, authRefs []string) (*Document, error) {
	doc := &Document{
		Context:            jsonContext{ContextDIDv1},
		ID:                 id,
		VerificationMethod: vms,
		Authentication:     authRefs,
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// NewKeyDocument builds the common single-key document: one multibase
// verification method under the given fragment, referenced for
// authentication.
func NewKeyDocument(id AgentDID, fragment string, alg crypto.Algorithm, publicKey []byte) (*Document, error) {
	if !strings.HasPrefix(fragment, "#") {
		return nil, fmt.Errorf("%w: fragment %q must start with '#'", ErrInvalidDocument, fragment)
	}
	mb, err := EncodePublicKeyMultibase(alg, publicKey)
	if err != nil {
		return nil, err
	}
	vmType := VMTypeEd25519_2020
	if alg == crypto.AlgorithmES256K {
		vmType = VMTypeEcdsaSecp256k1_2019
	}
	vmID := string(id) + fragment
	return NewDocument(id, []VerificationMethod{{
		ID:                 vmID,
		Type:               vmType,
		Controller:         string(id),
		PublicKeyMultibase: mb,
	}}, []string{vmID})
}

// ParseDocument strictly parses and validates a DID document: JSON decode,
// schema validation, then structural invariants. Failures wrap
// ErrInvalidDocument.
func ParseDocument(raw []byte) (*Document, error) {
	if err := validateDocumentJSON(raw); err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks the document's internal invariants: a well-formed id,
// non-empty verification method ids, and every authentication reference
// resolving to a verification method present in this document.
func (d *Document) Validate() error {
	if err := d.ID.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	for i := range d.VerificationMethod {
		if d.VerificationMethod[i].ID == "" {
			return fmt.Errorf("%w: verification method %d has no id", ErrInvalidDocument, i)
		}
		if d.VerificationMethod[i].Type == "" {
			return fmt.Errorf("%w: verification method %q has no type", ErrInvalidDocument, d.VerificationMethod[i].ID)
		}
	}
	for _, ref := range d.Authentication {
		if _, err := d.FindVerificationMethod(ref); err != nil {
			return fmt.Errorf("%w: authentication reference %q has no matching verification method",
				ErrInvalidDocument, ref)
		}
	}
	return nil
}

// FindVerificationMethod locates the verification method matching ref. The
// reference may be absolute ("did:...#key-1") or a bare fragment
// ("#key-1"); documents may likewise store either form.
func (d *Document) FindVerificationMethod(ref string) (*VerificationMethod, error) {
	abs := ref
	if strings.HasPrefix(ref, "#") {
		abs = string(d.ID) + ref
	}
	for i := range d.VerificationMethod {
		vm := &d.VerificationMethod[i]
		id := vm.ID
		if strings.HasPrefix(id, "#") {
			id = string(d.ID) + id
		}
		if id == abs {
			return vm, nil
		}
	}
	return nil, fmt.Errorf("%w: %q in %s", ErrVerificationMethodNotFound, ref, d.ID)
}

// PublicKey extracts the raw public key bytes and the signature algorithm
// from the verification method's key material.
func (vm *VerificationMethod) PublicKey() ([]byte, crypto.Algorithm, error) {
	if vm.PublicKeyMultibase != "" {
		key, alg, err := DecodePublicKeyMultibase(vm.PublicKeyMultibase)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %q: %v", ErrInvalidDocument, vm.ID, err)
		}
		return key, alg, nil
	}
	if vm.PublicKeyJwk != nil {
		key, alg, err := vm.PublicKeyJwk.publicKey()
		if err != nil {
			return nil, "", fmt.Errorf("%w: %q: %v", ErrInvalidDocument, vm.ID, err)
		}
		return key, alg, nil
	}
	return nil, "", fmt.Errorf("%w: %q carries no public key material", ErrInvalidDocument, vm.ID)
}

func (j *JWK) publicKey() ([]byte, crypto.Algorithm, error) {
	switch {
	case j.Kty == "OKP" && j.Crv == "Ed25519":
		x, err := base64.RawURLEncoding.DecodeString(j.X)
		if err != nil {
			return nil, "", fmt.Errorf("bad x coordinate: %w", err)
		}
		return x, crypto.AlgorithmEdDSA, nil
	case j.Kty == "EC" && j.Crv == "secp256k1":
		x, err := base64.RawURLEncoding.DecodeString(j.X)
		if err != nil {
			return nil, "", fmt.Errorf("bad x coordinate: %w", err)
		}
		y, err := base64.RawURLEncoding.DecodeString(j.Y)
		if err != nil {
			return nil, "", fmt.Errorf("bad y coordinate: %w", err)
		}
		uncompressed := make([]byte, 65)
		uncompressed[0] = 0x04
		copy(uncompressed[1+32-len(x):33], x)
		copy(uncompressed[33+32-len(y):65], y)
		pub, err := ethcrypto.UnmarshalPubkey(uncompressed)
		if err != nil {
			return nil, "", fmt.Errorf("bad secp256k1 point: %w", err)
		}
		return ethcrypto.CompressPubkey(pub), crypto.AlgorithmES256K, nil
	default:
		return nil, "", fmt.Errorf("unsupported JWK kty=%q crv=%q", j.Kty, j.Crv)
	}
}
