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
	"fmt"

	"github.com/agentmesh-project/agentauth-go/pkg/crypto"
)

// KeyHandler serves self-certifying did:key identifiers. The public key is
// embedded in the DID as a multicodec-prefixed base58btc multibase string,
// so documents can be derived locally without network resolution.
type KeyHandler struct{}

var _ MethodHandler = (*KeyHandler)(nil)

// NewKeyHandler creates the did:key handler.
func NewKeyHandler() *KeyHandler {
	return &KeyHandler{}
}

func (h *KeyHandler) Method() string {
	return MethodKey
}

func (h *KeyHandler) ValidateDID(d AgentDID) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if d.Method() != MethodKey {
		return fmt.Errorf("%w: not a key DID: %q", ErrInvalidDID, d)
	}
	if _, _, err := DecodePublicKeyMultibase(d.MethodSpecificID()); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidDID, d, err)
	}
	return nil
}

func (h *KeyHandler) ParseDocument(raw []byte) (*Document, error) {
	return ParseDocument(raw)
}

func (h *KeyHandler) VerifySignature(doc *Document, vmRef string, message, signature []byte) (bool, error) {
	return verifyWithDocument(doc, vmRef, message, signature)
}

// DeriveDocument builds the DID document implied by a did:key identifier.
// The single verification method uses the multibase string as its fragment,
// per the did:key convention.
func (h *KeyHandler) DeriveDocument(d AgentDID) (*Document, error) {
	if err := h.ValidateDID(d); err != nil {
		return nil, err
	}
	mb := d.MethodSpecificID()
	_, alg, err := DecodePublicKeyMultibase(mb)
	if err != nil {
		return nil, err
	}

	vmType := VMTypeEd25519_2020
	if alg == crypto.AlgorithmES256K {
		vmType = VMTypeEcdsaSecp256k1_2019
	}
	vmID := string(d) + "#" + mb

	doc := &Document{
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
	return doc, nil
}

// KeyDID builds the did:key identifier for a public key.
func KeyDID(alg crypto.Algorithm, publicKey []byte) (AgentDID, error) {
	mb, err := EncodePublicKeyMultibase(alg, publicKey)
	if err != nil {
		return "", err
	}
	return AgentDID("did:key:" + mb), nil
}
