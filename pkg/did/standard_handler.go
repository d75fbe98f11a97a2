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

import "github.com/agentmesh-project/agentauth-go/pkg/crypto"

// StandardHandler serves DID methods whose documents are standard W3C DID
// documents resolved out of band. It implements MethodHandler for any
// method name; wba adds host-syntax validation on top.
type StandardHandler struct {
	method      string
	validateDID func(AgentDID) error
}

var _ MethodHandler = (*StandardHandler)(nil)

// NewStandardHandler creates a handler for the given method name with
// generic DID syntax validation.
func NewStandardHandler(method string) *StandardHandler {
	return &StandardHandler{method: method}
}

// NewWBAHandler creates the handler for web-based-agent DIDs. The identifier
// must carry a resolvable host segment.
func NewWBAHandler() *StandardHandler {
	return &StandardHandler{
		method: MethodWBA,
		validateDID: func(d AgentDID) error {
			_, _, err := ParseWBA(d)
			return err
		},
	}
}

func (h *StandardHandler) Method() string {
	return h.method
}

func (h *StandardHandler) ValidateDID(d AgentDID) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if h.validateDID != nil {
		return h.validateDID(d)
	}
	return nil
}

func (h *StandardHandler) ParseDocument(raw []byte) (*Document, error) {
	return ParseDocument(raw)
}

// VerifySignature checks signature over message with the key material of
// the verification method vmRef, using the algorithm that method declares.
func (h *StandardHandler) VerifySignature(doc *Document, vmRef string, message, signature []byte) (bool, error) {
	return verifyWithDocument(doc, vmRef, message, signature)
}

func verifyWithDocument(doc *Document, vmRef string, message, signature []byte) (bool, error) {
	vm, err := doc.FindVerificationMethod(vmRef)
	if err != nil {
		return false, err
	}
	key, alg, err := vm.PublicKey()
	if err != nil {
		return false, err
	}
	return crypto.Verify(alg, key, message, signature)
}
