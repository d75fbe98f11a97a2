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

package header

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agentmesh-project/agentauth-go/pkg/crypto"
	"github.com/agentmesh-project/agentauth-go/pkg/did"
)

// HTTP header names used by the protocol.
const (
	// HeaderAuthorization carries the caller's proof on requests and the
	// issued Bearer session token on responses.
	HeaderAuthorization = "Authorization"

	// HeaderDIDAuthorization carries the responder's proof on responses
	// in mutual-authentication deployments.
	HeaderDIDAuthorization = "X-DID-Authorization"
)

// Authorization scheme tokens.
const (
	// SchemeDIDAuth marks a full signed authentication header.
	SchemeDIDAuth = "DIDAuth"

	// SchemeBearer marks a session-token header on follow-up requests.
	SchemeBearer = "Bearer"
)

// Wire parameter names.
const (
	paramDID                = "did"
	paramTargetDID          = "target_did"
	paramVerificationMethod = "verification_method"
	paramNonce              = "nonce"
	paramTimestamp          = "timestamp"
	paramAlgorithm          = "alg"
	paramSignature          = "signature"
)

// ErrMalformedHeader is returned for header values that do not parse:
// wrong scheme, missing or duplicate fields, bad escaping, malformed
// timestamps or signatures.
var ErrMalformedHeader = errors.New("header: malformed authorization header")

// Authorization is the parsed wire form of a DIDAuth header.
type Authorization struct {
	// CallerDID identifies the requesting agent.
	CallerDID did.AgentDID

	// TargetDID identifies the agent the request is addressed to.
	TargetDID did.AgentDID

	// VerificationMethod references the key in the caller's DID document
	// that produced the signature, absolute or "#fragment" form.
	VerificationMethod string

	// Nonce is the single-use random value covered by the signature.
	Nonce string

	// Timestamp is the signing time, whole seconds, UTC.
	Timestamp time.Time

	// Algorithm is the explicit signature algorithm tag.
	Algorithm crypto.Algorithm

	// Signature is the raw signature over the canonical base.
	Signature []byte
}

// Scheme sniffs the authorization scheme of a raw header value. Returns
// SchemeDIDAuth, SchemeBearer, or "" when neither matches.
func Scheme(value string) string {
	switch {
	case strings.HasPrefix(value, SchemeDIDAuth+" "):
		return SchemeDIDAuth
	case strings.HasPrefix(value, SchemeBearer+" "):
		return SchemeBearer
	default:
		return ""
	}
}

// EncodeBearer builds a Bearer header value from a session token.
func EncodeBearer(token string) string {
	return SchemeBearer + " " + token
}

// DecodeBearer extracts the session token from a Bearer header value.
func DecodeBearer(value string) (string, error) {
	token, ok := strings.CutPrefix(value, SchemeBearer+" ")
	if !ok || token == "" || strings.ContainsAny(token, " \t") {
		return "", fmt.Errorf("%w: not a bearer token", ErrMalformedHeader)
	}
	return token, nil
}
