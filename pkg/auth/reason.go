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

package auth

import (
	"context"
	"errors"

	"github.com/agentmesh-project/agentauth-go/pkg/crypto"
	"github.com/agentmesh-project/agentauth-go/pkg/did"
	"github.com/agentmesh-project/agentauth-go/pkg/header"
	"github.com/agentmesh-project/agentauth-go/pkg/session"
)

// Reason classifies why a request was rejected. The values are stable
// machine-readable tokens meant for logs and metrics; transports
// should answer rejected callers with a generic unauthorized status
// rather than echoing them.
type Reason string

const (
	ReasonNone                       Reason = ""
	ReasonMalformedHeader            Reason = "malformed_header"
	ReasonUnsupportedAlgorithm       Reason = "unsupported_algorithm"
	ReasonUnknownDIDMethod           Reason = "unknown_did_method"
	ReasonUnknownDID                 Reason = "unknown_did"
	ReasonResolutionTimeout          Reason = "resolution_timeout"
	ReasonVerificationMethodNotFound Reason = "verification_method_not_found"
	ReasonSignatureInvalid           Reason = "signature_invalid"
	ReasonTimestampOutOfWindow       Reason = "timestamp_out_of_window"
	ReasonReplayedNonce              Reason = "replayed_nonce"
	ReasonTargetMismatch             Reason = "target_mismatch"
	ReasonSessionNotFound            Reason = "session_not_found"
	ReasonSessionExpired             Reason = "session_expired"
	ReasonSessionRevoked             Reason = "session_revoked"
	ReasonInternal                   Reason = "internal_error"
)

// ReasonFromError maps an error to its rejection reason via the
// sentinel it wraps. Errors outside the taxonomy map to
// ReasonInternal; nil maps to ReasonNone.
func ReasonFromError(err error) Reason {
	switch {
	case err == nil:
		return ReasonNone
	case errors.Is(err, header.ErrMalformedHeader):
		return ReasonMalformedHeader
	case errors.Is(err, crypto.ErrUnsupportedAlgorithm):
		return ReasonUnsupportedAlgorithm
	case errors.Is(err, did.ErrUnknownMethod):
		return ReasonUnknownDIDMethod
	case errors.Is(err, did.ErrInvalidDID):
		return ReasonMalformedHeader
	case errors.Is(err, did.ErrDocumentNotFound):
		return ReasonUnknownDID
	case errors.Is(err, did.ErrResolutionTimeout), errors.Is(err, context.DeadlineExceeded):
		return ReasonResolutionTimeout
	case errors.Is(err, did.ErrVerificationMethodNotFound):
		return ReasonVerificationMethodNotFound
	case errors.Is(err, ErrSignatureInvalid):
		return ReasonSignatureInvalid
	case errors.Is(err, ErrTimestampOutOfWindow):
		return ReasonTimestampOutOfWindow
	case errors.Is(err, ErrReplayedNonce):
		return ReasonReplayedNonce
	case errors.Is(err, ErrTargetMismatch):
		return ReasonTargetMismatch
	case errors.Is(err, session.ErrNotFound):
		return ReasonSessionNotFound
	case errors.Is(err, session.ErrExpired):
		return ReasonSessionExpired
	case errors.Is(err, session.ErrRevoked):
		return ReasonSessionRevoked
	default:
		return ReasonInternal
	}
}
