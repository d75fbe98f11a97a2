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
	"errors"
	"fmt"

	"github.com/agentmesh-project/agentauth-go/pkg/crypto"
	"github.com/agentmesh-project/agentauth-go/pkg/did"
	"github.com/agentmesh-project/agentauth-go/pkg/session"
)

// Verification errors raised by the authentication pipeline itself.
// Errors from parsing, resolution, and session validation keep their
// own packages' sentinels.
var (
	// ErrSignatureInvalid is returned when the signature does not
	// verify against the resolved key over the rebuilt base.
	ErrSignatureInvalid = errors.New("auth: signature invalid")

	// ErrTimestampOutOfWindow is returned when the signing time falls
	// outside the accepted clock-skew window.
	ErrTimestampOutOfWindow = errors.New("auth: timestamp out of window")

	// ErrReplayedNonce is returned when a caller presents a nonce it
	// already used inside the replay window.
	ErrReplayedNonce = errors.New("auth: replayed nonce")

	// ErrTargetMismatch is returned when the header names a different
	// target agent than the one verifying it.
	ErrTargetMismatch = errors.New("auth: target DID mismatch")
)

// Credentials is the signing identity of an agent: its DID, its key
// pair, and the verification method in its document that matches the
// key.
type Credentials struct {
	DID                did.AgentDID
	KeyPair            crypto.KeyPair
	VerificationMethod string
}

// Validate checks that the credentials are complete enough to sign.
func (c *Credentials) Validate() error {
	if c == nil {
		return fmt.Errorf("auth: nil credentials")
	}
	if err := c.DID.Validate(); err != nil {
		return err
	}
	if c.KeyPair == nil {
		return fmt.Errorf("auth: credentials for %s carry no key pair", c.DID)
	}
	if c.VerificationMethod == "" {
		return fmt.Errorf("auth: credentials for %s carry no verification method reference", c.DID)
	}
	return nil
}

// Context describes the outbound request being authorized: the HTTP
// method, the full target URI, and the agent the request is addressed
// to. The same values must be observed by the responder, since they
// are covered by the signature.
type Context struct {
	Method    string
	TargetURI string
	TargetDID did.AgentDID
}

// Request is an inbound request as seen by the responder.
type Request struct {
	// Method and TargetURI rebuild the signature base. TargetURI must
	// be the full URI the caller signed, scheme included.
	Method    string
	TargetURI string

	// HeaderValue is the raw Authorization header value, either a
	// DIDAuth proof or a Bearer session token.
	HeaderValue string
}

// State tracks how far an inbound request advanced through the
// pipeline. Terminal states are StateSessionIssued, StateRejected,
// and, for deployments without sessions, StateSignatureVerified.
type State string

const (
	StateReceived          State = "received"
	StateHeaderParsed      State = "header_parsed"
	StateDIDResolved       State = "did_resolved"
	StateSignatureVerified State = "signature_verified"
	StateSessionIssued     State = "session_issued"
	StateSessionValidated  State = "session_validated"
	StateRejected          State = "rejected"
)

// Result is the outcome of authenticating one inbound request.
type Result struct {
	// Authenticated reports whether the request may proceed.
	Authenticated bool

	// CallerDID is set once the header parsed, including on rejected
	// results, so operators can log who failed.
	CallerDID did.AgentDID

	// State is the pipeline state processing stopped in.
	State State

	// Reason classifies the rejection; ReasonNone when authenticated.
	Reason Reason

	// Err is the underlying error for a rejection, wrapping the
	// sentinel the Reason was derived from.
	Err error

	// Session is the issued or validated session, when sessions are
	// enabled.
	Session *session.Session

	// SessionToken is the token the caller should present on follow-up
	// requests. Set both when a session is first issued and when a
	// Bearer request validates.
	SessionToken string

	// ResponderProof is the X-DID-Authorization header value proving
	// the responder's identity back to the caller. Set only in mutual
	// deployments on fresh DIDAuth requests.
	ResponderProof string
}

func rejected(callerDID did.AgentDID, state State, err error) *Result {
	return &Result{
		CallerDID: callerDID,
		State:     StateRejected,
		Reason:    ReasonFromError(err),
		Err:       fmt.Errorf("%s: %w", state, err),
	}
}
