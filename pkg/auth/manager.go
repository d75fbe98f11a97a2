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
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/agentmesh-project/agentauth-go/pkg/did"
	"github.com/agentmesh-project/agentauth-go/pkg/header"
	"github.com/agentmesh-project/agentauth-go/pkg/observe"
	"github.com/agentmesh-project/agentauth-go/pkg/session"
)

const (
	// DefaultClockSkew is the accepted distance between the header
	// timestamp and local time, applied symmetrically and inclusive at
	// both bounds.
	DefaultClockSkew = 5 * time.Minute

	// DefaultResolveTimeout bounds DID document resolution within one
	// authentication.
	DefaultResolveTimeout = 10 * time.Second
)

// Manager drives both sides of the authentication exchange: Authorize
// signs outbound requests, Authenticate verifies inbound ones, and
// VerifyResponder checks mutual proofs on responses. A Manager is safe
// for concurrent use.
type Manager struct {
	registry       *did.Registry
	resolver       did.Resolver
	sessions       *session.Manager
	nonces         NonceTracker
	creds          *Credentials
	mutual         bool
	clockSkew      time.Duration
	resolveTimeout time.Duration
	now            func() time.Time
	newNonce       func() string
	logger         *slog.Logger
	metrics        *observe.Metrics
}

// Option configures a Manager.
type Option func(*Manager)

// WithRegistry replaces the default method registry.
func WithRegistry(r *did.Registry) Option {
	return func(m *Manager) { m.registry = r }
}

// WithSessions enables session issuance for verified callers and
// Bearer validation on follow-up requests.
func WithSessions(sm *session.Manager) Option {
	return func(m *Manager) { m.sessions = sm }
}

// WithNonceTracker replaces the in-memory replay tracker.
func WithNonceTracker(t NonceTracker) Option {
	return func(m *Manager) { m.nonces = t }
}

// WithCredentials sets this agent's own identity. Required for mutual
// proofs; when set, inbound headers must be addressed to this DID.
func WithCredentials(c *Credentials) Option {
	return func(m *Manager) { m.creds = c }
}

// WithMutual makes Authenticate attach a responder proof to every
// accepted fresh request. Requires WithCredentials.
func WithMutual() Option {
	return func(m *Manager) { m.mutual = true }
}

// WithClockSkew sets the accepted timestamp window half-width.
func WithClockSkew(d time.Duration) Option {
	return func(m *Manager) { m.clockSkew = d }
}

// WithResolveTimeout bounds document resolution per authentication.
func WithResolveTimeout(d time.Duration) Option {
	return func(m *Manager) { m.resolveTimeout = d }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithNonceSource overrides nonce generation for outbound headers and
// responder proofs.
func WithNonceSource(fn func() string) Option {
	return func(m *Manager) { m.newNonce = fn }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithMetrics enables instrument recording.
func WithMetrics(mx *observe.Metrics) Option {
	return func(m *Manager) { m.metrics = mx }
}

// NewManager creates a Manager resolving caller documents through the
// given resolver.
func NewManager(resolver did.Resolver, opts ...Option) (*Manager, error) {
	if resolver == nil {
		return nil, fmt.Errorf("auth: nil resolver")
	}
	m := &Manager{
		registry:       did.DefaultRegistry(),
		resolver:       resolver,
		nonces:         NewMemoryNonceTracker(0),
		clockSkew:      DefaultClockSkew,
		resolveTimeout: DefaultResolveTimeout,
		now:            time.Now,
		newNonce:       uuid.NewString,
		logger:         observe.NopLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.creds != nil {
		if err := m.creds.Validate(); err != nil {
			return nil, err
		}
	}
	if m.mutual && m.creds == nil {
		return nil, fmt.Errorf("auth: mutual authentication requires credentials")
	}
	return m, nil
}

// Authorize builds the Authorization header value for an outbound
// request: a fresh nonce and timestamp signed with the credentials.
// Passing nil creds uses the manager's own.
func (m *Manager) Authorize(_ context.Context, actx *Context, creds *Credentials) (string, error) {
	if creds == nil {
		creds = m.creds
	}
	if err := creds.Validate(); err != nil {
		return "", err
	}
	if actx == nil || actx.Method == "" || actx.TargetURI == "" {
		return "", fmt.Errorf("auth: incomplete request context")
	}

	a, err := header.Sign(actx.Method, actx.TargetURI, creds.DID, actx.TargetDID,
		creds.VerificationMethod, m.newNonce(), m.now(), creds.KeyPair)
	if err != nil {
		return "", err
	}
	return a.Encode(), nil
}

// Authenticate verifies one inbound request and reports the outcome.
// It never returns nil; rejected results carry the reason and the
// wrapped error.
func (m *Manager) Authenticate(ctx context.Context, req *Request) *Result {
	var res *Result
	switch header.Scheme(req.HeaderValue) {
	case header.SchemeDIDAuth:
		res = m.authenticateProof(ctx, req)
	case header.SchemeBearer:
		res = m.authenticateBearer(ctx, req)
	default:
		res = rejected("", StateReceived,
			fmt.Errorf("%w: unrecognized authorization scheme", header.ErrMalformedHeader))
	}

	m.metrics.RecordAttempt(ctx, res.Authenticated, string(res.Reason))
	if res.Authenticated {
		m.logger.Debug("request authenticated",
			"component", "auth",
			"caller", res.CallerDID,
			"state", res.State)
	} else {
		m.logger.Info("request rejected",
			"component", "auth",
			"caller", res.CallerDID,
			"reason", res.Reason,
			"error", res.Err)
	}
	return res
}

func (m *Manager) authenticateProof(ctx context.Context, req *Request) *Result {
	a, err := header.Decode(req.HeaderValue)
	if err != nil {
		return rejected("", StateReceived, err)
	}

	if m.creds != nil && a.TargetDID != m.creds.DID {
		return rejected(a.CallerDID, StateHeaderParsed,
			fmt.Errorf("%w: header addressed to %s", ErrTargetMismatch, a.TargetDID))
	}
	if d := m.now().Sub(a.Timestamp); d > m.clockSkew || d < -m.clockSkew {
		return rejected(a.CallerDID, StateHeaderParsed,
			fmt.Errorf("%w: signed at %s, %s from local time",
				ErrTimestampOutOfWindow, a.Timestamp.Format(time.RFC3339), d))
	}

	handler, err := m.registry.ResolveHandler(a.CallerDID)
	if err != nil {
		return rejected(a.CallerDID, StateHeaderParsed, err)
	}

	rctx, cancel := context.WithTimeout(ctx, m.resolveTimeout)
	defer cancel()
	doc, err := m.resolver.Resolve(rctx, a.CallerDID)
	if err != nil {
		return rejected(a.CallerDID, StateHeaderParsed, err)
	}

	vm, err := doc.FindVerificationMethod(a.VerificationMethod)
	if err != nil {
		return rejected(a.CallerDID, StateDIDResolved, err)
	}
	_, keyAlg, err := vm.PublicKey()
	if err != nil {
		return rejected(a.CallerDID, StateDIDResolved, err)
	}
	if keyAlg != a.Algorithm {
		return rejected(a.CallerDID, StateDIDResolved,
			fmt.Errorf("%w: header algorithm %s does not match key algorithm %s",
				ErrSignatureInvalid, a.Algorithm, keyAlg))
	}

	base := header.SignatureBase(req.Method, req.TargetURI, a.CallerDID, a.TargetDID, a.Nonce, a.Timestamp)
	verifyStart := time.Now()
	ok, err := handler.VerifySignature(doc, a.VerificationMethod, base, a.Signature)
	m.metrics.RecordVerify(ctx, string(a.Algorithm), time.Since(verifyStart))
	if err != nil {
		return rejected(a.CallerDID, StateDIDResolved, err)
	}
	if !ok {
		return rejected(a.CallerDID, StateDIDResolved,
			fmt.Errorf("%w: caller %s", ErrSignatureInvalid, a.CallerDID))
	}

	// The nonce is burned only after the signature proves the caller
	// owns it, so unauthenticated traffic cannot poison the tracker.
	seen, err := m.nonces.Seen(ctx, a.CallerDID, a.Nonce)
	if err != nil {
		return rejected(a.CallerDID, StateSignatureVerified, err)
	}
	if seen {
		return rejected(a.CallerDID, StateSignatureVerified,
			fmt.Errorf("%w: %q", ErrReplayedNonce, a.Nonce))
	}

	res := &Result{
		Authenticated: true,
		CallerDID:     a.CallerDID,
		State:         StateSignatureVerified,
	}
	if m.sessions != nil {
		s, err := m.sessions.Create(ctx, a.CallerDID, a.TargetDID)
		if err != nil {
			return rejected(a.CallerDID, StateSignatureVerified, err)
		}
		res.Session = s
		res.SessionToken = s.ID
		res.State = StateSessionIssued
	}
	if m.mutual {
		proof, err := m.responderProof(req, a)
		if err != nil {
			return rejected(a.CallerDID, res.State, err)
		}
		res.ResponderProof = proof
	}
	return res
}

func (m *Manager) authenticateBearer(ctx context.Context, req *Request) *Result {
	token, err := header.DecodeBearer(req.HeaderValue)
	if err != nil {
		return rejected("", StateReceived, err)
	}
	if m.sessions == nil {
		return rejected("", StateHeaderParsed,
			fmt.Errorf("%w: sessions not enabled", session.ErrNotFound))
	}

	s, err := m.sessions.Validate(ctx, token)
	if err != nil {
		return rejected("", StateHeaderParsed, err)
	}
	return &Result{
		Authenticated: true,
		CallerDID:     s.CallerDID,
		State:         StateSessionValidated,
		Session:       s,
		SessionToken:  s.ID,
	}
}

// responderProof signs the same request components back to the caller,
// proving this agent also controls its DID.
func (m *Manager) responderProof(req *Request, a *header.Authorization) (string, error) {
	proof, err := header.Sign(req.Method, req.TargetURI, m.creds.DID, a.CallerDID,
		m.creds.VerificationMethod, m.newNonce(), m.now(), m.creds.KeyPair)
	if err != nil {
		return "", err
	}
	return proof.Encode(), nil
}

// VerifyResponder validates a responder's mutual proof against the
// request it answered. creds identify the caller the proof must be
// addressed to; nil uses the manager's own.
func (m *Manager) VerifyResponder(ctx context.Context, actx *Context, creds *Credentials, proofValue string) (*header.Authorization, error) {
	if creds == nil {
		creds = m.creds
	}
	if creds == nil {
		return nil, fmt.Errorf("auth: no credentials to verify the proof against")
	}

	a, err := header.Decode(proofValue)
	if err != nil {
		return nil, err
	}
	if a.CallerDID != actx.TargetDID {
		return nil, fmt.Errorf("%w: proof signed by %s, want %s",
			ErrTargetMismatch, a.CallerDID, actx.TargetDID)
	}
	if a.TargetDID != creds.DID {
		return nil, fmt.Errorf("%w: proof addressed to %s, want %s",
			ErrTargetMismatch, a.TargetDID, creds.DID)
	}
	if d := m.now().Sub(a.Timestamp); d > m.clockSkew || d < -m.clockSkew {
		return nil, fmt.Errorf("%w: proof signed at %s",
			ErrTimestampOutOfWindow, a.Timestamp.Format(time.RFC3339))
	}

	handler, err := m.registry.ResolveHandler(a.CallerDID)
	if err != nil {
		return nil, err
	}
	rctx, cancel := context.WithTimeout(ctx, m.resolveTimeout)
	defer cancel()
	doc, err := m.resolver.Resolve(rctx, a.CallerDID)
	if err != nil {
		return nil, err
	}

	base := header.SignatureBase(actx.Method, actx.TargetURI, a.CallerDID, a.TargetDID, a.Nonce, a.Timestamp)
	ok, err := handler.VerifySignature(doc, a.VerificationMethod, base, a.Signature)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: responder %s", ErrSignatureInvalid, a.CallerDID)
	}
	return a, nil
}

// Sessions exposes the session manager, or nil when sessions are
// disabled.
func (m *Manager) Sessions() *session.Manager {
	return m.sessions
}
