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

package transport

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/agentmesh-project/agentauth-go/pkg/auth"
	"github.com/agentmesh-project/agentauth-go/pkg/did"
	"github.com/agentmesh-project/agentauth-go/pkg/header"
	"github.com/agentmesh-project/agentauth-go/pkg/observe"
)

// AuthRoundTripper is an http.RoundTripper that authenticates every
// outgoing request to one target agent.
//
// The first request carries a full DIDAuth signature. When the
// responder issues a session, the Bearer token from the response is
// captured and used on follow-ups. A 401 on a Bearer attempt clears
// the session and retries once with a fresh signature. With mutual
// verification enabled, accepted fresh requests must carry a valid
// responder proof in X-DID-Authorization.
type AuthRoundTripper struct {
	base   http.RoundTripper
	mgr    *auth.Manager
	creds  *auth.Credentials
	target did.AgentDID
	mutual bool
	logger *slog.Logger

	mu    sync.Mutex
	token string
}

var _ http.RoundTripper = (*AuthRoundTripper)(nil)

// RoundTripperOption configures an AuthRoundTripper.
type RoundTripperOption func(*AuthRoundTripper)

// WithBase sets the underlying round tripper.
func WithBase(rt http.RoundTripper) RoundTripperOption {
	return func(a *AuthRoundTripper) { a.base = rt }
}

// WithMutualVerification requires and verifies the responder proof on
// every accepted fresh request.
func WithMutualVerification() RoundTripperOption {
	return func(a *AuthRoundTripper) { a.mutual = true }
}

// WithRoundTripperLogger sets the logger.
func WithRoundTripperLogger(l *slog.Logger) RoundTripperOption {
	return func(a *AuthRoundTripper) { a.logger = l }
}

// NewAuthRoundTripper authenticates requests as creds toward the
// target agent, signing and verifying through mgr.
func NewAuthRoundTripper(mgr *auth.Manager, creds *auth.Credentials, target did.AgentDID, opts ...RoundTripperOption) (*AuthRoundTripper, error) {
	if mgr == nil {
		return nil, fmt.Errorf("transport: nil auth manager")
	}
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	if err := target.Validate(); err != nil {
		return nil, err
	}

	rt := &AuthRoundTripper{
		base:   otelhttp.NewTransport(http.DefaultTransport),
		mgr:    mgr,
		creds:  creds,
		target: target,
		logger: observe.NopLogger(),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt, nil
}

// SessionToken returns the captured session token, or "" before one is
// issued.
func (a *AuthRoundTripper) SessionToken() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token
}

// ResetSession drops the captured session so the next request signs
// fresh.
func (a *AuthRoundTripper) ResetSession() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = ""
}

func (a *AuthRoundTripper) setToken(token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = token
}

// RoundTrip implements http.RoundTripper. It consumes req.Body so the
// request can be replayed on the retry path.
func (a *AuthRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil && req.Body != http.NoBody {
		var err error
		body, err = io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("transport: buffer request body: %w", err)
		}
	}

	token := a.SessionToken()
	fresh := token == ""

	out := a.attempt(req, body)
	if fresh {
		if err := a.sign(out); err != nil {
			return nil, err
		}
	} else {
		out.Header.Set(header.HeaderAuthorization, header.EncodeBearer(token))
	}

	resp, err := a.base.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	// A rejected Bearer means the session lapsed server-side. Retry
	// once with a fresh signature.
	if resp.StatusCode == http.StatusUnauthorized && !fresh {
		drain(resp)
		a.ResetSession()
		a.logger.Debug("session rejected, re-signing",
			"component", "transport",
			"target", a.target)

		out = a.attempt(req, body)
		if err := a.sign(out); err != nil {
			return nil, err
		}
		fresh = true
		resp, err = a.base.RoundTrip(out)
		if err != nil {
			return nil, err
		}
	}

	if fresh && resp.StatusCode < http.StatusMultipleChoices {
		if value := resp.Header.Get(header.HeaderAuthorization); value != "" {
			if tok, err := header.DecodeBearer(value); err == nil {
				a.setToken(tok)
				a.logger.Debug("session captured",
					"component", "transport",
					"target", a.target)
			}
		}
		if a.mutual {
			if err := a.verifyProof(req, resp); err != nil {
				drain(resp)
				return nil, err
			}
		}
	}
	return resp, nil
}

// attempt clones the request with a replayable body.
func (a *AuthRoundTripper) attempt(req *http.Request, body []byte) *http.Request {
	out := req.Clone(req.Context())
	if body != nil {
		out.Body = io.NopCloser(bytes.NewReader(body))
		out.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		}
		out.ContentLength = int64(len(body))
	}
	return out
}

func (a *AuthRoundTripper) sign(req *http.Request) error {
	actx := &auth.Context{
		Method:    req.Method,
		TargetURI: requestTargetURI(req),
		TargetDID: a.target,
	}
	value, err := a.mgr.Authorize(req.Context(), actx, a.creds)
	if err != nil {
		return fmt.Errorf("transport: sign request: %w", err)
	}
	req.Header.Set(header.HeaderAuthorization, value)
	return nil
}

func (a *AuthRoundTripper) verifyProof(req *http.Request, resp *http.Response) error {
	proof := resp.Header.Get(header.HeaderDIDAuthorization)
	if proof == "" {
		return fmt.Errorf("transport: responder returned no mutual proof")
	}
	actx := &auth.Context{
		Method:    req.Method,
		TargetURI: requestTargetURI(req),
		TargetDID: a.target,
	}
	if _, err := a.mgr.VerifyResponder(req.Context(), actx, a.creds, proof); err != nil {
		return fmt.Errorf("transport: responder proof rejected: %w", err)
	}
	return nil
}

// requestTargetURI is the URI the signature base covers. Fragments are
// never sent on the wire, so they are excluded.
func requestTargetURI(req *http.Request) string {
	u := *req.URL
	u.Fragment = ""
	return u.String()
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
