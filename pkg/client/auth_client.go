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

package client

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/agentmesh-project/agentauth-go/pkg/auth"
	"github.com/agentmesh-project/agentauth-go/pkg/did"
	"github.com/agentmesh-project/agentauth-go/pkg/transport"
)

// AuthClient is an HTTP client that authenticates every request toward
// one target agent: a DID signature on the first request, the issued
// session token afterwards.
type AuthClient struct {
	rt         *transport.AuthRoundTripper
	httpClient *http.Client
	creds      *auth.Credentials
	target     did.AgentDID
}

// NewAuthClient builds a client that signs as creds and talks to the
// target agent, using mgr for signing and responder verification.
func NewAuthClient(mgr *auth.Manager, creds *auth.Credentials, target did.AgentDID, opts ...transport.RoundTripperOption) (*AuthClient, error) {
	rt, err := transport.NewAuthRoundTripper(mgr, creds, target, opts...)
	if err != nil {
		return nil, err
	}
	return &AuthClient{
		rt:         rt,
		httpClient: &http.Client{Transport: rt},
		creds:      creds,
		target:     target,
	}, nil
}

// Do executes an HTTP request with automatic authentication.
func (c *AuthClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	resp, err := c.httpClient.Do(req.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	return resp, nil
}

// Post sends a POST request with a JSON body.
func (c *AuthClient) Post(ctx context.Context, url string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create POST request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.Do(ctx, req)
}

// Get sends a GET request.
func (c *AuthClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create GET request: %w", err)
	}
	return c.Do(ctx, req)
}

// CallerDID returns the DID requests are signed as.
func (c *AuthClient) CallerDID() did.AgentDID {
	return c.creds.DID
}

// TargetDID returns the agent this client talks to.
func (c *AuthClient) TargetDID() did.AgentDID {
	return c.target
}

// SessionToken returns the current session token, or "" before the
// responder has issued one.
func (c *AuthClient) SessionToken() string {
	return c.rt.SessionToken()
}

// ResetSession drops the session so the next request signs fresh.
func (c *AuthClient) ResetSession() {
	c.rt.ResetSession()
}
