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
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentmesh-project/agentauth-go/pkg/auth"
	"github.com/agentmesh-project/agentauth-go/pkg/crypto"
	"github.com/agentmesh-project/agentauth-go/pkg/did"
	"github.com/agentmesh-project/agentauth-go/pkg/header"
	"github.com/agentmesh-project/agentauth-go/pkg/resolver"
	"github.com/agentmesh-project/agentauth-go/pkg/session"
)

type agent struct {
	creds *auth.Credentials
	doc   *did.Document
}

func newAgent(t *testing.T, d did.AgentDID) *agent {
	t.Helper()
	kp, err := crypto.GenerateEd25519KeyPair()
	require.NoError(t, err)
	doc, err := did.NewKeyDocument(d, "#key-1", crypto.AlgorithmEdDSA, kp.PublicKey())
	require.NoError(t, err)
	return &agent{
		creds: &auth.Credentials{DID: d, KeyPair: kp, VerificationMethod: "#key-1"},
		doc:   doc,
	}
}

// responder is an in-process agent endpoint that authenticates every
// request and echoes the body back.
type responder struct {
	mgr      *auth.Manager
	sessions *session.Manager
	srv      *httptest.Server

	mu       sync.Mutex
	fresh    int
	bearer   int
	rejected int
}

func newResponder(t *testing.T, res did.Resolver, self *agent, mutual bool) *responder {
	t.Helper()

	sm := session.NewManager(session.WithSweepInterval(0))
	t.Cleanup(sm.Stop)

	opts := []auth.Option{
		auth.WithCredentials(self.creds),
		auth.WithSessions(sm),
	}
	if mutual {
		opts = append(opts, auth.WithMutual())
	}
	mgr, err := auth.NewManager(res, opts...)
	require.NoError(t, err)

	rp := &responder{mgr: mgr, sessions: sm}
	rp.srv = httptest.NewServer(http.HandlerFunc(rp.handle))
	t.Cleanup(rp.srv.Close)
	return rp
}

func (rp *responder) handle(w http.ResponseWriter, r *http.Request) {
	value := r.Header.Get(header.HeaderAuthorization)
	scheme := header.Scheme(value)

	res := rp.mgr.Authenticate(r.Context(), &auth.Request{
		Method:      r.Method,
		TargetURI:   "http://" + r.Host + r.URL.RequestURI(),
		HeaderValue: value,
	})

	rp.mu.Lock()
	switch {
	case !res.Authenticated:
		rp.rejected++
	case scheme == header.SchemeBearer:
		rp.bearer++
	default:
		rp.fresh++
	}
	rp.mu.Unlock()

	if !res.Authenticated {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if res.State == auth.StateSessionIssued {
		w.Header().Set(header.HeaderAuthorization, header.EncodeBearer(res.SessionToken))
	}
	if res.ResponderProof != "" {
		w.Header().Set(header.HeaderDIDAuthorization, res.ResponderProof)
	}
	body, _ := io.ReadAll(r.Body)
	_, _ = w.Write(body)
}

func (rp *responder) counts() (fresh, bearer, rejected int) {
	rp.mu.Lock()
	defer rp.mu.Unlock()
	return rp.fresh, rp.bearer, rp.rejected
}

func newCaller(t *testing.T, res did.Resolver, self *agent, target did.AgentDID, opts ...RoundTripperOption) (*http.Client, *AuthRoundTripper) {
	t.Helper()
	mgr, err := auth.NewManager(res)
	require.NoError(t, err)
	rt, err := NewAuthRoundTripper(mgr, self.creds, target, opts...)
	require.NoError(t, err)
	return &http.Client{Transport: rt}, rt
}

// Test the plain Transport contract against a live server.
func TestHTTPTransport_Send(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PUT", r.Method)
		assert.Equal(t, "yes", r.Header.Get("X-Probe"))
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("X-Answer", "42")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)

	tr := NewHTTPTransport(nil)
	headers := http.Header{}
	headers.Set("X-Probe", "yes")

	resp, err := tr.Send(context.Background(), "PUT", srv.URL+"/thing", headers, []byte("payload"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, "42", resp.Headers.Get("X-Answer"))
	assert.Equal(t, []byte("payload"), resp.Body)
}

// Test that the first request signs fresh, the session is captured,
// and follow-ups ride the Bearer token.
func TestAuthRoundTripper_SessionFlow(t *testing.T) {
	alice := newAgent(t, "did:example:alice")
	bob := newAgent(t, "did:example:bob")
	res := resolver.NewStatic(alice.doc, bob.doc)
	rp := newResponder(t, res, bob, false)
	client, rt := newCaller(t, res, alice, bob.creds.DID)

	for i := 0; i < 3; i++ {
		resp, err := client.Get(rp.srv.URL + "/rpc")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	assert.NotEmpty(t, rt.SessionToken())
	fresh, bearer, rejected := rp.counts()
	assert.Equal(t, 1, fresh)
	assert.Equal(t, 2, bearer)
	assert.Equal(t, 0, rejected)
}

// Test the single re-sign retry after the responder drops the session.
func TestAuthRoundTripper_RetryOnLapsedSession(t *testing.T) {
	alice := newAgent(t, "did:example:alice")
	bob := newAgent(t, "did:example:bob")
	res := resolver.NewStatic(alice.doc, bob.doc)
	rp := newResponder(t, res, bob, false)
	client, rt := newCaller(t, res, alice, bob.creds.DID)

	resp, err := client.Get(rp.srv.URL + "/rpc")
	require.NoError(t, err)
	resp.Body.Close()
	first := rt.SessionToken()
	require.NotEmpty(t, first)

	require.NoError(t, rp.sessions.Revoke(context.Background(), first))

	resp, err = client.Get(rp.srv.URL + "/rpc")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	second := rt.SessionToken()
	assert.NotEmpty(t, second)
	assert.NotEqual(t, first, second)

	fresh, bearer, rejected := rp.counts()
	assert.Equal(t, 2, fresh)
	assert.Equal(t, 0, bearer)
	assert.Equal(t, 1, rejected)
}

// Test that the request body survives the retry.
func TestAuthRoundTripper_BodyReplay(t *testing.T) {
	alice := newAgent(t, "did:example:alice")
	bob := newAgent(t, "did:example:bob")
	res := resolver.NewStatic(alice.doc, bob.doc)
	rp := newResponder(t, res, bob, false)
	client, rt := newCaller(t, res, alice, bob.creds.DID)

	resp, err := client.Get(rp.srv.URL + "/rpc")
	require.NoError(t, err)
	resp.Body.Close()
	require.NoError(t, rp.sessions.Revoke(context.Background(), rt.SessionToken()))

	resp, err = client.Post(rp.srv.URL+"/rpc", "text/plain", strings.NewReader("hello again"))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	echo, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "hello again", string(echo))
}

// Test mutual verification of the responder proof.
func TestAuthRoundTripper_Mutual(t *testing.T) {
	alice := newAgent(t, "did:example:alice")
	bob := newAgent(t, "did:example:bob")
	res := resolver.NewStatic(alice.doc, bob.doc)

	// Test Case 1: responder proves its identity, caller accepts.
	rp := newResponder(t, res, bob, true)
	client, _ := newCaller(t, res, alice, bob.creds.DID, WithMutualVerification())
	resp, err := client.Get(rp.srv.URL + "/rpc")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Test Case 2: responder sends no proof, caller refuses the
	// response.
	silent := newResponder(t, res, bob, false)
	client2, _ := newCaller(t, res, alice, bob.creds.DID, WithMutualVerification())
	_, err = client2.Get(silent.srv.URL + "/rpc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no mutual proof")
}

// Test constructor validation.
func TestNewAuthRoundTripper_Validation(t *testing.T) {
	alice := newAgent(t, "did:example:alice")
	res := resolver.NewStatic(alice.doc)
	mgr, err := auth.NewManager(res)
	require.NoError(t, err)

	_, err = NewAuthRoundTripper(nil, alice.creds, "did:example:bob")
	assert.Error(t, err)

	_, err = NewAuthRoundTripper(mgr, nil, "did:example:bob")
	assert.Error(t, err)

	_, err = NewAuthRoundTripper(mgr, alice.creds, "not a did")
	assert.Error(t, err)
}
