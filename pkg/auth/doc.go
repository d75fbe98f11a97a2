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

// Package auth implements DID-based mutual authentication between
// agents: callers prove control of their DID by signing each request,
// responders verify the proof against the caller's resolved DID
// document, and verified pairs may continue on a lightweight session
// token.
//
// # Authenticating Inbound Requests
//
// A responder builds one Manager and feeds it every inbound request:
//
//	mgr, err := auth.NewManager(resolver,
//	    auth.WithCredentials(myCreds),
//	    auth.WithSessions(sessionMgr),
//	    auth.WithMutual())
//
//	res := mgr.Authenticate(ctx, &auth.Request{
//	    Method:      r.Method,
//	    TargetURI:   targetURI,
//	    HeaderValue: r.Header.Get("Authorization"),
//	})
//	if !res.Authenticated {
//	    // res.Reason and res.Err say why; answer 401 without details.
//	}
//
// An inbound request walks a fixed pipeline: the header is parsed, the
// timestamp checked against the clock-skew window, the caller's
// document resolved through the method registry, the signature
// verified over the rebuilt base, and the nonce checked for replay.
// The first failing step rejects the request with a Reason drawn from
// a closed taxonomy; later steps never run.
//
// # Authorizing Outbound Requests
//
// Callers sign with Authorize and, in mutual deployments, check the
// responder's proof with VerifyResponder:
//
//	value, err := mgr.Authorize(ctx, &auth.Context{
//	    Method:    "POST",
//	    TargetURI: "https://bob.example/rpc",
//	    TargetDID: "did:wba:bob.example",
//	}, creds)
//
// # Replay Protection
//
// Timestamps bound how stale a request may be; nonces close the replay
// window inside those bounds. A nonce is burned only after its
// signature verifies, and two racing requests with the same nonce
// authenticate at most once.
package auth
