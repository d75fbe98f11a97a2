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

// Package transport carries authenticated requests between agents.
//
// # AuthRoundTripper
//
// AuthRoundTripper plugs agent authentication into any *http.Client.
// It signs the first request to the target agent with a full DIDAuth
// header, captures the session token the responder issues, and sends
// the cheaper Bearer form on follow-ups:
//
//	rt, err := transport.NewAuthRoundTripper(mgr, creds, "did:wba:bob.example")
//	if err != nil {
//	    return err
//	}
//	client := &http.Client{Transport: rt}
//	resp, err := client.Get("https://bob.example/rpc")
//
// When the responder rejects a Bearer token (session expired or
// revoked), the round tripper re-signs and retries the request once.
// With WithMutualVerification the responder's X-DID-Authorization
// proof is verified before the response is handed back; a missing or
// invalid proof fails the round trip.
//
// # Transport
//
// The Transport interface and its HTTPTransport implementation are the
// minimal request contract consumed by responder-to-caller callbacks
// in mutual deployments. Regular request paths use net/http directly.
package transport
