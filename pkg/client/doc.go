// Package client provides an HTTP client with automatic agent authentication.
//
// AuthClient wraps a standard http.Client so that every request toward
// a target agent is authenticated: the first request carries a full
// DID signature, and once the responder issues a session the client
// switches to the lighter Bearer token.
//
// # Basic Usage
//
//	mgr, _ := auth.NewManager(resolver.NewDefault())
//	creds := &auth.Credentials{
//	    DID:                "did:wba:alice.example",
//	    KeyPair:            keyPair,
//	    VerificationMethod: "#key-1",
//	}
//	c, err := client.NewAuthClient(mgr, creds, "did:wba:bob.example")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := c.Post(ctx, "https://bob.example/rpc", body)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer resp.Body.Close()
//
// # Sessions
//
// The responder's session token is captured transparently; inspect it
// with SessionToken and drop it with ResetSession to force the next
// request to sign fresh. A Bearer rejected by the responder is retried
// once with a fresh signature, so expired sessions heal without caller
// involvement.
//
// # Mutual Authentication
//
// Pass transport.WithMutualVerification to require the responder's
// X-DID-Authorization proof on accepted requests:
//
//	c, err := client.NewAuthClient(mgr, creds, targetDID,
//	    transport.WithMutualVerification())
//
// # Thread Safety
//
// AuthClient is safe for concurrent use by multiple goroutines. The
// underlying http.Client is designed for this purpose.
//
// See the server package for the corresponding middleware that
// authenticates these requests on the receiving end.
package client
