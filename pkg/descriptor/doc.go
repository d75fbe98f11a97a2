// Package descriptor provides signed agent descriptors for agent-to-agent
// discovery.
//
// A descriptor is a metadata document an agent publishes about itself:
// its DID, service endpoint, and capabilities. Peers fetch a descriptor
// before authenticating, so it is distributed as a JWS compact token
// signed with a key from the publisher's DID document. Anyone holding
// the token can verify it offline against the resolved document.
//
// # Building Descriptors
//
// Use the Builder for a fluent API:
//
//	desc := descriptor.NewBuilder(
//	    did.AgentDID("did:wba:example.com:agents:alice"),
//	    "Alice",
//	    "https://alice.example.com/rpc",
//	).
//	    WithDescription("Ordering agent").
//	    WithCapabilities("orders.create", "orders.query").
//	    WithExpiresAt(time.Now().Add(90 * 24 * time.Hour)).
//	    Build()
//
// # Signing and Verification
//
// A Signer turns descriptors into tokens and back. Signing needs the
// publisher's key pair and the reference of the matching verification
// method in its DID document; verification resolves the issuer's
// document through the configured resolver:
//
//	signer, err := descriptor.NewSigner(resolver)
//	token, err := signer.Sign(ctx, desc, keyPair, "#key-1")
//
//	verified, err := signer.Verify(ctx, token)
//
// Verify checks the JWS signature, the token expiry, the issuer claim
// against the embedded descriptor's DID, and the descriptor digest, and
// returns the descriptor only when all of them hold.
//
// # Algorithms
//
// Tokens are signed with EdDSA (Ed25519) or ES256K (secp256k1),
// matching the key types agent DID documents carry. The ES256K signing
// method is registered with the JWT library at package load.
package descriptor
