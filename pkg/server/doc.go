// Package server provides HTTP middleware for agent authentication.
//
// AuthMiddleware verifies the Authorization header of every inbound
// request through an auth.Manager: full DIDAuth signatures on first
// contact, Bearer session tokens on follow-ups. Verified requests
// reach the handler with the caller's DID in the request context;
// rejected ones are answered with a generic 401 while the detailed
// reason goes to logs and metrics only.
//
// # Basic Usage
//
//	mgr, _ := auth.NewManager(resolver.NewDefault(),
//	    auth.WithCredentials(myCreds),
//	    auth.WithSessions(session.NewManager()))
//	mw := server.NewAuthMiddleware(mgr)
//
//	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//	    caller, _ := server.CallerDID(r.Context())
//	    fmt.Fprintf(w, "hello %s", caller)
//	})
//	http.ListenAndServe(":8080", mw.Wrap(handler))
//
// # Response Headers
//
// When a session is issued the middleware returns it in
// "Authorization: Bearer <token>"; in mutual deployments the agent's
// own proof rides in "X-DID-Authorization". transport.AuthRoundTripper
// consumes both on the caller side.
//
// # Target URI Reconstruction
//
// Signatures cover the method and target URI. The middleware rebuilds
// the URI as scheme://host+requestURI from the Host header, which
// matches the URL the caller signed as long as requests are not
// rewritten in flight. Deployments behind a rewriting proxy must
// terminate authentication at the proxy or preserve the original Host.
//
// # Unauthenticated Paths
//
// OPTIONS requests pass through for CORS preflight. SetOptional(true)
// additionally admits requests without an Authorization header; those
// reach handlers with no caller DID in the context, letting one server
// mix public and authenticated routes.
package server
