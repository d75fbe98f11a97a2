package server

import (
	"context"
	"net/http"

	"github.com/agentmesh-project/agentauth-go/pkg/auth"
	"github.com/agentmesh-project/agentauth-go/pkg/did"
	"github.com/agentmesh-project/agentauth-go/pkg/header"
)

type contextKey string

const (
	callerDIDKey  contextKey = "caller_did"
	authResultKey contextKey = "auth_result"
)

// ErrorHandler answers a rejected request. The result carries the
// rejection reason; the default handler deliberately keeps it out of
// the response body.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, res *auth.Result)

// AuthMiddleware authenticates inbound requests through an
// auth.Manager and propagates the verified caller DID to handlers.
type AuthMiddleware struct {
	mgr          *auth.Manager
	errorHandler ErrorHandler
	optional     bool
}

// NewAuthMiddleware creates middleware verifying through mgr.
func NewAuthMiddleware(mgr *auth.Manager) *AuthMiddleware {
	return &AuthMiddleware{
		mgr:          mgr,
		errorHandler: defaultErrorHandler,
	}
}

// SetErrorHandler sets a custom rejection handler.
func (m *AuthMiddleware) SetErrorHandler(handler ErrorHandler) {
	m.errorHandler = handler
}

// SetOptional lets requests without an Authorization header through;
// handlers see no caller DID in the context for those.
func (m *AuthMiddleware) SetOptional(optional bool) {
	m.optional = optional
}

// Wrap wraps an HTTP handler with agent authentication.
func (m *AuthMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// CORS preflight never carries credentials.
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		value := r.Header.Get(header.HeaderAuthorization)
		if value == "" {
			if m.optional {
				next.ServeHTTP(w, r)
				return
			}
			m.errorHandler(w, r, &auth.Result{
				State:  auth.StateRejected,
				Reason: auth.ReasonMalformedHeader,
			})
			return
		}

		res := m.mgr.Authenticate(r.Context(), RequestFromHTTP(r))
		if !res.Authenticated {
			m.errorHandler(w, r, res)
			return
		}

		// Hand the caller its session and, in mutual deployments, this
		// agent's own proof.
		if res.State == auth.StateSessionIssued {
			w.Header().Set(header.HeaderAuthorization, header.EncodeBearer(res.SessionToken))
		}
		if res.ResponderProof != "" {
			w.Header().Set(header.HeaderDIDAuthorization, res.ResponderProof)
		}

		ctx := context.WithValue(r.Context(), callerDIDKey, res.CallerDID)
		ctx = context.WithValue(ctx, authResultKey, res)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestFromHTTP maps an inbound HTTP request to the authentication
// request shape. The target URI is rebuilt from the Host header and
// request URI, so it matches what callers sign as long as they use the
// URL they dialed.
func RequestFromHTTP(r *http.Request) *auth.Request {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return &auth.Request{
		Method:      r.Method,
		TargetURI:   scheme + "://" + r.Host + r.URL.RequestURI(),
		HeaderValue: r.Header.Get(header.HeaderAuthorization),
	}
}

// CallerDID extracts the authenticated caller from a request context.
func CallerDID(ctx context.Context) (did.AgentDID, bool) {
	d, ok := ctx.Value(callerDIDKey).(did.AgentDID)
	return d, ok
}

// AuthResult extracts the full authentication result from a request
// context.
func AuthResult(ctx context.Context) (*auth.Result, bool) {
	res, ok := ctx.Value(authResultKey).(*auth.Result)
	return res, ok
}

// defaultErrorHandler answers 401 with a generic body. The detailed
// reason stays in local logs and metrics so probing callers learn
// nothing about why they were refused.
func defaultErrorHandler(w http.ResponseWriter, r *http.Request, res *auth.Result) {
	w.Header().Set("WWW-Authenticate", header.SchemeDIDAuth)
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}
