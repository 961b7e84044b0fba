package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/redmonkez12/jobs-api/internal/apperr"
	"github.com/redmonkez12/jobs-api/internal/httputil"
)

// gateMessage is the single response for every rejected request
const gateMessage = "authentication invalid"

type contextKey struct{}

var identityContextKey = contextKey{}

// Middleware handles authentication for protected routes
type Middleware struct {
	tokenService TokenService
}

func NewMiddleware(tokenService TokenService) *Middleware {
	return &Middleware{tokenService: tokenService}
}

// RequireAuth rejects requests without a valid bearer token and binds the
// token's identity to the request context. It never touches the user store.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			reject(w, r)
			return
		}

		identity, err := m.tokenService.Verify(token)
		if err != nil {
			reject(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// IdentityHandlerFunc is a handler that receives the authenticated caller explicitly
type IdentityHandlerFunc func(w http.ResponseWriter, r *http.Request, identity Identity)

// Authenticated adapts fn to http.HandlerFunc, passing it the identity bound by
// RequireAuth. Requests that reach it without an identity are rejected.
func Authenticated(fn IdentityHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			reject(w, r)
			return
		}
		fn(w, r, identity)
	}
}

// WithIdentity returns a copy of ctx carrying identity
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// IdentityFromContext extracts the authenticated identity from the request context
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(Identity)
	return identity, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

func reject(w http.ResponseWriter, r *http.Request) {
	httputil.WriteError(w, r, apperr.Unauthenticated(gateMessage))
}
