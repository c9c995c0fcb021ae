package auth

import (
	"context"
	"net/http"
	apperrors "stayspot/pkg/errors"
	httputil "stayspot/pkg/http"

	"github.com/julienschmidt/httprouter"
)

type ctxKey struct{}

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, claims)
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ctxKey{}).(*Claims)
	return claims, ok && claims != nil
}

// UserID returns the signed in user's id, or "" for anonymous requests.
func UserID(ctx context.Context) string {
	if claims, ok := ClaimsFromContext(ctx); ok {
		return claims.UserID
	}
	return ""
}

// UserIDFromRequest is UserID for callers that only hold the request.
func UserIDFromRequest(r *http.Request) string {
	return UserID(r.Context())
}

// Authenticate attaches the claims of a valid token to the request. Requests
// without a token, or with an invalid one, continue anonymously.
func (m *TokenManager) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := TokenFromRequest(r); token != "" {
			if claims, err := m.Parse(token); err == nil {
				r = r.WithContext(WithClaims(r.Context(), claims))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth answers 401 for anonymous requests.
func RequireAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if UserID(r.Context()) == "" {
			_ = httputil.WriteError(w, apperrors.Unauthorized(""))
			return
		}
		next(w, r, ps)
	}
}
