package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/wellpath/portal/internal/ctxkeys"
	"github.com/wellpath/portal/internal/model"
	"github.com/wellpath/portal/internal/respond"
)

// Authenticator is the part of the auth service the guards need.
type Authenticator interface {
	Verify(ctx context.Context, token string) (*model.Identity, error)
	RequireRole(identity *model.Identity, role model.Role) error
}

// RequireAuth resolves the bearer token and stores the identity in the
// request context. Requests without a valid token stop here with 401.
func RequireAuth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				respond.Message(w, r, http.StatusUnauthorized, "Missing or invalid authorization header")
				return
			}

			identity, err := auth.Verify(r.Context(), token)
			if err != nil {
				respond.Error(w, r, err)
				return
			}

			ctx := ctxkeys.WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole must run after RequireAuth.
func RequireRole(auth Authenticator, role model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := auth.RequireRole(ctxkeys.Identity(r.Context()), role)
			if err != nil {
				respond.Error(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
