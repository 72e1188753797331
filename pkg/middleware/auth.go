package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/shopfront/pkg/auth"
	"github.com/shashiranjanraj/shopfront/pkg/response"
)

type claimsKey struct{}
type invalidKey struct{}

// TokenFromRequest reads the auth cookie, falling back to a Bearer header
// for non-browser clients.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(auth.CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// Authenticate decodes the credential when one is present and stores the
// claims in the request context. It never rejects; RequireUser does.
func Authenticate(signer *auth.Signer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			if claims, err := signer.ValidateToken(token); err == nil {
				ctx = WithClaims(ctx, claims)
			} else {
				ctx = context.WithValue(ctx, invalidKey{}, true)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects requests without valid claims with 401.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ClaimsFromCtx(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}
		if bad, _ := r.Context().Value(invalidKey{}).(bool); bad {
			response.Unauthorized(w, "Invalid token")
			return
		}
		response.Unauthorized(w, "Unauthorized")
	})
}

// WithClaims stores verified claims in ctx.
func WithClaims(ctx context.Context, c *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

// ClaimsFromCtx returns the claims stored by Authenticate.
func ClaimsFromCtx(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return c, ok && c != nil
}

// UserIDFromCtx returns the signed-in user's id.
func UserIDFromCtx(ctx context.Context) (string, bool) {
	c, ok := ClaimsFromCtx(ctx)
	if !ok {
		return "", false
	}
	return c.UserID, true
}
