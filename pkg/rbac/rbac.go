// Package rbac is the admin gate: it resolves a credential to an
// administrator account and guards API routes and back-office pages.
package rbac

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/shashiranjanraj/shopfront/pkg/auth"
	"github.com/shashiranjanraj/shopfront/pkg/logger"
	"github.com/shashiranjanraj/shopfront/pkg/metrics"
	"github.com/shashiranjanraj/shopfront/pkg/middleware"
	"github.com/shashiranjanraj/shopfront/pkg/response"
)

// Reason explains a denial.
type Reason string

const (
	Unauthenticated Reason = "unauthenticated"
	InvalidToken    Reason = "invalid_token"
	Forbidden       Reason = "forbidden"
)

// Denied is returned by Authorize when access is refused.
type Denied struct {
	Reason Reason
	Err    error
}

func (d *Denied) Error() string {
	if d.Err != nil {
		return "rbac: denied (" + string(d.Reason) + "): " + d.Err.Error()
	}
	return "rbac: denied (" + string(d.Reason) + ")"
}

func (d *Denied) Unwrap() error { return d.Err }

// ReasonOf returns the denial reason carried by err, or "" if err is not a
// denial.
func ReasonOf(err error) Reason {
	var d *Denied
	if errors.As(err, &d) {
		return d.Reason
	}
	return ""
}

// AdminIdentity is the verified administrator handed to gated handlers.
type AdminIdentity struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"isAdmin"`
}

// Account is the user projection the gate needs. Password never appears.
type Account struct {
	ID      string
	Email   string
	Name    string
	IsAdmin bool
}

// AccountFinder loads a user by id. A missing user is (nil, nil).
type AccountFinder interface {
	FindAccount(ctx context.Context, id string) (*Account, error)
}

const apiDeniedMessage = "Admin access required"

// Gate checks credentials against the user store. It holds no mutable state.
type Gate struct {
	signer *auth.Signer
	users  AccountFinder
}

func NewGate(signer *auth.Signer, users AccountFinder) *Gate {
	return &Gate{signer: signer, users: users}
}

// Authorize verifies token and returns the admin it belongs to.
func (g *Gate) Authorize(ctx context.Context, token string) (AdminIdentity, error) {
	if token == "" {
		return AdminIdentity{}, &Denied{Reason: Unauthenticated}
	}

	claims, err := g.signer.ValidateToken(token)
	if err != nil {
		return AdminIdentity{}, &Denied{Reason: InvalidToken, Err: err}
	}

	acct, err := g.users.FindAccount(ctx, claims.UserID)
	if err != nil {
		return AdminIdentity{}, err
	}
	if acct == nil {
		return AdminIdentity{}, &Denied{Reason: Unauthenticated}
	}
	if !acct.IsAdmin {
		return AdminIdentity{}, &Denied{Reason: Forbidden}
	}

	return AdminIdentity{ID: acct.ID, Email: acct.Email, Name: acct.Name, IsAdmin: true}, nil
}

// RequireAdmin gates an API route. Every denial is a 403; lookup failures
// are a 500.
func (g *Gate) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		admin, err := g.Authorize(r.Context(), middleware.TokenFromRequest(r))
		if err != nil {
			reason := ReasonOf(err)
			if reason == "" {
				response.Fail(w, r, err)
				return
			}
			g.recordDenial(r, reason)
			response.Forbidden(w, apiDeniedMessage)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithAdmin(r.Context(), admin)))
	})
}

// AdminPages gates browser navigation. Missing or bad credentials go to the
// login page with the intended destination; signed-in non-admins go home.
func (g *Gate) AdminPages(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		admin, err := g.Authorize(r.Context(), middleware.TokenFromRequest(r))
		if err != nil {
			reason := ReasonOf(err)
			if reason == "" {
				logger.WithCtx(r.Context()).Error("admin page lookup failed", "error", err.Error())
				reason = Unauthenticated
			}
			g.recordDenial(r, reason)
			http.Redirect(w, r, PageRedirect(reason, r.URL.RequestURI()), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithAdmin(r.Context(), admin)))
	})
}

// PageRedirect is the redirect target for a page-level denial.
func PageRedirect(reason Reason, requested string) string {
	if reason == Forbidden {
		return "/?error=unauthorized"
	}
	return "/login?redirect=" + url.QueryEscape(requested)
}

func (g *Gate) recordDenial(r *http.Request, reason Reason) {
	metrics.GateDenials.WithLabelValues(string(reason)).Inc()
	logger.WithCtx(r.Context()).Warn("admin gate denied",
		"reason", string(reason),
		"path", r.URL.Path,
	)
}

type adminKey struct{}

// WithAdmin stores the verified identity in ctx.
func WithAdmin(ctx context.Context, a AdminIdentity) context.Context {
	return context.WithValue(ctx, adminKey{}, a)
}

// AdminFromCtx returns the identity placed by RequireAdmin or AdminPages.
func AdminFromCtx(ctx context.Context) (AdminIdentity, bool) {
	a, ok := ctx.Value(adminKey{}).(AdminIdentity)
	return a, ok
}
