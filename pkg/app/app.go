// Package app assembles the HTTP side of a process: the global middleware
// stack, the operational endpoints and the project's route callbacks. It
// has no imports of project-specific code; the composition root injects
// everything through the builder methods.
//
//	app.New().
//	    Authenticate(middleware.Authenticate(signer)).
//	    Check("mongo", store.Ping).
//	    Routes(func(r *router.Router) { ... }).
//	    Serve(ctx, ":8080")
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/shashiranjanraj/shopfront/config"
	"github.com/shashiranjanraj/shopfront/internal/server"
	"github.com/shashiranjanraj/shopfront/pkg/middleware"
	"github.com/shashiranjanraj/shopfront/pkg/router"
)

// Application is the HTTP configuration of a process. Build one with New,
// attach routes and checks, then call Handler or Serve.
type Application struct {
	routesFns []func(*router.Router)
	auth      []router.Middleware
	health    *Health
	limiter   *middleware.Limiter
	cors      middleware.CORSOptions
}

// New returns an Application with CORS and rate limits read from config.
func New() *Application {
	return &Application{
		health:  NewHealth(),
		limiter: middleware.NewLimiter(config.Int("RATE_LIMIT_PER_MINUTE", 200), time.Minute),
		cors:    middleware.CORSFromConfig(),
	}
}

// Routes registers a route-registration callback. Callbacks run in order
// when the handler is built.
func (a *Application) Routes(fn func(*router.Router)) *Application {
	a.routesFns = append(a.routesFns, fn)
	return a
}

// Authenticate appends middleware that resolves the caller. It runs inside
// the rate limiter, just before the routes.
func (a *Application) Authenticate(mw ...router.Middleware) *Application {
	a.auth = append(a.auth, mw...)
	return a
}

// Check registers a readiness probe.
func (a *Application) Check(name string, fn Checker) *Application {
	a.health.Register(name, fn)
	return a
}

// RateLimit replaces the per-client limiter.
func (a *Application) RateLimit(l *middleware.Limiter) *Application {
	a.limiter = l
	return a
}

// Router builds the router with every route registered.
func (a *Application) Router() *router.Router {
	return buildRouter(a)
}

// Handler builds the http.Handler.
func (a *Application) Handler() http.Handler {
	return a.Router().Handler()
}

// Serve listens on addr until ctx is cancelled.
func (a *Application) Serve(ctx context.Context, addr string) error {
	return server.Run(ctx, addr, a.Handler())
}
