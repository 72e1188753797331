package app

import (
	"net/http"

	"github.com/shashiranjanraj/shopfront/pkg/metrics"
	"github.com/shashiranjanraj/shopfront/pkg/middleware"
	"github.com/shashiranjanraj/shopfront/pkg/reqid"
	"github.com/shashiranjanraj/shopfront/pkg/response"
	"github.com/shashiranjanraj/shopfront/pkg/router"
)

func buildRouter(a *Application) *router.Router {
	r := router.New()

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics (outermost, so latency covers everything)
	//  2. Recovery
	//  3. Request ID, before anything logs
	//  4. Logger, tags lines with request_id
	//  5. CORS, answers preflights
	//  6. Rate limiter
	//  7. Authenticate: optional caller identity from the cookie
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(a.cors))
	r.Use(middleware.RateLimit(a.limiter))
	r.Use(a.auth...)

	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/healthz", "health.live", a.health.Liveness())
	r.Get("/readyz", "health.ready", a.health.Readiness())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	for _, fn := range a.routesFns {
		fn(r)
	}
	return r
}
