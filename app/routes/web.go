package routes

import (
	"github.com/shashiranjanraj/shopfront/app/controllers"
	"github.com/shashiranjanraj/shopfront/pkg/ctx"
	"github.com/shashiranjanraj/shopfront/pkg/rbac"
	"github.com/shashiranjanraj/shopfront/pkg/router"
)

// RegisterWeb mounts the browser-facing admin pages. Denials redirect
// instead of answering with JSON.
func RegisterWeb(r *router.Router, gate *rbac.Gate) {
	pages := r.Group("/admin", gate.AdminPages)
	pages.Get("/", "admin.home", ctx.Wrap(controllers.AdminHome))
	pages.Get("/*", "admin.pages", ctx.Wrap(controllers.AdminHome))
}
