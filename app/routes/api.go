// Package routes maps URLs to controllers.
package routes

import (
	"github.com/shashiranjanraj/shopfront/app/controllers"
	"github.com/shashiranjanraj/shopfront/pkg/ctx"
	"github.com/shashiranjanraj/shopfront/pkg/middleware"
	"github.com/shashiranjanraj/shopfront/pkg/rbac"
	"github.com/shashiranjanraj/shopfront/pkg/router"
)

// Controllers is every handler set the routes mount.
type Controllers struct {
	Auth         *controllers.AuthController
	Products     *controllers.ProductController
	Reviews      *controllers.ReviewController
	Banners      *controllers.BannerController
	Testimonials *controllers.TestimonialController
	Newsletter   *controllers.NewsletterController
	Contact      *controllers.ContactController
	Shop         *controllers.ShopController
	Admin        *controllers.AdminController
}

// RegisterAPI mounts the JSON API. Storefront reads and submissions are
// public, cart and orders need a signed-in user, and catalogue edits,
// moderation and the back office sit behind the admin gate.
func RegisterAPI(r *router.Router, h *Controllers, gate *rbac.Gate) {
	api := r.Group("/api")
	admin := api.Group("", gate.RequireAdmin)
	customer := api.Group("", middleware.RequireUser)

	// auth
	api.Post("/auth/register", "auth.register", ctx.Wrap(h.Auth.Register))
	api.Post("/auth/login", "auth.login", ctx.Wrap(h.Auth.Login))
	api.Post("/auth/logout", "auth.logout", ctx.Wrap(h.Auth.Logout))
	customer.Get("/auth/me", "auth.me", ctx.Wrap(h.Auth.Me))

	// catalogue
	api.Get("/products", "products.index", ctx.Wrap(h.Products.Index))
	api.Get("/products/{id}", "products.show", ctx.Wrap(h.Products.Show))
	admin.Post("/products", "products.store", ctx.Wrap(h.Products.Store))
	admin.Put("/products/{id}", "products.update", ctx.Wrap(h.Products.Update))
	admin.Delete("/products/{id}", "products.destroy", ctx.Wrap(h.Products.Destroy))

	// reviews
	api.Get("/reviews", "reviews.index", ctx.Wrap(h.Reviews.Index))
	api.Post("/reviews", "reviews.store", ctx.Wrap(h.Reviews.Store))
	admin.Put("/reviews/{id}", "reviews.status", ctx.Wrap(h.Reviews.UpdateStatus))
	admin.Delete("/reviews/{id}", "reviews.destroy", ctx.Wrap(h.Reviews.Destroy))

	// content
	api.Get("/banners", "banners.index", ctx.Wrap(h.Banners.Index))
	api.Get("/banners/{id}", "banners.show", ctx.Wrap(h.Banners.Show))
	admin.Post("/banners", "banners.store", ctx.Wrap(h.Banners.Store))
	admin.Put("/banners/{id}", "banners.update", ctx.Wrap(h.Banners.Update))
	admin.Delete("/banners/{id}", "banners.destroy", ctx.Wrap(h.Banners.Destroy))

	api.Get("/testimonials", "testimonials.index", ctx.Wrap(h.Testimonials.Index))
	api.Post("/testimonials", "testimonials.store", ctx.Wrap(h.Testimonials.Store))
	admin.Put("/testimonials/{id}", "testimonials.status", ctx.Wrap(h.Testimonials.UpdateStatus))
	admin.Delete("/testimonials/{id}", "testimonials.destroy", ctx.Wrap(h.Testimonials.Destroy))

	api.Post("/newsletter", "newsletter.subscribe", ctx.Wrap(h.Newsletter.Subscribe))
	api.Post("/newsletter/unsubscribe", "newsletter.unsubscribe", ctx.Wrap(h.Newsletter.Unsubscribe))
	admin.Get("/newsletter", "newsletter.index", ctx.Wrap(h.Newsletter.Index))

	api.Post("/contact", "contact.store", ctx.Wrap(h.Contact.Store))
	admin.Get("/contact", "contact.index", ctx.Wrap(h.Contact.Index))
	admin.Put("/contact/{id}", "contact.status", ctx.Wrap(h.Contact.UpdateStatus))

	// customer
	customer.Get("/cart", "cart.show", ctx.Wrap(h.Shop.Cart))
	customer.Post("/cart", "cart.save", ctx.Wrap(h.Shop.SaveCart))
	customer.Get("/orders", "orders.index", ctx.Wrap(h.Shop.Orders))
	customer.Post("/orders", "orders.store", ctx.Wrap(h.Shop.PlaceOrder))

	// back office
	office := admin.Group("/admin")
	office.Get("/reviews", "admin.reviews", ctx.Wrap(h.Reviews.Moderate))
	office.Get("/testimonials", "admin.testimonials", ctx.Wrap(h.Testimonials.Moderate))
	office.Get("/orders", "admin.orders", ctx.Wrap(h.Admin.Orders))
	office.Get("/orders/{id}", "admin.orders.show", ctx.Wrap(h.Admin.ShowOrder))
	office.Put("/orders/{id}", "admin.orders.update", ctx.Wrap(h.Admin.UpdateOrder))
	office.Get("/users", "admin.users", ctx.Wrap(h.Admin.Users))
	office.Get("/users/{id}", "admin.users.show", ctx.Wrap(h.Admin.ShowUser))
	office.Put("/users/{id}", "admin.users.update", ctx.Wrap(h.Admin.UpdateUser))
	office.Delete("/users/{id}", "admin.users.destroy", ctx.Wrap(h.Admin.DestroyUser))
	office.Get("/analytics", "admin.analytics", ctx.Wrap(h.Admin.Analytics))
}
