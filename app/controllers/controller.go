// Package controllers adapts HTTP requests to the services. Handlers bind
// and validate input, call one service method and write the JSON envelope.
package controllers

import (
	"github.com/shashiranjanraj/shopfront/pkg/ctx"
	"github.com/shashiranjanraj/shopfront/pkg/middleware"
	"github.com/shashiranjanraj/shopfront/pkg/rbac"
	"github.com/shashiranjanraj/shopfront/pkg/response"
)

// Default page sizes per listing.
const (
	productPage     = 20
	reviewPage      = 20
	testimonialPage = 10
	orderPage       = 20
	userPage        = 20
	contactLimit    = 50
	subscriberLimit = 100
)

// userID is the signed-in customer. Routes using it sit behind RequireUser.
func userID(c *ctx.Context) string {
	id, _ := middleware.UserIDFromCtx(c.Context())
	return id
}

// AdminHome is the landing document for gated admin pages.
func AdminHome(c *ctx.Context) {
	admin, _ := rbac.AdminFromCtx(c.Context())
	c.Success(response.M{"admin": admin})
}
