package controllers

import (
	"github.com/shashiranjanraj/shopfront/app/requests"
	"github.com/shashiranjanraj/shopfront/app/services"
	"github.com/shashiranjanraj/shopfront/config"
	"github.com/shashiranjanraj/shopfront/pkg/auth"
	"github.com/shashiranjanraj/shopfront/pkg/ctx"
	"github.com/shashiranjanraj/shopfront/pkg/middleware"
	"github.com/shashiranjanraj/shopfront/pkg/response"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

func (a *AuthController) Register(c *ctx.Context) {
	var in requests.Register
	if !c.Bind(&in) {
		return
	}

	u, token, err := a.auth.Register(c.Context(), &in)
	if err != nil {
		c.Fail(err)
		return
	}
	setSession(c, token)
	c.Created(response.M{"user": u})
}

func (a *AuthController) Login(c *ctx.Context) {
	var in requests.Login
	if !c.Bind(&in) {
		return
	}

	u, token, err := a.auth.Login(c.Context(), &in)
	if err != nil {
		c.Fail(err)
		return
	}
	setSession(c, token)
	c.Success(response.M{"user": u})
}

func (a *AuthController) Logout(c *ctx.Context) {
	c.ClearCookie(auth.CookieName)
	c.Success(response.M{"message": "Logged out"})
}

func (a *AuthController) Me(c *ctx.Context) {
	id, _ := middleware.UserIDFromCtx(c.Context())
	u, err := a.auth.Me(c.Context(), id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.M{"user": u})
}

func setSession(c *ctx.Context, token string) {
	c.SetCookie(auth.CookieName, token, int(auth.TokenTTL.Seconds()), config.IsProduction())
}
