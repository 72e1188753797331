package controllers

import (
	"github.com/shashiranjanraj/shopfront/app/requests"
	"github.com/shashiranjanraj/shopfront/app/services"
	"github.com/shashiranjanraj/shopfront/pkg/ctx"
	"github.com/shashiranjanraj/shopfront/pkg/rbac"
	"github.com/shashiranjanraj/shopfront/pkg/response"
)

// AdminController is the back office over orders, users and analytics.
// Every route sits behind the admin gate.
type AdminController struct {
	orders    *services.OrderService
	users     *services.UserService
	analytics *services.AnalyticsService
}

func NewAdminController(orders *services.OrderService, users *services.UserService, analytics *services.AnalyticsService) *AdminController {
	return &AdminController{orders: orders, users: users, analytics: analytics}
}

func (a *AdminController) Orders(c *ctx.Context) {
	page := c.Window(orderPage)
	list, total, err := a.orders.All(c.Context(), c.Query("status"), page)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Paginated("orders", list, total, page)
}

func (a *AdminController) ShowOrder(c *ctx.Context) {
	order, err := a.orders.Get(c.Context(), c.Param("id"))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.M{"order": order})
}

func (a *AdminController) UpdateOrder(c *ctx.Context) {
	var in requests.OrderStatus
	if !c.Bind(&in) {
		return
	}
	if err := a.orders.SetStatus(c.Context(), c.Param("id"), in.Status); err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.M{"message": "Order status updated successfully"})
}

func (a *AdminController) Users(c *ctx.Context) {
	page := c.Window(userPage)
	list, total, err := a.users.List(c.Context(), c.Query("search"), page)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Paginated("users", list, total, page)
}

func (a *AdminController) ShowUser(c *ctx.Context) {
	u, err := a.users.Get(c.Context(), c.Param("id"))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.M{"user": u})
}

func (a *AdminController) UpdateUser(c *ctx.Context) {
	var in requests.UpdateUser
	if !c.Bind(&in) {
		return
	}
	if _, err := a.users.Update(c.Context(), c.Param("id"), &in); err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.M{"message": "User updated successfully"})
}

// DestroyUser deletes an account other than the caller's own.
func (a *AdminController) DestroyUser(c *ctx.Context) {
	admin, _ := rbac.AdminFromCtx(c.Context())
	if err := a.users.Delete(c.Context(), admin.ID, c.Param("id")); err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.M{"message": "User deleted successfully"})
}

func (a *AdminController) Analytics(c *ctx.Context) {
	d, err := a.analytics.Dashboard(c.Context())
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.M{"stats": d.Stats, "recentActivity": d.RecentActivity})
}
