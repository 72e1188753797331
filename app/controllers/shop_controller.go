package controllers

import (
	"github.com/shashiranjanraj/shopfront/app/requests"
	"github.com/shashiranjanraj/shopfront/app/services"
	"github.com/shashiranjanraj/shopfront/pkg/ctx"
	"github.com/shashiranjanraj/shopfront/pkg/response"
)

// ShopController serves the signed-in customer's cart and orders.
type ShopController struct {
	carts  *services.CartService
	orders *services.OrderService
}

func NewShopController(carts *services.CartService, orders *services.OrderService) *ShopController {
	return &ShopController{carts: carts, orders: orders}
}

func (s *ShopController) Cart(c *ctx.Context) {
	items, err := s.carts.Items(c.Context(), userID(c))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.M{"cart": items})
}

func (s *ShopController) SaveCart(c *ctx.Context) {
	var in requests.SaveCart
	if !c.Bind(&in) {
		return
	}
	if err := s.carts.Save(c.Context(), userID(c), in.Items); err != nil {
		c.Fail(err)
		return
	}
	c.Success(nil)
}

func (s *ShopController) PlaceOrder(c *ctx.Context) {
	var in requests.PlaceOrder
	if !c.Bind(&in) {
		return
	}

	order, err := s.orders.Place(c.Context(), userID(c), &in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(response.M{"order": order})
}

func (s *ShopController) Orders(c *ctx.Context) {
	page := c.Window(orderPage)
	list, total, err := s.orders.ForUser(c.Context(), userID(c), page)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Paginated("orders", list, total, page)
}
