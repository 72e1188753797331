package requests

import (
	"strings"

	"github.com/shashiranjanraj/shopfront/app/models"
	"github.com/shashiranjanraj/shopfront/pkg/apperrors"
)

// Register creates a customer account.
type Register struct {
	Name     string `json:"name"     form:"name"     validate:"required"`
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

func (r *Register) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return checkTags(r, "")
}

// Login exchanges credentials for a session cookie.
type Login struct {
	Email    string `json:"email"    form:"email"    validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

func (r *Login) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return checkTags(r, "Email and password are required")
}

// UpdateUser is the admin edit of an account.
type UpdateUser struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required"`
	IsAdmin bool   `json:"isAdmin"`
}

func (r *UpdateUser) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return checkTags(r, "Name and email are required")
}

// OrderStatus is the admin order transition.
type OrderStatus struct {
	Status string `json:"status"`
}

func (r *OrderStatus) Validate() error {
	if r.Status == "" {
		return apperrors.Validation("Status is required")
	}
	if !models.ValidOrderStatus(r.Status) {
		return apperrors.Validation("Invalid status")
	}
	return nil
}

// SaveCart mirrors the client cart to the server.
type SaveCart struct {
	Items []models.CartItem `json:"items"`
}

func (r *SaveCart) Validate() error {
	for _, it := range r.Items {
		if it.ProductID == "" || it.Quantity < 1 {
			return apperrors.Validation("Each cart item needs a productId and a quantity of at least 1")
		}
	}
	return nil
}

// OrderLine is one requested product and quantity.
type OrderLine struct {
	ProductID string `json:"productId" validate:"required,objectid"`
	Quantity  int    `json:"quantity"  validate:"required,min=1"`
}

// PlaceOrder is a checkout request. Prices are never taken from the client.
type PlaceOrder struct {
	Items           []OrderLine    `json:"items"           validate:"required,min=1,dive"`
	ShippingAddress models.Address `json:"shippingAddress"`
}

func (r *PlaceOrder) Validate() error {
	if err := checkTags(r, ""); err != nil {
		return err
	}
	a := r.ShippingAddress
	if blank(a.FullName) || blank(a.Street) || blank(a.City) || blank(a.Country) {
		return apperrors.Validation("Shipping address is incomplete")
	}
	return nil
}
