package services

import (
	"context"

	"github.com/shashiranjanraj/shopfront/app/models"
)

// CartStore is the saved-cart persistence.
type CartStore interface {
	Items(ctx context.Context, userID string) ([]models.CartItem, error)
	Save(ctx context.Context, userID string, items []models.CartItem) error
}

// CartService mirrors the client cart for signed-in users.
type CartService struct {
	carts CartStore
}

func NewCartService(carts CartStore) *CartService {
	return &CartService{carts: carts}
}

func (s *CartService) Items(ctx context.Context, userID string) ([]models.CartItem, error) {
	return s.carts.Items(ctx, userID)
}

func (s *CartService) Save(ctx context.Context, userID string, items []models.CartItem) error {
	return s.carts.Save(ctx, userID, items)
}
