package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shashiranjanraj/shopfront/app/models"
	"github.com/shashiranjanraj/shopfront/app/repositories"
	"github.com/shashiranjanraj/shopfront/app/requests"
	"github.com/shashiranjanraj/shopfront/pkg/apperrors"
	"github.com/shashiranjanraj/shopfront/pkg/logger"
	"github.com/shashiranjanraj/shopfront/pkg/pagination"
)

// OrderStore is the order persistence.
type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, f repositories.OrderFilter, p pagination.Params) ([]models.Order, int64, error)
	SetStatus(ctx context.Context, id, status string) error
}

// Inventory prices and reserves stock for checkout.
type Inventory interface {
	FindByID(ctx context.Context, id string) (*models.Product, error)
	ReserveStock(ctx context.Context, id string, qty int) error
	ReleaseStock(ctx context.Context, id string, qty int) error
}

// CartClearer empties a user's saved cart.
type CartClearer interface {
	Clear(ctx context.Context, userID string) error
}

type OrderService struct {
	orders    OrderStore
	inventory Inventory
	carts     CartClearer
}

func NewOrderService(orders OrderStore, inventory Inventory, carts CartClearer) *OrderService {
	return &OrderService{orders: orders, inventory: inventory, carts: carts}
}

type reservation struct {
	productID string
	qty       int
}

// Place prices the requested lines from the catalogue, reserves stock and
// stores a pending order. Reserved stock is handed back if any later step
// fails.
func (s *OrderService) Place(ctx context.Context, userID string, in *requests.PlaceOrder) (*models.Order, error) {
	lines := mergeLines(in.Items)

	var held []reservation
	release := func() {
		for _, r := range held {
			if err := s.inventory.ReleaseStock(ctx, r.productID, r.qty); err != nil {
				logger.WithCtx(ctx).Error("stock release failed", "product_id", r.productID, "qty", r.qty, "error", err.Error())
			}
		}
	}

	items := make([]models.OrderItem, 0, len(lines))
	total := 0.0
	for _, line := range lines {
		p, err := s.inventory.FindByID(ctx, line.ProductID)
		if err != nil {
			release()
			return nil, err
		}
		if err := s.inventory.ReserveStock(ctx, line.ProductID, line.Quantity); err != nil {
			release()
			if apperrors.IsConflict(err) {
				return nil, apperrors.Conflict(fmt.Sprintf("Insufficient stock for %s", p.Name))
			}
			return nil, err
		}
		held = append(held, reservation{productID: line.ProductID, qty: line.Quantity})

		item := models.OrderItem{ProductID: line.ProductID, Name: p.Name, Price: p.Price, Quantity: line.Quantity}
		if len(p.Images) > 0 {
			item.Image = p.Images[0]
		}
		items = append(items, item)
		total += p.Price * float64(line.Quantity)
	}

	now := time.Now().UTC()
	o := &models.Order{
		UserID:          userID,
		Items:           items,
		ShippingAddress: in.ShippingAddress,
		Total:           math.Round(total*100) / 100,
		Status:          models.OrderPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		release()
		return nil, apperrors.Wrap(err, "create order")
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		logger.WithCtx(ctx).Warn("cart not cleared after checkout", "user_id", userID, "error", err.Error())
	}
	logger.WithCtx(ctx).Info("order placed", "order_id", o.ID.Hex(), "user_id", userID, "total", o.Total)
	return o, nil
}

// ForUser lists the caller's own orders.
func (s *OrderService) ForUser(ctx context.Context, userID string, p pagination.Params) ([]models.Order, int64, error) {
	return s.orders.List(ctx, repositories.OrderFilter{UserID: userID}, p)
}

// All lists every order for the back office.
func (s *OrderService) All(ctx context.Context, status string, p pagination.Params) ([]models.Order, int64, error) {
	return s.orders.List(ctx, repositories.OrderFilter{Status: status}, p)
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	return s.orders.FindByID(ctx, id)
}

func (s *OrderService) SetStatus(ctx context.Context, id, status string) error {
	return s.orders.SetStatus(ctx, id, status)
}

// mergeLines folds repeated products into one line, keeping first-seen order.
func mergeLines(in []requests.OrderLine) []requests.OrderLine {
	idx := map[string]int{}
	out := make([]requests.OrderLine, 0, len(in))
	for _, l := range in {
		if i, ok := idx[l.ProductID]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		idx[l.ProductID] = len(out)
		out = append(out, l)
	}
	return out
}
