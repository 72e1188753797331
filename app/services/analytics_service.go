package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/shashiranjanraj/shopfront/app/models"
)

const recentItems = 5

// Counter counts a collection.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// RecentProducts lists the newest products.
type RecentProducts interface {
	Counter
	Recent(ctx context.Context, n int) ([]models.Product, error)
}

// OrderLedger exposes order totals for the dashboard.
type OrderLedger interface {
	Counter
	Revenue(ctx context.Context) (float64, error)
	Recent(ctx context.Context, n int) ([]models.Order, error)
}

// Stats are the dashboard headline numbers.
type Stats struct {
	TotalProducts int64   `json:"totalProducts"`
	TotalUsers    int64   `json:"totalUsers"`
	TotalOrders   int64   `json:"totalOrders"`
	TotalReviews  int64   `json:"totalReviews"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

// RecentActivity is the newest products and orders.
type RecentActivity struct {
	Products []models.Product `json:"products"`
	Orders   []models.Order   `json:"orders"`
}

// Dashboard is the admin analytics payload.
type Dashboard struct {
	Stats          Stats          `json:"stats"`
	RecentActivity RecentActivity `json:"recentActivity"`
}

type AnalyticsService struct {
	products RecentProducts
	users    Counter
	orders   OrderLedger
	reviews  Counter
}

func NewAnalyticsService(products RecentProducts, users Counter, orders OrderLedger, reviews Counter) *AnalyticsService {
	return &AnalyticsService{products: products, users: users, orders: orders, reviews: reviews}
}

// Dashboard runs the independent reads concurrently.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	g, ctx := errgroup.WithContext(ctx)

	count := func(c Counter, dst *int64) func() error {
		return func() error {
			n, err := c.Count(ctx)
			*dst = n
			return err
		}
	}
	g.Go(count(s.products, &d.Stats.TotalProducts))
	g.Go(count(s.users, &d.Stats.TotalUsers))
	g.Go(count(s.orders, &d.Stats.TotalOrders))
	g.Go(count(s.reviews, &d.Stats.TotalReviews))
	g.Go(func() (err error) {
		d.Stats.TotalRevenue, err = s.orders.Revenue(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.RecentActivity.Products, err = s.products.Recent(ctx, recentItems)
		return err
	})
	g.Go(func() (err error) {
		d.RecentActivity.Orders, err = s.orders.Recent(ctx, recentItems)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}
