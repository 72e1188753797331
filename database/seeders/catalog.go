package seeders

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/shopfront/app/models"
	"github.com/shashiranjanraj/shopfront/pkg/database"
	"github.com/shashiranjanraj/shopfront/pkg/logger"
)

func init() {
	Register("catalog", SeedCatalog)
}

func price(v float64) *float64 { return &v }

func sampleProducts(now time.Time) []any {
	return []any{
		models.Product{
			Name:          "iPhone 15 Pro",
			Description:   "Latest iPhone with advanced camera system",
			Price:         999,
			OriginalPrice: price(1099),
			Category:      "Electronics",
			Subcategory:   "Phones",
			Brand:         "Apple",
			Stock:         25,
			Featured:      true,
			Tags:          []string{"phone", "apple"},
			Images:        []string{"/iphone-15-pro-max-back.png"},
			Specifications: map[string]any{
				"storage": "256GB",
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		models.Product{
			Name:          "MacBook Air M3",
			Description:   "Powerful laptop with M3 chip",
			Price:         1299,
			OriginalPrice: price(1399),
			Category:      "Electronics",
			Subcategory:   "Laptops",
			Brand:         "Apple",
			Stock:         10,
			Featured:      true,
			Tags:          []string{"laptop", "apple"},
			Images:        []string{"/macbook-pro-16-inch.jpg"},
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		models.Product{
			Name:          "AirPods Pro",
			Description:   "Wireless earbuds with noise cancellation",
			Price:         249,
			OriginalPrice: price(279),
			Category:      "Electronics",
			Subcategory:   "Audio",
			Brand:         "Apple",
			Stock:         60,
			Tags:          []string{"audio", "wireless"},
			Images:        []string{"/electronics/airpods.jpg"},
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}
}

func sampleBanners(now time.Time) []any {
	return []any{
		models.Banner{
			Title:       "Big Sale - Up to 50% Off",
			Description: "Limited time offer on selected items",
			ButtonText:  "Shop now",
			ButtonLink:  "/products",
			Image:       "/banners/soundbar.jpg",
			Position:    "hero",
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}

func sampleTestimonials(now time.Time) []any {
	return []any{
		models.Testimonial{
			CustomerName:  "Priya Sharma",
			CustomerEmail: "priya@example.com",
			Testimonial:   "Fast delivery and the earbuds sound great.",
			Rating:        5,
			Status:        models.ReviewApproved,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}
}

// SeedCatalog inserts sample products, banners and testimonials into each
// collection that is still empty. Products start with no reviews, so their
// aggregate is zero.
func SeedCatalog(ctx context.Context, d Deps) error {
	now := time.Now().UTC()
	sets := []struct {
		coll string
		docs []any
	}{
		{database.Products, sampleProducts(now)},
		{database.Banners, sampleBanners(now)},
		{database.Testimonials, sampleTestimonials(now)},
	}

	for _, s := range sets {
		n, err := fillEmpty(ctx, d.Store.Collection(s.coll), s.docs)
		if err != nil {
			return fmt.Errorf("seed %s: %w", s.coll, err)
		}
		logger.Info("seeded collection", "collection", s.coll, "inserted", n)
	}
	return nil
}

func fillEmpty(ctx context.Context, coll *mongo.Collection, docs []any) (int, error) {
	count, err := coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}
	res, err := coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}
