package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shashiranjanraj/shopfront/pkg/cache"
	"github.com/shashiranjanraj/shopfront/pkg/event"
	"github.com/shashiranjanraj/shopfront/pkg/logger"
	"github.com/shashiranjanraj/shopfront/pkg/metrics"
	"github.com/shashiranjanraj/shopfront/pkg/workerpool"
)

// ApprovedRatingsReader lists the star values of a product's approved
// reviews.
type ApprovedRatingsReader interface {
	ApprovedRatings(ctx context.Context, productID string) ([]int, error)
}

// RatingWriter stores a product's aggregate.
type RatingWriter interface {
	SetRating(ctx context.Context, productID string, rating float64, count int) error
}

// RatingService keeps Product.rating and Product.reviewCount in step with
// the approved reviews.
type RatingService struct {
	reviews  ApprovedRatingsReader
	products RatingWriter
	cache    *cache.Cache
}

func NewRatingService(reviews ApprovedRatingsReader, products RatingWriter, c *cache.Cache) *RatingService {
	if c == nil {
		c = cache.Noop()
	}
	return &RatingService{reviews: reviews, products: products, cache: c}
}

// Aggregate returns the mean rounded half-up to one decimal and the count.
// No ratings gives (0, 0).
func Aggregate(ratings []int) (float64, int) {
	if len(ratings) == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	mean := float64(sum) / float64(len(ratings))
	return math.Floor(mean*10+0.5) / 10, len(ratings)
}

// Recompute reads the approved reviews of productID and writes the
// aggregate onto the product. Running it twice gives the same result.
func (s *RatingService) Recompute(ctx context.Context, productID string) error {
	start := time.Now()

	ratings, err := s.reviews.ApprovedRatings(ctx, productID)
	if err != nil {
		metrics.RecordRecompute("error", start)
		return fmt.Errorf("rating: load reviews of %s: %w", productID, err)
	}

	rating, count := Aggregate(ratings)
	if err := s.products.SetRating(ctx, productID, rating, count); err != nil {
		metrics.RecordRecompute("error", start)
		return fmt.Errorf("rating: store aggregate of %s: %w", productID, err)
	}

	if err := s.cache.Forget(ctx, cache.ProductKey(productID)); err != nil {
		logger.WithCtx(ctx).Warn("product cache invalidation failed", "product_id", productID, "error", err.Error())
	}

	metrics.RecordRecompute("ok", start)
	logger.WithCtx(ctx).Debug("rating recomputed",
		"product_id", productID,
		"rating", rating,
		"review_count", count,
	)
	return nil
}

// Listen subscribes the service to review changes. Each change queues a
// recompute on pool; the triggering request never waits for it and never
// sees its error.
func (s *RatingService) Listen(bus *event.Bus, pool *workerpool.Pool) {
	bus.Listen(event.ReviewChanged, func(ctx context.Context, payload any) {
		p, ok := payload.(event.ReviewChangedPayload)
		if !ok || p.ProductID == "" {
			return
		}

		log := logger.WithCtx(ctx).With("product_id", p.ProductID)
		err := pool.Submit("rating.recompute", func(taskCtx context.Context) error {
			return s.Recompute(logger.InjectLogger(taskCtx, log), p.ProductID)
		})
		if err != nil {
			metrics.RecordRecompute("dropped", time.Time{})
			log.Warn("rating recompute not queued", "error", err.Error())
		}
	})
}
