package services

import (
	"context"
	"strings"
	"time"

	"github.com/shashiranjanraj/shopfront/app/models"
	"github.com/shashiranjanraj/shopfront/app/repositories"
	"github.com/shashiranjanraj/shopfront/app/requests"
	"github.com/shashiranjanraj/shopfront/pkg/apperrors"
	"github.com/shashiranjanraj/shopfront/pkg/event"
	"github.com/shashiranjanraj/shopfront/pkg/logger"
	"github.com/shashiranjanraj/shopfront/pkg/pagination"
)

// ReviewStore is the review persistence the service needs.
type ReviewStore interface {
	List(ctx context.Context, f repositories.ReviewFilter, p pagination.Params) ([]models.Review, int64, error)
	FindByID(ctx context.Context, id string) (*models.Review, error)
	Create(ctx context.Context, r *models.Review) error
	SetStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

// ProductFinder loads one product.
type ProductFinder interface {
	FindByID(ctx context.Context, id string) (*models.Product, error)
}

// Publisher fires domain events.
type Publisher interface {
	Fire(ctx context.Context, name string, payload any)
}

// ReviewService handles review submission and moderation.
type ReviewService struct {
	reviews  ReviewStore
	products ProductFinder
	events   Publisher
}

func NewReviewService(reviews ReviewStore, products ProductFinder, events Publisher) *ReviewService {
	return &ReviewService{reviews: reviews, products: products, events: events}
}

// Create stores a pending review for an existing product.
func (s *ReviewService) Create(ctx context.Context, in *requests.CreateReview) (*models.Review, error) {
	if _, err := s.products.FindByID(ctx, in.ProductID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rv := &models.Review{
		ProductID:     in.ProductID,
		CustomerName:  strings.TrimSpace(in.CustomerName),
		CustomerEmail: strings.ToLower(strings.TrimSpace(in.CustomerEmail)),
		Rating:        in.Rating,
		Title:         strings.TrimSpace(in.Title),
		Comment:       strings.TrimSpace(in.Comment),
		Status:        models.ReviewPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, apperrors.Wrap(err, "create review")
	}

	logger.WithCtx(ctx).Info("review submitted",
		"review_id", rv.ID.Hex(),
		"product_id", rv.ProductID,
	)
	s.changed(ctx, rv.ProductID)
	return rv, nil
}

// SetStatus moderates a review. The product aggregate is refreshed when the
// review enters or leaves the approved set.
func (s *ReviewService) SetStatus(ctx context.Context, id, status string) error {
	rv, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.reviews.SetStatus(ctx, id, status); err != nil {
		return err
	}

	if rv.Status == models.ReviewApproved || status == models.ReviewApproved {
		s.changed(ctx, rv.ProductID)
	}
	return nil
}

// Delete removes a review in any status.
func (s *ReviewService) Delete(ctx context.Context, id string) error {
	rv, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		return err
	}

	if rv.Status == models.ReviewApproved {
		s.changed(ctx, rv.ProductID)
	}
	return nil
}

// Approved lists approved reviews, optionally for one product.
func (s *ReviewService) Approved(ctx context.Context, productID string, p pagination.Params) ([]models.Review, int64, error) {
	return s.reviews.List(ctx, repositories.ReviewFilter{ProductID: productID, Status: models.ReviewApproved}, p)
}

// All lists reviews in any status for moderation.
func (s *ReviewService) All(ctx context.Context, f repositories.ReviewFilter, p pagination.Params) ([]models.Review, int64, error) {
	return s.reviews.List(ctx, f, p)
}

func (s *ReviewService) changed(ctx context.Context, productID string) {
	s.events.Fire(ctx, event.ReviewChanged, event.ReviewChangedPayload{ProductID: productID})
}
