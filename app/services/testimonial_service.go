package services

import (
	"context"
	"mime/multipart"
	"strings"
	"time"

	"github.com/shashiranjanraj/shopfront/app/models"
	"github.com/shashiranjanraj/shopfront/app/requests"
	"github.com/shashiranjanraj/shopfront/pkg/pagination"
	"github.com/shashiranjanraj/shopfront/pkg/storage"
)

// TestimonialStore is the testimonial persistence.
type TestimonialStore interface {
	List(ctx context.Context, status string, p pagination.Params) ([]models.Testimonial, int64, error)
	Create(ctx context.Context, t *models.Testimonial) error
	SetStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

type TestimonialService struct {
	testimonials TestimonialStore
	disk         storage.Disk
}

func NewTestimonialService(testimonials TestimonialStore, disk storage.Disk) *TestimonialService {
	return &TestimonialService{testimonials: testimonials, disk: disk}
}

// Approved lists what the storefront may show.
func (s *TestimonialService) Approved(ctx context.Context, p pagination.Params) ([]models.Testimonial, error) {
	items, _, err := s.testimonials.List(ctx, models.ReviewApproved, p)
	return items, err
}

// All lists every testimonial for moderation; status narrows it.
func (s *TestimonialService) All(ctx context.Context, status string, p pagination.Params) ([]models.Testimonial, int64, error) {
	return s.testimonials.List(ctx, status, p)
}

// Submit stores a pending testimonial with an optional avatar.
func (s *TestimonialService) Submit(ctx context.Context, in *requests.CreateTestimonial, avatar *multipart.FileHeader) (*models.Testimonial, error) {
	url, err := storage.UploadImage(ctx, s.disk, "testimonials", avatar)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	t := &models.Testimonial{
		CustomerName:  strings.TrimSpace(in.CustomerName),
		CustomerEmail: strings.ToLower(strings.TrimSpace(in.CustomerEmail)),
		Company:       in.Company,
		Position:      in.Position,
		Testimonial:   strings.TrimSpace(in.Testimonial),
		Rating:        in.Rating,
		Avatar:        url,
		Status:        models.ReviewPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.testimonials.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TestimonialService) SetStatus(ctx context.Context, id, status string) error {
	return s.testimonials.SetStatus(ctx, id, status)
}

func (s *TestimonialService) Delete(ctx context.Context, id string) error {
	return s.testimonials.Delete(ctx, id)
}
