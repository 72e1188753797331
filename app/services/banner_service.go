package services

import (
	"context"
	"mime/multipart"
	"strings"
	"time"

	"github.com/shashiranjanraj/shopfront/app/models"
	"github.com/shashiranjanraj/shopfront/app/repositories"
	"github.com/shashiranjanraj/shopfront/app/requests"
	"github.com/shashiranjanraj/shopfront/pkg/storage"
)

const (
	defaultBannerPosition = "hero"
	defaultBackground     = "#ffffff"
	defaultTextColor      = "#000000"
)

// BannerStore is the banner persistence.
type BannerStore interface {
	List(ctx context.Context, f repositories.BannerFilter) ([]models.Banner, error)
	FindByID(ctx context.Context, id string) (*models.Banner, error)
	Create(ctx context.Context, b *models.Banner) error
	Update(ctx context.Context, b *models.Banner) error
	Delete(ctx context.Context, id string) error
}

type BannerService struct {
	banners BannerStore
	disk    storage.Disk
}

func NewBannerService(banners BannerStore, disk storage.Disk) *BannerService {
	return &BannerService{banners: banners, disk: disk}
}

func (s *BannerService) List(ctx context.Context, f repositories.BannerFilter) ([]models.Banner, error) {
	return s.banners.List(ctx, f)
}

func (s *BannerService) Get(ctx context.Context, id string) (*models.Banner, error) {
	return s.banners.FindByID(ctx, id)
}

func (s *BannerService) Create(ctx context.Context, in *requests.BannerForm, image *multipart.FileHeader) (*models.Banner, error) {
	url, err := storage.UploadImage(ctx, s.disk, "banners", image)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	b := &models.Banner{Image: url, CreatedAt: now}
	fillBanner(b, in)
	b.UpdatedAt = now

	if err := s.banners.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Update replaces the banner's fields; the image changes only when a new
// one is uploaded.
func (s *BannerService) Update(ctx context.Context, id string, in *requests.BannerForm, image *multipart.FileHeader) (*models.Banner, error) {
	b, err := s.banners.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := storage.UploadImage(ctx, s.disk, "banners", image)
	if err != nil {
		return nil, err
	}
	if url != "" {
		b.Image = url
	}
	fillBanner(b, in)
	b.UpdatedAt = time.Now().UTC()

	if err := s.banners.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BannerService) Delete(ctx context.Context, id string) error {
	return s.banners.Delete(ctx, id)
}

func fillBanner(b *models.Banner, in *requests.BannerForm) {
	b.Title = strings.TrimSpace(in.Title)
	b.Subtitle = in.Subtitle
	b.Description = in.Description
	b.ButtonText = in.ButtonText
	b.ButtonLink = in.ButtonLink
	b.Position = orDefault(in.Position, defaultBannerPosition)
	b.IsActive = in.Active()
	b.BackgroundColor = orDefault(in.BackgroundColor, defaultBackground)
	b.TextColor = orDefault(in.TextColor, defaultTextColor)
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
