package services

import (
	"context"
	"mime/multipart"
	"strings"
	"time"

	"github.com/shashiranjanraj/shopfront/app/models"
	"github.com/shashiranjanraj/shopfront/app/repositories"
	"github.com/shashiranjanraj/shopfront/app/requests"
	"github.com/shashiranjanraj/shopfront/pkg/apperrors"
	"github.com/shashiranjanraj/shopfront/pkg/cache"
	"github.com/shashiranjanraj/shopfront/pkg/event"
	"github.com/shashiranjanraj/shopfront/pkg/logger"
	"github.com/shashiranjanraj/shopfront/pkg/pagination"
	"github.com/shashiranjanraj/shopfront/pkg/storage"
)

// ProductStore is the product persistence the catalogue needs.
type ProductStore interface {
	List(ctx context.Context, f repositories.ProductFilter, p pagination.Params) ([]models.Product, int64, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id string) error
}

// ReviewPurger drops a product's reviews when the product goes away.
type ReviewPurger interface {
	DeleteByProduct(ctx context.Context, productID string) (int64, error)
}

// ProductService is the catalogue: listing, cached detail reads and admin
// edits with image uploads.
type ProductService struct {
	products ProductStore
	reviews  ReviewPurger
	disk     storage.Disk
	cache    *cache.Cache
	events   Publisher
}

func NewProductService(products ProductStore, reviews ReviewPurger, disk storage.Disk, c *cache.Cache, events Publisher) *ProductService {
	if c == nil {
		c = cache.Noop()
	}
	return &ProductService{products: products, reviews: reviews, disk: disk, cache: c, events: events}
}

func (s *ProductService) List(ctx context.Context, f repositories.ProductFilter, p pagination.Params) ([]models.Product, int64, error) {
	return s.products.List(ctx, f, p)
}

// Get reads one product through the cache.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := s.cache.Remember(ctx, cache.ProductKey(id), &p, func(ctx context.Context) (any, error) {
		return s.products.FindByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create stores a new product. It always starts with no rating.
func (s *ProductService) Create(ctx context.Context, in *requests.ProductForm, images []*multipart.FileHeader) (*models.Product, error) {
	if err := in.RequireCreateFields(); err != nil {
		return nil, err
	}

	urls, err := storage.UploadImages(ctx, s.disk, "products", images)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &models.Product{
		Tags:           []string{},
		MainFeatures:   []string{},
		KeyFeatures:    []string{},
		WhatsInTheBox:  []string{},
		Specifications: map[string]any{},
		Images:         urls,
		CreatedAt:      now,
	}
	if err := apply(p, in); err != nil {
		return nil, err
	}
	p.Rating, p.ReviewCount = 0, 0
	p.UpdatedAt = now

	if err := s.products.Create(ctx, p); err != nil {
		return nil, apperrors.Wrap(err, "create product")
	}
	logger.WithCtx(ctx).Info("product created", "product_id", p.ID.Hex(), "images", len(urls))
	return p, nil
}

// Update applies the fields present in the form and appends new images.
func (s *ProductService) Update(ctx context.Context, id string, in *requests.ProductForm, images []*multipart.FileHeader) (*models.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	urls, err := storage.UploadImages(ctx, s.disk, "products", images)
	if err != nil {
		return nil, err
	}
	if err := apply(p, in); err != nil {
		return nil, err
	}
	p.Images = append(p.Images, urls...)
	p.UpdatedAt = time.Now().UTC()

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	s.events.Fire(ctx, event.ProductChanged, event.ProductChangedPayload{ProductID: id})
	return p, nil
}

// Delete removes the product and its reviews.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	n, err := s.reviews.DeleteByProduct(ctx, id)
	if err != nil {
		logger.WithCtx(ctx).Error("orphaned reviews left behind", "product_id", id, "error", err.Error())
	}
	s.events.Fire(ctx, event.ProductChanged, event.ProductChangedPayload{ProductID: id})
	logger.WithCtx(ctx).Info("product deleted", "product_id", id, "reviews_removed", n)
	return nil
}

// Forget drops the cached read of a product.
func (s *ProductService) Forget(ctx context.Context, id string) {
	if err := s.cache.Forget(ctx, cache.ProductKey(id)); err != nil {
		logger.WithCtx(ctx).Warn("product cache invalidation failed", "product_id", id, "error", err.Error())
	}
}

// Listen drops the cached read whenever a product changes.
func (s *ProductService) Listen(bus *event.Bus) {
	bus.Listen(event.ProductChanged, func(ctx context.Context, payload any) {
		if p, ok := payload.(event.ProductChangedPayload); ok {
			s.Forget(ctx, p.ProductID)
		}
	})
}

// apply copies the present form fields onto p.
func apply(p *models.Product, in *requests.ProductForm) error {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.OriginalPrice != nil {
		v := *in.OriginalPrice
		p.OriginalPrice = &v
	}
	if in.Category != nil {
		p.Category = strings.TrimSpace(*in.Category)
	}
	if in.Subcategory != nil {
		p.Subcategory = strings.TrimSpace(*in.Subcategory)
	}
	if in.Brand != nil {
		p.Brand = strings.TrimSpace(*in.Brand)
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.Featured != nil {
		p.Featured = in.IsFeatured()
	}
	if in.Tags != nil {
		p.Tags = requests.CSV(*in.Tags)
	}
	if in.MainFeatures != nil {
		p.MainFeatures = requests.CSV(*in.MainFeatures)
	}
	if in.KeyFeatures != nil {
		p.KeyFeatures = requests.CSV(*in.KeyFeatures)
	}
	if in.WhatsInTheBox != nil {
		p.WhatsInTheBox = requests.CSV(*in.WhatsInTheBox)
	}

	specs, err := in.Specs()
	if err != nil {
		return err
	}
	if specs != nil {
		p.Specifications = specs
	}
	return nil
}
