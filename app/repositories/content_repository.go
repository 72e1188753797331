package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/shopfront/app/models"
	"github.com/shashiranjanraj/shopfront/pkg/database"
	"github.com/shashiranjanraj/shopfront/pkg/pagination"
)

const (
	bannerEntity      = "Banner"
	testimonialEntity = "Testimonial"
	contactEntity     = "Contact"
)

// BannerFilter narrows a banner listing.
type BannerFilter struct {
	ActiveOnly bool
	Position   string
}

// BannerRepository handles database operations for Banner.
type BannerRepository struct {
	col *mongo.Collection
}

func NewBannerRepository(store *database.Store) *BannerRepository {
	return &BannerRepository{col: store.Collection(database.Banners)}
}

// List returns every matching banner, newest first. Banners are few, so
// there is no paging.
func (r *BannerRepository) List(ctx context.Context, f BannerFilter) ([]models.Banner, error) {
	defer database.Observe(database.Banners, "find")()

	filter := bson.M{}
	if f.ActiveOnly {
		filter["isActive"] = true
	}
	if f.Position != "" {
		filter["position"] = f.Position
	}
	out, err := findAll[models.Banner](ctx, r.col, filter, options.Find().SetSort(newestFirst))
	return out, mapErr(err, bannerEntity)
}

func (r *BannerRepository) FindByID(ctx context.Context, id string) (*models.Banner, error) {
	defer database.Observe(database.Banners, "findOne")()
	return findByID[models.Banner](ctx, r.col, id, bannerEntity)
}

func (r *BannerRepository) Create(ctx context.Context, b *models.Banner) error {
	defer database.Observe(database.Banners, "insert")()

	res, err := r.col.InsertOne(ctx, b)
	if err != nil {
		return mapErr(err, bannerEntity)
	}
	b.ID = insertedID(res)
	return nil
}

func (r *BannerRepository) Update(ctx context.Context, b *models.Banner) error {
	defer database.Observe(database.Banners, "update")()

	return setByID(ctx, r.col, b.ID.Hex(), bannerEntity, bson.M{
		"title":           b.Title,
		"subtitle":        b.Subtitle,
		"description":     b.Description,
		"buttonText":      b.ButtonText,
		"buttonLink":      b.ButtonLink,
		"image":           b.Image,
		"position":        b.Position,
		"isActive":        b.IsActive,
		"backgroundColor": b.BackgroundColor,
		"textColor":       b.TextColor,
		"updatedAt":       b.UpdatedAt,
	})
}

func (r *BannerRepository) Delete(ctx context.Context, id string) error {
	defer database.Observe(database.Banners, "delete")()
	return deleteByID(ctx, r.col, id, bannerEntity)
}

// TestimonialRepository handles database operations for Testimonial.
type TestimonialRepository struct {
	col *mongo.Collection
}

func NewTestimonialRepository(store *database.Store) *TestimonialRepository {
	return &TestimonialRepository{col: store.Collection(database.Testimonials)}
}

// List returns one page of testimonials; an empty status means all.
func (r *TestimonialRepository) List(ctx context.Context, status string, p pagination.Params) ([]models.Testimonial, int64, error) {
	defer database.Observe(database.Testimonials, "find")()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return page[models.Testimonial](ctx, r.col, filter, p, newestFirst, testimonialEntity)
}

func (r *TestimonialRepository) Create(ctx context.Context, t *models.Testimonial) error {
	defer database.Observe(database.Testimonials, "insert")()

	res, err := r.col.InsertOne(ctx, t)
	if err != nil {
		return mapErr(err, testimonialEntity)
	}
	t.ID = insertedID(res)
	return nil
}

func (r *TestimonialRepository) SetStatus(ctx context.Context, id, status string) error {
	defer database.Observe(database.Testimonials, "update")()
	return setByID(ctx, r.col, id, testimonialEntity, bson.M{"status": status, "updatedAt": time.Now().UTC()})
}

func (r *TestimonialRepository) Delete(ctx context.Context, id string) error {
	defer database.Observe(database.Testimonials, "delete")()
	return deleteByID(ctx, r.col, id, testimonialEntity)
}

// ContactRepository handles database operations for Contact.
type ContactRepository struct {
	col *mongo.Collection
}

func NewContactRepository(store *database.Store) *ContactRepository {
	return &ContactRepository{col: store.Collection(database.Contacts)}
}

func (r *ContactRepository) Create(ctx context.Context, c *models.Contact) error {
	defer database.Observe(database.Contacts, "insert")()

	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return mapErr(err, contactEntity)
	}
	c.ID = insertedID(res)
	return nil
}

// List returns the newest messages; an empty status means all.
func (r *ContactRepository) List(ctx context.Context, status string, p pagination.Params) ([]models.Contact, error) {
	defer database.Observe(database.Contacts, "find")()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	out, err := findAll[models.Contact](ctx, r.col, filter, window(p, newestFirst))
	return out, mapErr(err, contactEntity)
}

func (r *ContactRepository) SetStatus(ctx context.Context, id, status string) error {
	defer database.Observe(database.Contacts, "update")()
	return setByID(ctx, r.col, id, contactEntity, bson.M{"status": status, "updatedAt": time.Now().UTC()})
}
