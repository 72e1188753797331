package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/shopfront/app/models"
	"github.com/shashiranjanraj/shopfront/pkg/apperrors"
	"github.com/shashiranjanraj/shopfront/pkg/database"
	"github.com/shashiranjanraj/shopfront/pkg/pagination"
)

const productEntity = "Product"

// ProductFilter narrows a catalogue listing. Zero values mean "any".
type ProductFilter struct {
	Category string
	Featured bool
	Search   string
}

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(store *database.Store) *ProductRepository {
	return &ProductRepository{col: store.Collection(database.Products)}
}

// List returns one page of products, newest first.
func (r *ProductRepository) List(ctx context.Context, f ProductFilter, p pagination.Params) ([]models.Product, int64, error) {
	defer database.Observe(database.Products, "find")()

	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Featured {
		filter["featured"] = true
	}
	if f.Search != "" {
		filter["$text"] = bson.M{"$search": f.Search}
	}
	return page[models.Product](ctx, r.col, filter, p, newestFirst, productEntity)
}

// FindByID looks up a product by its hex id.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	defer database.Observe(database.Products, "findOne")()
	return findByID[models.Product](ctx, r.col, id, productEntity)
}

// Create inserts p and fills in its id.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	defer database.Observe(database.Products, "insert")()

	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return mapErr(err, productEntity)
	}
	p.ID = insertedID(res)
	return nil
}

// Update writes the editable fields of p. Rating, review count and creation
// time are left alone; only SetRating touches the rating.
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	defer database.Observe(database.Products, "update")()

	return setByID(ctx, r.col, p.ID.Hex(), productEntity, bson.M{
		"name":           p.Name,
		"description":    p.Description,
		"price":          p.Price,
		"originalPrice":  p.OriginalPrice,
		"category":       p.Category,
		"subcategory":    p.Subcategory,
		"brand":          p.Brand,
		"stock":          p.Stock,
		"featured":       p.Featured,
		"tags":           p.Tags,
		"mainFeatures":   p.MainFeatures,
		"keyFeatures":    p.KeyFeatures,
		"whatsInTheBox":  p.WhatsInTheBox,
		"specifications": p.Specifications,
		"images":         p.Images,
		"updatedAt":      p.UpdatedAt,
	})
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	defer database.Observe(database.Products, "delete")()
	return deleteByID(ctx, r.col, id, productEntity)
}

// SetRating stores the aggregate computed from approved reviews.
func (r *ProductRepository) SetRating(ctx context.Context, id string, rating float64, count int) error {
	defer database.Observe(database.Products, "setRating")()

	return setByID(ctx, r.col, id, productEntity, bson.M{
		"rating":      rating,
		"reviewCount": count,
		"updatedAt":   time.Now().UTC(),
	})
}

// ReserveStock decrements stock by qty only if enough is on hand.
func (r *ProductRepository) ReserveStock(ctx context.Context, id string, qty int) error {
	defer database.Observe(database.Products, "reserveStock")()

	oid, err := objectID(id, productEntity)
	if err != nil {
		return err
	}
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "stock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"stock": -qty}},
	)
	if err != nil {
		return mapErr(err, productEntity)
	}
	if res.MatchedCount == 0 {
		return apperrors.Conflict("Insufficient stock")
	}
	return nil
}

// ReleaseStock returns qty units reserved by ReserveStock.
func (r *ProductRepository) ReleaseStock(ctx context.Context, id string, qty int) error {
	defer database.Observe(database.Products, "releaseStock")()

	oid, err := objectID(id, productEntity)
	if err != nil {
		return err
	}
	_, err = r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"stock": qty}})
	return mapErr(err, productEntity)
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	defer database.Observe(database.Products, "count")()
	n, err := r.col.CountDocuments(ctx, bson.M{})
	return n, mapErr(err, productEntity)
}

// Recent returns the n newest products.
func (r *ProductRepository) Recent(ctx context.Context, n int) ([]models.Product, error) {
	defer database.Observe(database.Products, "find")()
	out, err := findAll[models.Product](ctx, r.col, bson.M{}, options.Find().SetSort(newestFirst).SetLimit(int64(n)))
	return out, mapErr(err, productEntity)
}
