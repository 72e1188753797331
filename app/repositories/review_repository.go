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

const reviewEntity = "Review"

// ReviewFilter narrows a review listing. Empty fields mean "any".
type ReviewFilter struct {
	ProductID string
	Status    string
}

// ReviewRepository handles database operations for Review.
type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(store *database.Store) *ReviewRepository {
	return &ReviewRepository{col: store.Collection(database.Reviews)}
}

func (r *ReviewRepository) List(ctx context.Context, f ReviewFilter, p pagination.Params) ([]models.Review, int64, error) {
	defer database.Observe(database.Reviews, "find")()

	filter := bson.M{}
	if f.ProductID != "" {
		filter["productId"] = f.ProductID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return page[models.Review](ctx, r.col, filter, p, newestFirst, reviewEntity)
}

func (r *ReviewRepository) FindByID(ctx context.Context, id string) (*models.Review, error) {
	defer database.Observe(database.Reviews, "findOne")()
	return findByID[models.Review](ctx, r.col, id, reviewEntity)
}

func (r *ReviewRepository) Create(ctx context.Context, rv *models.Review) error {
	defer database.Observe(database.Reviews, "insert")()

	res, err := r.col.InsertOne(ctx, rv)
	if err != nil {
		return mapErr(err, reviewEntity)
	}
	rv.ID = insertedID(res)
	return nil
}

func (r *ReviewRepository) SetStatus(ctx context.Context, id, status string) error {
	defer database.Observe(database.Reviews, "update")()
	return setByID(ctx, r.col, id, reviewEntity, bson.M{"status": status, "updatedAt": time.Now().UTC()})
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	defer database.Observe(database.Reviews, "delete")()
	return deleteByID(ctx, r.col, id, reviewEntity)
}

// DeleteByProduct removes every review of a product.
func (r *ReviewRepository) DeleteByProduct(ctx context.Context, productID string) (int64, error) {
	defer database.Observe(database.Reviews, "deleteMany")()

	res, err := r.col.DeleteMany(ctx, bson.M{"productId": productID})
	if err != nil {
		return 0, mapErr(err, reviewEntity)
	}
	return res.DeletedCount, nil
}

// ApprovedRatings returns the star values of every approved review of a
// product, in no particular order.
func (r *ReviewRepository) ApprovedRatings(ctx context.Context, productID string) ([]int, error) {
	defer database.Observe(database.Reviews, "ratings")()

	docs, err := findAll[struct {
		Rating int `bson:"rating"`
	}](ctx, r.col,
		bson.M{"productId": productID, "status": models.ReviewApproved},
		options.Find().SetProjection(bson.M{"rating": 1, "_id": 0}),
	)
	if err != nil {
		return nil, mapErr(err, reviewEntity)
	}

	out := make([]int, len(docs))
	for i, d := range docs {
		out[i] = d.Rating
	}
	return out, nil
}

func (r *ReviewRepository) Count(ctx context.Context) (int64, error) {
	defer database.Observe(database.Reviews, "count")()
	n, err := r.col.CountDocuments(ctx, bson.M{})
	return n, mapErr(err, reviewEntity)
}
