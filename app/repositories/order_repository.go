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

const orderEntity = "Order"

// OrderFilter narrows an order listing. Empty fields mean "any".
type OrderFilter struct {
	UserID string
	Status string
}

// OrderRepository handles database operations for Order.
type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(store *database.Store) *OrderRepository {
	return &OrderRepository{col: store.Collection(database.Orders)}
}

func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	defer database.Observe(database.Orders, "insert")()

	res, err := r.col.InsertOne(ctx, o)
	if err != nil {
		return mapErr(err, orderEntity)
	}
	o.ID = insertedID(res)
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	defer database.Observe(database.Orders, "findOne")()
	return findByID[models.Order](ctx, r.col, id, orderEntity)
}

func (r *OrderRepository) List(ctx context.Context, f OrderFilter, p pagination.Params) ([]models.Order, int64, error) {
	defer database.Observe(database.Orders, "find")()

	filter := bson.M{}
	if f.UserID != "" {
		filter["userId"] = f.UserID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return page[models.Order](ctx, r.col, filter, p, newestFirst, orderEntity)
}

func (r *OrderRepository) SetStatus(ctx context.Context, id, status string) error {
	defer database.Observe(database.Orders, "update")()
	return setByID(ctx, r.col, id, orderEntity, bson.M{"status": status, "updatedAt": time.Now().UTC()})
}

func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	defer database.Observe(database.Orders, "count")()
	n, err := r.col.CountDocuments(ctx, bson.M{})
	return n, mapErr(err, orderEntity)
}

// Revenue sums the totals of orders in a revenue-bearing status.
func (r *OrderRepository) Revenue(ctx context.Context) (float64, error) {
	defer database.Observe(database.Orders, "aggregate")()

	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": bson.M{"$in": models.RevenueStatuses}}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$total"}}}},
	})
	if err != nil {
		return 0, mapErr(err, orderEntity)
	}

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, mapErr(err, orderEntity)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

// Recent returns the n newest orders.
func (r *OrderRepository) Recent(ctx context.Context, n int) ([]models.Order, error) {
	defer database.Observe(database.Orders, "find")()
	out, err := findAll[models.Order](ctx, r.col, bson.M{}, options.Find().SetSort(newestFirst).SetLimit(int64(n)))
	return out, mapErr(err, orderEntity)
}
