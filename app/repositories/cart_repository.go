package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/shopfront/app/models"
	"github.com/shashiranjanraj/shopfront/pkg/database"
)

const cartEntity = "Cart"

// CartRepository stores one cart document per user.
type CartRepository struct {
	col *mongo.Collection
}

func NewCartRepository(store *database.Store) *CartRepository {
	return &CartRepository{col: store.Collection(database.Carts)}
}

// Items returns the saved cart lines, or an empty slice when the user has
// no cart yet.
func (r *CartRepository) Items(ctx context.Context, userID string) ([]models.CartItem, error) {
	defer database.Observe(database.Carts, "findOne")()

	var c models.Cart
	err := r.col.FindOne(ctx, bson.M{"userId": userID}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []models.CartItem{}, nil
	}
	if err != nil {
		return nil, mapErr(err, cartEntity)
	}
	if c.Items == nil {
		c.Items = []models.CartItem{}
	}
	return c.Items, nil
}

// Save replaces the user's cart lines, creating the cart if needed.
func (r *CartRepository) Save(ctx context.Context, userID string, items []models.CartItem) error {
	defer database.Observe(database.Carts, "upsert")()

	if items == nil {
		items = []models.CartItem{}
	}
	_, err := r.col.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"items": items, "updatedAt": time.Now().UTC()}},
		options.Update().SetUpsert(true),
	)
	return mapErr(err, cartEntity)
}

// Clear empties the cart after checkout.
func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	return r.Save(ctx, userID, nil)
}
