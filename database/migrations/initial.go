package migrations

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/shopfront/pkg/database"
	"github.com/shashiranjanraj/shopfront/pkg/migration"
)

func init() {
	migration.Register("20260101000000_create_indexes", &CreateIndexes{})
}

type index struct {
	name   string
	keys   bson.D
	unique bool
}

// catalogIndexes is every index the repositories query through, by
// collection.
var catalogIndexes = map[string][]index{
	database.Users: {
		{name: "email_unique", keys: bson.D{{Key: "email", Value: 1}}, unique: true},
		{name: "is_admin", keys: bson.D{{Key: "isAdmin", Value: 1}}},
		{name: "created_at", keys: bson.D{{Key: "createdAt", Value: -1}}},
	},
	database.Products: {
		{name: "text_search", keys: bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}}},
		{name: "category", keys: bson.D{{Key: "category", Value: 1}}},
		{name: "featured", keys: bson.D{{Key: "featured", Value: 1}}},
		{name: "created_at", keys: bson.D{{Key: "createdAt", Value: -1}}},
	},
	database.Reviews: {
		{name: "product_status", keys: bson.D{{Key: "productId", Value: 1}, {Key: "status", Value: 1}}},
		{name: "status", keys: bson.D{{Key: "status", Value: 1}}},
		{name: "created_at", keys: bson.D{{Key: "createdAt", Value: -1}}},
	},
	database.Orders: {
		{name: "user", keys: bson.D{{Key: "userId", Value: 1}}},
		{name: "status", keys: bson.D{{Key: "status", Value: 1}}},
		{name: "created_at", keys: bson.D{{Key: "createdAt", Value: -1}}},
	},
	database.Carts: {
		{name: "user_unique", keys: bson.D{{Key: "userId", Value: 1}}, unique: true},
	},
	database.Banners: {
		{name: "position_active", keys: bson.D{{Key: "position", Value: 1}, {Key: "isActive", Value: 1}}},
	},
	database.Testimonials: {
		{name: "status_created", keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
	},
	database.Newsletter: {
		{name: "email_unique", keys: bson.D{{Key: "email", Value: 1}}, unique: true},
		{name: "status_subscribed", keys: bson.D{{Key: "status", Value: 1}, {Key: "subscribedAt", Value: -1}}},
	},
	database.Contacts: {
		{name: "status_created", keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
	},
}

// CreateIndexes builds the uniqueness guarantees and query indexes.
type CreateIndexes struct{}

func (m *CreateIndexes) Up(ctx context.Context, db *mongo.Database) error {
	for coll, indexes := range catalogIndexes {
		models := make([]mongo.IndexModel, 0, len(indexes))
		for _, ix := range indexes {
			opts := options.Index().SetName(ix.name)
			if ix.unique {
				opts.SetUnique(true)
			}
			models = append(models, mongo.IndexModel{Keys: ix.keys, Options: opts})
		}
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("indexes on %s: %w", coll, err)
		}
	}
	return nil
}

func (m *CreateIndexes) Down(ctx context.Context, db *mongo.Database) error {
	for coll, indexes := range catalogIndexes {
		for _, ix := range indexes {
			if _, err := db.Collection(coll).Indexes().DropOne(ctx, ix.name); err != nil && !isMissingIndex(err) {
				return fmt.Errorf("drop %s.%s: %w", coll, ix.name, err)
			}
		}
	}
	return nil
}

// isMissingIndex matches IndexNotFound (27) and NamespaceNotFound (26).
func isMissingIndex(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code == 27 || cmdErr.Code == 26
	}
	return false
}
