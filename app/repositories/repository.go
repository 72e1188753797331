// Package repositories holds the MongoDB access for each collection. Every
// method maps driver errors into the apperrors taxonomy so services never
// see a raw driver error for the expected cases.
package repositories

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/shopfront/pkg/apperrors"
	"github.com/shashiranjanraj/shopfront/pkg/pagination"
)

var newestFirst = bson.D{{Key: "createdAt", Value: -1}}

// objectID parses a hex id. A malformed id cannot match any document, so it
// is reported as the entity being missing.
func objectID(id, entity string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.NotFound(entity)
	}
	return oid, nil
}

func mapErr(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return apperrors.NotFound(entity)
	case mongo.IsDuplicateKeyError(err):
		return apperrors.Conflict(entity + " already exists")
	default:
		return apperrors.Internal(err)
	}
}

func window(p pagination.Params, sort bson.D) *options.FindOptions {
	return options.Find().
		SetSort(sort).
		SetSkip(int64(p.Skip)).
		SetLimit(int64(p.Limit))
}

func findAll[T any](ctx context.Context, col *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cur, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// page runs a windowed find plus a count over the same filter.
func page[T any](ctx context.Context, col *mongo.Collection, filter bson.M, p pagination.Params, sort bson.D, entity string) ([]T, int64, error) {
	items, err := findAll[T](ctx, col, filter, window(p, sort))
	if err != nil {
		return nil, 0, mapErr(err, entity)
	}
	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, mapErr(err, entity)
	}
	return items, total, nil
}

// deleteByID removes one document and reports NotFound when nothing matched.
func deleteByID(ctx context.Context, col *mongo.Collection, id, entity string) error {
	oid, err := objectID(id, entity)
	if err != nil {
		return err
	}
	res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return mapErr(err, entity)
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFound(entity)
	}
	return nil
}

// setByID applies $set to one document and reports NotFound when nothing
// matched.
func setByID(ctx context.Context, col *mongo.Collection, id, entity string, set bson.M) error {
	oid, err := objectID(id, entity)
	if err != nil {
		return err
	}
	res, err := col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return mapErr(err, entity)
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound(entity)
	}
	return nil
}

func findByID[T any](ctx context.Context, col *mongo.Collection, id, entity string, opts ...*options.FindOneOptions) (*T, error) {
	oid, err := objectID(id, entity)
	if err != nil {
		return nil, err
	}
	var out T
	if err := col.FindOne(ctx, bson.M{"_id": oid}, opts...).Decode(&out); err != nil {
		return nil, mapErr(err, entity)
	}
	return &out, nil
}

// containsFold builds a case-insensitive substring match with the user's
// text escaped, so input like "a.b" matches literally.
func containsFold(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func insertedID(res *mongo.InsertOneResult) primitive.ObjectID {
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid
	}
	return primitive.NilObjectID
}
