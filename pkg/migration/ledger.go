package migration

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoLedger stores Records in a collection.
type MongoLedger struct {
	col *mongo.Collection
}

func NewMongoLedger(col *mongo.Collection) *MongoLedger {
	return &MongoLedger{col: col}
}

func (l *MongoLedger) Applied(ctx context.Context) ([]Record, error) {
	cur, err := l.col.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "batch", Value: 1}, {Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var out []Record
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (l *MongoLedger) Add(ctx context.Context, rec Record) error {
	_, err := l.col.InsertOne(ctx, rec)
	return err
}

func (l *MongoLedger) Remove(ctx context.Context, name string) error {
	_, err := l.col.DeleteOne(ctx, bson.D{{Key: "name", Value: name}})
	return err
}
