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
)

const subscriberEntity = "Subscriber"

// SubscriberRepository handles database operations for newsletter
// subscriptions.
type SubscriberRepository struct {
	col *mongo.Collection
}

func NewSubscriberRepository(store *database.Store) *SubscriberRepository {
	return &SubscriberRepository{col: store.Collection(database.Newsletter)}
}

func (r *SubscriberRepository) FindByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	defer database.Observe(database.Newsletter, "findOne")()

	var s models.Subscriber
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&s); err != nil {
		return nil, mapErr(err, subscriberEntity)
	}
	return &s, nil
}

func (r *SubscriberRepository) Create(ctx context.Context, s *models.Subscriber) error {
	defer database.Observe(database.Newsletter, "insert")()

	res, err := r.col.InsertOne(ctx, s)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.Conflict("Email already subscribed")
		}
		return mapErr(err, subscriberEntity)
	}
	s.ID = insertedID(res)
	return nil
}

// Reactivate turns an unsubscribed record back on.
func (r *SubscriberRepository) Reactivate(ctx context.Context, s *models.Subscriber) error {
	defer database.Observe(database.Newsletter, "update")()

	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": s.ID},
		bson.M{
			"$set": bson.M{
				"name":         s.Name,
				"status":       models.SubscriberActive,
				"preferences":  s.Preferences,
				"subscribedAt": s.SubscribedAt,
			},
			"$unset": bson.M{"unsubscribedAt": ""},
		},
	)
	return mapErr(err, subscriberEntity)
}

// Unsubscribe marks the subscription by email as unsubscribed.
func (r *SubscriberRepository) Unsubscribe(ctx context.Context, email string) error {
	defer database.Observe(database.Newsletter, "update")()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"status": models.SubscriberUnsubscribed, "unsubscribedAt": time.Now().UTC()}},
	)
	if err != nil {
		return mapErr(err, subscriberEntity)
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound(subscriberEntity)
	}
	return nil
}

// List returns up to limit subscribers in status, newest first.
func (r *SubscriberRepository) List(ctx context.Context, status string, limit int) ([]models.Subscriber, error) {
	defer database.Observe(database.Newsletter, "find")()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	out, err := findAll[models.Subscriber](ctx, r.col, filter,
		options.Find().SetSort(bson.D{{Key: "subscribedAt", Value: -1}}).SetLimit(int64(limit)))
	return out, mapErr(err, subscriberEntity)
}
