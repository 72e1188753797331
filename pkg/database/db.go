package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/shashiranjanraj/shopfront/config"
	"github.com/shashiranjanraj/shopfront/pkg/metrics"
)

// Collection names.
const (
	Users        = "users"
	Products     = "products"
	Reviews      = "reviews"
	Orders       = "orders"
	Carts        = "carts"
	Banners      = "banners"
	Testimonials = "testimonials"
	Newsletter   = "newsletter_subscribers"
	Contacts     = "contacts"
	Logs         = "logs"
	Migrations   = "migrations"
)

// Store owns the Mongo client for the life of the process. Build it once at
// startup and hand it to whatever needs a collection.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens the client and verifies the deployment is reachable.
// Returns an error instead of exiting so the caller can shut down cleanly.
func Connect(ctx context.Context, cfg config.Config) (*Store, error) {
	timeout := cfg.MongoTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout).
		SetMaxPoolSize(50).
		SetMinPoolSize(2).
		SetMaxConnIdleTime(2 * time.Minute)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	return &Store{client: client, db: client.Database(cfg.MongoDB)}, nil
}

// NewStore wraps an already-connected database. Tests use it with mtest.
func NewStore(db *mongo.Database) *Store {
	return &Store{client: db.Client(), db: db}
}

// Collection returns a handle for name.
func (s *Store) Collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// DB exposes the database for index and aggregate work.
func (s *Store) DB() *mongo.Database { return s.db }

// Ping reports whether the primary is reachable. Used by /readyz.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// Observe times one store operation:
//
//	defer database.Observe(database.Reviews, "find")()
func Observe(collection, op string) func() {
	start := time.Now()
	return func() {
		metrics.ObserveDBQuery(collection, op, start)
	}
}
