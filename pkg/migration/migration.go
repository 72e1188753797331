// Package migration runs named, batched schema changes against MongoDB:
// index creation, collection validators, data backfills.
//
//	func init() {
//	    migration.Register("20240101000000_create_indexes", &CreateIndexes{})
//	}
//
// Applied migrations are recorded in the "migrations" collection with the
// batch they ran in, so the last batch can be rolled back as a unit.
package migration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/shopfront/pkg/logger"
)

// Migration is one reversible change.
type Migration interface {
	Up(ctx context.Context, db *mongo.Database) error
	Down(ctx context.Context, db *mongo.Database) error
}

// Named pairs a migration with its sortable name.
type Named struct {
	Name      string
	Migration Migration
}

// Record is a ledger entry for an applied migration.
type Record struct {
	Name  string    `bson:"name"`
	Batch int       `bson:"batch"`
	RunAt time.Time `bson:"runAt"`
}

// Status is one row of Runner.Status.
type Status struct {
	Name  string
	Ran   bool
	Batch int
}

// Ledger persists which migrations have run.
type Ledger interface {
	Applied(ctx context.Context) ([]Record, error)
	Add(ctx context.Context, rec Record) error
	Remove(ctx context.Context, name string) error
}

var (
	mu       sync.Mutex
	registry []Named
)

// Register adds a migration to the global registry. Names should be
// timestamp-prefixed so they sort chronologically.
func Register(name string, m Migration) {
	mu.Lock()
	defer mu.Unlock()
	registry = append(registry, Named{Name: name, Migration: m})
}

// Registered returns the registry sorted by name.
func Registered() []Named {
	mu.Lock()
	out := append([]Named(nil), registry...)
	mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Runner applies and reverts migrations.
type Runner struct {
	db         *mongo.Database
	ledger     Ledger
	migrations []Named
	now        func() time.Time
}

// New builds a Runner over the registered migrations with the ledger kept
// in db's "migrations" collection.
func New(db *mongo.Database) *Runner {
	return NewRunner(db, NewMongoLedger(db.Collection("migrations")), Registered())
}

// NewRunner builds a Runner from explicit parts.
func NewRunner(db *mongo.Database, ledger Ledger, migrations []Named) *Runner {
	sorted := append([]Named(nil), migrations...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return &Runner{db: db, ledger: ledger, migrations: sorted, now: time.Now}
}

// Pending lists migrations that have not run, in name order.
func (r *Runner) Pending(ctx context.Context) ([]Named, error) {
	applied, err := r.ledger.Applied(ctx)
	if err != nil {
		return nil, fmt.Errorf("migration: read ledger: %w", err)
	}
	ran := make(map[string]bool, len(applied))
	for _, rec := range applied {
		ran[rec.Name] = true
	}

	var pending []Named
	for _, m := range r.migrations {
		if !ran[m.Name] {
			pending = append(pending, m)
		}
	}
	return pending, nil
}

// Run applies every pending migration in one new batch and returns the
// names it ran.
func (r *Runner) Run(ctx context.Context) ([]string, error) {
	pending, err := r.Pending(ctx)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		logger.Info("migration: nothing to migrate")
		return nil, nil
	}

	batch, err := r.lastBatch(ctx)
	if err != nil {
		return nil, err
	}
	batch++

	var ran []string
	for _, m := range pending {
		logger.Info("migration: running", "name", m.Name, "batch", batch)
		if err := m.Migration.Up(ctx, r.db); err != nil {
			return ran, fmt.Errorf("migration: %s up: %w", m.Name, err)
		}
		if err := r.ledger.Add(ctx, Record{Name: m.Name, Batch: batch, RunAt: r.now().UTC()}); err != nil {
			return ran, fmt.Errorf("migration: record %s: %w", m.Name, err)
		}
		ran = append(ran, m.Name)
	}

	logger.Info("migration: done", "ran", len(ran), "batch", batch)
	return ran, nil
}

// Rollback reverts the most recent batch in reverse order and returns the
// names it reverted.
func (r *Runner) Rollback(ctx context.Context) ([]string, error) {
	applied, err := r.ledger.Applied(ctx)
	if err != nil {
		return nil, fmt.Errorf("migration: read ledger: %w", err)
	}

	last := 0
	for _, rec := range applied {
		if rec.Batch > last {
			last = rec.Batch
		}
	}
	if last == 0 {
		return nil, nil
	}

	var batch []Record
	for _, rec := range applied {
		if rec.Batch == last {
			batch = append(batch, rec)
		}
	}
	sort.Slice(batch, func(i, j int) bool { return batch[i].Name > batch[j].Name })

	known := make(map[string]Migration, len(r.migrations))
	for _, m := range r.migrations {
		known[m.Name] = m.Migration
	}

	var reverted []string
	for _, rec := range batch {
		m, ok := known[rec.Name]
		if !ok {
			return reverted, fmt.Errorf("migration: cannot roll back %s: not registered", rec.Name)
		}
		logger.Info("migration: rolling back", "name", rec.Name, "batch", last)
		if err := m.Down(ctx, r.db); err != nil {
			return reverted, fmt.Errorf("migration: %s down: %w", rec.Name, err)
		}
		if err := r.ledger.Remove(ctx, rec.Name); err != nil {
			return reverted, fmt.Errorf("migration: unrecord %s: %w", rec.Name, err)
		}
		reverted = append(reverted, rec.Name)
	}
	return reverted, nil
}

// Status reports every known migration and whether it ran.
func (r *Runner) Status(ctx context.Context) ([]Status, error) {
	applied, err := r.ledger.Applied(ctx)
	if err != nil {
		return nil, fmt.Errorf("migration: read ledger: %w", err)
	}
	byName := make(map[string]Record, len(applied))
	for _, rec := range applied {
		byName[rec.Name] = rec
	}

	out := make([]Status, 0, len(r.migrations))
	for _, m := range r.migrations {
		rec, ok := byName[m.Name]
		out = append(out, Status{Name: m.Name, Ran: ok, Batch: rec.Batch})
	}
	return out, nil
}

func (r *Runner) lastBatch(ctx context.Context) (int, error) {
	applied, err := r.ledger.Applied(ctx)
	if err != nil {
		return 0, fmt.Errorf("migration: read ledger: %w", err)
	}
	last := 0
	for _, rec := range applied {
		if rec.Batch > last {
			last = rec.Batch
		}
	}
	return last, nil
}
