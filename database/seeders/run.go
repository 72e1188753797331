// Package seeders fills a fresh database with what the storefront needs to
// boot: an administrator and a small sample catalogue.
//
//	func init() {
//	    seeders.Register("catalog", SeedCatalog)
//	}
//
// Then run via CLI: shopfront seed
package seeders

import (
	"context"
	"fmt"
	"sync"

	"github.com/shashiranjanraj/shopfront/app/services"
	"github.com/shashiranjanraj/shopfront/pkg/database"
	"github.com/shashiranjanraj/shopfront/pkg/logger"
)

// Deps is what a seeder may touch.
type Deps struct {
	Store *database.Store
	Auth  *services.AuthService
}

// SeederFunc is the signature for a seed function. Seeders must be safe to
// run more than once.
type SeederFunc func(ctx context.Context, d Deps) error

type seederEntry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	entries []seederEntry
)

// Register adds a seeder to the global registry.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, seederEntry{name: name, fn: fn})
}

// Names lists registered seeders in run order.
func Names() []string {
	mu.Lock()
	defer mu.Unlock()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.name)
	}
	return out
}

// RunAll executes the registered seeders in registration order, or only
// those named in only. It stops on the first error.
func RunAll(ctx context.Context, d Deps, only ...string) error {
	mu.Lock()
	current := make([]seederEntry, len(entries))
	copy(current, entries)
	mu.Unlock()

	want := map[string]bool{}
	for _, n := range only {
		want[n] = true
	}

	for _, e := range current {
		if len(want) > 0 && !want[e.name] {
			continue
		}
		logger.Info("running seeder", "seeder", e.name)
		if err := e.fn(ctx, d); err != nil {
			return fmt.Errorf("seeder %q: %w", e.name, err)
		}
	}
	return nil
}
