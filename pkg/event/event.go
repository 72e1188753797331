// Package event is an in-process publish/subscribe bus for domain events.
package event

import (
	"context"
	"sync"
)

// Names of the events published by the application.
const (
	// ReviewChanged fires whenever a review is created, changes status or is
	// deleted in a way that can move its product's aggregate.
	ReviewChanged = "review.changed"
	// ProductChanged fires after a product is updated or deleted.
	ProductChanged = "product.changed"
)

// ReviewChangedPayload names the product whose aggregate must be refreshed.
type ReviewChangedPayload struct {
	ProductID string
}

// ProductChangedPayload names a product whose cached read is stale.
type ProductChangedPayload struct {
	ProductID string
}

// Handler receives an event payload.
type Handler func(ctx context.Context, payload any)

// Bus dispatches events to the listeners registered for their name.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: map[string][]Handler{}}
}

// Listen registers handler for name.
func (b *Bus) Listen(name string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], handler)
}

// Fire calls every listener for name in registration order on the caller's
// goroutine. Listeners that do slow work hand it off themselves.
func (b *Bus) Fire(ctx context.Context, name string, payload any) {
	for _, h := range b.listeners(name) {
		h(ctx, payload)
	}
}

// Has reports whether name has listeners.
func (b *Bus) Has(name string) bool {
	return len(b.listeners(name)) > 0
}

// Flush removes all listeners.
func (b *Bus) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = map[string][]Handler{}
}

func (b *Bus) listeners(name string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Handler(nil), b.handlers[name]...)
}
