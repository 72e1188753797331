package services

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/shopfront/app/models"
	"github.com/shashiranjanraj/shopfront/app/repositories"
	"github.com/shashiranjanraj/shopfront/pkg/apperrors"
	"github.com/shashiranjanraj/shopfront/pkg/pagination"
)

// memCatalog is an in-memory product and review store. It is safe for the
// worker goroutines that recompute ratings.
type memCatalog struct {
	mu       sync.Mutex
	products map[string]*models.Product
	reviews  map[string]*models.Review
	order    []string
}

func newMemCatalog() *memCatalog {
	return &memCatalog{products: map[string]*models.Product{}, reviews: map[string]*models.Review{}}
}

func (m *memCatalog) addProduct(p models.Product) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	m.products[p.ID.Hex()] = &p
	return p.ID.Hex()
}

func (m *memCatalog) product(id string) models.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.products[id]
}

// products

type memProducts struct{ *memCatalog }

func (m memProducts) List(_ context.Context, f repositories.ProductFilter, p pagination.Params) ([]models.Product, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Product{}
	for _, pr := range m.products {
		if f.Category != "" && pr.Category != f.Category {
			continue
		}
		if f.Featured && !pr.Featured {
			continue
		}
		out = append(out, *pr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, int64(len(out)), nil
}

func (m memProducts) FindByID(_ context.Context, id string) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, apperrors.NotFound("Product")
	}
	cp := *p
	cp.Images = append([]string(nil), p.Images...)
	return &cp, nil
}

func (m memProducts) Create(_ context.Context, p *models.Product) error {
	p.ID = primitive.NewObjectID()
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.products[p.ID.Hex()] = &cp
	return nil
}

func (m memProducts) Update(_ context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.products[p.ID.Hex()]
	if !ok {
		return apperrors.NotFound("Product")
	}
	cp := *p
	cp.Rating, cp.ReviewCount, cp.CreatedAt = cur.Rating, cur.ReviewCount, cur.CreatedAt
	m.products[p.ID.Hex()] = &cp
	return nil
}

func (m memProducts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return apperrors.NotFound("Product")
	}
	delete(m.products, id)
	return nil
}

func (m memProducts) SetRating(_ context.Context, id string, rating float64, count int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return apperrors.NotFound("Product")
	}
	p.Rating, p.ReviewCount = rating, count
	return nil
}

func (m memProducts) ReserveStock(_ context.Context, id string, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return apperrors.NotFound("Product")
	}
	if p.Stock < qty {
		return apperrors.Conflict("Insufficient stock")
	}
	p.Stock -= qty
	return nil
}

func (m memProducts) ReleaseStock(_ context.Context, id string, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.products[id]; ok {
		p.Stock += qty
	}
	return nil
}

// reviews

type memReviews struct{ *memCatalog }

func (m memReviews) List(_ context.Context, f repositories.ReviewFilter, _ pagination.Params) ([]models.Review, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Review{}
	for _, id := range m.order {
		r, ok := m.reviews[id]
		if !ok {
			continue
		}
		if f.ProductID != "" && r.ProductID != f.ProductID {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		out = append(out, *r)
	}
	return out, int64(len(out)), nil
}

func (m memReviews) FindByID(_ context.Context, id string) (*models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reviews[id]
	if !ok {
		return nil, apperrors.NotFound("Review")
	}
	cp := *r
	return &cp, nil
}

func (m memReviews) Create(_ context.Context, r *models.Review) error {
	r.ID = primitive.NewObjectID()
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.reviews[r.ID.Hex()] = &cp
	m.order = append(m.order, r.ID.Hex())
	return nil
}

func (m memReviews) SetStatus(_ context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reviews[id]
	if !ok {
		return apperrors.NotFound("Review")
	}
	r.Status = status
	return nil
}

func (m memReviews) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reviews[id]; !ok {
		return apperrors.NotFound("Review")
	}
	delete(m.reviews, id)
	return nil
}

func (m memReviews) DeleteByProduct(_ context.Context, productID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, r := range m.reviews {
		if r.ProductID == productID {
			delete(m.reviews, id)
			n++
		}
	}
	return n, nil
}

func (m memReviews) ApprovedRatings(_ context.Context, productID string) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []int{}
	for _, r := range m.reviews {
		if r.ProductID == productID && r.Status == models.ReviewApproved {
			out = append(out, r.Rating)
		}
	}
	return out, nil
}

// recordingBus captures fired events.
type recordingBus struct {
	mu     sync.Mutex
	events []string
	loads  []any
}

func (b *recordingBus) Fire(_ context.Context, name string, payload any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, name)
	b.loads = append(b.loads, payload)
}

func (b *recordingBus) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}

func defaultPage() pagination.Params { return pagination.Params{Limit: 20} }
