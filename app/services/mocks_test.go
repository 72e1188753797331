package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/shashiranjanraj/shopfront/app/models"
	"github.com/shashiranjanraj/shopfront/app/repositories"
	"github.com/shashiranjanraj/shopfront/pkg/pagination"
)

// --- Mock User Store ---

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) Create(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserStore) Update(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserStore) SetPassword(ctx context.Context, id, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}

func (m *mockUserStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserStore) List(ctx context.Context, search string, p pagination.Params) ([]models.User, int64, error) {
	args := m.Called(ctx, search, p)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

// --- Mock Subscriber Store ---

type mockSubscriberStore struct {
	mock.Mock
}

func (m *mockSubscriberStore) FindByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscriber), args.Error(1)
}

func (m *mockSubscriberStore) Create(ctx context.Context, s *models.Subscriber) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSubscriberStore) Reactivate(ctx context.Context, s *models.Subscriber) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSubscriberStore) Unsubscribe(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockSubscriberStore) List(ctx context.Context, status string, limit int) ([]models.Subscriber, error) {
	args := m.Called(ctx, status, limit)
	return args.Get(0).([]models.Subscriber), args.Error(1)
}

// --- Mock Cart ---

type mockCarts struct {
	mock.Mock
}

func (m *mockCarts) Clear(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

// --- Mock Order Store ---

type mockOrderStore struct {
	mock.Mock
}

func (m *mockOrderStore) Create(ctx context.Context, o *models.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockOrderStore) FindByID(ctx context.Context, id string) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *mockOrderStore) List(ctx context.Context, f repositories.OrderFilter, p pagination.Params) ([]models.Order, int64, error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).([]models.Order), args.Get(1).(int64), args.Error(2)
}

func (m *mockOrderStore) SetStatus(ctx context.Context, id, status string) error {
	return m.Called(ctx, id, status).Error(0)
}
