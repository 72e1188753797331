package services

import (
	"context"
	"strings"
	"time"

	"github.com/shashiranjanraj/shopfront/app/models"
	"github.com/shashiranjanraj/shopfront/app/requests"
	"github.com/shashiranjanraj/shopfront/pkg/pagination"
)

// ContactStore is the contact-message persistence.
type ContactStore interface {
	Create(ctx context.Context, c *models.Contact) error
	List(ctx context.Context, status string, p pagination.Params) ([]models.Contact, error)
	SetStatus(ctx context.Context, id, status string) error
}

type ContactService struct {
	contacts ContactStore
}

func NewContactService(contacts ContactStore) *ContactService {
	return &ContactService{contacts: contacts}
}

func (s *ContactService) Submit(ctx context.Context, in *requests.CreateContact) (*models.Contact, error) {
	c := &models.Contact{
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:     strings.TrimSpace(in.Phone),
		Subject:   strings.TrimSpace(in.Subject),
		Message:   in.Message,
		Status:    models.ContactUnread,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.contacts.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ContactService) List(ctx context.Context, status string, p pagination.Params) ([]models.Contact, error) {
	return s.contacts.List(ctx, status, p)
}

func (s *ContactService) SetStatus(ctx context.Context, id, status string) error {
	return s.contacts.SetStatus(ctx, id, status)
}
