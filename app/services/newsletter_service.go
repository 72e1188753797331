package services

import (
	"context"
	"time"

	"github.com/shashiranjanraj/shopfront/app/models"
	"github.com/shashiranjanraj/shopfront/app/requests"
	"github.com/shashiranjanraj/shopfront/pkg/apperrors"
	"github.com/shashiranjanraj/shopfront/pkg/logger"
)

// SubscriberStore is the newsletter persistence.
type SubscriberStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Subscriber, error)
	Create(ctx context.Context, s *models.Subscriber) error
	Reactivate(ctx context.Context, s *models.Subscriber) error
	Unsubscribe(ctx context.Context, email string) error
	List(ctx context.Context, status string, limit int) ([]models.Subscriber, error)
}

type NewsletterService struct {
	subscribers SubscriberStore
}

func NewNewsletterService(subscribers SubscriberStore) *NewsletterService {
	return &NewsletterService{subscribers: subscribers}
}

// Subscribe signs an email up. An active subscription is a conflict; an
// unsubscribed one is switched back on with default preferences.
func (s *NewsletterService) Subscribe(ctx context.Context, in *requests.Subscribe) (*models.Subscriber, error) {
	now := time.Now().UTC()
	prefs := models.Preferences{Promotions: true, NewProducts: true, Newsletters: true}

	existing, err := s.subscribers.FindByEmail(ctx, in.Email)
	switch {
	case err == nil && existing.Status == models.SubscriberActive:
		return nil, apperrors.Conflict("Email already subscribed")
	case err == nil:
		existing.Name = in.Name
		existing.Status = models.SubscriberActive
		existing.Preferences = prefs
		existing.SubscribedAt = now
		existing.UnsubscribedAt = nil
		if err := s.subscribers.Reactivate(ctx, existing); err != nil {
			return nil, err
		}
		logger.WithCtx(ctx).Info("newsletter subscription reactivated", "subscriber_id", existing.ID.Hex())
		return existing, nil
	case !apperrors.IsNotFound(err):
		return nil, err
	}

	sub := &models.Subscriber{
		Email:        in.Email,
		Name:         in.Name,
		Status:       models.SubscriberActive,
		Preferences:  prefs,
		SubscribedAt: now,
	}
	if err := s.subscribers.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *NewsletterService) Unsubscribe(ctx context.Context, email string) error {
	err := s.subscribers.Unsubscribe(ctx, email)
	if apperrors.IsNotFound(err) {
		return apperrors.Missing("Email not found in subscribers")
	}
	return err
}

// Subscribers lists up to limit subscriptions in status.
func (s *NewsletterService) Subscribers(ctx context.Context, status string, limit int) ([]models.Subscriber, error) {
	return s.subscribers.List(ctx, status, limit)
}
