package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/shopfront/app/models"
	"github.com/shashiranjanraj/shopfront/app/requests"
	"github.com/shashiranjanraj/shopfront/pkg/apperrors"
	"github.com/shashiranjanraj/shopfront/pkg/event"
)

func seedReview(t *testing.T, cat *memCatalog, pid, status string) string {
	t.Helper()
	rv := &models.Review{ProductID: pid, Rating: 4, Status: status}
	require.NoError(t, memReviews{cat}.Create(context.Background(), rv))
	return rv.ID.Hex()
}

func TestReviewService_Create(t *testing.T) {
	cat := newMemCatalog()
	pid := cat.addProduct(models.Product{Name: "Lamp"})
	bus := &recordingBus{}
	svc := NewReviewService(memReviews{cat}, memProducts{cat}, bus)

	rv, err := svc.Create(context.Background(), &requests.CreateReview{
		ProductID:     pid,
		CustomerName:  "  Ada ",
		CustomerEmail: "ADA@Example.com",
		Rating:        5,
		Comment:       "bright",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReviewPending, rv.Status)
	assert.Equal(t, "Ada", rv.CustomerName)
	assert.Equal(t, "ada@example.com", rv.CustomerEmail)

	require.Equal(t, 1, bus.count())
	assert.Equal(t, event.ReviewChanged, bus.events[0])
	assert.Equal(t, event.ReviewChangedPayload{ProductID: pid}, bus.loads[0])
}

func TestReviewService_CreateForUnknownProduct(t *testing.T) {
	cat := newMemCatalog()
	bus := &recordingBus{}
	svc := NewReviewService(memReviews{cat}, memProducts{cat}, bus)

	_, err := svc.Create(context.Background(), &requests.CreateReview{ProductID: "missing", Rating: 3})
	assert.True(t, apperrors.IsNotFound(err))
	assert.Zero(t, bus.count())
}

func TestReviewService_StatusChangeTriggers(t *testing.T) {
	tests := []struct {
		from, to string
		fires    bool
	}{
		{models.ReviewPending, models.ReviewApproved, true},
		{models.ReviewApproved, models.ReviewRejected, true},
		{models.ReviewApproved, models.ReviewPending, true},
		{models.ReviewApproved, models.ReviewApproved, true},
		{models.ReviewPending, models.ReviewRejected, false},
		{models.ReviewRejected, models.ReviewPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			cat := newMemCatalog()
			pid := cat.addProduct(models.Product{Name: "Lamp"})
			id := seedReview(t, cat, pid, tt.from)
			bus := &recordingBus{}

			err := NewReviewService(memReviews{cat}, memProducts{cat}, bus).SetStatus(context.Background(), id, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.fires, bus.count() == 1)
		})
	}
}

func TestReviewService_DeleteTriggersOnlyForApproved(t *testing.T) {
	cat := newMemCatalog()
	pid := cat.addProduct(models.Product{Name: "Lamp"})
	pending := seedReview(t, cat, pid, models.ReviewPending)
	approved := seedReview(t, cat, pid, models.ReviewApproved)
	bus := &recordingBus{}
	svc := NewReviewService(memReviews{cat}, memProducts{cat}, bus)

	require.NoError(t, svc.Delete(context.Background(), pending))
	assert.Zero(t, bus.count())

	require.NoError(t, svc.Delete(context.Background(), approved))
	assert.Equal(t, 1, bus.count())

	err := svc.Delete(context.Background(), approved)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestReviewService_ApprovedFiltersStatus(t *testing.T) {
	cat := newMemCatalog()
	pid := cat.addProduct(models.Product{Name: "Lamp"})
	other := cat.addProduct(models.Product{Name: "Desk"})
	seedReview(t, cat, pid, models.ReviewApproved)
	seedReview(t, cat, pid, models.ReviewPending)
	seedReview(t, cat, other, models.ReviewApproved)

	svc := NewReviewService(memReviews{cat}, memProducts{cat}, &recordingBus{})
	list, total, err := svc.Approved(context.Background(), pid, defaultPage())
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, pid, list[0].ProductID)

	_, total, err = svc.Approved(context.Background(), "", defaultPage())
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}
