package requests

import (
	"github.com/shashiranjanraj/shopfront/app/models"
	"github.com/shashiranjanraj/shopfront/pkg/apperrors"
)

// CreateReview is the public review submission.
type CreateReview struct {
	ProductID     string `form:"productId"     json:"productId"     validate:"required"`
	CustomerName  string `form:"customerName"  json:"customerName"  validate:"required"`
	CustomerEmail string `form:"customerEmail" json:"customerEmail"`
	Rating        int    `form:"rating"        json:"rating"        validate:"required"`
	Title         string `form:"title"         json:"title"`
	Comment       string `form:"comment"       json:"comment"       validate:"required"`
}

func (r *CreateReview) Validate() error {
	if err := checkTags(r, MissingFields); err != nil {
		return err
	}
	if r.Rating < 1 || r.Rating > 5 {
		return apperrors.Validation("Rating must be between 1 and 5")
	}
	return nil
}

// ModerationStatus moves a review or testimonial between pending, approved
// and rejected.
type ModerationStatus struct {
	Status string `form:"status" json:"status"`
}

func (r *ModerationStatus) Validate() error {
	if !models.ValidModerationStatus(r.Status) {
		return apperrors.Validation("Invalid status")
	}
	return nil
}
