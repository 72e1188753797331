package controllers

import (
	"github.com/shashiranjanraj/shopfront/app/repositories"
	"github.com/shashiranjanraj/shopfront/app/requests"
	"github.com/shashiranjanraj/shopfront/app/services"
	"github.com/shashiranjanraj/shopfront/pkg/ctx"
	"github.com/shashiranjanraj/shopfront/pkg/response"
)

type ReviewController struct {
	reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{reviews: reviews}
}

// Index lists approved reviews, optionally for one product.
func (rc *ReviewController) Index(c *ctx.Context) {
	page := c.Window(reviewPage)
	list, total, err := rc.reviews.Approved(c.Context(), c.Query("productId"), page)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Paginated("reviews", list, total, page)
}

// Store accepts a review for moderation.
func (rc *ReviewController) Store(c *ctx.Context) {
	var in requests.CreateReview
	if !c.Bind(&in) {
		return
	}

	rv, err := rc.reviews.Create(c.Context(), &in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.M{
		"message":  "Review submitted successfully and is pending approval",
		"reviewId": rv.ID,
	})
}

// Moderate lists every review for the back office.
func (rc *ReviewController) Moderate(c *ctx.Context) {
	f := repositories.ReviewFilter{ProductID: c.Query("productId"), Status: c.Query("status")}
	page := c.Window(reviewPage)

	list, total, err := rc.reviews.All(c.Context(), f, page)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Paginated("reviews", list, total, page)
}

func (rc *ReviewController) UpdateStatus(c *ctx.Context) {
	var in requests.ModerationStatus
	if !c.Bind(&in) {
		return
	}
	if err := rc.reviews.SetStatus(c.Context(), c.Param("id"), in.Status); err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.M{"message": "Review status updated successfully"})
}

func (rc *ReviewController) Destroy(c *ctx.Context) {
	if err := rc.reviews.Delete(c.Context(), c.Param("id")); err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.M{"message": "Review deleted successfully"})
}
