package controllers

import (
	"github.com/shashiranjanraj/shopfront/app/requests"
	"github.com/shashiranjanraj/shopfront/app/services"
	"github.com/shashiranjanraj/shopfront/pkg/ctx"
	"github.com/shashiranjanraj/shopfront/pkg/response"
)

type TestimonialController struct {
	testimonials *services.TestimonialService
}

func NewTestimonialController(testimonials *services.TestimonialService) *TestimonialController {
	return &TestimonialController{testimonials: testimonials}
}

func (t *TestimonialController) Index(c *ctx.Context) {
	list, err := t.testimonials.Approved(c.Context(), c.Window(testimonialPage))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.M{"testimonials": list})
}

func (t *TestimonialController) Store(c *ctx.Context) {
	var in requests.CreateTestimonial
	if !c.Bind(&in) {
		return
	}

	item, err := t.testimonials.Submit(c.Context(), &in, firstFile(c, "avatar"))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.M{
		"message":       "Testimonial submitted successfully and is pending approval",
		"testimonialId": item.ID,
	})
}

// Moderate lists every testimonial for the back office.
func (t *TestimonialController) Moderate(c *ctx.Context) {
	page := c.Window(testimonialPage)
	list, total, err := t.testimonials.All(c.Context(), c.Query("status"), page)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Paginated("testimonials", list, total, page)
}

func (t *TestimonialController) UpdateStatus(c *ctx.Context) {
	var in requests.ModerationStatus
	if !c.Bind(&in) {
		return
	}
	if err := t.testimonials.SetStatus(c.Context(), c.Param("id"), in.Status); err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.M{"message": "Testimonial status updated successfully"})
}

func (t *TestimonialController) Destroy(c *ctx.Context) {
	if err := t.testimonials.Delete(c.Context(), c.Param("id")); err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.M{"message": "Testimonial deleted successfully"})
}
