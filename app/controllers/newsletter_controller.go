package controllers

import (
	"github.com/shashiranjanraj/shopfront/app/models"
	"github.com/shashiranjanraj/shopfront/app/requests"
	"github.com/shashiranjanraj/shopfront/app/services"
	"github.com/shashiranjanraj/shopfront/pkg/ctx"
	"github.com/shashiranjanraj/shopfront/pkg/response"
)

type NewsletterController struct {
	newsletter *services.NewsletterService
}

func NewNewsletterController(newsletter *services.NewsletterService) *NewsletterController {
	return &NewsletterController{newsletter: newsletter}
}

func (n *NewsletterController) Subscribe(c *ctx.Context) {
	var in requests.Subscribe
	if !c.Bind(&in) {
		return
	}

	sub, err := n.newsletter.Subscribe(c.Context(), &in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.M{
		"message":        "Successfully subscribed to newsletter",
		"subscriptionId": sub.ID,
	})
}

func (n *NewsletterController) Unsubscribe(c *ctx.Context) {
	var in requests.Unsubscribe
	if !c.Bind(&in) {
		return
	}
	if err := n.newsletter.Unsubscribe(c.Context(), in.Email); err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.M{"message": "Successfully unsubscribed from newsletter"})
}

// Index lists subscribers for the back office; status defaults to active.
func (n *NewsletterController) Index(c *ctx.Context) {
	status := c.DefaultQuery("status", models.SubscriberActive)
	limit := c.QueryInt("limit", subscriberLimit)
	if limit <= 0 {
		limit = subscriberLimit
	}
	subs, err := n.newsletter.Subscribers(c.Context(), status, limit)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.M{"subscribers": subs, "count": len(subs)})
}
