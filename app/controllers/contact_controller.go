package controllers

import (
	"github.com/shashiranjanraj/shopfront/app/requests"
	"github.com/shashiranjanraj/shopfront/app/services"
	"github.com/shashiranjanraj/shopfront/pkg/ctx"
	"github.com/shashiranjanraj/shopfront/pkg/response"
)

type ContactController struct {
	contacts *services.ContactService
}

func NewContactController(contacts *services.ContactService) *ContactController {
	return &ContactController{contacts: contacts}
}

func (cc *ContactController) Store(c *ctx.Context) {
	var in requests.CreateContact
	if !c.Bind(&in) {
		return
	}

	msg, err := cc.contacts.Submit(c.Context(), &in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.M{"message": "Contact form submitted successfully", "contactId": msg.ID})
}

func (cc *ContactController) Index(c *ctx.Context) {
	list, err := cc.contacts.List(c.Context(), c.Query("status"), c.Window(contactLimit))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.M{"contacts": list})
}

func (cc *ContactController) UpdateStatus(c *ctx.Context) {
	var in requests.ContactStatus
	if !c.Bind(&in) {
		return
	}
	if err := cc.contacts.SetStatus(c.Context(), c.Param("id"), in.Status); err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.M{"message": "Contact status updated successfully"})
}
