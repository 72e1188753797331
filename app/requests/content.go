package requests

import (
	"strings"

	"github.com/shashiranjanraj/shopfront/app/models"
	"github.com/shashiranjanraj/shopfront/pkg/apperrors"
)

// BannerForm is the multipart banner body.
type BannerForm struct {
	Title           string `form:"title"           json:"title"           validate:"required"`
	Subtitle        string `form:"subtitle"        json:"subtitle"`
	Description     string `form:"description"     json:"description"`
	ButtonText      string `form:"buttonText"      json:"buttonText"`
	ButtonLink      string `form:"buttonLink"      json:"buttonLink"`
	Position        string `form:"position"        json:"position"`
	IsActive        string `form:"isActive"        json:"isActive"`
	BackgroundColor string `form:"backgroundColor" json:"backgroundColor" validate:"omitempty,hexcolor6"`
	TextColor       string `form:"textColor"       json:"textColor"       validate:"omitempty,hexcolor6"`
}

func (f *BannerForm) Validate() error { return checkTags(f, "") }

// Active reports whether isActive was sent as "true".
func (f *BannerForm) Active() bool { return f.IsActive == "true" }

// CreateTestimonial is the public testimonial submission.
type CreateTestimonial struct {
	CustomerName  string `form:"customerName"  json:"customerName"  validate:"required"`
	CustomerEmail string `form:"customerEmail" json:"customerEmail"`
	Company       string `form:"company"       json:"company"`
	Position      string `form:"position"      json:"position"`
	Testimonial   string `form:"testimonial"   json:"testimonial"   validate:"required"`
	Rating        int    `form:"rating"        json:"rating"`
}

func (r *CreateTestimonial) Validate() error {
	if err := checkTags(r, "Name and testimonial are required"); err != nil {
		return err
	}
	if r.Rating == 0 {
		r.Rating = 5
	}
	if r.Rating < 1 || r.Rating > 5 {
		return apperrors.Validation("Rating must be between 1 and 5")
	}
	return nil
}

// Subscribe is a newsletter sign-up.
type Subscribe struct {
	Email string `form:"email" json:"email"`
	Name  string `form:"name"  json:"name"`
}

func (r *Subscribe) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if !strings.Contains(r.Email, "@") {
		return apperrors.Validation("Valid email is required")
	}
	return nil
}

// Unsubscribe removes an email from the newsletter.
type Unsubscribe struct {
	Email string `form:"email" json:"email"`
}

func (r *Unsubscribe) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Email == "" {
		return apperrors.Validation("Email is required")
	}
	return nil
}

// CreateContact is a contact-form message.
type CreateContact struct {
	Name    string `form:"name"    json:"name"    validate:"required"`
	Email   string `form:"email"   json:"email"   validate:"required"`
	Phone   string `form:"phone"   json:"phone"`
	Subject string `form:"subject" json:"subject" validate:"required"`
	Message string `form:"message" json:"message" validate:"required"`
}

func (r *CreateContact) Validate() error { return checkTags(r, MissingFields) }

// ContactStatus marks a contact message read or replied.
type ContactStatus struct {
	Status string `form:"status" json:"status"`
}

func (r *ContactStatus) Validate() error {
	if !models.ValidContactStatus(r.Status) {
		return apperrors.Validation("Invalid status")
	}
	return nil
}
