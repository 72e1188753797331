package requests

import (
	"encoding/json"

	"github.com/shashiranjanraj/shopfront/pkg/apperrors"
)

// ProductForm is the multipart product body used by both create and update.
// Absent fields stay nil so an update only touches what was sent. Rating
// and review count are deliberately not bindable.
type ProductForm struct {
	Name           *string  `form:"name"           json:"name"`
	Description    *string  `form:"description"    json:"description"`
	Price          *float64 `form:"price"          json:"price"         validate:"omitempty,gte=0"`
	OriginalPrice  *float64 `form:"originalPrice"  json:"originalPrice" validate:"omitempty,gte=0"`
	Category       *string  `form:"category"       json:"category"`
	Subcategory    *string  `form:"subcategory"    json:"subcategory"`
	Brand          *string  `form:"brand"          json:"brand"`
	Stock          *int     `form:"stock"          json:"stock"         validate:"omitempty,gte=0"`
	Featured       *string  `form:"featured"       json:"featured"`
	Tags           *string  `form:"tags"           json:"tags"`
	MainFeatures   *string  `form:"mainFeatures"   json:"mainFeatures"`
	KeyFeatures    *string  `form:"keyFeatures"    json:"keyFeatures"`
	WhatsInTheBox  *string  `form:"whatsInTheBox"  json:"whatsInTheBox"`
	Specifications *string  `form:"specifications" json:"specifications"`
}

func (f *ProductForm) Validate() error {
	if err := checkTags(f, ""); err != nil {
		return err
	}
	if _, err := f.Specs(); err != nil {
		return err
	}
	return nil
}

// RequireCreateFields checks the fields a new product must carry.
func (f *ProductForm) RequireCreateFields() error {
	fields := map[string]string{}
	if f.Name == nil || blank(*f.Name) {
		fields["name"] = "The name field is required."
	}
	if f.Price == nil {
		fields["price"] = "The price field is required."
	}
	if f.Category == nil || blank(*f.Category) {
		fields["category"] = "The category field is required."
	}
	if len(fields) > 0 {
		return apperrors.ValidationFields(MissingFields, fields)
	}
	return nil
}

// IsFeatured reports whether featured was sent as "true".
func (f *ProductForm) IsFeatured() bool {
	return f.Featured != nil && *f.Featured == "true"
}

// Specs decodes the specifications JSON object. Absent means nil.
func (f *ProductForm) Specs() (map[string]any, error) {
	if f.Specifications == nil || blank(*f.Specifications) {
		return nil, nil
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(*f.Specifications), &out); err != nil || out == nil {
		return nil, apperrors.Validation("Specifications must be a JSON object")
	}
	return out, nil
}
