package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalogue entry. Rating and ReviewCount are derived from the
// approved reviews of the product and are only written by the rating
// recompute.
type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"    json:"_id"`
	Name           string             `bson:"name"             json:"name"`
	Description    string             `bson:"description"      json:"description"`
	Price          float64            `bson:"price"            json:"price"`
	OriginalPrice  *float64           `bson:"originalPrice"    json:"originalPrice,omitempty"`
	Category       string             `bson:"category"         json:"category"`
	Subcategory    string             `bson:"subcategory"      json:"subcategory"`
	Brand          string             `bson:"brand"            json:"brand"`
	Stock          int                `bson:"stock"            json:"stock"`
	Featured       bool               `bson:"featured"         json:"featured"`
	Tags           []string           `bson:"tags"             json:"tags"`
	MainFeatures   []string           `bson:"mainFeatures"     json:"mainFeatures"`
	KeyFeatures    []string           `bson:"keyFeatures"      json:"keyFeatures"`
	WhatsInTheBox  []string           `bson:"whatsInTheBox"    json:"whatsInTheBox"`
	Specifications map[string]any     `bson:"specifications"   json:"specifications"`
	Images         []string           `bson:"images"           json:"images"`
	Rating         float64            `bson:"rating"           json:"rating"`
	ReviewCount    int                `bson:"reviewCount"      json:"reviewCount"`
	CreatedAt      time.Time          `bson:"createdAt"        json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"        json:"updatedAt"`
}
