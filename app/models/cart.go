package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one line of a saved cart. The cart is client state mirrored
// to the server, so fields are stored as sent.
type CartItem struct {
	ProductID string  `bson:"productId" json:"productId"`
	Name      string  `bson:"name"      json:"name"`
	Price     float64 `bson:"price"     json:"price"`
	Quantity  int     `bson:"quantity"  json:"quantity"`
	Image     string  `bson:"image,omitempty" json:"image,omitempty"`
}

// Cart is keyed by user id; there is at most one per user.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    string             `bson:"userId"        json:"userId"`
	Items     []CartItem         `bson:"items"         json:"items"`
	UpdatedAt time.Time          `bson:"updatedAt"     json:"updatedAt"`
}
