package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review statuses.
const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

// Review is a customer review. ProductID holds the product's hex id.
type Review struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ProductID     string             `bson:"productId"     json:"productId"`
	UserID        string             `bson:"userId,omitempty" json:"userId,omitempty"`
	CustomerName  string             `bson:"customerName"  json:"customerName"`
	CustomerEmail string             `bson:"customerEmail" json:"customerEmail"`
	Rating        int                `bson:"rating"        json:"rating"`
	Title         string             `bson:"title"         json:"title"`
	Comment       string             `bson:"comment"       json:"comment"`
	Status        string             `bson:"status"        json:"status"`
	CreatedAt     time.Time          `bson:"createdAt"     json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"     json:"updatedAt"`
}

// ValidModerationStatus reports whether s is a status an admin may set on
// a review or testimonial.
func ValidModerationStatus(s string) bool {
	switch s {
	case ReviewPending, ReviewApproved, ReviewRejected:
		return true
	}
	return false
}
