package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Banner is a merchandising slot shown on the storefront.
type Banner struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"   json:"_id"`
	Title           string             `bson:"title"           json:"title"`
	Subtitle        string             `bson:"subtitle"        json:"subtitle"`
	Description     string             `bson:"description"     json:"description"`
	ButtonText      string             `bson:"buttonText"      json:"buttonText"`
	ButtonLink      string             `bson:"buttonLink"      json:"buttonLink"`
	Image           string             `bson:"image"           json:"image"`
	Position        string             `bson:"position"        json:"position"`
	IsActive        bool               `bson:"isActive"        json:"isActive"`
	BackgroundColor string             `bson:"backgroundColor" json:"backgroundColor"`
	TextColor       string             `bson:"textColor"       json:"textColor"`
	CreatedAt       time.Time          `bson:"createdAt"       json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"       json:"updatedAt"`
}

// Testimonial is a moderated customer quote. Statuses match reviews.
type Testimonial struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CustomerName  string             `bson:"customerName"  json:"customerName"`
	CustomerEmail string             `bson:"customerEmail" json:"customerEmail"`
	Company       string             `bson:"company"       json:"company"`
	Position      string             `bson:"position"      json:"position"`
	Testimonial   string             `bson:"testimonial"   json:"testimonial"`
	Rating        int                `bson:"rating"        json:"rating"`
	Avatar        string             `bson:"avatar"        json:"avatar"`
	Status        string             `bson:"status"        json:"status"`
	CreatedAt     time.Time          `bson:"createdAt"     json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"     json:"updatedAt"`
}

// Subscriber statuses.
const (
	SubscriberActive       = "active"
	SubscriberUnsubscribed = "unsubscribed"
)

// Preferences are the newsletter topics a subscriber receives.
type Preferences struct {
	Promotions  bool `bson:"promotions"  json:"promotions"`
	NewProducts bool `bson:"newProducts" json:"newProducts"`
	Newsletters bool `bson:"newsletters" json:"newsletters"`
}

// Subscriber is a newsletter subscription.
type Subscriber struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"  json:"_id"`
	Email          string             `bson:"email"          json:"email"`
	Name           string             `bson:"name"           json:"name"`
	Status         string             `bson:"status"         json:"status"`
	Preferences    Preferences        `bson:"preferences"    json:"preferences"`
	SubscribedAt   time.Time          `bson:"subscribedAt"   json:"subscribedAt"`
	UnsubscribedAt *time.Time         `bson:"unsubscribedAt,omitempty" json:"unsubscribedAt,omitempty"`
}

// Contact message statuses.
const (
	ContactUnread  = "unread"
	ContactRead    = "read"
	ContactReplied = "replied"
)

// ValidContactStatus reports whether s is a known contact status.
func ValidContactStatus(s string) bool {
	return s == ContactUnread || s == ContactRead || s == ContactReplied
}

// Contact is a message from the contact form.
type Contact struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name"          json:"name"`
	Email     string             `bson:"email"         json:"email"`
	Phone     string             `bson:"phone"         json:"phone"`
	Subject   string             `bson:"subject"       json:"subject"`
	Message   string             `bson:"message"       json:"message"`
	Status    string             `bson:"status"        json:"status"`
	CreatedAt time.Time          `bson:"createdAt"     json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
