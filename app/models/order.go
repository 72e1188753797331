package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// RevenueStatuses are the order states counted as revenue.
var RevenueStatuses = []string{OrderDelivered, OrderProcessing}

// OrderItem is a priced line captured at checkout.
type OrderItem struct {
	ProductID string  `bson:"productId" json:"productId"`
	Name      string  `bson:"name"      json:"name"`
	Price     float64 `bson:"price"     json:"price"`
	Quantity  int     `bson:"quantity"  json:"quantity"`
	Image     string  `bson:"image,omitempty" json:"image,omitempty"`
}

// Address is a shipping destination.
type Address struct {
	FullName   string `bson:"fullName"   json:"fullName"`
	Street     string `bson:"street"     json:"street"`
	City       string `bson:"city"       json:"city"`
	State      string `bson:"state"      json:"state"`
	PostalCode string `bson:"postalCode" json:"postalCode"`
	Country    string `bson:"country"    json:"country"`
	Phone      string `bson:"phone"      json:"phone"`
}

// Order is a placed order.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"   json:"_id"`
	UserID          string             `bson:"userId"          json:"userId"`
	Items           []OrderItem        `bson:"items"           json:"items"`
	ShippingAddress Address            `bson:"shippingAddress" json:"shippingAddress"`
	Total           float64            `bson:"total"           json:"total"`
	Status          string             `bson:"status"          json:"status"`
	CreatedAt       time.Time          `bson:"createdAt"       json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"       json:"updatedAt"`
}
