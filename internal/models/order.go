package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem is a snapshot of a product at order time. It keeps its own
// copy of every field so later product edits or deletes cannot change
// an already placed order.
type OrderItem struct {
	ProductID     string   `bson:"id" json:"id"`
	Name          string   `bson:"name" json:"name"`
	Quantity      int      `bson:"quantity" json:"quantity"`
	DiscountPrice float64  `bson:"discountPrice" json:"discountPrice"`
	Image         string   `bson:"image,omitempty" json:"image,omitempty"`
	Images        []string `bson:"images,omitempty" json:"images,omitempty"`
}

// OrderCustomer captures the delivery details supplied at checkout.
type OrderCustomer struct {
	Name    string `bson:"name" json:"name"`
	City    string `bson:"city" json:"city"`
	Mobile  string `bson:"mobile" json:"mobile"`
	Address string `bson:"address" json:"address"`
	ZipCode string `bson:"zipCode" json:"zipCode"`
	Email   string `bson:"email" json:"email"`
}

type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Items         []OrderItem        `bson:"items" json:"items"`
	Total         float64            `bson:"total" json:"total"`
	UserDetails   OrderCustomer      `bson:"userDetails" json:"userDetails"`
	PaymentMethod string             `bson:"paymentMethod" json:"paymentMethod"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
