package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Image         string             `bson:"image,omitempty" json:"image,omitempty"`
	Discount      string             `bson:"discount,omitempty" json:"discount,omitempty"`
	Subcategories []string           `bson:"subcategories" json:"subcategories"`
	AddToNavbar   bool               `bson:"addToNavbar" json:"addToNavbar"`
	AddToExplore  bool               `bson:"addToExplore" json:"addToExplore"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
