package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SectionBanner is the hero banner embedded in a landing page section.
type SectionBanner struct {
	Image        string `bson:"image" json:"image"`
	SubTitle     string `bson:"subTitle,omitempty" json:"subTitle,omitempty"`
	MainTitle    string `bson:"mainTitle,omitempty" json:"mainTitle,omitempty"`
	TagLine      string `bson:"tagLine,omitempty" json:"tagLine,omitempty"`
	Discount     string `bson:"discount,omitempty" json:"discount,omitempty"`
	CategoryName string `bson:"categoryName,omitempty" json:"categoryName,omitempty"`
	Season       string `bson:"season,omitempty" json:"season,omitempty"`
	FabricType   string `bson:"fabricType,omitempty" json:"fabricType,omitempty"`
}

// LandingPageSection selects its products either from an explicit list
// (manual mode) or dynamically by category filters (category mode).
type LandingPageSection struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Banner         SectionBanner        `bson:"banner" json:"banner"`
	Category       string               `bson:"category,omitempty" json:"category,omitempty"`
	Subcategory    string               `bson:"subcategory,omitempty" json:"subcategory,omitempty"`
	SelectionMode  string               `bson:"productSelectionMode" json:"productSelectionMode"`
	ManualProducts []primitive.ObjectID `bson:"manualProducts" json:"manualProducts"`
	Order          int                  `bson:"order" json:"order"`
	IsActive       bool                 `bson:"isActive" json:"isActive"`
	CreatedAt      time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time            `bson:"updatedAt" json:"updatedAt"`
}
