package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product covers both catalog kinds. Clothing products use Fabric/Color,
// fragrance products use Brand/ScentType/Volume/Gender; the remaining
// fields are shared.
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	ProductType   string             `bson:"productType" json:"productType"`
	Fabric        string             `bson:"fabric,omitempty" json:"fabric,omitempty"`
	Color         string             `bson:"color,omitempty" json:"color,omitempty"`
	Brand         string             `bson:"brand,omitempty" json:"brand,omitempty"`
	ScentType     string             `bson:"scentType,omitempty" json:"scentType,omitempty"`
	Volume        string             `bson:"volume,omitempty" json:"volume,omitempty"`
	Gender        string             `bson:"gender,omitempty" json:"gender,omitempty"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	OriginalPrice float64            `bson:"originalPrice" json:"originalPrice"`
	DiscountPrice float64            `bson:"discountPrice" json:"discountPrice"`
	DiscountTag   string             `bson:"discountTag,omitempty" json:"discountTag,omitempty"`
	Image         string             `bson:"image" json:"image"`
	HoverImage    string             `bson:"hoverImage,omitempty" json:"hoverImage,omitempty"`
	Images        []string           `bson:"images" json:"images"`
	Details       []string           `bson:"details" json:"details"`
	Category      string             `bson:"category,omitempty" json:"category,omitempty"`
	Subcategory   string             `bson:"subcategory,omitempty" json:"subcategory,omitempty"`
	NoPieces      string             `bson:"noPieces,omitempty" json:"noPieces,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ImageURLs collects every non-empty image field owned by the product.
func (p Product) ImageURLs() []string {
	urls := make([]string, 0, len(p.Images)+2)
	if p.Image != "" {
		urls = append(urls, p.Image)
	}
	if p.HoverImage != "" {
		urls = append(urls, p.HoverImage)
	}
	for _, u := range p.Images {
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}
