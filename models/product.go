package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SizeOption is one selectable size chip
type SizeOption struct {
	ID        string `bson:"id" json:"id"`
	Label     string `bson:"label" json:"label"`
	Available bool   `bson:"available" json:"available"`
}

// ColorOption is one selectable color chip and its swatch
type ColorOption struct {
	Name           string `bson:"name" json:"name"`
	SwatchImageURL string `bson:"swatch_image_url" json:"swatchImageUrl"`
	Index          string `bson:"index" json:"index"`
}

// Product represents the extracted product details
type Product struct {
	Title       string        `bson:"title" json:"title"`
	Description string        `bson:"description" json:"description"`
	Sizes       []SizeOption  `bson:"sizes" json:"sizes"`   // Unique by ID, document order
	Colors      []ColorOption `bson:"colors" json:"colors"` // Unique by Name, document order
	Images      []string      `bson:"images" json:"images"`
	Videos      []string      `bson:"videos" json:"videos"`
}

// ProductSnapshot is an archived extraction result
type ProductSnapshot struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SourceURL string             `bson:"source_url" json:"source_url"`
	Product   Product            `bson:"product" json:"product"`
	ImageKeys map[string]string  `bson:"image_keys,omitempty" json:"image_keys,omitempty"` // Original URL -> S3 object key
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
