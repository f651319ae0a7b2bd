package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/raushankrgupta/uniqlo-product-scraper/models"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const imageFolder = "product_images"

// MongoArchiver stores extraction results in MongoDB, optionally mirroring images to S3 first
type MongoArchiver struct {
	collection   *mongo.Collection
	mirrorImages bool
}

// NewMongoArchiver creates an archiver writing to collection
func NewMongoArchiver(collection *mongo.Collection, mirrorImages bool) *MongoArchiver {
	return &MongoArchiver{collection: collection, mirrorImages: mirrorImages}
}

// Archive saves a snapshot of product as extracted from sourceURL
func (a *MongoArchiver) Archive(ctx context.Context, sourceURL string, product *models.Product) error {
	snapshot := NewSnapshot(sourceURL, product, time.Now().UTC())

	if a.mirrorImages {
		snapshot.ImageKeys = UploadImagesToS3(ctx, SnapshotImageURLs(product), imageFolder)
		log.Debug().Int("mirrored", len(snapshot.ImageKeys)).Msg("Product images mirrored")
	}

	if _, err := a.collection.InsertOne(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to save product snapshot: %w", err)
	}
	return nil
}

// NewSnapshot builds the archive document for one extraction
func NewSnapshot(sourceURL string, product *models.Product, now time.Time) models.ProductSnapshot {
	return models.ProductSnapshot{
		ID:        primitive.NewObjectID(),
		SourceURL: sourceURL,
		Product:   *product,
		CreatedAt: now,
	}
}

// SnapshotImageURLs lists gallery and swatch images, each once
func SnapshotImageURLs(product *models.Product) []string {
	urls := append([]string{}, product.Images...)
	for _, c := range product.Colors {
		if c.SwatchImageURL != "" {
			urls = append(urls, c.SwatchImageURL)
		}
	}
	return DedupeStrings(urls)
}
