package scrapers

import (
	"context"

	"github.com/raushankrgupta/uniqlo-product-scraper/models"
)

// Scraper defines the interface for product scrapers
type Scraper interface {
	// CanScrape checks if the scraper can handle the given URL
	CanScrape(url string) bool
	// ScrapeProduct fetches the page and extracts the product details
	ScrapeProduct(ctx context.Context, url string) (*models.Product, error)
}
