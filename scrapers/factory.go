package scrapers

import (
	"context"
	"errors"
	"fmt"

	"github.com/raushankrgupta/uniqlo-product-scraper/models"
	"github.com/raushankrgupta/uniqlo-product-scraper/scrapers/uniqlo"
	"github.com/raushankrgupta/uniqlo-product-scraper/utils"
)

// ErrNoScraper is returned when no registered scraper handles a URL
var ErrNoScraper = errors.New("no scraper found")

// Registered returns the scrapers in the order they are matched
func Registered() []Scraper {
	return []Scraper{
		uniqlo.NewUniqloScraper(),
	}
}

// GetScraper returns the appropriate scraper and the resolved URL
func GetScraper(ctx context.Context, url string) (Scraper, string, error) {
	// Resolve shortened and redirecting links first
	resolvedURL, err := utils.ResolveShortenedURL(ctx, url)
	if err != nil {
		return nil, url, fmt.Errorf("error resolving url: %w", err)
	}

	s, err := Match(Registered(), resolvedURL)
	return s, resolvedURL, err
}

// Match returns the first scraper that can handle url
func Match(candidates []Scraper, url string) (Scraper, error) {
	for _, s := range candidates {
		if s.CanScrape(url) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w for url: %s", ErrNoScraper, url)
}

// Scrape resolves url, picks a scraper and extracts the product
func Scrape(ctx context.Context, url string) (*models.Product, error) {
	scraper, resolvedURL, err := GetScraper(ctx, url)
	if err != nil {
		return nil, err
	}
	return scraper.ScrapeProduct(ctx, resolvedURL)
}
