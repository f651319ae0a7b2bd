package uniqlo

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/raushankrgupta/uniqlo-product-scraper/models"
	"github.com/raushankrgupta/uniqlo-product-scraper/scrapers/base"
)

type UniqloScraper struct {
	*base.BaseScraper
	extractor *Extractor
	sel       Selectors
}

func NewUniqloScraper() *UniqloScraper {
	sel := DefaultSelectors()
	b := base.NewBaseScraper()
	b.WaitSelector = sel.Title
	return &UniqloScraper{
		BaseScraper: b,
		extractor:   NewExtractor(sel),
		sel:         sel,
	}
}

func (s *UniqloScraper) CanScrape(url string) bool {
	return strings.Contains(url, "uniqlo.com")
}

func (s *UniqloScraper) ScrapeProduct(ctx context.Context, url string) (*models.Product, error) {
	doc, err := s.FetchDocument(ctx, url, func(doc *goquery.Document) bool {
		// Product pages are rendered client side; a bare shell has no title yet
		return !base.IsBlockedDocument(doc) && doc.Find(s.sel.Title).Length() > 0
	})
	if err != nil {
		return nil, err
	}

	return s.extractor.ExtractDocument(doc), nil
}
