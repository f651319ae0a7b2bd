package uniqlo

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/raushankrgupta/uniqlo-product-scraper/models"
	"github.com/raushankrgupta/uniqlo-product-scraper/utils"
	"github.com/rs/zerolog/log"
)

// ErrParseFailed is returned when the markup cannot be parsed into a tree at all
var ErrParseFailed = errors.New("failed to parse HTML")

const (
	FallbackTitle       = "No title available"
	FallbackDescription = "No description available"

	unavailableSuffix = " (unavailable)"
)

// Extractor turns product page markup into a normalized Product.
// It holds no mutable state and is safe for concurrent use.
type Extractor struct {
	sel Selectors
}

// NewExtractor creates an Extractor for the given page selectors
func NewExtractor(sel Selectors) *Extractor {
	return &Extractor{sel: sel}
}

// Extract parses html and extracts the product record.
// Missing fields degrade to fallbacks or empty lists; only a parse failure is an error.
func (e *Extractor) Extract(html string) (*models.Product, error) {
	return e.ExtractReader(strings.NewReader(html))
}

// ExtractReader is Extract for markup read from r
func (e *Extractor) ExtractReader(r io.Reader) (*models.Product, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}
	return e.ExtractDocument(doc), nil
}

// ExtractDocument extracts the product record from an already parsed document
func (e *Extractor) ExtractDocument(doc *goquery.Document) *models.Product {
	product := &models.Product{
		Title:       textOf(doc.Find(e.sel.Title)).orElse(FallbackTitle),
		Description: e.description(doc).orElse(FallbackDescription),
		Sizes:       e.sizes(doc),
		Colors:      e.colors(doc),
		Images:      collectAttr(doc.Find(e.sel.Images), "src"),
		Videos:      collectAttr(doc.Find(e.sel.Videos), "src"),
	}

	log.Debug().
		Str("title", product.Title).
		Int("sizes", len(product.Sizes)).
		Int("colors", len(product.Colors)).
		Int("images", len(product.Images)).
		Int("videos", len(product.Videos)).
		Msg("Product extracted")

	return product
}

// description reads the sibling that follows the selector container, not the container itself.
func (e *Extractor) description(doc *goquery.Document) optionalString {
	container := doc.Find(e.sel.DescriptionContainer).First()
	return textOf(container.NextFiltered(e.sel.DescriptionSibling))
}

func (e *Extractor) sizes(doc *goquery.Document) []models.SizeOption {
	sizes := []models.SizeOption{}
	doc.Find(e.sel.SizeChips).Each(func(i int, s *goquery.Selection) {
		chip, err := ParseChipIdentifier(s.AttrOr("id", ""))
		if err != nil {
			log.Debug().Err(err).Int("chip", i).Msg("Skipping size chip")
			return
		}

		label, available := ParseSizeLabel(attrOf(s, "aria-label").orElse(""))
		sizes = append(sizes, models.SizeOption{
			ID:        chip.Ordinal,
			Label:     label,
			Available: available,
		})
	})
	return DedupeSizes(sizes)
}

func (e *Extractor) colors(doc *goquery.Document) []models.ColorOption {
	colors := []models.ColorOption{}
	doc.Find(e.sel.ColorChips).Each(func(i int, s *goquery.Selection) {
		name := attrOf(s, "aria-label")
		if !name.present {
			return
		}

		var index string
		if chip, err := ParseChipIdentifier(s.AttrOr("id", "")); err == nil {
			index = chip.Ordinal
		}

		colors = append(colors, models.ColorOption{
			Name:           name.value,
			SwatchImageURL: attrOf(s.PrevFiltered(e.sel.Swatch), "src").orElse(""),
			Index:          index,
		})
	})
	return DedupeColors(colors)
}

// ParseSizeLabel strips the unavailable marker from a chip label and reports availability
func ParseSizeLabel(raw string) (label string, available bool) {
	label = strings.TrimSpace(raw)
	if strings.HasSuffix(label, unavailableSuffix) {
		return strings.TrimSpace(strings.TrimSuffix(label, unavailableSuffix)), false
	}
	return label, true
}

// DedupeSizes keeps the first size seen for each ID
func DedupeSizes(sizes []models.SizeOption) []models.SizeOption {
	return utils.DedupeBy(sizes, func(s models.SizeOption) string { return s.ID })
}

// DedupeColors keeps the first color seen for each name
func DedupeColors(colors []models.ColorOption) []models.ColorOption {
	return utils.DedupeBy(colors, func(c models.ColorOption) string { return c.Name })
}

// collectAttr reads attr from every node in s, dropping missing and empty values.
// Order follows the document and duplicates are kept.
func collectAttr(s *goquery.Selection, attr string) []string {
	values := []string{}
	s.Each(func(i int, node *goquery.Selection) {
		if v := attrOf(node, attr); v.present {
			values = append(values, v.value)
		}
	})
	return values
}
