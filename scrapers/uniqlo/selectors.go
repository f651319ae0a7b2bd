package uniqlo

// Selectors holds the structural paths of the product page the extractor targets
type Selectors struct {
	Title                string
	DescriptionContainer string
	DescriptionSibling   string // The description lives in this sibling of the container
	SizeChips            string
	ColorChips           string
	Swatch               string // Element immediately preceding a color chip
	Images               string
	Videos               string
}

// DefaultSelectors returns the selectors for the current product detail page layout
func DefaultSelectors() Selectors {
	return Selectors{
		Title:                "h1.fr-ec-display",
		DescriptionContainer: "div.fr-ec-template-pdp--product-selector-container",
		DescriptionSibling:   "div",
		SizeChips:            "#product-size-picker input.fr-ec-chip__input",
		ColorChips:           "#product-color-picker input.fr-ec-chip__input",
		Swatch:               "img",
		Images:               "div.fr-ec-image img",
		Videos:               "video.fr-ec-video-inline__video source",
	}
}
