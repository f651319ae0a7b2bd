package uniqlo

import (
	"os"
	"sync"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
	"github.com/raushankrgupta/uniqlo-product-scraper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile("testdata/product.html")
	require.NoError(t, err)
	return string(b)
}

func page(body string) string {
	return "<!DOCTYPE html><html><head><title>t</title></head><body>" + body + "</body></html>"
}

func extract(t *testing.T, html string) *models.Product {
	t.Helper()
	product, err := NewExtractor(DefaultSelectors()).Extract(html)
	require.NoError(t, err)
	require.NotNil(t, product)
	return product
}

func TestExtract_FullPage(t *testing.T) {
	product := extract(t, loadFixture(t))

	want := &models.Product{
		Title:       "AIRism Cotton T-Shirt",
		Description: "Smooth and breathable.",
		Sizes: []models.SizeOption{
			{ID: "100", Label: "S", Available: true},
			{ID: "200", Label: "L", Available: false},
		},
		Colors: []models.ColorOption{
			{Name: "Black", SwatchImageURL: "https://image.uniqlo.com/swatch/09.jpg", Index: "09"},
			{Name: "White", SwatchImageURL: "https://image.uniqlo.com/swatch/00.jpg", Index: "00"},
		},
		Images: []string{
			"https://image.uniqlo.com/goods/1.jpg",
			"https://image.uniqlo.com/goods/2.jpg",
			"https://image.uniqlo.com/goods/1.jpg",
		},
		Videos: []string{
			"https://video.uniqlo.com/1.mp4",
			"https://video.uniqlo.com/2.mp4",
		},
	}

	if diff := cmp.Diff(want, product); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_MissingTitle(t *testing.T) {
	product := extract(t, page(`<p>nothing here</p>`))
	assert.Equal(t, FallbackTitle, product.Title)
}

func TestExtract_BlankTitle(t *testing.T) {
	product := extract(t, page(`<h1 class="fr-ec-display">   </h1>`))
	assert.Equal(t, FallbackTitle, product.Title)
}

func TestExtract_MissingDescriptionSibling(t *testing.T) {
	product := extract(t, page(`
		<div class="fr-ec-template-pdp--product-selector-container">Container text is not the description</div>
	`))
	assert.Equal(t, FallbackDescription, product.Description)
}

func TestExtract_DescriptionUsesNextSibling(t *testing.T) {
	product := extract(t, page(`
		<div>Before</div>
		<div class="fr-ec-template-pdp--product-selector-container">Container</div>
		<div> After </div>
		<div>Later</div>
	`))
	assert.Equal(t, "After", product.Description)
}

func TestExtract_DescriptionSiblingMustBeDiv(t *testing.T) {
	product := extract(t, page(`
		<div class="fr-ec-template-pdp--product-selector-container">Container</div>
		<section>Not a div</section>
	`))
	assert.Equal(t, FallbackDescription, product.Description)
}

func TestExtract_DuplicateSizeIDsKeepFirst(t *testing.T) {
	product := extract(t, page(`
		<div id="product-size-picker">
			<input class="fr-ec-chip__input" id="m-100" aria-label="M">
			<input class="fr-ec-chip__input" id="m-100" aria-label="Medium">
		</div>
	`))

	require.Len(t, product.Sizes, 1)
	assert.Equal(t, models.SizeOption{ID: "100", Label: "M", Available: true}, product.Sizes[0])
}

func TestExtract_UnavailableSize(t *testing.T) {
	product := extract(t, page(`
		<div id="product-size-picker">
			<input class="fr-ec-chip__input" id="l-300" aria-label="L (unavailable)">
		</div>
	`))

	require.Len(t, product.Sizes, 1)
	assert.Equal(t, "L", product.Sizes[0].Label)
	assert.False(t, product.Sizes[0].Available)
}

func TestExtract_MalformedSizeIdentifierSkipped(t *testing.T) {
	product := extract(t, page(`
		<div id="product-size-picker">
			<input class="fr-ec-chip__input" aria-label="No id">
			<input class="fr-ec-chip__input" id="plain" aria-label="No separator">
			<input class="fr-ec-chip__input" id="s-" aria-label="Empty ordinal">
			<input class="fr-ec-chip__input" id="s-010" aria-label="S">
		</div>
	`))

	assert.Equal(t, []models.SizeOption{{ID: "010", Label: "S", Available: true}}, product.Sizes)
}

func TestExtract_DuplicateColorKeepsFirstSwatch(t *testing.T) {
	product := extract(t, page(`
		<div id="product-color-picker">
			<img src="first.jpg"><input class="fr-ec-chip__input" id="c-09" aria-label="Black">
			<img src="second.jpg"><input class="fr-ec-chip__input" id="c-99" aria-label="Black">
			<img src="third.jpg"><input class="fr-ec-chip__input" id="c-19" aria-label="black">
		</div>
	`))

	assert.Equal(t, []models.ColorOption{
		{Name: "Black", SwatchImageURL: "first.jpg", Index: "09"},
		{Name: "black", SwatchImageURL: "third.jpg", Index: "19"},
	}, product.Colors)
}

func TestExtract_ColorWithoutSwatchOrIdentifier(t *testing.T) {
	product := extract(t, page(`
		<div id="product-color-picker">
			<span>label</span><input class="fr-ec-chip__input" aria-label="Navy">
			<input class="fr-ec-chip__input" id="c-05">
		</div>
	`))

	assert.Equal(t, []models.ColorOption{{Name: "Navy"}}, product.Colors)
}

func TestExtract_ChipsOutsidePickersIgnored(t *testing.T) {
	product := extract(t, page(`<input class="fr-ec-chip__input" id="m-100" aria-label="M">`))

	assert.Empty(t, product.Sizes)
	assert.Empty(t, product.Colors)
}

func TestExtract_ImagesSkipMissingSrc(t *testing.T) {
	product := extract(t, page(`
		<div class="fr-ec-image"><img src="1.jpg"><img><img src="2.jpg"><img src="3.jpg"></div>
	`))
	assert.Equal(t, []string{"1.jpg", "2.jpg", "3.jpg"}, product.Images)
}

func TestExtract_EmptyPageHasEmptyLists(t *testing.T) {
	product := extract(t, "")

	assert.Equal(t, FallbackTitle, product.Title)
	assert.Equal(t, FallbackDescription, product.Description)
	assert.NotNil(t, product.Sizes)
	assert.NotNil(t, product.Colors)
	assert.NotNil(t, product.Images)
	assert.NotNil(t, product.Videos)
}

func TestExtract_MalformedMarkupIsLenient(t *testing.T) {
	product := extract(t, `<html><body><h1 class="fr-ec-display">Broken<div class="fr-ec-image"><img src="x.jpg"`)
	assert.NotEqual(t, FallbackTitle, product.Title)
}

func TestExtractReader_ParseFailed(t *testing.T) {
	_, err := NewExtractor(DefaultSelectors()).ExtractReader(iotest.ErrReader(assert.AnError))
	require.ErrorIs(t, err, ErrParseFailed)
}

func TestExtract_Deterministic(t *testing.T) {
	html := loadFixture(t)
	first := extract(t, html)
	second := extract(t, html)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Extract() not deterministic (-first +second):\n%s", diff)
	}
}

func TestExtract_ConcurrentCalls(t *testing.T) {
	html := loadFixture(t)
	extractor := NewExtractor(DefaultSelectors())
	want, err := extractor.Extract(html)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := extractor.Extract(html)
			assert.NoError(t, err)
			assert.Empty(t, cmp.Diff(want, got))
		}()
	}
	wg.Wait()
}

func TestDedupe_Idempotent(t *testing.T) {
	product := extract(t, loadFixture(t))

	assert.Equal(t, product.Sizes, DedupeSizes(product.Sizes))
	assert.Equal(t, product.Colors, DedupeColors(product.Colors))
}

func TestParseSizeLabel(t *testing.T) {
	tests := []struct {
		raw       string
		label     string
		available bool
	}{
		{"M", "M", true},
		{"  XL  ", "XL", true},
		{"L (unavailable)", "L", false},
		{"L (unavailable) ", "L", false},
		{"(unavailable) L", "(unavailable) L", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			label, available := ParseSizeLabel(tt.raw)
			assert.Equal(t, tt.label, label)
			assert.Equal(t, tt.available, available)
		})
	}
}

func TestUniqloScraper_CanScrape(t *testing.T) {
	s := NewUniqloScraper()
	assert.True(t, s.CanScrape("https://www.uniqlo.com/jp/ja/products/E465185-000/00"))
	assert.False(t, s.CanScrape("https://www.example.com/p/1"))
}

func TestUniqloScraper_WaitsForProductTitle(t *testing.T) {
	s := NewUniqloScraper()
	assert.Equal(t, DefaultSelectors().Title, s.WaitSelector)
}
