package base

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/raushankrgupta/uniqlo-product-scraper/config"
	"github.com/rs/zerolog/log"
)

const (
	StrategyHTTP     = "http"
	StrategyChromeDP = "chromedp"
	StrategySelenium = "selenium"
)

// DefaultWaitSelector is awaited by the browser strategies when no page-specific selector is set
const DefaultWaitSelector = "body"

// ErrAllStrategiesFailed is returned when no strategy could fetch the page
var ErrAllStrategiesFailed = errors.New("all fetch strategies failed")

// Validator reports whether a fetched document is usable
type Validator func(*goquery.Document) bool

type fetchFunc func(ctx context.Context, url string) (*goquery.Document, error)

// BaseScraper handles common fetching logic
type BaseScraper struct {
	Client     *http.Client
	Strategies []string
	Timeout    time.Duration

	// WaitSelector is the element browser strategies wait for before reading the DOM
	WaitSelector string
}

// NewBaseScraper creates a new BaseScraper from the loaded configuration
func NewBaseScraper() *BaseScraper {
	return &BaseScraper{
		Client: &http.Client{
			Timeout: config.FetchTimeout,
			Transport: &http.Transport{
				ForceAttemptHTTP2:     false,
				TLSNextProto:          make(map[string]func(string, *tls.Conn) http.RoundTripper),
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		Strategies:   append([]string(nil), config.FetchStrategies...),
		Timeout:      config.FetchTimeout,
		WaitSelector: DefaultWaitSelector,
	}
}

func (b *BaseScraper) waitSelector() string {
	if b.WaitSelector == "" {
		return DefaultWaitSelector
	}
	return b.WaitSelector
}

func (b *BaseScraper) strategy(name string) (fetchFunc, bool) {
	switch name {
	case StrategyHTTP:
		return b.FetchDocumentHTTP, true
	case StrategyChromeDP:
		return b.FetchDocumentChromeDP, true
	case StrategySelenium:
		return b.FetchDocumentSelenium, true
	}
	return nil, false
}

// FetchDocument tries each configured strategy in order and returns the first
// document accepted by validator. When pages were fetched but none validated,
// the first fetched page is returned so extraction can still degrade gracefully.
func (b *BaseScraper) FetchDocument(ctx context.Context, url string, validator Validator) (*goquery.Document, error) {
	var fallback *goquery.Document
	var errs []error

	for _, name := range b.Strategies {
		fetch, ok := b.strategy(name)
		if !ok {
			log.Warn().Str("strategy", name).Msg("Unknown fetch strategy, skipping")
			continue
		}
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		doc, err := fetch(ctx, url)
		if err != nil {
			log.Warn().Err(err).Str("strategy", name).Str("url", url).Msg("Fetch strategy failed")
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}

		if validator == nil || validator(doc) {
			log.Debug().Str("strategy", name).Str("url", url).Msg("Fetch succeeded")
			return doc, nil
		}

		log.Debug().Str("strategy", name).Msg("Fetched content failed validation, trying fallbacks")
		if fallback == nil {
			fallback = doc
		}
	}

	if fallback != nil {
		log.Warn().Str("url", url).Msg("No strategy produced a valid page, using first fetched page")
		return fallback, nil
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("%w for %s: no strategies configured", ErrAllStrategiesFailed, url)
	}
	return nil, fmt.Errorf("%w for %s: %w", ErrAllStrategiesFailed, url, errors.Join(errs...))
}

// IsBlockedDocument detects bot-check and access-denied pages
func IsBlockedDocument(doc *goquery.Document) bool {
	title := strings.ToLower(strings.TrimSpace(doc.Find("title").Text()))
	return strings.Contains(title, "robot check") ||
		strings.Contains(title, "captcha") ||
		strings.Contains(title, "access denied")
}

// FetchDocumentHTTP fetches the URL and returns a GoQuery document via standard HTTP
func (b *BaseScraper) FetchDocumentHTTP(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	// Common headers to mimic a real browser
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ja,en-US;q=0.9,en;q=0.8")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Sec-Fetch-User", "?1")

	res, err := b.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code error: %d %s", res.StatusCode, res.Status)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return doc, nil
}
