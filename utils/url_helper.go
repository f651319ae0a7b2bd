package utils

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// ResolveShortenedURL follows redirects to find the final URL
func ResolveShortenedURL(ctx context.Context, url string) (string, error) {
	client := &http.Client{Timeout: 15 * time.Second}

	resp, err := resolveWith(ctx, client, http.MethodHead, url)
	if err != nil || resp.StatusCode != http.StatusOK {
		// Some servers reject HEAD; retry with GET
		if resp != nil {
			resp.Body.Close()
		}
		resp, err = resolveWith(ctx, client, http.MethodGet, url)
		if err != nil {
			return url, err
		}
	}
	defer resp.Body.Close()

	final := resp.Request.URL.String()
	if final != url {
		log.Debug().Str("from", url).Str("to", final).Msg("Resolved redirected URL")
	}
	return final, nil
}

func resolveWith(ctx context.Context, client *http.Client, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUserAgent)
	return client.Do(req)
}
