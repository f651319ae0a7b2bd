package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"path"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// UploadImagesToS3 downloads images from URLs and uploads them to S3.
// Returns a map of Original URL -> S3 Object Key; failed images are left out.
func UploadImagesToS3(ctx context.Context, urls []string, folderPrefix string) map[string]string {
	urlToKey := make(map[string]string)
	var mu sync.Mutex
	var wg sync.WaitGroup

	// Limit concurrency
	semaphore := make(chan struct{}, 5)

	for i, url := range urls {
		if url == "" {
			continue
		}
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			objectKey := ImageObjectKey(folderPrefix, url, i, time.Now())
			if err := downloadAndUpload(ctx, url, objectKey); err != nil {
				log.Warn().Err(err).Str("url", url).Msg("Failed to mirror image")
				return
			}

			mu.Lock()
			urlToKey[url] = objectKey
			mu.Unlock()
		}(i, url)
	}

	wg.Wait()
	return urlToKey
}

// ImageObjectKey builds a unique S3 key for an image URL
func ImageObjectKey(folderPrefix, rawURL string, i int, now time.Time) string {
	var filename string
	if u, err := neturl.Parse(rawURL); err == nil {
		filename = path.Base(u.Path)
	}
	if filename == "" || filename == "." || filename == "/" || len(filename) > 255 {
		filename = fmt.Sprintf("image_%d.jpg", i)
	}
	return fmt.Sprintf("%s/%d_%s", folderPrefix, now.UnixNano(), filename)
}

func downloadAndUpload(ctx context.Context, url, objectKey string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	// PutObject needs a seekable body to compute the payload hash
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = UploadFileToS3(ctx, bytes.NewReader(bodyBytes), objectKey, contentType)
	return err
}
