package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/raushankrgupta/uniqlo-product-scraper/models"
	"github.com/raushankrgupta/uniqlo-product-scraper/utils"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ParseRequest is the body of POST /parse
type ParseRequest struct {
	URL string `json:"url"`
}

const (
	errFetchingProduct = "Error fetching product data"

	archiveTimeout = 2 * time.Minute
)

// handleParse fetches the product page at the requested url and returns the extracted record
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	// Support both query params and JSON body
	productURL := strings.TrimSpace(r.URL.Query().Get("url"))
	if productURL == "" {
		var req ParseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			productURL = strings.TrimSpace(req.URL)
		}
	}

	if productURL == "" {
		utils.RespondError(w, "URL is required", http.StatusBadRequest)
		return
	}

	logger := log.With().
		Str("request_id", middleware.GetReqID(r.Context())).
		Str("url", productURL).
		Logger()

	product, err := s.scrape(r.Context(), productURL)
	if err == nil && product == nil {
		err = errors.New("scraper returned no product")
	}
	if err != nil {
		logger.Error().Err(err).Msg(errFetchingProduct)
		utils.RespondError(w, errFetchingProduct, http.StatusInternalServerError)
		return
	}

	logger.Info().
		Int("sizes", len(product.Sizes)).
		Int("colors", len(product.Colors)).
		Msg("Product parsed")

	if s.archiver != nil {
		s.archiveAsync(r.Context(), productURL, product, logger)
	}

	utils.RespondJSON(w, http.StatusOK, product)
}

// archiveAsync stores the snapshot in the background so the response does not wait on it.
// The request context is detached so a closed connection does not abort the insert.
func (s *Server) archiveAsync(ctx context.Context, productURL string, product *models.Product, logger zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), archiveTimeout)

	s.archives.Add(1)
	go func() {
		defer s.archives.Done()
		defer cancel()

		if err := s.archiver.Archive(ctx, productURL, product); err != nil {
			logger.Warn().Err(err).Msg("Failed to archive product")
			return
		}
		logger.Debug().Msg("Product archived")
	}()
}
