package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/raushankrgupta/uniqlo-product-scraper/models"
	"github.com/raushankrgupta/uniqlo-product-scraper/utils"
)

// ScrapeFunc fetches url and extracts its product record
type ScrapeFunc func(ctx context.Context, url string) (*models.Product, error)

// Archiver persists extraction results
type Archiver interface {
	Archive(ctx context.Context, sourceURL string, product *models.Product) error
}

// Options configures the HTTP server
type Options struct {
	Scrape         ScrapeFunc
	Archiver       Archiver // nil disables archiving
	AllowedOrigin  string
	ProxyTarget    string
	ProxyUserAgent string
}

type Server struct {
	router   *chi.Mux
	scrape   ScrapeFunc
	archiver Archiver
	proxy    http.Handler
	origin   string

	archives sync.WaitGroup
}

func NewServer(opts Options) (*Server, error) {
	if opts.Scrape == nil {
		return nil, fmt.Errorf("scrape function is required")
	}

	proxy, err := NewPriceProxy(opts.ProxyTarget, opts.ProxyUserAgent)
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:   chi.NewRouter(),
		scrape:   opts.Scrape,
		archiver: opts.Archiver,
		proxy:    proxy,
		origin:   opts.AllowedOrigin,
	}

	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(utils.LatencyMiddleware)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{s.origin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	s.router.Get("/health", s.handleHealth)
	s.router.Post("/parse", s.handleParse)
	s.router.Handle("/api/{productId}", s.proxy)
	s.router.Handle("/api/{productId}/*", s.proxy)
}

func (s *Server) Router() http.Handler {
	return s.router
}

// WaitArchives blocks until in-flight background archives have finished
func (s *Server) WaitArchives() {
	s.archives.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
