package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/raushankrgupta/uniqlo-product-scraper/api"
	"github.com/raushankrgupta/uniqlo-product-scraper/config"
	"github.com/raushankrgupta/uniqlo-product-scraper/scrapers"
	"github.com/raushankrgupta/uniqlo-product-scraper/utils"
	"github.com/rs/zerolog/log"
)

func main() {
	config.LoadConfig()
	utils.SetupLogger(config.LogLevel, config.LogJSON)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	archiver := setupArchiver(ctx)
	defer utils.DisconnectMongo(context.Background())

	srv, err := api.NewServer(api.Options{
		Scrape:         scrapers.Scrape,
		Archiver:       archiver,
		AllowedOrigin:  config.AllowedOrigin,
		ProxyTarget:    config.ProxyTarget,
		ProxyUserAgent: config.ProxyUserAgent,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	httpServer := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server shutdown failed")
		}
	}()

	log.Info().
		Str("port", config.Port).
		Str("allowed_origin", config.AllowedOrigin).
		Strs("fetch_strategies", config.FetchStrategies).
		Bool("archive", archiver != nil).
		Msgf("Server running at http://localhost:%s", config.Port)

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Server failed to start")
	}
	srv.WaitArchives()
	log.Info().Msg("Server stopped")
}

// setupArchiver connects the snapshot archive when MONGO_URI is configured
func setupArchiver(ctx context.Context) api.Archiver {
	if config.MongoURI == "" {
		return nil
	}

	if err := utils.ConnectMongo(ctx, config.MongoURI); err != nil {
		log.Warn().Err(err).Msg("Archiving disabled")
		return nil
	}

	collection, err := utils.GetCollection(config.MongoDatabase, "products")
	if err != nil {
		log.Warn().Err(err).Msg("Archiving disabled")
		return nil
	}

	mirror := config.AWSBucketName != ""
	log.Info().Str("database", config.MongoDatabase).Bool("mirror_images", mirror).Msg("Archiving enabled")
	return utils.NewMongoArchiver(collection, mirror)
}
