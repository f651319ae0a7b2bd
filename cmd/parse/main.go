package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/raushankrgupta/uniqlo-product-scraper/config"
	"github.com/raushankrgupta/uniqlo-product-scraper/models"
	"github.com/raushankrgupta/uniqlo-product-scraper/scrapers"
	"github.com/raushankrgupta/uniqlo-product-scraper/scrapers/uniqlo"
	"github.com/raushankrgupta/uniqlo-product-scraper/utils"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var (
		filePath string
		pretty   bool
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "parse [url]",
		Short: "Extract a normalized product record from a product page",
		Long: `parse fetches a product page and prints the extracted title, description,
sizes, colors, images and videos as JSON. Use --file to read saved markup instead.`,
		Example: `  parse https://www.uniqlo.com/jp/ja/products/E465185-000/00
  parse --file page.html --pretty`,
		Args: func(cmd *cobra.Command, args []string) error {
			if filePath == "" && len(args) != 1 {
				return errors.New("provide a product url or --file")
			}
			if filePath != "" && len(args) > 0 {
				return errors.New("a url and --file cannot be combined")
			}
			return nil
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := config.LogLevel
			if verbose {
				level = "debug"
			}
			utils.SetupLogger(level, config.LogJSON)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				product *models.Product
				err     error
			)
			if filePath != "" {
				product, err = extractFile(filePath)
			} else {
				product, err = scrapers.Scrape(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if pretty {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(product)
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Extract from a saved HTML file instead of fetching")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the JSON output")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	return cmd
}

func extractFile(path string) (*models.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return uniqlo.NewExtractor(uniqlo.DefaultSelectors()).ExtractReader(f)
}

func main() {
	config.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
