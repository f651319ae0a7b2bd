package api

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/raushankrgupta/uniqlo-product-scraper/utils"
	"github.com/rs/zerolog/log"
)

const priceGroupQuery = "withPrices=true&withStocks=true&includePreviousPrice=false&httpFailure=true"

// PriceGroupPath is the upstream price and stock endpoint for a product
func PriceGroupPath(productID string) string {
	return fmt.Sprintf("/jp/api/commerce/v5/ja/products/%s/price-groups/00/l2s", productID)
}

// NewPriceProxy forwards /api/{productId} to the upstream price and stock API.
// The Host header is rewritten to the target and the user agent overridden.
func NewPriceProxy(target, userAgent string) (*httputil.ReverseProxy, error) {
	targetURL, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy target %q: %w", target, err)
	}
	if targetURL.Scheme == "" || targetURL.Host == "" {
		return nil, fmt.Errorf("invalid proxy target %q: scheme and host are required", target)
	}
	basePath := strings.TrimRight(targetURL.Path, "/")

	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			productID := chi.URLParam(pr.In, "productId")

			pr.Out.URL.Scheme = targetURL.Scheme
			pr.Out.URL.Host = targetURL.Host
			pr.Out.URL.Path = basePath + PriceGroupPath(productID)
			pr.Out.URL.RawPath = ""
			pr.Out.URL.RawQuery = priceGroupQuery
			pr.Out.Host = targetURL.Host
			pr.Out.Header.Set("User-Agent", userAgent)

			log.Debug().Str("product_id", productID).Str("upstream", pr.Out.URL.String()).Msg("Proxying price request")
		},
		// The CORS middleware owns these headers; upstream copies would duplicate them
		ModifyResponse: func(res *http.Response) error {
			for name := range res.Header {
				if strings.HasPrefix(name, "Access-Control-") {
					res.Header.Del(name)
				}
			}
			return nil
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			log.Error().Err(err).Str("path", r.URL.Path).Msg("Upstream price request failed")
			utils.RespondError(w, "Upstream request failed", http.StatusBadGateway)
		},
	}, nil
}
