package base

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/raushankrgupta/uniqlo-product-scraper/config"
	"github.com/rs/zerolog/log"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
)

// FetchDocumentSelenium loads the URL through chromedriver and parses the page source
func (b *BaseScraper) FetchDocumentSelenium(ctx context.Context, url string) (*goquery.Document, error) {
	InitPortManager(4444, 16)

	port, err := GlobalPortManager.GetPort()
	if err != nil {
		return nil, fmt.Errorf("port error: %w", err)
	}
	defer GlobalPortManager.ReleasePort(port)

	service, err := selenium.NewChromeDriverService(config.ChromeDriverPath, port)
	if err != nil {
		return nil, fmt.Errorf("error starting Chrome driver service: %w", err)
	}
	defer service.Stop()

	userAgent := "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	caps := selenium.Capabilities{"browserName": "chrome"}
	caps.AddChrome(chrome.Capabilities{
		Args: []string{
			"--headless=new",
			"--no-sandbox",
			"--disable-dev-shm-usage",
			"--disable-blink-features=AutomationControlled",
			"--disable-gpu",
			"--window-size=1920,1080",
			fmt.Sprintf("--user-agent=%s", userAgent),
		},
		ExcludeSwitches: []string{"enable-automation"},
	})

	driver, err := selenium.NewRemote(caps, fmt.Sprintf("http://localhost:%d/wd/hub", port))
	if err != nil {
		return nil, fmt.Errorf("error creating WebDriver: %w", err)
	}
	defer driver.Quit()

	// The webdriver API has no context support; cap the page load instead
	timeout := b.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if err := driver.SetPageLoadTimeout(timeout); err != nil {
		log.Debug().Err(err).Msg("Could not set page load timeout")
	}

	if err := driver.Get(url); err != nil {
		return nil, fmt.Errorf("navigation error: %w", err)
	}

	// Wait for the client-rendered content
	waitFor := b.waitSelector()
	waitErr := driver.WaitWithTimeout(func(wd selenium.WebDriver) (bool, error) {
		elems, err := wd.FindElements(selenium.ByCSSSelector, waitFor)
		return err == nil && len(elems) > 0, nil
	}, timeout/2)
	if waitErr != nil {
		log.Debug().Err(waitErr).Str("url", url).Str("selector", waitFor).Msg("Content did not render before timeout")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	html, err := driver.PageSource()
	if err != nil {
		return nil, fmt.Errorf("page source error: %w", err)
	}

	return goquery.NewDocumentFromReader(strings.NewReader(html))
}
