package fetch

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/jonathan/skill-twin-engine/internal/logger"
)

// RenderSettle is how long the browser waits after load for client-side rendering.
const RenderSettle = 2 * time.Second

// Render loads a page in headless Chrome and returns the rendered HTML.
// Job boards that build their listings client-side need this; Chrome or
// Chromium must be installed.
func Render(ctx context.Context, urlStr string, timeout time.Duration, log *logger.Logger) (string, error) {
	if err := ValidateURL(urlStr); err != nil {
		return "", err
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	log.Debug("starting headless browser", "url", urlStr)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(DefaultUserAgent),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(urlStr),
		chromedp.WaitReady("body"),
		chromedp.Sleep(RenderSettle),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "browser rendering failed", Cause: err}
	}

	log.Debug("rendered page", "url", urlStr, "bytes", len(html))
	return html, nil
}
