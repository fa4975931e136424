// Package fetch - browser.go provides headless browser rendering of ladder pages.
package fetch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

// Browser is a PageSource that renders pages in headless Chrome. It keeps the same
// minimum gap between requests as the HTTP collector.
// Requires Chrome/Chromium to be installed on the system.
type Browser struct {
	timeout   time.Duration
	userAgent string
	delay     time.Duration

	mu   sync.Mutex
	last time.Time
}

var _ PageSource = (*Browser)(nil)

// NewBrowser builds a Browser page source.
func NewBrowser(opts *Options, delay time.Duration) *Browser {
	opts = opts.normalized()
	return &Browser{
		timeout:   opts.Timeout,
		userAgent: opts.UserAgent,
		delay:     delay,
	}
}

// Page renders urlStr and returns the resulting document HTML.
func (b *Browser) Page(ctx context.Context, urlStr string) (string, error) {
	if err := validateURL(urlStr); err != nil {
		return "", err
	}
	if err := b.pace(ctx); err != nil {
		return "", &Error{URL: urlStr, Message: "request cancelled", Cause: err}
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(b.userAgent),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, b.timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(urlStr),
		chromedp.WaitReady("body"),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{
			URL:     urlStr,
			Message: "browser rendering failed",
			Cause:   fmt.Errorf("chromedp: %w", err),
		}
	}

	return html, nil
}

// pace blocks until at least delay has passed since the previous request started.
func (b *Browser) pace(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.last.IsZero() {
		if wait := b.delay - time.Since(b.last); wait > 0 {
			timer := time.NewTimer(wait)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	b.last = time.Now()
	return nil
}
