package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
)

// Collector is a PageSource backed by a colly collector. A single limit rule with
// parallelism 1 makes every request wait at least Delay after the previous one.
type Collector struct {
	collector *colly.Collector
	headers   map[string]string
}

var _ PageSource = (*Collector)(nil)

// NewCollector builds a paced collector. delay is the minimum gap between requests.
func NewCollector(opts *Options, delay time.Duration) (*Collector, error) {
	opts = opts.normalized()

	c := colly.NewCollector(
		colly.UserAgent(opts.UserAgent),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(opts.Timeout)

	if err := c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 1,
		Delay:       delay,
	}); err != nil {
		return nil, fmt.Errorf("failed to set request limit: %w", err)
	}

	return &Collector{collector: c, headers: opts.Headers}, nil
}

// Page fetches urlStr and returns its body. Non-2xx responses are errors.
func (c *Collector) Page(ctx context.Context, urlStr string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &Error{URL: urlStr, Message: "request cancelled", Cause: err}
	}
	if err := validateURL(urlStr); err != nil {
		return "", err
	}

	// Clones share the transport and limit rules but not callbacks. The context makes
	// cancellation abort a request already in flight.
	cc := c.collector.Clone()
	cc.Context = ctx

	var (
		body   string
		status int
	)
	cc.OnRequest(func(r *colly.Request) {
		for key, value := range c.headers {
			r.Headers.Set(key, value)
		}
	})
	cc.OnResponse(func(r *colly.Response) {
		body = string(r.Body)
		status = r.StatusCode
	})
	cc.OnError(func(r *colly.Response, _ error) {
		if r != nil {
			status = r.StatusCode
		}
	})

	if err := cc.Visit(urlStr); err != nil {
		return "", &Error{
			URL:        urlStr,
			Message:    "page request failed",
			StatusCode: status,
			Cause:      err,
		}
	}
	return body, nil
}
