package feed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

type Fetcher struct {
	client *resty.Client
	parser *Parser
}

func NewFetcher(parser *Parser, userAgent string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: resty.New().
			SetTimeout(timeout).
			SetHeader("User-Agent", userAgent).
			SetHeader("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5"),
		parser: parser,
	}
}

// Fetch downloads the feed at url and returns its entries in feed order.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]Entry, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %s", resp.Status())
	}

	entries, err := f.parser.Run(resp.Body())
	if err != nil {
		return nil, err
	}

	return entries, nil
}
