package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

const tickersPath = "/v3/reference/tickers"

// MaxPageLimit is the largest page size the tickers endpoint accepts.
const MaxPageLimit = 1000

// ListTickers fetches the first page of reference tickers.
func (c *Client) ListTickers(ctx context.Context, opts ListTickersOptions) (*TickersResponse, error) {
	query := url.Values{}

	if opts.Market != "" {
		query.Set("market", opts.Market)
	}
	if opts.Active != nil {
		query.Set("active", strconv.FormatBool(*opts.Active))
	}
	if opts.Order != "" {
		query.Set("order", opts.Order)
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Sort != "" {
		query.Set("sort", opts.Sort)
	}

	var resp TickersResponse
	if err := c.get(ctx, tickersPath, query, &resp); err != nil {
		return nil, fmt.Errorf("list tickers: %w", err)
	}

	return &resp, nil
}

// NextTickers fetches the page referenced by a next_url cursor.
func (c *Client) NextTickers(ctx context.Context, nextURL string) (*TickersResponse, error) {
	var resp TickersResponse
	if err := c.get(ctx, nextURL, nil, &resp); err != nil {
		return nil, fmt.Errorf("next tickers: %w", err)
	}

	return &resp, nil
}
