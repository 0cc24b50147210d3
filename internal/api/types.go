package api

import "github.com/rickgao/tickerload/internal/model"

// TickersResponse from GET /v3/reference/tickers
type TickersResponse struct {
	Results   []model.TickerRecord `json:"results"`
	Status    string               `json:"status"`
	RequestID string               `json:"request_id"`
	Count     int                  `json:"count"`

	// NextURL is the cursor for the next page; empty on the last page.
	NextURL string `json:"next_url"`
}

// ListTickersOptions configures a ListTickers request.
type ListTickersOptions struct {
	Market string
	Active *bool
	Order  string
	Sort   string
	Limit  int
}
