package ingest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickgao/tickerload/internal/api"
	"github.com/rickgao/tickerload/internal/model"
)

// scriptedPages serves a fixed sequence of pages and records every call.
type scriptedPages struct {
	pages  []*api.TickersResponse
	failAt int // 1-based page number that fails; 0 never
	events *[]string
	query  api.ListTickersOptions
}

func (s *scriptedPages) ListTickers(ctx context.Context, opts api.ListTickersOptions) (*api.TickersResponse, error) {
	s.query = opts
	*s.events = append(*s.events, "list")
	return s.page(1)
}

func (s *scriptedPages) NextTickers(ctx context.Context, nextURL string) (*api.TickersResponse, error) {
	*s.events = append(*s.events, "next "+nextURL)
	var n int
	if _, err := fmt.Sscanf(nextURL, "cursor-%d", &n); err != nil {
		return nil, fmt.Errorf("unexpected cursor %q", nextURL)
	}
	return s.page(n)
}

func (s *scriptedPages) page(n int) (*api.TickersResponse, error) {
	if n == s.failAt {
		return nil, errors.New("connection reset")
	}
	return s.pages[n-1], nil
}

// makePages builds pages with the given record counts, chained by cursors.
func makePages(counts ...int) []*api.TickersResponse {
	pages := make([]*api.TickersResponse, len(counts))
	for i, c := range counts {
		resp := &api.TickersResponse{Status: "OK"}
		for j := 0; j < c; j++ {
			resp.Results = append(resp.Results, model.TickerRecord{
				"ticker": fmt.Sprintf("P%dR%d", i+1, j),
			})
		}
		if i < len(counts)-1 {
			resp.NextURL = fmt.Sprintf("cursor-%d", i+2)
		}
		pages[i] = resp
	}
	return pages
}

func recordingSleeper(events *[]string) Sleeper {
	return func(ctx context.Context, d time.Duration) error {
		*events = append(*events, "sleep "+d.String())
		return nil
	}
}

func TestFetchAllPages_SinglePage(t *testing.T) {
	var events []string
	src := &scriptedPages{pages: makePages(3), events: &events}
	f := &Fetcher{Source: src, Delay: 15 * time.Second, Sleep: recordingSleeper(&events)}

	records, pages, err := f.FetchAllPages(context.Background(), "2025-10-15")
	require.NoError(t, err)

	assert.Equal(t, 1, pages)
	require.Len(t, records, 3)
	for i, r := range records {
		assert.Equal(t, fmt.Sprintf("P1R%d", i), r.Ticker())
		assert.Equal(t, "2025-10-15", r[model.FieldDS])
	}
	assert.Equal(t, []string{"list"}, events, "no delay without a cursor")
}

func TestFetchAllPages_MultiPage(t *testing.T) {
	var events []string
	src := &scriptedPages{pages: makePages(4, 4, 2), events: &events}
	f := &Fetcher{Source: src, Delay: 15 * time.Second, Sleep: recordingSleeper(&events)}

	records, pages, err := f.FetchAllPages(context.Background(), "2025-10-15")
	require.NoError(t, err)

	assert.Equal(t, 3, pages)
	assert.Len(t, records, 10)
	assert.Equal(t, []string{
		"list",
		"sleep 15s",
		"next cursor-2",
		"sleep 15s",
		"next cursor-3",
	}, events)

	// Accumulated in cursor order.
	assert.Equal(t, "P1R0", records[0].Ticker())
	assert.Equal(t, "P2R0", records[4].Ticker())
	assert.Equal(t, "P3R1", records[9].Ticker())
}

func TestFetchAllPages_PassesQuery(t *testing.T) {
	var events []string
	src := &scriptedPages{pages: makePages(1), events: &events}
	active := true
	q := api.ListTickersOptions{Market: "stocks", Active: &active, Order: "asc", Sort: "ticker", Limit: 1000}
	f := &Fetcher{Source: src, Query: q, Sleep: recordingSleeper(&events)}

	_, _, err := f.FetchAllPages(context.Background(), "2025-10-15")
	require.NoError(t, err)
	assert.Equal(t, q, src.query)
}

func TestFetchAllPages_EmptyResults(t *testing.T) {
	var events []string
	src := &scriptedPages{pages: makePages(0), events: &events}
	f := &Fetcher{Source: src, Sleep: recordingSleeper(&events)}

	records, pages, err := f.FetchAllPages(context.Background(), "2025-10-15")
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
	assert.Empty(t, records)
}

func TestFetchAllPages_ErrorAborts(t *testing.T) {
	var events []string
	src := &scriptedPages{pages: makePages(2, 2, 2), failAt: 2, events: &events}
	f := &Fetcher{Source: src, Sleep: recordingSleeper(&events)}

	records, pages, err := f.FetchAllPages(context.Background(), "2025-10-15")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page 2")
	assert.Nil(t, records)
	assert.Equal(t, 2, pages)
	assert.Equal(t, []string{"list", "sleep 0s", "next cursor-2"}, events, "no retry, no further pages")
}

func TestFetchAllPages_SleepCancelled(t *testing.T) {
	var events []string
	src := &scriptedPages{pages: makePages(1, 1), events: &events}
	f := &Fetcher{Source: src, Delay: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The first request is served by the fake regardless of ctx.
	_, _, err := f.FetchAllPages(ctx, "2025-10-15")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"list"}, events)
}

func TestSleepContext(t *testing.T) {
	start := time.Now()
	require.NoError(t, SleepContext(context.Background(), 20*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	require.NoError(t, SleepContext(context.Background(), 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, SleepContext(ctx, time.Hour), context.Canceled)
}
