package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rickgao/tickerload/internal/api"
	"github.com/rickgao/tickerload/internal/model"
)

// PageFetcher fetches pages of reference tickers.
type PageFetcher interface {
	ListTickers(ctx context.Context, opts api.ListTickersOptions) (*api.TickersResponse, error)
	NextTickers(ctx context.Context, nextURL string) (*api.TickersResponse, error)
}

// Sleeper blocks for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the default Sleeper.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Fetcher walks every page of the tickers listing.
type Fetcher struct {
	Source PageFetcher
	Query  api.ListTickersOptions
	Delay  time.Duration // Pause before each next-page request
	Sleep  Sleeper
	Logger *slog.Logger
}

// FetchAllPages returns all records of the listing, each stamped with ds,
// and the number of pages requested. Pages are requested strictly in cursor
// order; there is no bound on the number of pages.
func (f *Fetcher) FetchAllPages(ctx context.Context, ds string) ([]model.TickerRecord, int, error) {
	logger := f.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sleep := f.Sleep
	if sleep == nil {
		sleep = SleepContext
	}

	resp, err := f.Source.ListTickers(ctx, f.Query)
	if err != nil {
		return nil, 1, fmt.Errorf("page 1: %w", err)
	}

	records := stampAll(nil, resp.Results, ds)
	pages := 1

	for resp.NextURL != "" {
		if err := sleep(ctx, f.Delay); err != nil {
			return nil, pages, err
		}

		pages++
		logger.Info("requesting page",
			"page", pages,
			"records_so_far", len(records),
		)

		resp, err = f.Source.NextTickers(ctx, resp.NextURL)
		if err != nil {
			return nil, pages, fmt.Errorf("page %d: %w", pages, err)
		}
		records = stampAll(records, resp.Results, ds)
	}

	return records, pages, nil
}

func stampAll(dst, page []model.TickerRecord, ds string) []model.TickerRecord {
	for _, rec := range page {
		if rec == nil {
			rec = model.TickerRecord{}
		}
		rec.Stamp(ds)
		dst = append(dst, rec)
	}
	return dst
}
