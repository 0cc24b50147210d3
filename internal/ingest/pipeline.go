package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/tickerload/internal/model"
	"github.com/rickgao/tickerload/internal/warehouse"
)

// Report summarizes one ingestion run.
type Report struct {
	RunID    string
	DS       string
	Pages    int
	Fetched  int
	Inserted int64
	Duration time.Duration
}

// Pipeline fetches the tickers listing and loads it into the warehouse.
type Pipeline struct {
	fetcher *Fetcher
	open    warehouse.Opener
	table   string
	schema  model.Schema
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSchema overrides the target table schema.
func WithSchema(s model.Schema) Option {
	return func(p *Pipeline) {
		p.schema = s
	}
}

// WithClock sets the clock used to stamp the run date.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a Pipeline loading into table with the ticker schema.
func New(fetcher *Fetcher, open warehouse.Opener, table string, opts ...Option) *Pipeline {
	p := &Pipeline{
		fetcher: fetcher,
		open:    open,
		table:   table,
		schema:  model.TickerSchema(),
		now:     time.Now,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Run performs one full ingestion. The warehouse connection is closed on
// every path once opened; work already sent is not rolled back.
func (p *Pipeline) Run(ctx context.Context) (report Report, err error) {
	start := p.now()
	report = Report{
		RunID: uuid.NewString(),
		DS:    start.Format(model.DSLayout),
	}
	logger := p.logger.With("run_id", report.RunID, "ds", report.DS)

	logger.Info("ingestion started", "stage", "fetching", "table", p.table)

	fetcher := *p.fetcher
	fetcher.Logger = logger
	records, pages, err := fetcher.FetchAllPages(ctx, report.DS)
	report.Pages = pages
	if err != nil {
		return report, fmt.Errorf("fetch: %w", err)
	}
	report.Fetched = len(records)

	logger.Info("tickers retrieved", "stage", "normalizing", "pages", pages, "records", len(records))

	rows := Normalize(records, p.schema)

	logger.Info("loading rows", "stage", "loading", "rows", len(rows))

	store, err := p.open(ctx)
	if err != nil {
		return report, fmt.Errorf("open warehouse: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Warn("failed to close warehouse", "err", cerr)
			if err == nil {
				err = fmt.Errorf("close warehouse: %w", cerr)
			}
		}
	}()

	if err := store.EnsureTable(ctx, p.table, p.schema); err != nil {
		return report, fmt.Errorf("load: %w", err)
	}

	inserted, err := store.BulkInsert(ctx, p.table, p.schema, rows)
	report.Inserted = inserted
	if err != nil {
		return report, fmt.Errorf("load: %w", err)
	}

	report.Duration = p.now().Sub(start)
	logger.Info("ingestion complete",
		"stage", "idle",
		"pages", report.Pages,
		"fetched", report.Fetched,
		"inserted", report.Inserted,
		"duration", report.Duration,
	)

	return report, nil
}

// Job adapts Run to a scheduler job.
func (p *Pipeline) Job(ctx context.Context) error {
	_, err := p.Run(ctx)
	return err
}
