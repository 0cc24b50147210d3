package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/rickgao/tickerload/internal/api"
	"github.com/rickgao/tickerload/internal/config"
	"github.com/rickgao/tickerload/internal/ingest"
	"github.com/rickgao/tickerload/internal/scheduler"
	"github.com/rickgao/tickerload/internal/version"
	"github.com/rickgao/tickerload/internal/warehouse"
)

const (
	ingestJobName    = "ingest_tickers"
	intervalJobName  = "ingest_tickers_interval"
	heartbeatJobName = "heartbeat"
)

// loadConfig reads .env and the config file, then replaces the bootstrap
// logger with one built from the config.
func loadConfig(c *cli.Context) (*config.Config, *slog.Logger, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, nil, err
	}

	cfg, err := config.LoadAndValidate(c.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	logger, err := newLogger(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(logger)

	logger.Info("configuration loaded",
		"version", version.Version,
		"commit", version.Commit,
		"driver", cfg.Warehouse.Driver,
		"table", cfg.Warehouse.Table,
		"daily_run_time", cfg.Schedule.DailyRunTime,
	)

	return cfg, logger, nil
}

func newPipeline(cfg *config.Config, logger *slog.Logger) (*ingest.Pipeline, error) {
	client := api.NewClient(
		cfg.API.BaseURL,
		cfg.API.APIKey,
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(logger),
		api.WithUserAgent("tickerload/"+version.Version),
	)

	fetcher := &ingest.Fetcher{
		Source: client,
		Query: api.ListTickersOptions{
			Market: cfg.API.Market,
			Active: cfg.API.Active,
			Order:  cfg.API.Order,
			Sort:   cfg.API.Sort,
			Limit:  cfg.API.PageLimit,
		},
		Delay:  cfg.API.PageDelayOrDefault(),
		Logger: logger,
	}

	open, err := warehouse.NewOpener(cfg.Warehouse, logger)
	if err != nil {
		return nil, err
	}

	return ingest.New(fetcher, open, cfg.Warehouse.Table, ingest.WithLogger(logger)), nil
}

// newScheduler registers the daily ingestion, the optional recurring
// ingestion and the heartbeat.
func newScheduler(cfg *config.Config, job scheduler.JobFunc, logger *slog.Logger, opts ...scheduler.Option) *scheduler.Scheduler {
	opts = append([]scheduler.Option{
		scheduler.WithTick(cfg.Schedule.Tick),
		scheduler.WithLogger(logger),
	}, opts...)
	s := scheduler.New(opts...)

	scheduler.ScheduleDaily(s, cfg.Schedule.DailyRunTime, ingestJobName, job)

	if cfg.Schedule.Interval > 0 {
		s.Every(cfg.Schedule.Interval, intervalJobName, job)
	}

	if cfg.Schedule.HeartbeatInterval > 0 {
		s.Every(cfg.Schedule.HeartbeatInterval, heartbeatJobName, func(ctx context.Context) error {
			logger.Info("scheduler alive")
			return nil
		})
	}

	return s
}

func runCommand(c *cli.Context) error {
	cfg, logger, err := loadConfig(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pipeline, err := newPipeline(cfg, logger)
	if err != nil {
		return err
	}

	if cfg.Schedule.RunOnStartEnabled() && !c.Bool("skip-initial") {
		logger.Info("running initial ingestion")
		if _, err := pipeline.Run(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Info("interrupted during initial run")
				return nil
			}
			return fmt.Errorf("initial run: %w", err)
		}
	}

	s := newScheduler(cfg, pipeline.Job, logger)
	for _, j := range s.Jobs() {
		logger.Info("job scheduled", "job", j.Name, "rule", j.Rule.String(), "next_run", j.NextRun)
	}

	logger.Info("scheduler running")

	err = s.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("exiting scheduler")
	return nil
}

func onceCommand(c *cli.Context) error {
	cfg, logger, err := loadConfig(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pipeline, err := newPipeline(cfg, logger)
	if err != nil {
		return err
	}

	report, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "run %s ds=%s pages=%d fetched=%d inserted=%d duration=%s\n",
		report.RunID, report.DS, report.Pages, report.Fetched, report.Inserted, report.Duration)
	return nil
}
