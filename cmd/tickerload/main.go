package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/rickgao/tickerload/internal/config"
	"github.com/rickgao/tickerload/internal/version"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		slog.Error("tickerload failed", "err", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "tickerload",
		Usage:   "Load Polygon reference tickers into a warehouse on a schedule",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML config file (optional)",
				EnvVars: []string{"TICKERLOAD_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Override logging level (debug, info, warn, error)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Run ingestion on start, then on the configured schedule until interrupted",
				Action: runCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "skip-initial",
						Usage: "Do not run ingestion before entering the schedule loop",
					},
				},
			},
			{
				Name:   "once",
				Usage:  "Run ingestion once and print the report",
				Action: onceCommand,
			},
			{
				Name:  "version",
				Usage: "Print version information",
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, version.String())
					return nil
				},
			},
		},
	}
}

// setupLogger installs a bootstrap logger so errors before the config is
// loaded are still structured.
func setupLogger(c *cli.Context) error {
	level := config.DefaultLogLevel
	if c.IsSet("log-level") {
		level = c.String("log-level")
	}

	logger, err := newLogger(os.Stderr, level, config.DefaultLogFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}

func newLogger(w io.Writer, levelStr, format string) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(levelStr) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q: must be text or json", format)
	}
}
