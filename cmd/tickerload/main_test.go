package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/rickgao/tickerload/internal/config"
	"github.com/rickgao/tickerload/internal/scheduler"
)

func TestSetupLogger(t *testing.T) {
	newTestApp := func() *cli.App {
		return &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "log-level"},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error { return nil },
		}
	}

	for _, level := range []string{"debug", "info", "warn", "error", "DEBUG", "WaRn"} {
		t.Run(level, func(t *testing.T) {
			require.NoError(t, newTestApp().Run([]string{"test", "--log-level", level}))
		})
	}

	t.Run("unset uses default", func(t *testing.T) {
		require.NoError(t, newTestApp().Run([]string{"test"}))
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		err := newTestApp().Run([]string{"test", "--log-level", "loud"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := newLogger(&buf, "info", "json")
		require.NoError(t, err)

		logger.Info("hello", "records", 3)

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "hello", line["msg"])
		assert.EqualValues(t, 3, line["records"])
	})

	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := newLogger(&buf, "warn", "text")
		require.NoError(t, err)

		logger.Info("dropped")
		assert.Empty(t, buf.String())
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := newLogger(&bytes.Buffer{}, "info", "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log format")
	})
}

func TestNewScheduler(t *testing.T) {
	noop := func(ctx context.Context) error { return nil }
	logger, err := newLogger(&bytes.Buffer{}, "info", "text")
	require.NoError(t, err)

	t.Run("daily and heartbeat", func(t *testing.T) {
		cfg := &config.Config{Schedule: config.ScheduleConfig{
			DailyRunTime:      "06:30",
			HeartbeatInterval: 10 * time.Minute,
			Tick:              time.Second,
		}}

		jobs := newScheduler(cfg, noop, logger).Jobs()
		require.Len(t, jobs, 2)

		assert.Equal(t, ingestJobName, jobs[0].Name)
		assert.Equal(t, scheduler.DailyAt{At: scheduler.TimeOfDay{Hour: 6, Minute: 30}}, jobs[0].Rule)
		assert.Equal(t, heartbeatJobName, jobs[1].Name)
		assert.Equal(t, scheduler.Every{Interval: 10 * time.Minute}, jobs[1].Rule)
	})

	t.Run("invalid daily run time falls back", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := newLogger(&buf, "info", "text")
		require.NoError(t, err)

		cfg := &config.Config{Schedule: config.ScheduleConfig{
			DailyRunTime:      "25:99",
			HeartbeatInterval: -time.Second,
			Tick:              time.Second,
		}}

		jobs := newScheduler(cfg, noop, logger).Jobs()
		require.Len(t, jobs, 1)
		assert.Equal(t, scheduler.Daily{}, jobs[0].Rule)
		assert.Contains(t, buf.String(), "level=WARN")
	})

	t.Run("interval adds recurring job", func(t *testing.T) {
		cfg := &config.Config{Schedule: config.ScheduleConfig{
			DailyRunTime: "00:00",
			Interval:     time.Hour,
			Tick:         time.Second,
		}}

		jobs := newScheduler(cfg, noop, logger).Jobs()
		require.Len(t, jobs, 2)
		assert.Equal(t, intervalJobName, jobs[1].Name)
		assert.Equal(t, scheduler.Every{Interval: time.Hour}, jobs[1].Rule)
	})
}

// neutralizeEnv blanks variables that would override the test config.
func neutralizeEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvAPIKey, config.EnvBaseURL, config.EnvPageDelay,
		config.EnvDailyRunTime, config.EnvRunInterval, config.EnvDriver,
		config.EnvTable, config.EnvSQLitePath, config.EnvLogLevel,
	} {
		t.Setenv(key, "")
	}
}

func TestOnceCommand(t *testing.T) {
	neutralizeEnv(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/reference/tickers", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		assert.True(t, strings.HasPrefix(r.Header.Get("User-Agent"), "tickerload/"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"OK","results":[{"ticker":"AAPL","name":"Apple Inc.","active":true,"last_updated_utc":"2025-10-14T00:00:00Z"}]}`))
	}))
	defer server.Close()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "tickerload.yaml")
	cfgYAML := strings.Join([]string{
		"api:",
		"  base_url: " + server.URL,
		"  api_key: test-key",
		"warehouse:",
		"  driver: sqlite",
		"  path: " + filepath.Join(dir, "tickers.db"),
		"log:",
		"  level: error",
	}, "\n")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgYAML), 0o600))

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out

	require.NoError(t, app.Run([]string{"tickerload", "--config", cfgPath, "once"}))
	assert.Contains(t, out.String(), "pages=1 fetched=1 inserted=1")
}

func TestOnceCommand_MissingAPIKey(t *testing.T) {
	neutralizeEnv(t)

	app := newApp()
	app.Writer = &bytes.Buffer{}

	err := app.Run([]string{"tickerload", "once"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.api_key is required")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out

	require.NoError(t, app.Run([]string{"tickerload", "version"}))
	assert.Contains(t, out.String(), "dev")
}
