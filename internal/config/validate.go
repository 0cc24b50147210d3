package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/rickgao/tickerload/internal/model"
)

// Validate checks that all required fields are set and values are valid.
//
// The daily run time is deliberately not checked here: an invalid value
// falls back to an unpinned daily trigger when the schedule is built.
func (c *Config) Validate() error {
	if c.API.APIKey == "" {
		return errors.New("api.api_key is required (POLYGON_API_KEY)")
	}
	if _, err := url.ParseRequestURI(c.API.BaseURL); err != nil {
		return fmt.Errorf("api.base_url is invalid: %q", c.API.BaseURL)
	}
	if c.API.PageLimit < 1 || c.API.PageLimit > 1000 {
		return fmt.Errorf("api.page_limit must be between 1 and 1000, got %d", c.API.PageLimit)
	}
	if c.API.PageDelay != nil && *c.API.PageDelay < 0 {
		return errors.New("api.page_delay must be >= 0")
	}
	if c.API.Timeout < 0 {
		return errors.New("api.timeout must be >= 0")
	}

	if c.Schedule.Interval < 0 {
		return errors.New("schedule.interval must be >= 0")
	}
	if c.Schedule.Tick <= 0 {
		return errors.New("schedule.tick must be > 0")
	}

	if err := c.Warehouse.validate("warehouse"); err != nil {
		return err
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	return nil
}

func (w *WarehouseConfig) validate(prefix string) error {
	if !model.ValidTableName(w.Table) {
		return fmt.Errorf("%s.table is not a valid identifier: %q", prefix, w.Table)
	}
	if w.MaxRowsPerStatement < 1 {
		return fmt.Errorf("%s.max_rows_per_statement must be >= 1", prefix)
	}

	switch w.Driver {
	case DriverSnowflake:
		if w.Account == "" {
			return fmt.Errorf("%s.account is required", prefix)
		}
		if w.User == "" {
			return fmt.Errorf("%s.user is required", prefix)
		}
		if w.Password == "" {
			return fmt.Errorf("%s.password is required", prefix)
		}
	case DriverPostgres:
		if w.Host == "" {
			return fmt.Errorf("%s.host is required", prefix)
		}
		if w.Database == "" {
			return fmt.Errorf("%s.database is required", prefix)
		}
		if w.User == "" {
			return fmt.Errorf("%s.user is required", prefix)
		}
		if w.Port < 1 || w.Port > 65535 {
			return fmt.Errorf("%s.port must be between 1 and 65535, got %d", prefix, w.Port)
		}
	case DriverSQLite:
		if w.Path == "" {
			return fmt.Errorf("%s.path is required", prefix)
		}
	default:
		return fmt.Errorf("%s.driver must be one of snowflake, postgres, sqlite, got %q", prefix, w.Driver)
	}
	return nil
}
