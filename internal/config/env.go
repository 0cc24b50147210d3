package config

import (
	"fmt"
	"strconv"
	"time"
)

// Environment variables read on top of the config file.
const (
	EnvAPIKey       = "POLYGON_API_KEY"
	EnvBaseURL      = "POLYGON_BASE_URL"
	EnvPageDelay    = "POLYGON_PAGE_DELAY"
	EnvDailyRunTime = "DAILY_RUN_TIME"
	EnvRunInterval  = "RUN_INTERVAL"
	EnvDriver       = "WAREHOUSE_DRIVER"
	EnvTable        = "SNOWFLAKE_TABLE"
	EnvUser         = "SNOWFLAKE_USER"
	EnvPassword     = "SNOWFLAKE_PASSWORD"
	EnvAccount      = "SNOWFLAKE_ACCOUNT"
	EnvWarehouse    = "SNOWFLAKE_WAREHOUSE"
	EnvDatabase     = "SNOWFLAKE_DATABASE"
	EnvSchema       = "SNOWFLAKE_SCHEMA"
	EnvRole         = "SNOWFLAKE_ROLE"
	EnvPGHost       = "PGHOST"
	EnvPGPort       = "PGPORT"
	EnvPGSSLMode    = "PGSSLMODE"
	EnvSQLitePath   = "SQLITE_PATH"
	EnvLogLevel     = "LOG_LEVEL"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// applyEnv overrides config values with non-empty environment variables.
func (c *Config) applyEnv(lookup LookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
		return nil
	}

	str(EnvAPIKey, &c.API.APIKey)
	str(EnvBaseURL, &c.API.BaseURL)
	if v, ok := lookup(EnvPageDelay); ok && v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPageDelay, err)
		}
		c.API.PageDelay = &d
	}

	str(EnvDailyRunTime, &c.Schedule.DailyRunTime)
	if err := dur(EnvRunInterval, &c.Schedule.Interval); err != nil {
		return err
	}

	str(EnvDriver, &c.Warehouse.Driver)
	str(EnvTable, &c.Warehouse.Table)
	str(EnvUser, &c.Warehouse.User)
	str(EnvPassword, &c.Warehouse.Password)
	str(EnvAccount, &c.Warehouse.Account)
	str(EnvWarehouse, &c.Warehouse.Warehouse)
	str(EnvDatabase, &c.Warehouse.Database)
	str(EnvSchema, &c.Warehouse.Schema)
	str(EnvRole, &c.Warehouse.Role)
	str(EnvPGHost, &c.Warehouse.Host)
	str(EnvPGSSLMode, &c.Warehouse.SSLMode)
	str(EnvSQLitePath, &c.Warehouse.Path)
	if v, ok := lookup(EnvPGPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid port %q", EnvPGPort, v)
		}
		c.Warehouse.Port = port
	}

	str(EnvLogLevel, &c.Log.Level)

	return nil
}

// parseDuration accepts Go durations ("15s", "1h30m") and bare integers,
// which are read as seconds.
func parseDuration(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", v)
	}
	return d, nil
}
