package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultBaseURL             = "https://api.polygon.io"
	DefaultAPITimeout          = 30 * time.Second
	DefaultPageLimit           = 1000
	DefaultPageDelay           = 15 * time.Second
	DefaultMarket              = "stocks"
	DefaultOrder               = "asc"
	DefaultSort                = "ticker"
	DefaultDailyRunTime        = "00:00"
	DefaultHeartbeatInterval   = 10 * time.Minute
	DefaultTick                = 1 * time.Second
	DefaultDriver              = DriverSnowflake
	DefaultTable               = "stock_tickers"
	DefaultDBPort              = 5432
	DefaultDBSSLMode           = "prefer"
	DefaultSQLitePath          = "tickers.db"
	DefaultMaxRowsPerStatement = 1000
	DefaultLogLevel            = "info"
	DefaultLogFormat           = "text"
)

func (c *Config) applyDefaults() {
	// API defaults
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.PageLimit == 0 {
		c.API.PageLimit = DefaultPageLimit
	}
	if c.API.PageDelay == nil {
		delay := DefaultPageDelay
		c.API.PageDelay = &delay
	}
	if c.API.Market == "" {
		c.API.Market = DefaultMarket
	}
	if c.API.Active == nil {
		active := true
		c.API.Active = &active
	}
	if c.API.Order == "" {
		c.API.Order = DefaultOrder
	}
	if c.API.Sort == "" {
		c.API.Sort = DefaultSort
	}

	// Schedule defaults
	if c.Schedule.DailyRunTime == "" {
		c.Schedule.DailyRunTime = DefaultDailyRunTime
	}
	if c.Schedule.HeartbeatInterval == 0 {
		c.Schedule.HeartbeatInterval = DefaultHeartbeatInterval
	}
	if c.Schedule.Tick == 0 {
		c.Schedule.Tick = DefaultTick
	}

	// Warehouse defaults
	if c.Warehouse.Driver == "" {
		c.Warehouse.Driver = DefaultDriver
	}
	if c.Warehouse.Table == "" {
		c.Warehouse.Table = DefaultTable
	}
	if c.Warehouse.MaxRowsPerStatement == 0 {
		c.Warehouse.MaxRowsPerStatement = DefaultMaxRowsPerStatement
	}
	switch c.Warehouse.Driver {
	case DriverPostgres:
		if c.Warehouse.Port == 0 {
			c.Warehouse.Port = DefaultDBPort
		}
		if c.Warehouse.SSLMode == "" {
			c.Warehouse.SSLMode = DefaultDBSSLMode
		}
	case DriverSQLite:
		if c.Warehouse.Path == "" {
			c.Warehouse.Path = DefaultSQLitePath
		}
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}
