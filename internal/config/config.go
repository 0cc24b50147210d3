package config

import "time"

// Config is the root configuration of the loader.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Schedule  ScheduleConfig  `yaml:"schedule"`
	Warehouse WarehouseConfig `yaml:"warehouse"`
	Log       LogConfig       `yaml:"log"`
}

// APIConfig holds Polygon API settings.
type APIConfig struct {
	BaseURL   string         `yaml:"base_url"`
	APIKey    string         `yaml:"api_key"`
	Timeout   time.Duration  `yaml:"timeout"`
	PageLimit int            `yaml:"page_limit"`
	PageDelay *time.Duration `yaml:"page_delay"` // Pause between page requests (free tier: 5 req/min); 0 disables

	// Listing filters
	Market string `yaml:"market"`
	Active *bool  `yaml:"active"`
	Order  string `yaml:"order"`
	Sort   string `yaml:"sort"`
}

// ScheduleConfig holds scheduler settings.
type ScheduleConfig struct {
	DailyRunTime      string        `yaml:"daily_run_time"` // HH:MM, local time
	Interval          time.Duration `yaml:"interval"`       // 0 disables the recurring run
	HeartbeatInterval time.Duration `yaml:"heartbeat_interval"`
	Tick              time.Duration `yaml:"tick"`
	RunOnStart        *bool         `yaml:"run_on_start"`
}

// WarehouseConfig holds the target warehouse connection and table.
type WarehouseConfig struct {
	Driver string `yaml:"driver"` // snowflake, postgres or sqlite
	Table  string `yaml:"table"`

	User      string `yaml:"user"`
	Password  string `yaml:"password"`
	Account   string `yaml:"account"`
	Warehouse string `yaml:"warehouse"`
	Database  string `yaml:"database"`
	Schema    string `yaml:"schema"`
	Role      string `yaml:"role"`

	// PostgreSQL only
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	SSLMode string `yaml:"ssl_mode"`

	// SQLite only
	Path string `yaml:"path"`

	MaxRowsPerStatement int `yaml:"max_rows_per_statement"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Warehouse drivers.
const (
	DriverSnowflake = "snowflake"
	DriverPostgres  = "postgres"
	DriverSQLite    = "sqlite"
)

// PageDelayOrDefault returns the configured page delay, keeping an explicit 0.
func (a APIConfig) PageDelayOrDefault() time.Duration {
	if a.PageDelay == nil {
		return DefaultPageDelay
	}
	return *a.PageDelay
}

// RunOnStartEnabled reports whether ingestion runs once before the scheduler loop.
func (s ScheduleConfig) RunOnStartEnabled() bool {
	return s.RunOnStart == nil || *s.RunOnStart
}
