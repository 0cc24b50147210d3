package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/snowflakedb/gosnowflake"

	"github.com/rickgao/tickerload/internal/config"
)

// OpenSnowflake connects to Snowflake with client telemetry disabled.
func OpenSnowflake(ctx context.Context, cfg config.WarehouseConfig, logger *slog.Logger) (*SQLStore, error) {
	dsn, err := BuildSnowflakeDSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return nil, fmt.Errorf("open snowflake: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping snowflake: %w", err)
	}

	return NewSQLStore(db, Snowflake, cfg.MaxRowsPerStatement, logger), nil
}

// snowflakeConfig maps warehouse settings onto a gosnowflake config.
func snowflakeConfig(cfg config.WarehouseConfig) *gosnowflake.Config {
	telemetry := "false"
	return &gosnowflake.Config{
		Account:   cfg.Account,
		User:      cfg.User,
		Password:  cfg.Password,
		Warehouse: cfg.Warehouse,
		Database:  cfg.Database,
		Schema:    cfg.Schema,
		Role:      cfg.Role,
		Params: map[string]*string{
			"CLIENT_TELEMETRY_ENABLED": &telemetry,
		},
	}
}
