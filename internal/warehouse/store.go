package warehouse

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rickgao/tickerload/internal/config"
	"github.com/rickgao/tickerload/internal/model"
)

// Store is a warehouse connection scoped to one ingestion run.
type Store interface {
	// EnsureTable creates the table if it does not exist.
	EnsureTable(ctx context.Context, table string, schema model.Schema) error

	// BulkInsert appends rows and returns how many were inserted.
	// An empty rows slice performs no database write.
	BulkInsert(ctx context.Context, table string, schema model.Schema, rows []model.Row) (int64, error)

	Close() error
}

// Opener opens a new Store.
type Opener func(ctx context.Context) (Store, error)

// NewOpener returns an Opener for the configured driver.
func NewOpener(cfg config.WarehouseConfig, logger *slog.Logger) (Opener, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Driver {
	case config.DriverSnowflake:
		return func(ctx context.Context) (Store, error) {
			return OpenSnowflake(ctx, cfg, logger)
		}, nil
	case config.DriverPostgres:
		return func(ctx context.Context) (Store, error) {
			return OpenPostgres(ctx, cfg, logger)
		}, nil
	case config.DriverSQLite:
		return func(ctx context.Context) (Store, error) {
			return OpenSQLite(ctx, cfg.Path, cfg.MaxRowsPerStatement, logger)
		}, nil
	default:
		return nil, fmt.Errorf("unknown warehouse driver %q", cfg.Driver)
	}
}

func checkTable(table string) error {
	if !model.ValidTableName(table) {
		return fmt.Errorf("invalid table name %q", table)
	}
	return nil
}
