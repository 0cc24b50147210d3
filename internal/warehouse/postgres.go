package warehouse

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rickgao/tickerload/internal/config"
	"github.com/rickgao/tickerload/internal/model"
)

// PostgresStore is a Store backed by a pgx connection pool.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// OpenPostgres creates a single-connection pool and verifies it.
func OpenPostgres(ctx context.Context, cfg config.WarehouseConfig, logger *slog.Logger) (*PostgresStore, error) {
	pool, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewPostgresStore(pool, logger), nil
}

// NewPostgresStore wraps an existing pool.
func NewPostgresStore(pool *pgxpool.Pool, logger *slog.Logger) *PostgresStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresStore{pool: pool, logger: logger}
}

// Connect creates a connection pool for one ingestion run.
func Connect(ctx context.Context, cfg config.WarehouseConfig) (*pgxpool.Pool, error) {
	connStr := BuildConnString(cfg)

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	poolCfg.MinConns = 0
	poolCfg.MaxConns = 1
	if cfg.Schema != "" {
		poolCfg.ConnConfig.RuntimeParams["search_path"] = cfg.Schema
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// EnsureTable creates the table if it does not exist.
func (s *PostgresStore) EnsureTable(ctx context.Context, table string, schema model.Schema) error {
	if err := checkTable(table); err != nil {
		return err
	}

	if _, err := s.pool.Exec(ctx, Postgres.CreateTableSQL(table, schema)); err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}
	return nil
}

// BulkInsert queues one INSERT per row and sends them as a single pgx.Batch.
func (s *PostgresStore) BulkInsert(ctx context.Context, table string, schema model.Schema, rows []model.Row) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if err := checkTable(table); err != nil {
		return 0, err
	}

	start := time.Now()
	query := Postgres.InsertSQL(table, schema, 1)

	batch := &pgx.Batch{}
	for i, row := range rows {
		args, err := schema.BindRow(row)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i, err)
		}
		batch.Queue(query, args...)
	}

	results := s.pool.SendBatch(ctx, batch)

	var inserted int64
	for range rows {
		ct, err := results.Exec()
		if err != nil {
			results.Close()
			return inserted, fmt.Errorf("insert into %s: %w", table, err)
		}
		inserted += ct.RowsAffected()
	}
	if err := results.Close(); err != nil {
		return inserted, fmt.Errorf("close batch: %w", err)
	}

	s.logger.Debug("rows inserted",
		"table", table,
		"count", inserted,
		"duration", time.Since(start),
	)

	return inserted, nil
}

// Close closes the pool.
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
