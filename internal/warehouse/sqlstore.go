package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/rickgao/tickerload/internal/model"
)

// SQLStore is a Store over database/sql, used by the Snowflake and SQLite
// backends. Rows are sent as multi-row INSERT statements of at most maxRows
// rows each, without an explicit transaction. A full listing page fits one
// statement at the default bound; maxRows caps bind parameters per statement.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
	maxRows int
	logger  *slog.Logger
}

// NewSQLStore wraps an open database handle.
func NewSQLStore(db *sql.DB, dialect Dialect, maxRows int, logger *slog.Logger) *SQLStore {
	if logger == nil {
		logger = slog.Default()
	}
	if maxRows < 1 {
		maxRows = 1
	}
	return &SQLStore{
		db:      db,
		dialect: dialect,
		maxRows: maxRows,
		logger:  logger,
	}
}

// EnsureTable creates the table if it does not exist.
func (s *SQLStore) EnsureTable(ctx context.Context, table string, schema model.Schema) error {
	if err := checkTable(table); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, s.dialect.CreateTableSQL(table, schema)); err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}

	s.logger.Debug("table ensured", "table", table, "dialect", s.dialect.Name)
	return nil
}

// BulkInsert appends rows to the table.
func (s *SQLStore) BulkInsert(ctx context.Context, table string, schema model.Schema, rows []model.Row) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if err := checkTable(table); err != nil {
		return 0, err
	}

	start := time.Now()
	var inserted int64
	statements := 0

	for lo := 0; lo < len(rows); lo += s.maxRows {
		hi := min(lo+s.maxRows, len(rows))
		chunk := rows[lo:hi]

		args := make([]any, 0, len(chunk)*len(schema.Columns))
		for i, row := range chunk {
			bound, err := schema.BindRow(row)
			if err != nil {
				return inserted, fmt.Errorf("row %d: %w", lo+i, err)
			}
			args = append(args, bound...)
		}

		res, err := s.db.ExecContext(ctx, s.dialect.InsertSQL(table, schema, len(chunk)), args...)
		if err != nil {
			return inserted, fmt.Errorf("insert into %s: %w", table, err)
		}

		statements++

		n, err := res.RowsAffected()
		if err != nil {
			n = int64(len(chunk))
		}
		inserted += n
	}

	s.logger.Debug("rows inserted",
		"table", table,
		"count", inserted,
		"statements", statements,
		"duration", time.Since(start),
	)

	return inserted, nil
}

// Close closes the database handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
