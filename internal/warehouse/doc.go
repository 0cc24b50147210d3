// Package warehouse loads normalized ticker rows into the target table.
//
// Backends:
//   - Snowflake: database/sql with gosnowflake (default)
//   - PostgreSQL: pgx connection pool, rows sent as one pgx.Batch
//   - SQLite: database/sql with modernc.org/sqlite, for local runs and tests
//
// Tables are append-only and created with CREATE TABLE IF NOT EXISTS; there
// is no migration. A Store is opened per ingestion run and closed afterwards.
package warehouse
