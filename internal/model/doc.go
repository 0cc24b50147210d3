// Package model defines shared data types used across the ticker loader.
//
// Conventions:
//   - Records are raw JSON objects from the reference tickers endpoint, kept as maps
//   - Rows are positional and aligned with Schema.Columns
//   - Column names are upper-cased field names
//   - DS is the local ingestion date formatted as YYYY-MM-DD
package model
