// Package ingest implements the ticker ingestion pipeline.
//
// One run:
//   - Fetching: request the first page, then follow next_url cursors one at a
//     time with a fixed pause between requests
//   - Normalizing: project every record onto the table's column list
//   - Loading: open the warehouse, create the table if absent, bulk insert,
//     close the warehouse
//
// Each run appends a full snapshot stamped with the run date. There is no
// retry and no partial-result recovery: the first error aborts the run.
package ingest
