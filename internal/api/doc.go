// Package api provides the Polygon REST client for the reference tickers endpoint.
//
// REST endpoint:
//   - Production: https://api.polygon.io/v3/reference/tickers
//
// Authentication is the apiKey query parameter. Listing responses carry a
// next_url cursor; the client follows it verbatim and re-appends the key,
// since Polygon strips it from the cursor.
package api
