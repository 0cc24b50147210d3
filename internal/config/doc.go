// Package config handles configuration loading for the ticker loader.
//
// Sources, lowest precedence first:
//   - built-in defaults
//   - an optional YAML file, with ${VAR} environment variable interpolation
//   - a .env file in the working directory, if present
//   - process environment variables (POLYGON_API_KEY, DAILY_RUN_TIME, SNOWFLAKE_*, ...)
package config
