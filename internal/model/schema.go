package model

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ColumnType is the logical type of a warehouse column.
type ColumnType int

const (
	String ColumnType = iota
	Boolean
	Timestamp
)

func (t ColumnType) String() string {
	switch t {
	case Boolean:
		return "boolean"
	case Timestamp:
		return "timestamp"
	default:
		return "string"
	}
}

// Column maps a record field to a warehouse column.
type Column struct {
	Field string
	Type  ColumnType
}

// Name returns the column name as created in the warehouse.
func (c Column) Name() string {
	return strings.ToUpper(c.Field)
}

// Bind converts a normalized value into a driver argument for this column.
//
// nil stays nil. Timestamp columns accept RFC 3339 strings (with or without
// fractional seconds) and time.Time. String columns format other scalars;
// nested objects and arrays are stored as JSON text.
func (c Column) Bind(v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch c.Type {
	case Timestamp:
		switch tv := v.(type) {
		case time.Time:
			return tv.UTC(), nil
		case string:
			if tv == "" {
				return nil, nil
			}
			ts, err := time.Parse(time.RFC3339Nano, tv)
			if err != nil {
				return nil, fmt.Errorf("column %s: parse timestamp %q: %w", c.Name(), tv, err)
			}
			return ts.UTC(), nil
		default:
			return nil, fmt.Errorf("column %s: unsupported timestamp value %T", c.Name(), v)
		}

	case Boolean:
		switch bv := v.(type) {
		case bool:
			return bv, nil
		case string:
			b, err := strconv.ParseBool(bv)
			if err != nil {
				return nil, fmt.Errorf("column %s: parse boolean %q: %w", c.Name(), bv, err)
			}
			return b, nil
		default:
			return nil, fmt.Errorf("column %s: unsupported boolean value %T", c.Name(), v)
		}

	default:
		switch sv := v.(type) {
		case string:
			return sv, nil
		case float64:
			return strconv.FormatFloat(sv, 'f', -1, 64), nil
		case bool:
			return strconv.FormatBool(sv), nil
		case map[string]any, []any:
			b, err := json.Marshal(sv)
			if err != nil {
				return nil, fmt.Errorf("column %s: encode %T: %w", c.Name(), sv, err)
			}
			return string(b), nil
		default:
			return fmt.Sprint(sv), nil
		}
	}
}

// Schema is the fixed, ordered column set of a target table.
type Schema struct {
	Columns []Column
}

// NewSchema builds a schema from field names in order. Fields missing from
// types default to String.
func NewSchema(fields []string, types map[string]ColumnType) Schema {
	cols := make([]Column, len(fields))
	for i, f := range fields {
		cols[i] = Column{Field: f, Type: types[f]}
	}
	return Schema{Columns: cols}
}

// Fields returns the field names in column order.
func (s Schema) Fields() []string {
	fields := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		fields[i] = c.Field
	}
	return fields
}

// ColumnNames returns the upper-cased column names in order.
func (s Schema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name()
	}
	return names
}

// BindRow converts every value of row into a driver argument.
func (s Schema) BindRow(row Row) ([]any, error) {
	if len(row) != len(s.Columns) {
		return nil, fmt.Errorf("row has %d values, schema has %d columns", len(row), len(s.Columns))
	}
	args := make([]any, len(row))
	for i, c := range s.Columns {
		v, err := c.Bind(row[i])
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// TickerFields is the canonical, ordered field list of the tickers table.
var TickerFields = []string{
	"ticker",
	"name",
	"market",
	"locale",
	"primary_exchange",
	"type",
	FieldActive,
	"currency_name",
	FieldCIK,
	"composite_figi",
	"share_class_figi",
	FieldLastUpdatedUTC,
	FieldDS,
}

// TickerTypes overrides the default String type for the tickers table.
var TickerTypes = map[string]ColumnType{
	FieldActive:         Boolean,
	FieldLastUpdatedUTC: Timestamp,
}

// TickerSchema returns the schema of the tickers table.
func TickerSchema() Schema {
	return NewSchema(TickerFields, TickerTypes)
}

// tableNamePattern matches table, schema.table and db.schema.table.
var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*(\.[A-Za-z_][A-Za-z0-9_$]*){0,2}$`)

// ValidTableName reports whether name is safe to interpolate as a table
// reference: an unquoted identifier, optionally schema- or db-qualified.
func ValidTableName(name string) bool {
	return tableNamePattern.MatchString(name)
}
