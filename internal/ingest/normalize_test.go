package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickgao/tickerload/internal/model"
)

func TestNormalize(t *testing.T) {
	schema := model.NewSchema([]string{"ticker", "cik", "ds"}, nil)
	records := []model.TickerRecord{
		{"ticker": "A", "cik": "0001090872", "ds": "2025-10-15", "delisted_utc": "2020-01-01"},
		{"ticker": "AA", "ds": "2025-10-15"},
		{},
	}

	rows := Normalize(records, schema)

	require.Len(t, rows, 3)
	assert.Equal(t, model.Row{"A", "0001090872", "2025-10-15"}, rows[0], "extra field dropped")
	assert.Equal(t, model.Row{"AA", nil, "2025-10-15"}, rows[1], "missing field is nil")
	assert.Equal(t, model.Row{nil, nil, nil}, rows[2])
}

func TestNormalize_TickerSchemaShape(t *testing.T) {
	schema := model.TickerSchema()
	rec := model.TickerRecord{
		"ticker":           "A",
		"name":             "Agilent Technologies Inc.",
		"market":           "stocks",
		"locale":           "us",
		"primary_exchange": "XNYS",
		"type":             "CS",
		"active":           true,
		"currency_name":    "usd",
		"cik":              "0001090872",
		"composite_figi":   "BBG000C2V3D6",
		"share_class_figi": "BBG001SCTQY4",
		"last_updated_utc": "2025-10-15T06:05:51.037116752Z",
		"ds":               "2025-10-15",
	}

	rows := Normalize([]model.TickerRecord{rec}, schema)

	require.Len(t, rows, 1)
	require.Len(t, rows[0], len(schema.Columns))
	for i, col := range schema.Columns {
		assert.Equal(t, rec[col.Field], rows[0][i], col.Field)
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	rec := model.TickerRecord{"ticker": "A", "extra": 1.0}
	Normalize([]model.TickerRecord{rec}, model.TickerSchema())

	assert.Equal(t, model.TickerRecord{"ticker": "A", "extra": 1.0}, rec)
}

func TestNormalize_Empty(t *testing.T) {
	assert.Empty(t, Normalize(nil, model.TickerSchema()))
}
