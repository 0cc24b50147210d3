package ingest

import "github.com/rickgao/tickerload/internal/model"

// Normalize projects each record onto the schema's fields, in column order.
// Absent fields become nil and fields outside the schema are dropped.
func Normalize(records []model.TickerRecord, schema model.Schema) []model.Row {
	rows := make([]model.Row, len(records))
	for i, rec := range records {
		row := make(model.Row, len(schema.Columns))
		for j, col := range schema.Columns {
			row[j] = rec[col.Field]
		}
		rows[i] = row
	}
	return rows
}
