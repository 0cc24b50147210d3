package model

// Field names read or injected by the loader.
const (
	FieldTicker         = "ticker"
	FieldActive         = "active"
	FieldCIK            = "cik"
	FieldLastUpdatedUTC = "last_updated_utc"
	FieldDS             = "ds"
)

// DSLayout is the format of the DS (ingestion date) field.
const DSLayout = "2006-01-02"

// TickerRecord is one instrument reference record as returned by the API.
//
// The source field set is sparse and may grow over time: any key can be
// missing, and unknown keys are carried along until normalization drops them.
// Values are whatever encoding/json produced (string, bool, float64, nil,
// nested maps or slices).
type TickerRecord map[string]any

// Ticker returns the ticker symbol, or "" if absent or not a string.
func (r TickerRecord) Ticker() string {
	s, _ := r[FieldTicker].(string)
	return s
}

// Stamp sets the DS field on the record.
func (r TickerRecord) Stamp(ds string) {
	r[FieldDS] = ds
}

// Row is a normalized record. Values are positional and aligned with the
// columns of the Schema that produced them; nil means NULL.
type Row []any
