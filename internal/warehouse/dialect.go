package warehouse

import (
	"strconv"
	"strings"

	"github.com/rickgao/tickerload/internal/model"
)

// Dialect holds the SQL differences between backends.
type Dialect struct {
	Name  string
	Types map[model.ColumnType]string

	// Placeholder returns the bind marker for the n-th (1-based) argument.
	Placeholder func(n int) string
}

var (
	Snowflake = Dialect{
		Name: "snowflake",
		Types: map[model.ColumnType]string{
			model.String:    "VARCHAR",
			model.Boolean:   "BOOLEAN",
			model.Timestamp: "TIMESTAMP_NTZ",
		},
		Placeholder: questionMark,
	}

	Postgres = Dialect{
		Name: "postgres",
		Types: map[model.ColumnType]string{
			model.String:    "TEXT",
			model.Boolean:   "BOOLEAN",
			model.Timestamp: "TIMESTAMP",
		},
		Placeholder: dollarN,
	}

	SQLite = Dialect{
		Name: "sqlite",
		Types: map[model.ColumnType]string{
			model.String:    "TEXT",
			model.Boolean:   "BOOLEAN",
			model.Timestamp: "TIMESTAMP",
		},
		Placeholder: questionMark,
	}
)

func questionMark(int) string { return "?" }

func dollarN(n int) string { return "$" + strconv.Itoa(n) }

// ColumnType returns the SQL type for t, falling back to the string type.
func (d Dialect) ColumnType(t model.ColumnType) string {
	if s, ok := d.Types[t]; ok {
		return s
	}
	return d.Types[model.String]
}

// CreateTableSQL returns the idempotent DDL for the table.
func (d Dialect) CreateTableSQL(table string, schema model.Schema) string {
	parts := make([]string, len(schema.Columns))
	for i, c := range schema.Columns {
		parts[i] = quoteIdent(c.Name()) + " " + d.ColumnType(c.Type)
	}
	return "CREATE TABLE IF NOT EXISTS " + table + " ( " + strings.Join(parts, ", ") + " )"
}

// InsertSQL returns a parameterized INSERT with one VALUES tuple per row.
func (d Dialect) InsertSQL(table string, schema model.Schema, rows int) string {
	names := schema.ColumnNames()
	cols := make([]string, len(names))
	for i, n := range names {
		cols[i] = quoteIdent(n)
	}

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	b.WriteString(" ( ")
	b.WriteString(strings.Join(cols, ", "))
	b.WriteString(" ) VALUES ")

	n := 1
	for r := 0; r < rows; r++ {
		if r > 0 {
			b.WriteString(", ")
		}
		b.WriteString("( ")
		for c := range cols {
			if c > 0 {
				b.WriteString(", ")
			}
			b.WriteString(d.Placeholder(n))
			n++
		}
		b.WriteString(" )")
	}

	return b.String()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
