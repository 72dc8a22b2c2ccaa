// Package dataset materializes ingested sheets as Postgres tables and
// answers queries and aggregations over them.
//
// Every dataset is one table named with the TablePrefix. All data columns
// are text; numeric meaning is applied at query time. The schema catalog
// is an explicit in-memory map, populated by introspecting the database at
// startup and updated on every ingest and drop.
package dataset

import (
	"fmt"
	"strings"
	"time"
)

// TablePrefix marks tables owned by this application. Introspection only
// picks up tables carrying it.
const TablePrefix = "sheet_"

// reservedColumns are created by the materializer itself and never appear
// in a dataset's logical schema.
var reservedColumns = map[string]bool{
	"id":       true,
	"owner_id": true,
}

// SafeIdentifier derives a storage-safe column identifier from an
// original column name: spaces and hyphens become underscores,
// parentheses are stripped. The mapping is deterministic but not
// collision-free; two distinct names can collide.
//
//	"大一 統計1" -> "大一_統計1"
//	"A(B)"      -> "AB"
func SafeIdentifier(name string) string {
	r := strings.NewReplacer(
		" ", "_",
		"-", "_",
		"(", "",
		")", "",
	)
	return r.Replace(strings.TrimSpace(name))
}

// namePart sanitizes one component of a table name: lower-cased safe
// identifier with dots folded to underscores so filenames survive.
func namePart(part string) string {
	p := SafeIdentifier(part)
	p = strings.ReplaceAll(p, ".", "_")
	return strings.ToLower(p)
}

// DeriveTableName builds a dataset's table name from its identifying
// parts (owner id, filename, sheet name, timestamp), prefixed and joined
// with underscores. Empty parts are skipped. Names longer than Postgres's
// 63-byte identifier limit are truncated by the server; the derivation
// itself does not guard against that.
func DeriveTableName(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if p := namePart(part); p != "" {
			kept = append(kept, p)
		}
	}
	return TablePrefix + strings.Join(kept, "_")
}

// TimestampPart formats an ingestion time for use in DeriveTableName.
func TimestampPart(t time.Time) string {
	return t.UTC().Format("20060102150405")
}

// ColumnSpec maps one original column name to its safe identifier.
type ColumnSpec struct {
	Display string `json:"display"`
	Safe    string `json:"safe"`
}

// Schema describes one materialized dataset.
type Schema struct {
	Table    string       `json:"table"`
	Columns  []ColumnSpec `json:"columns"`
	RowCount int64        `json:"row_count"`
}

// NewSchema derives a Schema from a table name and original column names.
func NewSchema(table string, displayColumns []string) *Schema {
	cols := make([]ColumnSpec, len(displayColumns))
	for i, name := range displayColumns {
		cols[i] = ColumnSpec{Display: name, Safe: SafeIdentifier(name)}
	}
	return &Schema{Table: table, Columns: cols}
}

// DisplayName is the dataset name shown to users: the table name without
// the prefix.
func (s *Schema) DisplayName() string {
	return strings.TrimPrefix(s.Table, TablePrefix)
}

// SafeColumns lists the safe identifiers in schema order.
func (s *Schema) SafeColumns() []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Safe
	}
	return out
}

// Resolve maps a requested column name, display or safe form, to its safe
// identifier.
func (s *Schema) Resolve(column string) (string, error) {
	for _, c := range s.Columns {
		if c.Display == column || c.Safe == column {
			return c.Safe, nil
		}
	}
	return "", fmt.Errorf("%w: %q in dataset %s", ErrUnknownColumn, column, s.DisplayName())
}

// quoteIdentifier quotes a SQL identifier to prevent injection.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// quoteColumns quotes each column name in the slice.
func quoteColumns(cols []string) []string {
	quoted := make([]string, len(cols))
	for i, col := range cols {
		quoted[i] = quoteIdentifier(col)
	}
	return quoted
}
