// Package ingest turns uploaded spreadsheets into rectangular text tables
// ready for materialization.
//
// A sheet is read as a header row plus data rows. Data rows stop at the
// first fully blank row; everything below it is treated as footer noise
// and discarded. All cells stay strings here, numeric coercion happens at
// query time.
package ingest

import (
	"fmt"
	"strings"
)

// Source is one sheet's rectangular extraction. Every row has exactly
// len(Columns) cells.
type Source struct {
	Columns []string
	Rows    [][]string
}

// blankRow reports whether every cell is empty after trimming.
func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// TruncateAtBlankRow returns rows up to, not including, the first fully
// blank row. Rows that merely contain some blank cells survive.
func TruncateAtBlankRow(rows [][]string) [][]string {
	for i, row := range rows {
		if blankRow(row) {
			return rows[:i]
		}
	}
	return rows
}

// NewSource builds a Source from a raw header row and data rows.
//
// Data is truncated at the first blank row, every surviving row is padded
// or clipped to the header width, and blank header cells get positional
// column_N names so downstream identifier derivation never sees an empty
// name.
func NewSource(headers []string, rows [][]string) *Source {
	columns := make([]string, len(headers))
	for i, h := range headers {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		columns[i] = name
	}

	kept := TruncateAtBlankRow(rows)
	out := make([][]string, len(kept))
	for i, row := range kept {
		fitted := make([]string, len(columns))
		copy(fitted, row)
		out[i] = fitted
	}

	return &Source{Columns: columns, Rows: out}
}
