package dataset

// catalog.go holds the explicit in-memory dataset catalog. It is the only
// source of truth for which datasets exist between requests; the database
// is introspected once at startup and the map is updated transactionally
// with every ingest and drop.

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Catalog maps table names to their schemas. Safe for concurrent use.
type Catalog struct {
	mu       sync.RWMutex
	datasets map[string]*Schema
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{datasets: make(map[string]*Schema)}
}

// Load replaces the catalog's contents with the dataset tables found in
// the database. Column display names are not stored server-side, so
// introspected schemas use the safe identifier as the display name too.
func (c *Catalog) Load(ctx context.Context, pool *pgxpool.Pool) error {
	const query = `
		SELECT table_name, column_name
		FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name LIKE $1
		ORDER BY table_name, ordinal_position`

	rows, err := pool.Query(ctx, query, strings.ReplaceAll(TablePrefix, "_", `\_`)+"%")
	if err != nil {
		return fmt.Errorf("introspect datasets: %w", err)
	}
	defer rows.Close()

	loaded := make(map[string]*Schema)
	for rows.Next() {
		var table, column string
		if err := rows.Scan(&table, &column); err != nil {
			return fmt.Errorf("scan column: %w", err)
		}
		if reservedColumns[column] {
			continue
		}
		s := loaded[table]
		if s == nil {
			s = &Schema{Table: table}
			loaded[table] = s
		}
		s.Columns = append(s.Columns, ColumnSpec{Display: column, Safe: column})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("introspect datasets: %w", err)
	}

	for table, s := range loaded {
		var count int64
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteIdentifier(table))
		if err := pool.QueryRow(ctx, countQuery).Scan(&count); err != nil {
			return fmt.Errorf("count %s: %w", table, err)
		}
		s.RowCount = count
	}

	c.mu.Lock()
	c.datasets = loaded
	c.mu.Unlock()
	return nil
}

// Get returns the schema for a table name.
func (c *Catalog) Get(table string) (*Schema, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.datasets[table]
	return s, ok
}

// Put registers or replaces a schema.
func (c *Catalog) Put(s *Schema) {
	c.mu.Lock()
	c.datasets[s.Table] = s
	c.mu.Unlock()
}

// Delete removes a schema.
func (c *Catalog) Delete(table string) {
	c.mu.Lock()
	delete(c.datasets, table)
	c.mu.Unlock()
}

// All returns every schema sorted by table name.
func (c *Catalog) All() []*Schema {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*Schema, 0, len(c.datasets))
	for _, s := range c.datasets {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Table < out[j].Table })
	return out
}

// Len reports the number of registered datasets.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.datasets)
}
