package dataset

// query.go answers read requests over materialized datasets. Identifiers
// come only from the catalog and are quoted; every value travels as a
// query parameter.

import (
	"context"
	"fmt"
	"strings"

	"sheetsight/internal/stats"
)

// DefaultPageSize is used when a row query gives no limit.
const DefaultPageSize = 50

// MaxPageSize caps the per-page row count.
const MaxPageSize = 500

// DatasetInfo is one catalog entry for listing.
type DatasetInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Columns     int    `json:"columns"`
	RowCount    int64  `json:"row_count"`
}

// ListDatasets returns all registered datasets sorted by name.
func (s *Service) ListDatasets() []DatasetInfo {
	schemas := s.catalog.All()
	out := make([]DatasetInfo, len(schemas))
	for i, sc := range schemas {
		out[i] = DatasetInfo{
			Name:        sc.Table,
			DisplayName: sc.DisplayName(),
			Columns:     len(sc.Columns),
			RowCount:    sc.RowCount,
		}
	}
	return out
}

// Columns returns a dataset's column specs in schema order.
func (s *Service) Columns(name string) ([]ColumnSpec, error) {
	schema, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	return schema.Columns, nil
}

// Row is one dataset row keyed by safe column name, plus its id.
type Row map[string]interface{}

// RowPage contains one page of id-ordered rows.
type RowPage struct {
	Rows       []Row `json:"rows"`
	TotalCount int64 `json:"total_count"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// ownerClause appends an owner filter when multi-tenant mode is on.
// Returns the updated conditions, args, and next arg index.
func (s *Service) ownerClause(conditions []string, args []interface{}, argIdx int, ownerID string) ([]string, []interface{}, int) {
	if !s.multiTenant {
		return conditions, args, argIdx
	}
	conditions = append(conditions, fmt.Sprintf("owner_id = $%d", argIdx))
	args = append(args, ownerID)
	return conditions, args, argIdx + 1
}

// Rows fetches one page of a dataset, ordered by id for stable
// pagination. A non-empty searchTerm matches case-insensitively against
// every column.
func (s *Service) Rows(ctx context.Context, name string, page, limit int, searchTerm, ownerID string) (*RowPage, error) {
	schema, err := s.resolve(name)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	var conditions []string
	var args []interface{}
	argIdx := 1
	conditions, args, argIdx = s.ownerClause(conditions, args, argIdx, ownerID)

	if searchTerm != "" {
		parts := make([]string, len(schema.Columns))
		for i, col := range schema.Columns {
			parts[i] = fmt.Sprintf("%s ILIKE $%d", quoteIdentifier(col.Safe), argIdx)
		}
		conditions = append(conditions, "("+strings.Join(parts, " OR ")+")")
		args = append(args, "%"+searchTerm+"%")
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", quoteIdentifier(schema.Table), whereClause)
	var totalCount int64
	if err := s.pool.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, fmt.Errorf("count rows: %w", err)
	}

	if page < 1 {
		page = 1
	}
	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	offset := (page - 1) * limit

	quotedCols := append([]string{quoteIdentifier("id")}, quoteColumns(schema.SafeColumns())...)
	query := fmt.Sprintf(
		"SELECT %s FROM %s%s ORDER BY id LIMIT $%d OFFSET $%d",
		strings.Join(quotedCols, ", "),
		quoteIdentifier(schema.Table),
		whereClause,
		argIdx,
		argIdx+1,
	)
	args = append(args, limit, offset)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query rows: %w", err)
	}
	defer rows.Close()

	var resultRows []Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read row values: %w", err)
		}

		row := make(Row, len(schema.Columns)+1)
		row["id"] = values[0]
		for i, col := range schema.Columns {
			row[col.Safe] = values[i+1]
		}
		resultRows = append(resultRows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return &RowPage{
		Rows:       resultRows,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   limit,
		TotalPages: totalPages,
	}, nil
}

// columnValues fetches every value of one column in id order. With
// nonEmpty, empty cells are filtered in the query; callers reading
// several columns row-aligned must not set it.
func (s *Service) columnValues(ctx context.Context, schema *Schema, column, ownerID string, nonEmpty bool) ([]string, error) {
	safe, err := schema.Resolve(column)
	if err != nil {
		return nil, err
	}

	var conditions []string
	var args []interface{}
	conditions, args, _ = s.ownerClause(conditions, args, 1, ownerID)
	if nonEmpty {
		conditions = append(conditions, quoteIdentifier(safe)+" <> ''")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY id",
		quoteIdentifier(safe), quoteIdentifier(schema.Table), whereClause)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query column %s: %w", safe, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan value: %w", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return values, nil
}

// pairValues fetches two aligned columns in id order.
func (s *Service) pairValues(ctx context.Context, schema *Schema, keyColumn, valueColumn, ownerID string) ([]stats.Pair, error) {
	safeKey, err := schema.Resolve(keyColumn)
	if err != nil {
		return nil, err
	}
	safeValue, err := schema.Resolve(valueColumn)
	if err != nil {
		return nil, err
	}

	var conditions []string
	var args []interface{}
	conditions, args, _ = s.ownerClause(conditions, args, 1, ownerID)

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf("SELECT %s, %s FROM %s%s ORDER BY id",
		quoteIdentifier(safeKey), quoteIdentifier(safeValue),
		quoteIdentifier(schema.Table), whereClause)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query columns %s, %s: %w", safeKey, safeValue, err)
	}
	defer rows.Close()

	var pairs []stats.Pair
	for rows.Next() {
		var p stats.Pair
		if err := rows.Scan(&p.Key, &p.Value); err != nil {
			return nil, fmt.Errorf("scan pair: %w", err)
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return pairs, nil
}

// multiColumnValues fetches several aligned columns in id order, the
// first column first in every returned row.
func (s *Service) multiColumnValues(ctx context.Context, schema *Schema, columns []string, ownerID string) ([][]string, error) {
	safeCols := make([]string, len(columns))
	for i, col := range columns {
		safe, err := schema.Resolve(col)
		if err != nil {
			return nil, err
		}
		safeCols[i] = safe
	}

	var conditions []string
	var args []interface{}
	conditions, args, _ = s.ownerClause(conditions, args, 1, ownerID)

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY id",
		strings.Join(quoteColumns(safeCols), ", "),
		quoteIdentifier(schema.Table), whereClause)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query columns: %w", err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		cells := make([]string, len(safeCols))
		dest := make([]interface{}, len(safeCols))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}
