package dataset

// mutations.go covers per-row edits after ingestion. Mutations are
// owner-scoped in multi-tenant mode; a mutation that matches no row
// reports ErrRowNotFound rather than silently succeeding.

import (
	"context"
	"fmt"
	"strings"
)

// InsertRow appends one row and returns its id. Columns missing from
// values get the empty string; unknown column names fail.
func (s *Service) InsertRow(ctx context.Context, name string, values map[string]string, ownerID string) (int64, error) {
	schema, err := s.resolve(name)
	if err != nil {
		return 0, err
	}

	for col := range values {
		if _, err := schema.Resolve(col); err != nil {
			return 0, err
		}
	}

	var cols []string
	var placeholders []string
	var args []interface{}
	argIdx := 1

	if s.multiTenant {
		cols = append(cols, quoteIdentifier("owner_id"))
		placeholders = append(placeholders, fmt.Sprintf("$%d", argIdx))
		args = append(args, ownerID)
		argIdx++
	}
	for _, spec := range schema.Columns {
		v := values[spec.Safe]
		if v == "" {
			v = values[spec.Display]
		}
		cols = append(cols, quoteIdentifier(spec.Safe))
		placeholders = append(placeholders, fmt.Sprintf("$%d", argIdx))
		args = append(args, v)
		argIdx++
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		quoteIdentifier(schema.Table),
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
	)

	var id int64
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert row: %w", err)
	}

	s.bumpRowCount(schema, 1)
	s.recordAudit(ctx, AuditRowInsert, schema.Table, ownerID, 1, fmt.Sprintf("id %d", id))
	return id, nil
}

// UpdateRow sets the given columns of one row by id.
func (s *Service) UpdateRow(ctx context.Context, name string, id int64, values map[string]string, ownerID string) error {
	schema, err := s.resolve(name)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return fmt.Errorf("no columns to update")
	}

	var sets []string
	var args []interface{}
	argIdx := 1
	for _, spec := range schema.Columns {
		v, ok := values[spec.Safe]
		if !ok {
			v, ok = values[spec.Display]
		}
		if !ok {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", quoteIdentifier(spec.Safe), argIdx))
		args = append(args, v)
		argIdx++
	}
	if len(sets) != len(values) {
		for col := range values {
			if _, err := schema.Resolve(col); err != nil {
				return err
			}
		}
	}

	conditions := []string{fmt.Sprintf("id = $%d", argIdx)}
	args = append(args, id)
	argIdx++
	conditions, args, _ = s.ownerClause(conditions, args, argIdx, ownerID)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s",
		quoteIdentifier(schema.Table),
		strings.Join(sets, ", "),
		strings.Join(conditions, " AND "),
	)

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update row: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %d in %s", ErrRowNotFound, id, schema.DisplayName())
	}

	s.recordAudit(ctx, AuditRowUpdate, schema.Table, ownerID, tag.RowsAffected(), fmt.Sprintf("id %d", id))
	return nil
}

// DeleteRow removes one row by id.
func (s *Service) DeleteRow(ctx context.Context, name string, id int64, ownerID string) error {
	schema, err := s.resolve(name)
	if err != nil {
		return err
	}

	conditions := []string{"id = $1"}
	args := []interface{}{id}
	conditions, args, _ = s.ownerClause(conditions, args, 2, ownerID)

	query := fmt.Sprintf("DELETE FROM %s WHERE %s",
		quoteIdentifier(schema.Table),
		strings.Join(conditions, " AND "),
	)

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete row: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %d in %s", ErrRowNotFound, id, schema.DisplayName())
	}

	s.bumpRowCount(schema, -1)
	s.recordAudit(ctx, AuditRowDelete, schema.Table, ownerID, 1, fmt.Sprintf("id %d", id))
	return nil
}

// bumpRowCount keeps the catalog's cached row count roughly current.
// Registers a copy so concurrent readers never see a torn schema.
func (s *Service) bumpRowCount(schema *Schema, delta int64) {
	updated := *schema
	updated.RowCount += delta
	s.catalog.Put(&updated)
}
