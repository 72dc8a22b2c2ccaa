package dataset

// materialize.go implements the destructive ingest path.
//
// Re-ingestion under the same derived name replaces the dataset wholesale.
// To keep concurrent readers from observing a missing or half-populated
// table, the replacement is built under a temporary name and swapped in
// with a rename inside the same transaction, serialized per dataset name
// by a transaction-scoped advisory lock.

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"sheetsight/internal/ingest"
)

// IngestResult reports one completed materialization.
type IngestResult struct {
	Dataset      string   `json:"dataset"`
	DisplayName  string   `json:"display_name"`
	Columns      []string `json:"columns"`
	RowsInserted int64    `json:"rows_inserted"`
}

// Ingest materializes a sheet as a dataset table named from nameParts.
// The source must already be truncated and rectangular; zero rows fail
// with ErrEmptyDataset. Any write error rolls back the whole batch and
// surfaces as ErrIngestionFailure. In multi-tenant mode every row is
// stamped with ownerID.
func (s *Service) Ingest(ctx context.Context, nameParts []string, src *ingest.Source, ownerID string) (*IngestResult, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	if len(src.Rows) == 0 {
		return nil, ErrEmptyDataset
	}

	ctx, cancel := context.WithTimeout(ctx, IngestTimeout)
	defer cancel()

	table := DeriveTableName(nameParts...)
	schema := NewSchema(table, src.Columns)

	rowCount, err := s.materialize(ctx, schema, src, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrIngestionFailure, schema.DisplayName(), err)
	}

	schema.RowCount = rowCount
	s.catalog.Put(schema)
	s.recordAudit(ctx, AuditIngest, schema.Table, ownerID, rowCount, schema.DisplayName())

	return &IngestResult{
		Dataset:      schema.Table,
		DisplayName:  schema.DisplayName(),
		Columns:      schema.SafeColumns(),
		RowsInserted: rowCount,
	}, nil
}

// materialize builds the replacement table and swaps it in atomically.
func (s *Service) materialize(ctx context.Context, schema *Schema, src *ingest.Source, ownerID string) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize concurrent ingests of the same dataset name. The lock is
	// released automatically at commit or rollback.
	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", schema.Table); err != nil {
		return 0, fmt.Errorf("advisory lock: %w", err)
	}

	tempTable := fmt.Sprintf("%stmp_%s", TablePrefix, uuid.NewString()[:8])
	if err := s.createTable(ctx, tx, tempTable, schema); err != nil {
		return 0, err
	}

	rowCount, err := s.bulkLoad(ctx, tx, tempTable, schema, src, ownerID)
	if err != nil {
		return 0, err
	}

	// Swap: readers see the old table until commit, then the new one.
	drop := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteIdentifier(schema.Table))
	if _, err := tx.Exec(ctx, drop); err != nil {
		return 0, fmt.Errorf("drop previous: %w", err)
	}
	rename := fmt.Sprintf("ALTER TABLE %s RENAME TO %s",
		quoteIdentifier(tempTable), quoteIdentifier(schema.Table))
	if _, err := tx.Exec(ctx, rename); err != nil {
		return 0, fmt.Errorf("rename: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return rowCount, nil
}

// createTable creates the replacement table: synthetic id, optional
// owner_id, one non-null text column per safe identifier.
func (s *Service) createTable(ctx context.Context, tx pgx.Tx, table string, schema *Schema) error {
	defs := []string{"id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY"}
	if s.multiTenant {
		defs = append(defs, "owner_id TEXT NOT NULL")
	}
	for _, col := range schema.Columns {
		defs = append(defs, fmt.Sprintf("%s TEXT NOT NULL DEFAULT ''", quoteIdentifier(col.Safe)))
	}

	query := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdentifier(table), strings.Join(defs, ", "))
	if _, err := tx.Exec(ctx, query); err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}

// bulkLoad streams all rows into the table with COPY.
func (s *Service) bulkLoad(ctx context.Context, tx pgx.Tx, table string, schema *Schema, src *ingest.Source, ownerID string) (int64, error) {
	columns := schema.SafeColumns()
	if s.multiTenant {
		columns = append([]string{"owner_id"}, columns...)
	}

	copyRows := make([][]interface{}, len(src.Rows))
	for i, row := range src.Rows {
		vals := make([]interface{}, 0, len(columns))
		if s.multiTenant {
			vals = append(vals, ownerID)
		}
		for _, cell := range row {
			vals = append(vals, cell)
		}
		copyRows[i] = vals
	}

	count, err := tx.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(copyRows))
	if err != nil {
		return 0, fmt.Errorf("copy rows: %w", err)
	}
	return count, nil
}

// Drop removes a dataset's table and catalog entry.
func (s *Service) Drop(ctx context.Context, name string) error {
	schema, err := s.resolve(name)
	if err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", schema.Table); err != nil {
		return fmt.Errorf("advisory lock: %w", err)
	}
	drop := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteIdentifier(schema.Table))
	if _, err := tx.Exec(ctx, drop); err != nil {
		return fmt.Errorf("drop %s: %w", schema.Table, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	s.catalog.Delete(schema.Table)
	s.recordAudit(ctx, AuditDrop, schema.Table, "", schema.RowCount, "")
	return nil
}
