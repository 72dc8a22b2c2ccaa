package dataset

// audit.go keeps a durable trail of dataset mutations: every ingest,
// drop, and row edit gets one entry in a dedicated log table. Recording
// is best-effort; a failed audit write never fails the operation it
// describes. A background retention job purges old entries.

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditAction identifies what a log entry records.
type AuditAction string

const (
	AuditIngest    AuditAction = "ingest"
	AuditDrop      AuditAction = "drop"
	AuditReset     AuditAction = "reset"
	AuditRowInsert AuditAction = "row_insert"
	AuditRowUpdate AuditAction = "row_update"
	AuditRowDelete AuditAction = "row_delete"
)

// auditTable sits outside the dataset prefix so catalog introspection
// never mistakes it for a dataset.
const auditTable = "sheetsight_audit_log"

// AuditEntry is one recorded operation.
type AuditEntry struct {
	ID           int64       `json:"id"`
	Action       AuditAction `json:"action"`
	Dataset      string      `json:"dataset"`
	OwnerID      string      `json:"owner_id,omitempty"`
	RowsAffected int64       `json:"rows_affected"`
	Detail       string      `json:"detail,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// ensureAuditTable creates the log table on first startup.
func ensureAuditTable(ctx context.Context, pool *pgxpool.Pool) error {
	const query = `
		CREATE TABLE IF NOT EXISTS ` + auditTable + ` (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			action TEXT NOT NULL,
			dataset TEXT NOT NULL,
			owner_id TEXT NOT NULL DEFAULT '',
			rows_affected BIGINT NOT NULL DEFAULT 0,
			detail TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	if _, err := pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("create audit table: %w", err)
	}
	return nil
}

// recordAudit inserts one entry. Failures are logged and swallowed so
// the audited operation still succeeds.
func (s *Service) recordAudit(ctx context.Context, action AuditAction, dataset, ownerID string, rows int64, detail string) {
	const query = `
		INSERT INTO ` + auditTable + ` (action, dataset, owner_id, rows_affected, detail)
		VALUES ($1, $2, $3, $4, $5)`

	// The operation's context may already be done; the entry should
	// still land.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if _, err := s.pool.Exec(ctx, query, string(action), dataset, ownerID, rows, detail); err != nil {
		slog.Warn("audit write failed",
			"action", string(action),
			"dataset", dataset,
			"error", err.Error(),
		)
	}
}

// RecentAudit returns the newest entries, newest first. A non-positive
// limit defaults to 50.
func (s *Service) RecentAudit(ctx context.Context, limit int) ([]AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	const query = `
		SELECT id, action, dataset, owner_id, rows_affected, detail, created_at
		FROM ` + auditTable + `
		ORDER BY id DESC
		LIMIT $1`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	defer rows.Close()

	entries := make([]AuditEntry, 0, limit)
	for rows.Next() {
		var e AuditEntry
		var action string
		if err := rows.Scan(&e.ID, &action, &e.Dataset, &e.OwnerID, &e.RowsAffected, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.Action = AuditAction(action)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	return entries, nil
}

// RetentionConfig tunes the audit purge job. Zero values take defaults.
type RetentionConfig struct {
	KeepFor       time.Duration // entry lifetime (default: 90 days)
	CheckInterval time.Duration // how often to purge (default: 24h)
}

// RunAuditRetention purges expired audit entries once at startup and
// then every CheckInterval, until the context is cancelled. Individual
// purge failures are logged, not fatal.
func (s *Service) RunAuditRetention(ctx context.Context, cfg RetentionConfig) {
	if cfg.KeepFor <= 0 {
		cfg.KeepFor = 90 * 24 * time.Hour
	}
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = 24 * time.Hour
	}

	slog.Info("audit retention started",
		"keep_for", cfg.KeepFor.String(),
		"check_interval", cfg.CheckInterval.String(),
	)

	s.purgeExpiredAudit(ctx, cfg.KeepFor)

	ticker := time.NewTicker(cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("audit retention stopped")
			return
		case <-ticker.C:
			s.purgeExpiredAudit(ctx, cfg.KeepFor)
		}
	}
}

// purgeExpiredAudit performs one purge cycle.
func (s *Service) purgeExpiredAudit(ctx context.Context, keepFor time.Duration) {
	start := time.Now()

	const query = `DELETE FROM ` + auditTable + ` WHERE created_at < now() - $1::interval`
	tag, err := s.pool.Exec(ctx, query, keepFor.String())
	if err != nil {
		slog.Error("audit purge failed", "error", err.Error())
		return
	}

	if purged := tag.RowsAffected(); purged > 0 {
		slog.Info("purged audit entries",
			"entries_purged", purged,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
