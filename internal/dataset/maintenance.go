package dataset

// maintenance.go provides administrative operations over the whole
// catalog: dropping every dataset and re-introspecting the database.

import (
	"context"
	"fmt"
	"time"
)

// ResetTimeout is the maximum duration for a full reset.
const ResetTimeout = 30 * time.Second

// Reset drops every cataloged dataset. This is destructive; the audit
// log records it. Returns the number of datasets dropped. Stops at the
// first failure, leaving the remaining datasets intact.
func (s *Service) Reset(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, ResetTimeout)
	defer cancel()

	dropped := 0
	for _, schema := range s.catalog.All() {
		if err := s.Drop(ctx, schema.Table); err != nil {
			return dropped, fmt.Errorf("reset: %w", err)
		}
		dropped++
	}

	s.recordAudit(ctx, AuditReset, "*", "", int64(dropped), "")
	return dropped, nil
}

// Reload replaces the in-memory catalog with a fresh introspection of
// the database, picking up tables created or dropped outside this
// process.
func (s *Service) Reload(ctx context.Context) error {
	return s.catalog.Load(ctx, s.pool)
}
