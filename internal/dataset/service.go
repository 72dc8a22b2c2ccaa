package dataset

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// IngestTimeout is the maximum duration for one ingest operation.
var IngestTimeout = 10 * time.Minute

// Service provides ingestion, querying, and aggregation over datasets.
type Service struct {
	pool        *pgxpool.Pool
	catalog     *Catalog
	limiter     *IngestLimiter
	multiTenant bool
}

// Options configures a Service.
type Options struct {
	// MultiTenant adds an owner_id column to every dataset and scopes all
	// reads and mutations to the requesting owner.
	MultiTenant bool

	// MaxConcurrentIngests caps parallel ingest operations. Zero means
	// DefaultMaxConcurrentIngests.
	MaxConcurrentIngests int

	// IngestWait is how long an ingest waits for a slot. Zero means
	// DefaultMaxWaitTime.
	IngestWait time.Duration
}

// NewService creates a Service and loads the dataset catalog from the
// database.
func NewService(ctx context.Context, pool *pgxpool.Pool, opts Options) (*Service, error) {
	catalog := NewCatalog()
	if err := catalog.Load(ctx, pool); err != nil {
		return nil, err
	}
	if err := ensureAuditTable(ctx, pool); err != nil {
		return nil, err
	}

	return &Service{
		pool:        pool,
		catalog:     catalog,
		limiter:     NewIngestLimiter(opts.MaxConcurrentIngests, opts.IngestWait),
		multiTenant: opts.MultiTenant,
	}, nil
}

// Limiter exposes the ingest limiter for shutdown draining.
func (s *Service) Limiter() *IngestLimiter {
	return s.limiter
}

// MultiTenant reports whether datasets are owner-scoped.
func (s *Service) MultiTenant() bool {
	return s.multiTenant
}

// resolve looks a dataset up by table name or display name.
func (s *Service) resolve(name string) (*Schema, error) {
	if sc, ok := s.catalog.Get(name); ok {
		return sc, nil
	}
	if sc, ok := s.catalog.Get(TablePrefix + name); ok {
		return sc, nil
	}
	return nil, wrapUnknownDataset(name)
}
