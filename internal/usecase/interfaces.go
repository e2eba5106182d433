package usecase

import (
	"context"
	"time"

	"github.com/E-Mello/controlefin.app/internal/cashbook"
	"github.com/E-Mello/controlefin.app/internal/domain"
)

// ContaSource yields the current snapshot of contas.
type ContaSource interface {
	List(ctx context.Context) ([]*domain.Conta, error)
}

// ContaRepository defines data access for contas.
type ContaRepository interface {
	ContaSource
	Create(ctx context.Context, conta *domain.Conta) error
	GetByID(ctx context.Context, id string) (*domain.Conta, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Conta, error)
	UpdateTx(ctx context.Context, tx Transaction, conta *domain.Conta) error
	Delete(ctx context.Context, id string) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations. Get returns an error on a miss.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release frees a key whose request failed.
	Release(ctx context.Context, key string) error
}

// Exporter renders a report document into a downloadable file.
type Exporter interface {
	Format() string
	ContentType() string
	Export(doc *cashbook.ReportDocument) ([]byte, error)
}

// MetricsRecorder receives business events.
type MetricsRecorder interface {
	RecordContaMutation(op string)
	RecordReport(kind, format string, elapsed time.Duration)
	RecordSnapshotLookup(hit bool)
}

type noopMetrics struct{}

func (noopMetrics) RecordContaMutation(string) {}
func (noopMetrics) RecordReport(string, string, time.Duration) {}
func (noopMetrics) RecordSnapshotLookup(bool) {}
