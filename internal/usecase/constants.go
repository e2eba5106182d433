package usecase

import (
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	// DefaultTransactionTimeout bounds a single database transaction.
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour

	// IdempotencyPending is the stored value of a claimed key whose request
	// has not finished yet.
	IdempotencyPending = "processing"

	// DefaultSnapshotTTL is how long a cached snapshot of contas is served.
	DefaultSnapshotTTL = 5 * time.Minute

	// SnapshotCacheKey prefixes the encoded list of every conta. Each
	// snapshot is stored under its generation, see SnapshotKey.
	SnapshotCacheKey = "contas:snapshot"

	// SnapshotGenerationKey names the current snapshot generation. Every
	// mutation moves it forward, so a snapshot listed before a write lands
	// under a generation nobody reads again.
	SnapshotGenerationKey = "contas:generation"
)

// SnapshotKey is the cache key of the snapshot for generation gen.
func SnapshotKey(gen string) string {
	return SnapshotCacheKey + ":" + gen
}

func newSnapshotGeneration() string {
	return ulid.Make().String()
}
