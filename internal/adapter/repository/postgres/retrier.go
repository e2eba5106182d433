package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// PostgreSQL error codes worth another attempt.
const (
	pgErrDeadlock             = "40P01"
	pgErrSerializationFailure = "40001"
	pgErrCannotConnectNow     = "57P03"
)

// Retrier re-runs writes that failed on transient database errors.
type Retrier struct {
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
	logger          zerolog.Logger
}

// RetrierOption customizes a Retrier.
type RetrierOption func(*Retrier)

func WithMaxRetries(n int) RetrierOption {
	return func(r *Retrier) { r.maxRetries = n }
}

// WithIntervals sets the initial and maximum wait plus the overall budget.
func WithIntervals(initial, maxWait, elapsed time.Duration) RetrierOption {
	return func(r *Retrier) {
		r.initialInterval = initial
		r.maxInterval = maxWait
		r.maxElapsedTime = elapsed
	}
}

func WithLogger(logger zerolog.Logger) RetrierOption {
	return func(r *Retrier) { r.logger = logger }
}

// NewRetrier creates a retrier with three attempts after the first.
func NewRetrier(opts ...RetrierOption) *Retrier {
	r := &Retrier{
		maxRetries:      3,
		initialInterval: 50 * time.Millisecond,
		maxInterval:     1 * time.Second,
		maxElapsedTime:  10 * time.Second,
		logger:          log.Logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retry executes operation with exponential backoff on retryable errors.
// A nil Retrier runs the operation once.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	if r == nil {
		return operation()
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	b.MaxElapsedTime = r.maxElapsedTime

	attempt := 0

	return backoff.Retry(func() error {
		err := operation()
		if err == nil {
			return nil
		}

		if !isRetryableError(err) {
			return backoff.Permanent(err)
		}

		attempt++
		if attempt > r.maxRetries {
			return backoff.Permanent(err)
		}

		r.logger.Warn().Err(err).Int("retry", attempt).Msg("retryable database error, retrying")

		return err
	}, backoff.WithContext(b, ctx))
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrDeadlock, pgErrSerializationFailure, pgErrCannotConnectNow:
			return true
		}
		return false
	}
	return pgconn.SafeToRetry(err)
}
