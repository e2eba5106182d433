package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/E-Mello/controlefin.app/internal/domain"
	"github.com/E-Mello/controlefin.app/internal/infrastructure/postgres/generated"
	"github.com/E-Mello/controlefin.app/internal/usecase"
)

// ContaRepository implements usecase.ContaRepository.
type ContaRepository struct {
	queries *generated.Queries
	retrier *Retrier
}

// NewContaRepository creates a new ContaRepository. Standalone writes are
// retried through retrier, which may be nil.
func NewContaRepository(pool *pgxpool.Pool, retrier *Retrier) *ContaRepository {
	return newContaRepository(pool, retrier)
}

func newContaRepository(db generated.DBTX, retrier *Retrier) *ContaRepository {
	return &ContaRepository{
		queries: generated.New(db),
		retrier: retrier,
	}
}

// Create inserts a new conta.
func (r *ContaRepository) Create(ctx context.Context, conta *domain.Conta) error {
	return r.retrier.Retry(ctx, func() error {
		_, err := r.queries.CreateConta(ctx, generated.CreateContaParams{
			ID:             conta.ID,
			Tipo:           conta.Kind.String(),
			Descricao:      conta.Description,
			Valor:          decimalToNumeric(conta.Amount),
			DataVencimento: dateToPg(conta.DueDate),
			DataEmissao:    dateToPg(conta.IssueDate),
		})
		return err
	})
}

// GetByID retrieves a conta by ID.
func (r *ContaRepository) GetByID(ctx context.Context, id string) (*domain.Conta, error) {
	row, err := r.queries.GetContaByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrContaNotFound
		}
		return nil, err
	}

	return rowToConta(row), nil
}

// GetByIDForUpdate retrieves a conta by ID with a FOR UPDATE lock.
func (r *ContaRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Conta, error) {
	pgxTx, err := pgxTxOf(tx)
	if err != nil {
		return nil, err
	}

	row, err := r.queries.WithTx(pgxTx).GetContaByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrContaNotFound
		}
		return nil, err
	}

	return rowToConta(row), nil
}

// List returns every conta.
func (r *ContaRepository) List(ctx context.Context) ([]*domain.Conta, error) {
	rows, err := r.queries.ListContas(ctx)
	if err != nil {
		return nil, err
	}

	contas := make([]*domain.Conta, 0, len(rows))
	for _, row := range rows {
		contas = append(contas, rowToConta(row))
	}

	return contas, nil
}

// UpdateTx rewrites the client fields of a conta inside tx.
func (r *ContaRepository) UpdateTx(ctx context.Context, tx usecase.Transaction, conta *domain.Conta) error {
	pgxTx, err := pgxTxOf(tx)
	if err != nil {
		return err
	}

	n, err := r.queries.WithTx(pgxTx).UpdateConta(ctx, generated.UpdateContaParams{
		ID:             conta.ID,
		Tipo:           conta.Kind.String(),
		Descricao:      conta.Description,
		Valor:          decimalToNumeric(conta.Amount),
		DataVencimento: dateToPg(conta.DueDate),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrContaNotFound
	}

	return nil
}

// Delete removes a conta by ID.
func (r *ContaRepository) Delete(ctx context.Context, id string) error {
	var n int64

	err := r.retrier.Retry(ctx, func() error {
		var err error
		n, err = r.queries.DeleteConta(ctx, id)
		return err
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrContaNotFound
	}

	return nil
}
