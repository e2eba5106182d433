package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/E-Mello/controlefin.app/internal/domain"
)

// ContaUseCase handles conta business logic.
type ContaUseCase struct {
	contaRepo ContaRepository
	txManager TransactionManager
	idGen     IDGenerator
	cache     Cache
	metrics   MetricsRecorder
	now       func() time.Time
}

// NewContaUseCase creates a new ContaUseCase. cache and metrics may be nil.
func NewContaUseCase(
	contaRepo ContaRepository,
	txManager TransactionManager,
	idGen IDGenerator,
	cache Cache,
	metrics MetricsRecorder,
) *ContaUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &ContaUseCase{
		contaRepo: contaRepo,
		txManager: txManager,
		idGen:     idGen,
		cache:     cache,
		metrics:   metrics,
		now:       time.Now,
	}
}

// ContaInput carries every client-controlled field; edits resend all of them.
type ContaInput struct {
	Kind        domain.Kind
	Description string
	Amount      decimal.Decimal
	DueDate     domain.Date
}

func (in ContaInput) toConta() *domain.Conta {
	return &domain.Conta{
		Kind:        in.Kind,
		Description: in.Description,
		Amount:      in.Amount,
		DueDate:     in.DueDate,
	}
}

// CreateConta validates and stores a new conta issued today.
func (uc *ContaUseCase) CreateConta(ctx context.Context, input ContaInput) (*domain.Conta, error) {
	conta := input.toConta()
	if err := domain.ValidateConta(conta); err != nil {
		return nil, err
	}

	conta.ID = uc.idGen.Generate()
	conta.IssueDate = domain.DateOf(uc.now().UTC())

	if err := uc.contaRepo.Create(ctx, conta); err != nil {
		return nil, err
	}

	uc.invalidate(ctx)
	uc.metrics.RecordContaMutation("create")

	return conta, nil
}

// GetConta retrieves a conta by ID.
func (uc *ContaUseCase) GetConta(ctx context.Context, id string) (*domain.Conta, error) {
	return uc.contaRepo.GetByID(ctx, id)
}

// ListContas returns every conta; ordering is left to the cash book views.
func (uc *ContaUseCase) ListContas(ctx context.Context) ([]*domain.Conta, error) {
	return uc.contaRepo.List(ctx)
}

// UpdateConta replaces every client field of a conta. ID and issue date are
// kept from the stored row.
func (uc *ContaUseCase) UpdateConta(ctx context.Context, id string, input ContaInput) (*domain.Conta, error) {
	conta := input.toConta()
	if err := domain.ValidateConta(conta); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	current, err := uc.contaRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	conta.ID = current.ID
	conta.IssueDate = current.IssueDate

	if err := uc.contaRepo.UpdateTx(ctx, tx, conta); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.invalidate(ctx)
	uc.metrics.RecordContaMutation("update")

	return conta, nil
}

// DeleteConta removes a conta by ID.
func (uc *ContaUseCase) DeleteConta(ctx context.Context, id string) error {
	if err := uc.contaRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.invalidate(ctx)
	uc.metrics.RecordContaMutation("delete")

	return nil
}

// invalidate moves the snapshot cache to a new generation. A stale snapshot
// expires on its own, so failures are only logged.
func (uc *ContaUseCase) invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Set(ctx, SnapshotGenerationKey, newSnapshotGeneration(), 0); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to invalidate contas snapshot")
	}
}
