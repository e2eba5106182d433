package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/E-Mello/controlefin.app/internal/adapter/http/dto"
	"github.com/E-Mello/controlefin.app/internal/domain"
	"github.com/E-Mello/controlefin.app/internal/usecase"
)

// fileStore keeps contas in a JSON file shaped like the GET /contas/
// response, so `contas list --formato json` output can be used as a snapshot.
// A missing file is an empty cash book.
type fileStore struct {
	path string
	now  func() time.Time
}

func newFileStore(path string) *fileStore {
	return &fileStore{path: path, now: time.Now}
}

func (s *fileStore) List(ctx context.Context) ([]*domain.Conta, error) {
	return s.load()
}

func (s *fileStore) Get(ctx context.Context, id string) (*domain.Conta, error) {
	contas, err := s.load()
	if err != nil {
		return nil, err
	}

	i := indexOf(contas, id)
	if i < 0 {
		return nil, domain.ErrContaNotFound
	}
	return contas[i], nil
}

func (s *fileStore) Create(ctx context.Context, input usecase.ContaInput) (*domain.Conta, error) {
	conta := &domain.Conta{
		Kind:        input.Kind,
		Description: input.Description,
		Amount:      input.Amount,
		DueDate:     input.DueDate,
	}
	if err := domain.ValidateConta(conta); err != nil {
		return nil, err
	}

	contas, err := s.load()
	if err != nil {
		return nil, err
	}

	conta.ID = ulid.Make().String()
	conta.IssueDate = domain.DateOf(s.now().UTC())

	if err := s.save(append(contas, conta)); err != nil {
		return nil, err
	}
	return conta, nil
}

// Update replaces the client fields; id and issue date are kept.
func (s *fileStore) Update(ctx context.Context, id string, input usecase.ContaInput) (*domain.Conta, error) {
	contas, err := s.load()
	if err != nil {
		return nil, err
	}

	i := indexOf(contas, id)
	if i < 0 {
		return nil, domain.ErrContaNotFound
	}

	updated := *contas[i]
	updated.Kind = input.Kind
	updated.Description = input.Description
	updated.Amount = input.Amount
	updated.DueDate = input.DueDate

	if err := domain.ValidateConta(&updated); err != nil {
		return nil, err
	}

	contas[i] = &updated
	if err := s.save(contas); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *fileStore) Delete(ctx context.Context, id string) error {
	contas, err := s.load()
	if err != nil {
		return err
	}

	i := indexOf(contas, id)
	if i < 0 {
		return domain.ErrContaNotFound
	}

	return s.save(append(contas[:i], contas[i+1:]...))
}

func (s *fileStore) load() ([]*domain.Conta, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var rows []dto.ContaResponse
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", s.path, err)
	}

	contas := make([]*domain.Conta, 0, len(rows))
	for _, r := range rows {
		kind, err := domain.ParseKind(r.Tipo)
		if err != nil {
			return nil, fmt.Errorf("decode snapshot %s: conta %s tipo %q: %w", s.path, r.ID, r.Tipo, err)
		}
		contas = append(contas, &domain.Conta{
			ID:          r.ID,
			Kind:        kind,
			Description: r.Descricao,
			Amount:      r.Valor.Decimal,
			DueDate:     domain.ParseDate(r.DataVencimento),
			IssueDate:   domain.ParseDate(r.DataEmissao),
		})
	}

	return contas, nil
}

// save writes to a temp file and renames it over the snapshot.
func (s *fileStore) save(contas []*domain.Conta) error {
	raw, err := json.MarshalIndent(dto.ContasFromDomain(contas), "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".livrocaixa-*.json")
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	return os.Rename(tmp.Name(), s.path)
}

func indexOf(contas []*domain.Conta, id string) int {
	for i, c := range contas {
		if c.ID == id {
			return i
		}
	}
	return -1
}
