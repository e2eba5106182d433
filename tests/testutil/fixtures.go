package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/E-Mello/controlefin.app/internal/domain"
	"github.com/E-Mello/controlefin.app/internal/infrastructure/postgres"
	"github.com/E-Mello/controlefin.app/internal/infrastructure/postgres/generated"
)

// TestDB provides isolated test database connections.
type TestDB struct {
	Pool    *pgxpool.Pool
	Queries *generated.Queries
	t       *testing.T
}

// NewTestDB connects to TEST_DATABASE_URL (or DATABASE_URL) and migrates it.
// The test is skipped when neither is set.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	if err := postgres.RunMigrations(dbURL); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Fatalf("failed to ping test database: %v", err)
	}

	db := &TestDB{
		Pool:    pool,
		Queries: generated.New(pool),
		t:       t,
	}
	t.Cleanup(db.Cleanup)

	return db
}

// Cleanup closes the database connection.
func (db *TestDB) Cleanup() {
	db.Pool.Close()
}

// TruncateAll removes every conta.
func (db *TestDB) TruncateAll(ctx context.Context) {
	db.t.Helper()

	if _, err := db.Pool.Exec(ctx, `TRUNCATE TABLE contas`); err != nil {
		db.t.Fatalf("failed to truncate tables: %v", err)
	}
}

// CreateTestConta inserts a conta directly, bypassing the use case.
func (db *TestDB) CreateTestConta(ctx context.Context, kind domain.Kind, description, amount, dueDate, issueDate string) *domain.Conta {
	db.t.Helper()

	conta := &domain.Conta{
		ID:          GenerateID(),
		Kind:        kind,
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		DueDate:     domain.ParseDate(dueDate),
		IssueDate:   domain.ParseDate(issueDate),
	}

	var valor pgtype.Numeric
	_ = valor.Scan(conta.Amount.StringFixed(2))

	_, err := db.Queries.CreateConta(ctx, generated.CreateContaParams{
		ID:             conta.ID,
		Tipo:           kind.String(),
		Descricao:      description,
		Valor:          valor,
		DataVencimento: pgtype.Date{Time: conta.DueDate.Time(), Valid: true},
		DataEmissao:    pgtype.Date{Time: conta.IssueDate.Time(), Valid: true},
	})
	if err != nil {
		db.t.Fatalf("failed to create test conta: %v", err)
	}

	return conta
}

// GenerateID generates a new ULID.
func GenerateID() string {
	return ulid.Make().String()
}
