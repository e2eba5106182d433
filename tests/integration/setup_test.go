package integration

import (
	"context"
	"net/http/httptest"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	redislib "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/E-Mello/controlefin.app/internal/adapter/client"
	"github.com/E-Mello/controlefin.app/internal/adapter/export/pdf"
	"github.com/E-Mello/controlefin.app/internal/adapter/export/xlsx"
	adaptershttp "github.com/E-Mello/controlefin.app/internal/adapter/http"
	"github.com/E-Mello/controlefin.app/internal/adapter/http/handler"
	"github.com/E-Mello/controlefin.app/internal/adapter/repository/postgres"
	redisrepo "github.com/E-Mello/controlefin.app/internal/adapter/repository/redis"
	"github.com/E-Mello/controlefin.app/internal/infrastructure/metrics"
	"github.com/E-Mello/controlefin.app/internal/usecase"
	"github.com/E-Mello/controlefin.app/tests/testutil"
)

// stack is the whole server wired like cmd/server, with Redis replaced by
// miniredis.
type stack struct {
	db      *testutil.TestDB
	contaUC *usecase.ContaUseCase
	server  *httptest.Server
	client  *client.Client
}

func newStack(t *testing.T) *stack {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	testDB.TruncateAll(ctx)

	mr := miniredis.RunT(t)
	rdb := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	pool := testDB.Pool
	cache := redisrepo.NewCache(rdb)
	appMetrics := metrics.New(prometheus.NewRegistry())

	contaRepo := postgres.NewContaRepository(pool, postgres.NewRetrier())
	contaUC := usecase.NewContaUseCase(contaRepo, postgres.NewTxManager(pool), postgres.NewULIDGenerator(), cache, appMetrics)
	reportUC := usecase.NewReportUseCase(contaRepo, cache, 0, appMetrics, xlsx.New(), pdf.New())

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		ContaHandler:  handler.NewContaHandler(contaUC, reportUC),
		ReportHandler: handler.NewReportHandler(reportUC),
		HealthHandler: handler.NewHealthHandler(pool, handler.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})),
		IdempotencyStore: redisrepo.NewIdempotencyStore(rdb),
		Metrics:          appMetrics,
		Logger:           zerolog.Nop(),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	c, err := client.New(srv.URL, client.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	return &stack{db: testDB, contaUC: contaUC, server: srv, client: c}
}
