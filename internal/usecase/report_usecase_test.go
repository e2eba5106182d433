package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/E-Mello/controlefin.app/internal/cashbook"
	"github.com/E-Mello/controlefin.app/internal/domain"
	"github.com/E-Mello/controlefin.app/internal/usecase"
	"github.com/E-Mello/controlefin.app/internal/usecase/mocks"
)

func snapshot() []*domain.Conta {
	mk := func(id string, kind domain.Kind, desc string, amount int64, due string) *domain.Conta {
		return &domain.Conta{
			ID:          id,
			Kind:        kind,
			Description: desc,
			Amount:      decimal.NewFromInt(amount),
			DueDate:     domain.ParseDate(due),
			IssueDate:   domain.ParseDate("2024-01-01"),
		}
	}
	return []*domain.Conta{
		mk("1", domain.KindReceivable, "Salário", 5000, "2024-01-05"),
		mk("2", domain.KindPayable, "Aluguel", 1300, "2024-01-10"),
		mk("3", domain.KindPayable, "Conta de luz", 800, "2024-02-15"),
	}
}

func januaryReport() usecase.ReportInput {
	return usecase.ReportInput{
		Params: cashbook.ReportParams{Kind: cashbook.ReportMonthly, Year: 2024, Month: 1},
		Sort:   cashbook.SortSpec{Column: cashbook.SortByDueDate, Direction: cashbook.Ascending},
	}
}

func TestReportUseCase_BuildReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockContaSource(ctrl)
	metrics := mocks.NewMockMetricsRecorder(ctrl)

	source.EXPECT().List(gomock.Any()).Return(snapshot(), nil)
	metrics.EXPECT().RecordReport("mensal", "json", gomock.Any())

	uc := usecase.NewReportUseCase(source, nil, 0, metrics)

	doc, err := uc.BuildReport(context.Background(), januaryReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(doc.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(doc.Sections))
	}
	if !doc.Totals.Balance.Equal(decimal.NewFromInt(3700)) {
		t.Errorf("expected balance 3700, got %s", doc.Totals.Balance)
	}
}

func TestReportUseCase_BuildReport_InvalidPeriod(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockContaSource(ctrl)

	uc := usecase.NewReportUseCase(source, nil, 0, nil)

	in := januaryReport()
	in.Params.Month = 13

	if _, err := uc.BuildReport(context.Background(), in); !errors.Is(err, domain.ErrInvalidReportPeriod) {
		t.Fatalf("expected ErrInvalidReportPeriod, got %v", err)
	}
}

func TestReportUseCase_SourceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockContaSource(ctrl)
	boom := errors.New("db unavailable")

	source.EXPECT().List(gomock.Any()).Return(nil, boom)

	uc := usecase.NewReportUseCase(source, nil, 0, nil)

	if _, err := uc.Summary(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected source error, got %v", err)
	}
}

func TestReportUseCase_SnapshotCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockContaSource(ctrl)
	cache := mocks.NewMockCache(ctrl)
	metrics := mocks.NewMockMetricsRecorder(ctrl)

	key := usecase.SnapshotKey("g1")

	var stored string
	gomock.InOrder(
		cache.EXPECT().Get(gomock.Any(), usecase.SnapshotGenerationKey).Return("g1", nil),
		cache.EXPECT().Get(gomock.Any(), key).Return("", redis.Nil),
		metrics.EXPECT().RecordSnapshotLookup(false),
		source.EXPECT().List(gomock.Any()).Return(snapshot(), nil),
		cache.EXPECT().Set(gomock.Any(), key, gomock.Any(), usecase.DefaultSnapshotTTL).
			DoAndReturn(func(_ context.Context, _, value string, _ time.Duration) error {
				stored = value
				return nil
			}),
	)

	uc := usecase.NewReportUseCase(source, cache, 0, metrics)

	first, err := uc.Summary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gomock.InOrder(
		cache.EXPECT().Get(gomock.Any(), usecase.SnapshotGenerationKey).Return("g1", nil),
		cache.EXPECT().Get(gomock.Any(), key).Return(stored, nil),
		metrics.EXPECT().RecordSnapshotLookup(true),
	)

	second, err := uc.Summary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !first.Balance.Equal(second.Balance) || !second.Balance.Equal(decimal.NewFromInt(2900)) {
		t.Errorf("expected cached balance 2900, got %s and %s", first.Balance, second.Balance)
	}
}

func TestReportUseCase_SnapshotCache_StartsGeneration(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockContaSource(ctrl)
	cache := mocks.NewMockCache(ctrl)

	var gen string
	gomock.InOrder(
		cache.EXPECT().Get(gomock.Any(), usecase.SnapshotGenerationKey).Return("", redis.Nil),
		cache.EXPECT().Set(gomock.Any(), usecase.SnapshotGenerationKey, gomock.Any(), time.Duration(0)).
			DoAndReturn(func(_ context.Context, _, value string, _ time.Duration) error {
				gen = value
				return nil
			}),
		cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", redis.Nil),
		source.EXPECT().List(gomock.Any()).Return(snapshot(), nil),
		cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), usecase.DefaultSnapshotTTL).
			DoAndReturn(func(_ context.Context, key, _ string, _ time.Duration) error {
				if gen == "" || key != usecase.SnapshotKey(gen) {
					t.Errorf("snapshot stored under %q, generation %q", key, gen)
				}
				return nil
			}),
	)

	uc := usecase.NewReportUseCase(source, cache, 0, nil)

	if _, err := uc.Summary(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReportUseCase_SnapshotCache_Unavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockContaSource(ctrl)
	cache := mocks.NewMockCache(ctrl)
	down := errors.New("redis down")

	cache.EXPECT().Get(gomock.Any(), usecase.SnapshotGenerationKey).Return("", down)
	cache.EXPECT().Set(gomock.Any(), usecase.SnapshotGenerationKey, gomock.Any(), time.Duration(0)).Return(down)
	source.EXPECT().List(gomock.Any()).Return(snapshot(), nil)

	uc := usecase.NewReportUseCase(source, cache, 0, nil)

	summary, err := uc.Summary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !summary.Balance.Equal(decimal.NewFromInt(2900)) {
		t.Errorf("expected balance 2900, got %s", summary.Balance)
	}
}

func TestReportUseCase_BuildReport_RecordsElapsedOnClock(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockContaSource(ctrl)
	metrics := mocks.NewMockMetricsRecorder(ctrl)

	source.EXPECT().List(gomock.Any()).Return(snapshot(), nil)
	metrics.EXPECT().RecordReport("mensal", "json", 2*time.Second)

	uc := usecase.NewReportUseCase(source, nil, 0, metrics)

	clock := time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)
	usecase.SetReportClock(uc, func() time.Time {
		now := clock
		clock = clock.Add(2 * time.Second)
		return now
	})

	if _, err := uc.BuildReport(context.Background(), januaryReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReportUseCase_Listing(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockContaSource(ctrl)
	source.EXPECT().List(gomock.Any()).Return(snapshot(), nil)

	uc := usecase.NewReportUseCase(source, nil, 0, nil)

	listing, err := uc.Listing(context.Background(), usecase.ListingInput{
		Filter: cashbook.FilterSpec{Kind: domain.KindPayable},
		Sort:   cashbook.SortSpec{Column: cashbook.SortByAmount, Direction: cashbook.Ascending},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(listing.Contas) != 2 || listing.Contas[0].ID != "3" {
		t.Fatalf("expected payables by amount, got %+v", listing.Contas)
	}
	if !listing.Totals.Payable.Equal(decimal.NewFromInt(2100)) {
		t.Errorf("expected payable total 2100, got %s", listing.Totals.Payable)
	}
	if len(listing.Years) != 1 || listing.Years[0] != 2024 {
		t.Errorf("expected years [2024], got %v", listing.Years)
	}
}

func TestReportUseCase_ExportReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockContaSource(ctrl)
	exporter := mocks.NewMockExporter(ctrl)

	exporter.EXPECT().Format().Return("xlsx").AnyTimes()
	exporter.EXPECT().ContentType().Return("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	exporter.EXPECT().Export(gomock.Any()).DoAndReturn(func(doc *cashbook.ReportDocument) ([]byte, error) {
		if doc.Title != "Relatório Mensal - Janeiro/2024" {
			t.Errorf("unexpected title %q", doc.Title)
		}
		return []byte("xlsx-bytes"), nil
	})
	source.EXPECT().List(gomock.Any()).Return(snapshot(), nil)

	uc := usecase.NewReportUseCase(source, nil, 0, nil, exporter)

	artifact, err := uc.ExportReport(context.Background(), januaryReport(), "xlsx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if artifact.Filename != "relatorio-mensal-Janeiro-2024.xlsx" {
		t.Errorf("unexpected filename %q", artifact.Filename)
	}
	if string(artifact.Data) != "xlsx-bytes" {
		t.Errorf("unexpected data %q", artifact.Data)
	}

	if _, err := uc.ExportReport(context.Background(), januaryReport(), "docx"); !errors.Is(err, usecase.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}
