package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/E-Mello/controlefin.app/internal/cashbook"
	"github.com/E-Mello/controlefin.app/internal/domain"
)

// ErrUnsupportedFormat is returned for an export format with no exporter.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ReportUseCase computes the cash book views over a snapshot of contas.
type ReportUseCase struct {
	source    ContaSource
	cache     Cache
	ttl       time.Duration
	metrics   MetricsRecorder
	exporters map[string]Exporter
	now       func() time.Time
}

// NewReportUseCase creates a new ReportUseCase. cache and metrics may be nil.
func NewReportUseCase(source ContaSource, cache Cache, ttl time.Duration, metrics MetricsRecorder, exporters ...Exporter) *ReportUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}

	byFormat := make(map[string]Exporter, len(exporters))
	for _, e := range exporters {
		byFormat[e.Format()] = e
	}

	return &ReportUseCase{
		source:    source,
		cache:     cache,
		ttl:       ttl,
		metrics:   metrics,
		exporters: byFormat,
		now:       time.Now,
	}
}

// ListingInput represents the list view selections.
type ListingInput struct {
	Filter cashbook.FilterSpec
	Sort   cashbook.SortSpec
}

// Listing is the cash book list view.
type Listing struct {
	Contas []*domain.Conta
	Totals cashbook.Totals
	Years  []int
}

// Listing filters and sorts the snapshot. The filter uses the date field
// implied by the sort column.
func (uc *ReportUseCase) Listing(ctx context.Context, input ListingInput) (*Listing, error) {
	contas, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	field := input.Sort.DateField()
	input.Filter.DateField = field

	filtered := cashbook.Filter(contas, input.Filter)

	return &Listing{
		Contas: cashbook.Sort(filtered, input.Sort),
		Totals: cashbook.Summarize(filtered),
		Years:  cashbook.AvailableYears(contas, field, uc.now()),
	}, nil
}

// Summary totals every conta, as shown on the dashboard cards.
func (uc *ReportUseCase) Summary(ctx context.Context) (cashbook.Totals, error) {
	contas, err := uc.snapshot(ctx)
	if err != nil {
		return cashbook.Totals{}, err
	}
	return cashbook.Summarize(contas), nil
}

// ReportInput selects a report period and its ordering.
type ReportInput struct {
	Params cashbook.ReportParams
	Sort   cashbook.SortSpec
}

// BuildReport assembles the report document.
func (uc *ReportUseCase) BuildReport(ctx context.Context, input ReportInput) (*cashbook.ReportDocument, error) {
	return uc.build(ctx, input, "json")
}

// Artifact is an exported report file.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportReport renders the report with the exporter registered for format.
func (uc *ReportUseCase) ExportReport(ctx context.Context, input ReportInput, format string) (*Artifact, error) {
	exporter, ok := uc.exporters[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	doc, err := uc.build(ctx, input, format)
	if err != nil {
		return nil, err
	}

	data, err := exporter.Export(doc)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", format, err)
	}

	return &Artifact{
		Filename:    doc.Filename + "." + exporter.Format(),
		ContentType: exporter.ContentType(),
		Data:        data,
	}, nil
}

// Formats lists the registered export formats.
func (uc *ReportUseCase) Formats() []string {
	out := make([]string, 0, len(uc.exporters))
	for f := range uc.exporters {
		out = append(out, f)
	}
	return out
}

func (uc *ReportUseCase) build(ctx context.Context, input ReportInput, format string) (*cashbook.ReportDocument, error) {
	if err := input.Params.Validate(); err != nil {
		return nil, err
	}

	start := uc.now()

	contas, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	doc := cashbook.Generate(contas, input.Params, input.Sort)
	uc.metrics.RecordReport(string(input.Params.Kind), format, uc.now().Sub(start))

	return &doc, nil
}

// snapshot reads contas through the cache. Cache failures fall back to the
// source.
func (uc *ReportUseCase) snapshot(ctx context.Context) ([]*domain.Conta, error) {
	if uc.cache == nil {
		return uc.source.List(ctx)
	}

	gen, ok := uc.generation(ctx)
	if ok {
		if raw, err := uc.cache.Get(ctx, SnapshotKey(gen)); err == nil {
			var contas []*domain.Conta
			if err := json.Unmarshal([]byte(raw), &contas); err == nil {
				uc.metrics.RecordSnapshotLookup(true)
				return contas, nil
			}
		}
	}
	uc.metrics.RecordSnapshotLookup(false)

	contas, err := uc.source.List(ctx)
	if err != nil {
		return nil, err
	}

	if ok {
		raw, err := json.Marshal(contas)
		if err == nil {
			err = uc.cache.Set(ctx, SnapshotKey(gen), string(raw), uc.ttl)
		}
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("failed to cache contas snapshot")
		}
	}

	return contas, nil
}

// generation returns the snapshot generation to read and fill, starting one
// when none is stored. It reports false when the cache cannot be used.
func (uc *ReportUseCase) generation(ctx context.Context) (string, bool) {
	if gen, err := uc.cache.Get(ctx, SnapshotGenerationKey); err == nil && gen != "" {
		return gen, true
	}

	gen := newSnapshotGeneration()
	if err := uc.cache.Set(ctx, SnapshotGenerationKey, gen, 0); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to start contas snapshot generation")
		return "", false
	}
	return gen, true
}
