package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/E-Mello/controlefin.app/internal/adapter/http/dto"
	"github.com/E-Mello/controlefin.app/internal/cashbook"
	"github.com/E-Mello/controlefin.app/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	Summary(ctx context.Context) (cashbook.Totals, error)
	BuildReport(ctx context.Context, input usecase.ReportInput) (*cashbook.ReportDocument, error)
	ExportReport(ctx context.Context, input usecase.ReportInput, format string) (*usecase.Artifact, error)
}

// ReportHandler serves the dashboard summary and the period reports.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// Summary returns the totals over every conta.
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	totals, err := h.reportUC.Summary(r.Context())
	if err != nil {
		writeDomainError(w, r, "failed to compute summary", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromTotals(totals))
}

// Report renders /relatorios/{kind} as JSON or as a file download.
func (h *ReportHandler) Report(w http.ResponseWriter, r *http.Request) {
	input, formatName, err := dto.ParseReportQuery(chi.URLParam(r, "kind"), r.URL.Query())
	if err != nil {
		writeDomainError(w, r, "invalid report request", err)
		return
	}

	if formatName == "json" {
		doc, err := h.reportUC.BuildReport(r.Context(), input)
		if err != nil {
			writeDomainError(w, r, "failed to build report", err)
			return
		}
		writeJSON(w, http.StatusOK, dto.ReportFromDocument(doc))
		return
	}

	artifact, err := h.reportUC.ExportReport(r.Context(), input, formatName)
	if err != nil {
		writeDomainError(w, r, "failed to export report", err)
		return
	}

	writeFile(w, artifact.Filename, artifact.ContentType, artifact.Data)
}
