package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/E-Mello/controlefin.app/internal/adapter/http/dto"
	"github.com/E-Mello/controlefin.app/internal/domain"
	"github.com/E-Mello/controlefin.app/internal/usecase"
)

// ContaService defines the behavior needed by ContaHandler.
type ContaService interface {
	CreateConta(ctx context.Context, input usecase.ContaInput) (*domain.Conta, error)
	GetConta(ctx context.Context, id string) (*domain.Conta, error)
	UpdateConta(ctx context.Context, id string, input usecase.ContaInput) (*domain.Conta, error)
	DeleteConta(ctx context.Context, id string) error
}

// ListingService defines the read views needed by ContaHandler.
type ListingService interface {
	Listing(ctx context.Context, input usecase.ListingInput) (*usecase.Listing, error)
}

// ContaHandler handles conta-related HTTP requests.
type ContaHandler struct {
	contaUC   ContaService
	listingUC ListingService
}

// NewContaHandler creates a new ContaHandler.
func NewContaHandler(contaUC ContaService, listingUC ListingService) *ContaHandler {
	return &ContaHandler{contaUC: contaUC, listingUC: listingUC}
}

// Create creates a new conta.
func (h *ContaHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeConta(w, r)
	if !ok {
		return
	}

	conta, err := h.contaUC.CreateConta(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, "failed to create conta", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ContaFromDomain(conta))
}

// Get retrieves a conta by ID.
func (h *ContaHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing conta ID", "")
		return
	}

	conta, err := h.contaUC.GetConta(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "failed to get conta", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ContaFromDomain(conta))
}

// List returns the filtered and sorted contas. The totals of the filtered
// set travel in response headers so the body stays a plain array.
func (h *ContaHandler) List(w http.ResponseWriter, r *http.Request) {
	input, err := dto.ParseListingQuery(r.URL.Query())
	if err != nil {
		writeDomainError(w, r, "invalid query", err)
		return
	}

	listing, err := h.listingUC.Listing(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, "failed to list contas", err)
		return
	}

	w.Header().Set("X-Total-Entradas", listing.Totals.Receivable.StringFixed(2))
	w.Header().Set("X-Total-Saidas", listing.Totals.Payable.StringFixed(2))
	w.Header().Set("X-Saldo", listing.Totals.Balance.StringFixed(2))

	writeJSON(w, http.StatusOK, dto.ContasFromDomain(listing.Contas))
}

// Update replaces a conta.
func (h *ContaHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing conta ID", "")
		return
	}

	req, ok := decodeConta(w, r)
	if !ok {
		return
	}

	conta, err := h.contaUC.UpdateConta(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, "failed to update conta", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ContaFromDomain(conta))
}

// Delete removes a conta.
func (h *ContaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing conta ID", "")
		return
	}

	if err := h.contaUC.DeleteConta(r.Context(), id); err != nil {
		writeDomainError(w, r, "failed to delete conta", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DeleteResponse{ID: id, Mensagem: "Conta removida com sucesso"})
}

func decodeConta(w http.ResponseWriter, r *http.Request) (*dto.ContaRequest, bool) {
	var req dto.ContaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return nil, false
	}

	if details := req.Validate(); len(details) > 0 {
		writeValidation(w, details)
		return nil, false
	}

	return &req, true
}
