/*
handlers.go - HTTP API handlers for the quote engine

PURPOSE:
  Exposes quote drafting, the client decision flow, fee evaluation, and
  contract generation via REST API. Handles HTTP request/response, JSON
  serialization, and delegates to domain logic.

ENDPOINTS:
  Quotes:
    GET    /api/quotes                  List all quotes
    POST   /api/quotes                  Draft a quote
    GET    /api/quotes/{id}             Get quote details
    PUT    /api/quotes/{id}             Edit quote (locked vars only while Drafted)
    DELETE /api/quotes/{id}             Delete quote
    GET    /api/quotes/{id}/evaluation  Fees + payment schedule preview
    PUT    /api/quotes/{id}/choices     Update client tier/plan/term
    POST   /api/quotes/{id}/send        Drafted -> Sent (locks variables)
    POST   /api/quotes/{id}/approve     Sent -> Approved
    POST   /api/quotes/{id}/decline     Sent -> Declined (+ reason)
    POST   /api/quotes/{id}/contracts   Approved -> Contract Generated

  Catalog:
    GET    /api/catalog                 Raw catalog document
    PUT    /api/catalog                 Replace catalog document

  Scenarios:
    GET    /api/scenarios               List demo scenarios
    POST   /api/scenarios/load          Load a demo scenario

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Database access (quote.Store)
  - Calendar: Injected clock/date arithmetic for schedule generation

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input and lifecycle state
  3. Call domain logic (calculators, status machine, contract assembler)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Quote or catalog not found
  - 409: Lifecycle conflicts (locked variables, illegal transition)
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/brightline/quote-engine/catalog"
	"github.com/brightline/quote-engine/contract"
	"github.com/brightline/quote-engine/pricing"
	"github.com/brightline/quote-engine/quote"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    quote.Store
	Calendar pricing.Calendar

	// ContractsDir is where generated document bundles land.
	// Defaults to ./contracts.
	ContractsDir string

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler with the given store and the system
// calendar.
func NewHandler(store quote.Store) *Handler {
	return &Handler{
		Store:    store,
		Calendar: pricing.NewSystemCalendar(),
	}
}

func (h *Handler) contractsDir() string {
	if h.ContractsDir != "" {
		return h.ContractsDir
	}
	return "contracts"
}

// loadCatalog reads and parses the stored catalog document. A missing
// document falls back to the built-in defaults so a fresh database still
// prices quotes.
func (h *Handler) loadCatalog(r *http.Request) (pricing.Catalog, catalog.CompanyInfoJSON, error) {
	raw, err := h.Store.GetCatalogDoc(r.Context())
	if errors.Is(err, quote.ErrCatalogNotFound) {
		doc := catalog.DefaultCatalog()
		return catalog.Build(doc), doc.CompanyInfo, nil
	}
	if err != nil {
		return pricing.Catalog{}, catalog.CompanyInfoJSON{}, err
	}
	return catalog.Parse(raw)
}

// =============================================================================
// QUOTE HANDLERS
// =============================================================================

// ListQuotes returns all quotes, newest first.
func (h *Handler) ListQuotes(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.Store.ListQuotes(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list quotes", err)
		return
	}

	dtos := make([]QuoteDTO, len(quotes))
	for i, q := range quotes {
		dtos[i] = toQuoteDTO(q)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetQuote returns a single quote.
func (h *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	q, ok := h.fetchQuote(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toQuoteDTO(q))
}

// CreateQuote drafts a new quote.
func (h *Handler) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var req CreateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.ClientName == "" {
		writeError(w, http.StatusBadRequest, "clientName is required", nil)
		return
	}
	model := quote.ServiceModel(req.ServiceModel)
	if !quote.ValidServiceModel(model) {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Unknown service model %q", req.ServiceModel), nil)
		return
	}

	q := &quote.Quote{
		ID:                 fmt.Sprintf("quote-%d", time.Now().UnixNano()),
		ClientName:         req.ClientName,
		ClientEmail:        req.ClientEmail,
		ClientLegalName:    req.ClientLegalName,
		ClientLegalAddress: req.ClientLegalAddress,
		ClientEntityType:   req.ClientEntityType,
		ProjectTitle:       req.ProjectTitle,
		ProjectScope:       req.ProjectScope,
		ServiceModel:       model,
		Status:             quote.StatusDrafted,
		Locked:             req.Locked,
		Choices:            req.Choices,
		FinalMonthlyFee:    decimal.NewFromFloat(req.FinalMonthlyFee),
		IncludedHours:      decimal.NewFromFloat(req.IncludedHours),
	}

	if err := h.Store.CreateQuote(r.Context(), q); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create quote", err)
		return
	}
	writeJSON(w, http.StatusCreated, toQuoteDTO(q))
}

// UpdateQuote edits a quote. Locked variables and maintenance terms are
// rejected once the quote leaves Drafted.
func (h *Handler) UpdateQuote(w http.ResponseWriter, r *http.Request) {
	q, ok := h.fetchQuote(w, r)
	if !ok {
		return
	}

	var req UpdateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	lockedEdit := req.Locked != nil || req.FinalMonthlyFee != nil || req.IncludedHours != nil
	if lockedEdit && q.IsLocked() {
		writeError(w, http.StatusConflict, "Quote variables are locked", quote.ErrQuoteLocked)
		return
	}

	if req.ClientName != nil {
		q.ClientName = *req.ClientName
	}
	if req.ClientEmail != nil {
		q.ClientEmail = *req.ClientEmail
	}
	if req.ClientLegalName != nil {
		q.ClientLegalName = *req.ClientLegalName
	}
	if req.ClientLegalAddress != nil {
		q.ClientLegalAddress = *req.ClientLegalAddress
	}
	if req.ClientEntityType != nil {
		q.ClientEntityType = *req.ClientEntityType
	}
	if req.ProjectTitle != nil {
		q.ProjectTitle = *req.ProjectTitle
	}
	if req.ProjectScope != nil {
		q.ProjectScope = *req.ProjectScope
	}
	if req.Locked != nil {
		q.Locked = *req.Locked
	}
	if req.FinalMonthlyFee != nil {
		q.FinalMonthlyFee = decimal.NewFromFloat(*req.FinalMonthlyFee)
	}
	if req.IncludedHours != nil {
		q.IncludedHours = decimal.NewFromFloat(*req.IncludedHours)
	}

	if err := h.Store.UpdateQuote(r.Context(), q); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update quote", err)
		return
	}
	writeJSON(w, http.StatusOK, toQuoteDTO(q))
}

// DeleteQuote removes a quote.
func (h *Handler) DeleteQuote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.Store.DeleteQuote(r.Context(), id)
	if errors.Is(err, quote.ErrQuoteNotFound) {
		writeError(w, http.StatusNotFound, "Quote not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete quote", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "deleted", "id": id})
}

// =============================================================================
// EVALUATION HANDLERS
// =============================================================================

// GetEvaluation returns the itemized fees and, for subscriptions, the
// payment schedule for a quote as currently configured.
func (h *Handler) GetEvaluation(w http.ResponseWriter, r *http.Request) {
	q, ok := h.fetchQuote(w, r)
	if !ok {
		return
	}

	cat, _, err := h.loadCatalog(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load catalog", err)
		return
	}

	ev, err := quote.Evaluate(q, cat, h.Calendar)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to evaluate quote", err)
		return
	}
	writeJSON(w, http.StatusOK, toEvaluationDTO(ev))
}

// UpdateChoices records the client's tier/plan/term selection. Choices stay
// editable through Sent; after a decision they are frozen.
func (h *Handler) UpdateChoices(w http.ResponseWriter, r *http.Request) {
	q, ok := h.fetchQuote(w, r)
	if !ok {
		return
	}
	if !q.ChoicesEditable() {
		writeError(w, http.StatusConflict, "Client choices are locked", quote.ErrChoicesLocked)
		return
	}

	var req UpdateChoicesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	q.Choices = req.Choices
	if err := h.Store.UpdateQuote(r.Context(), q); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update quote", err)
		return
	}
	writeJSON(w, http.StatusOK, toQuoteDTO(q))
}

// =============================================================================
// LIFECYCLE HANDLERS
// =============================================================================

// SendQuote moves Drafted -> Sent, freezing the locked variables.
func (h *Handler) SendQuote(w http.ResponseWriter, r *http.Request) {
	h.transitionQuote(w, r, quote.StatusSent, nil)
}

// ApproveQuote records the client's approval.
func (h *Handler) ApproveQuote(w http.ResponseWriter, r *http.Request) {
	h.transitionQuote(w, r, quote.StatusApproved, nil)
}

// DeclineQuote records the client's decline plus optional feedback.
func (h *Handler) DeclineQuote(w http.ResponseWriter, r *http.Request) {
	var req DeclineQuoteRequest
	// Body is optional; a decline without feedback is still a decline.
	if body, err := io.ReadAll(r.Body); err == nil && len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
	}

	h.transitionQuote(w, r, quote.StatusDeclined, func(q *quote.Quote) {
		q.DeclineReason = req.Reason
	})
}

// transitionQuote applies a status transition plus an optional mutation,
// then persists.
func (h *Handler) transitionQuote(w http.ResponseWriter, r *http.Request, to quote.Status, mutate func(*quote.Quote)) {
	q, ok := h.fetchQuote(w, r)
	if !ok {
		return
	}

	if err := q.Transition(to); err != nil {
		writeError(w, http.StatusConflict, "Illegal status transition", err)
		return
	}
	if mutate != nil {
		mutate(q)
	}

	if err := h.Store.UpdateQuote(r.Context(), q); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update quote", err)
		return
	}
	writeJSON(w, http.StatusOK, toQuoteDTO(q))
}

// =============================================================================
// CONTRACT HANDLERS
// =============================================================================

// GenerateContracts assembles the document set for an approved quote and
// records the outcome on the quote. A retry after Generation Failed is the
// same call.
func (h *Handler) GenerateContracts(w http.ResponseWriter, r *http.Request) {
	q, ok := h.fetchQuote(w, r)
	if !ok {
		return
	}

	if !quote.CanTransition(q.Status, quote.StatusContractGenerated) {
		writeError(w, http.StatusConflict, "Quote is not approved", quote.ErrInvalidTransition)
		return
	}

	cat, company, err := h.loadCatalog(r)
	if err != nil {
		h.recordGenerationFailure(w, r, q, err)
		return
	}

	ev, err := quote.Evaluate(q, cat, h.Calendar)
	if err != nil {
		h.recordGenerationFailure(w, r, q, err)
		return
	}

	now := time.Now()
	data := contract.BuildPlaceholders(q, company, ev, now)

	docs, err := contract.WriteDocuments(h.contractsDir(), q, data, now)
	if err != nil {
		h.recordGenerationFailure(w, r, q, err)
		return
	}

	q.ContractDocs = docs
	q.Status = quote.StatusContractGenerated
	if err := h.Store.UpdateQuote(r.Context(), q); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update quote", err)
		return
	}

	writeJSON(w, http.StatusOK, GenerateContractsResponse{
		Status:    string(q.Status),
		Documents: toContractDocDTOs(q.ContractDocs),
	})
}

// recordGenerationFailure marks the quote Generation Failed and reports the
// underlying error. The client may retry the same endpoint.
func (h *Handler) recordGenerationFailure(w http.ResponseWriter, r *http.Request, q *quote.Quote, cause error) {
	q.Status = quote.StatusGenerationFailed
	if err := h.Store.UpdateQuote(r.Context(), q); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update quote", err)
		return
	}
	writeError(w, http.StatusInternalServerError, "Contract generation failed", cause)
}

// =============================================================================
// CATALOG HANDLERS
// =============================================================================

// GetCatalog returns the raw catalog document, falling back to the built-in
// defaults when none is stored.
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	raw, err := h.Store.GetCatalogDoc(r.Context())
	if errors.Is(err, quote.ErrCatalogNotFound) {
		writeJSON(w, http.StatusOK, catalog.DefaultCatalog())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load catalog", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

// PutCatalog replaces the catalog document. The document must parse before
// it is stored; a bad catalog would break every open quote.
func (h *Handler) PutCatalog(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body", err)
		return
	}

	if _, _, err := catalog.Parse(raw); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid catalog document", err)
		return
	}

	if err := h.Store.PutCatalogDoc(r.Context(), raw); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store catalog", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "updated"})
}

// =============================================================================
// HELPERS
// =============================================================================

// fetchQuote loads the quote named in the URL, writing the error response
// itself on failure.
func (h *Handler) fetchQuote(w http.ResponseWriter, r *http.Request) (*quote.Quote, bool) {
	id := chi.URLParam(r, "id")
	q, err := h.Store.GetQuote(r.Context(), id)
	if errors.Is(err, quote.ErrQuoteNotFound) {
		writeError(w, http.StatusNotFound, "Quote not found", nil)
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get quote", err)
		return nil, false
	}
	return q, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
