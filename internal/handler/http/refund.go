package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/refund"
	"github.com/cmlabs-hris/payroll-exception-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type RefundHandler interface {
	GenerateForClaim(w http.ResponseWriter, r *http.Request)
	GenerateForDispute(w http.ResponseWriter, r *http.Request)
	CreateDirect(w http.ResponseWriter, r *http.Request)
	Process(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type RefundHandlerImpl struct {
	refundService refund.Service
}

func NewRefundHandler(refundService refund.Service) RefundHandler {
	return &RefundHandlerImpl{refundService: refundService}
}

// GenerateForClaim implements RefundHandler.
func (h *RefundHandlerImpl) GenerateForClaim(w http.ResponseWriter, r *http.Request) {
	var req refund.GenerateForClaimRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("GenerateRefundForClaim decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ClaimID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.refundService.GenerateForClaim(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Refund generated from claim", created)
}

// GenerateForDispute implements RefundHandler.
func (h *RefundHandlerImpl) GenerateForDispute(w http.ResponseWriter, r *http.Request) {
	var req refund.GenerateForDisputeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("GenerateRefundForDispute decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.DisputeID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.refundService.GenerateForDispute(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Refund generated from dispute", created)
}

// CreateDirect implements RefundHandler.
func (h *RefundHandlerImpl) CreateDirect(w http.ResponseWriter, r *http.Request) {
	var req refund.CreateDirectRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateDirectRefund decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.refundService.CreateDirect(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Refund created", created)
}

// Process implements RefundHandler.
func (h *RefundHandlerImpl) Process(w http.ResponseWriter, r *http.Request) {
	var req refund.ProcessRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ProcessRefund decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RefundID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	processed, err := h.refundService.Process(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Refund processed into payroll run", processed)
}

// Get implements RefundHandler.
func (h *RefundHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	refundID := chi.URLParam(r, "id")
	if refundID == "" {
		response.BadRequest(w, "Refund ID is required", nil)
		return
	}

	rf, err := h.refundService.Get(r.Context(), refundID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rf)
}
