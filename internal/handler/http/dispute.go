package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/dispute"
	"github.com/cmlabs-hris/payroll-exception-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DisputeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Confirm(w http.ResponseWriter, r *http.Request)
}

type DisputeHandlerImpl struct {
	disputeService dispute.Service
}

func NewDisputeHandler(disputeService dispute.Service) DisputeHandler {
	return &DisputeHandlerImpl{disputeService: disputeService}
}

// Create implements DisputeHandler.
func (h *DisputeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req dispute.CreateDisputeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateDispute decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.disputeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Dispute submitted successfully", created)
}

// Get implements DisputeHandler.
func (h *DisputeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	disputeID := chi.URLParam(r, "id")
	if disputeID == "" {
		response.BadRequest(w, "Dispute ID is required", nil)
		return
	}

	d, err := h.disputeService.Get(r.Context(), disputeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, d)
}

// Approve implements DisputeHandler.
func (h *DisputeHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	var req dispute.ApproveBySpecialistRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ApproveDispute decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.DisputeID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	approved, err := h.disputeService.ApproveBySpecialist(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Dispute approved by specialist", approved)
}

// Reject implements DisputeHandler.
func (h *DisputeHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	var req dispute.RejectBySpecialistRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RejectDispute decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.DisputeID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	rejected, err := h.disputeService.RejectBySpecialist(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Dispute rejected by specialist", rejected)
}

// Confirm implements DisputeHandler.
func (h *DisputeHandlerImpl) Confirm(w http.ResponseWriter, r *http.Request) {
	var req dispute.ConfirmApprovalRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ConfirmDispute decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.DisputeID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	confirmed, err := h.disputeService.ConfirmApproval(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Dispute approval confirmed", confirmed)
}
