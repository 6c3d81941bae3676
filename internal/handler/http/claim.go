package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/claim"
	"github.com/cmlabs-hris/payroll-exception-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ClaimHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Confirm(w http.ResponseWriter, r *http.Request)
}

type ClaimHandlerImpl struct {
	claimService claim.Service
}

func NewClaimHandler(claimService claim.Service) ClaimHandler {
	return &ClaimHandlerImpl{claimService: claimService}
}

// Create implements ClaimHandler.
func (h *ClaimHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req claim.CreateClaimRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateClaim decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.claimService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Claim submitted successfully", created)
}

// Get implements ClaimHandler.
func (h *ClaimHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	claimID := chi.URLParam(r, "id")
	if claimID == "" {
		response.BadRequest(w, "Claim ID is required", nil)
		return
	}

	c, err := h.claimService.Get(r.Context(), claimID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, c)
}

// Approve implements ClaimHandler.
func (h *ClaimHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	var req claim.ApproveBySpecialistRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ApproveClaim decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ClaimID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	approved, err := h.claimService.ApproveBySpecialist(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Claim approved by specialist", approved)
}

// Reject implements ClaimHandler.
func (h *ClaimHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	var req claim.RejectBySpecialistRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RejectClaim decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ClaimID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	rejected, err := h.claimService.RejectBySpecialist(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Claim rejected by specialist", rejected)
}

// Confirm implements ClaimHandler.
func (h *ClaimHandlerImpl) Confirm(w http.ResponseWriter, r *http.Request) {
	var req claim.ConfirmApprovalRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ConfirmClaim decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ClaimID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	confirmed, err := h.claimService.ConfirmApproval(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Claim approval confirmed", confirmed)
}
