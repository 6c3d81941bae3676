package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/payroll-exception-go/internal/config"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/cutoff"
	"github.com/cmlabs-hris/payroll-exception-go/internal/handler/http/response"
)

type CutoffHandler interface {
	ReadinessStatus(w http.ResponseWriter, r *http.Request)
	AutoEscalate(w http.ResponseWriter, r *http.Request)
	SendReminders(w http.ResponseWriter, r *http.Request)
}

type CutoffHandlerImpl struct {
	cutoffService cutoff.Service
	cfg           config.CutoffConfig
}

func NewCutoffHandler(cutoffService cutoff.Service, cfg config.CutoffConfig) CutoffHandler {
	return &CutoffHandlerImpl{cutoffService: cutoffService, cfg: cfg}
}

// ReadinessStatus implements CutoffHandler.
func (h *CutoffHandlerImpl) ReadinessStatus(w http.ResponseWriter, r *http.Request) {
	cutoffDate := h.cutoffService.NextCutoffDate(time.Now())

	status, err := h.cutoffService.ReadinessStatus(r.Context(), cutoffDate)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// AutoEscalate implements CutoffHandler.
func (h *CutoffHandlerImpl) AutoEscalate(w http.ResponseWriter, r *http.Request) {
	cutoffDate := h.cutoffService.NextCutoffDate(time.Now())

	result, err := h.cutoffService.AutoEscalate(r.Context(), cutoffDate, h.cfg.EscalationDaysBefore, h.cfg.NotifyManagers)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, result.Message, result)
}

// SendReminders implements CutoffHandler.
func (h *CutoffHandlerImpl) SendReminders(w http.ResponseWriter, r *http.Request) {
	cutoffDate := h.cutoffService.NextCutoffDate(time.Now())

	result, err := h.cutoffService.SendCutoffReminders(r.Context(), cutoffDate, h.cfg.ReminderDaysBefore)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
