package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/readiness"
	"github.com/cmlabs-hris/payroll-exception-go/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-exception-go/internal/pkg/validator"
)

type ReadinessHandler interface {
	Validate(w http.ResponseWriter, r *http.Request)
	CheckConsistency(w http.ResponseWriter, r *http.Request)
}

type ReadinessHandlerImpl struct {
	readinessService readiness.Service
}

func NewReadinessHandler(readinessService readiness.Service) ReadinessHandler {
	return &ReadinessHandlerImpl{readinessService: readinessService}
}

// Validate implements ReadinessHandler.
func (h *ReadinessHandlerImpl) Validate(w http.ResponseWriter, r *http.Request) {
	rng, err := parseRange(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	report, err := h.readinessService.Validate(r.Context(), rng)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}

// CheckConsistency implements ReadinessHandler.
func (h *ReadinessHandlerImpl) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	rng, err := parseRange(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	report, err := h.readinessService.CheckConsistency(r.Context(), rng)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}

func parseRange(r *http.Request) (readiness.Range, error) {
	from, to, err := parseDateRange(r)
	if err != nil {
		return readiness.Range{}, err
	}

	rng := readiness.Range{From: from, To: to}
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		rng.EmployeeID = &employeeID
	}

	return rng, nil
}

// parseDateRange reads the from/to query params shared by the readiness and
// data-package endpoints. The upper bound is made inclusive of the whole day.
func parseDateRange(r *http.Request) (time.Time, time.Time, error) {
	from, ok := validator.IsValidDate(r.URL.Query().Get("from"))
	if !ok {
		return time.Time{}, time.Time{}, errInvalidFrom
	}
	to, ok := validator.IsValidDate(r.URL.Query().Get("to"))
	if !ok {
		return time.Time{}, time.Time{}, errInvalidTo
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, errRangeReversed
	}

	return from, to.Add(24*time.Hour - time.Nanosecond), nil
}
