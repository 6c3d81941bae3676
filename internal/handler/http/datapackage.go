package http

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/datapackage"
	"github.com/cmlabs-hris/payroll-exception-go/internal/handler/http/response"
)

type DataPackageHandler interface {
	PayrollView(w http.ResponseWriter, r *http.Request)
	LeaveView(w http.ResponseWriter, r *http.Request)
	BenefitsView(w http.ResponseWriter, r *http.Request)
}

type DataPackageHandlerImpl struct {
	packageService datapackage.Service
}

func NewDataPackageHandler(packageService datapackage.Service) DataPackageHandler {
	return &DataPackageHandlerImpl{packageService: packageService}
}

// PayrollView implements DataPackageHandler.
func (h *DataPackageHandlerImpl) PayrollView(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	view, err := h.packageService.BuildPayrollView(r.Context(), from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, view)
}

// LeaveView implements DataPackageHandler.
func (h *DataPackageHandlerImpl) LeaveView(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	view, err := h.packageService.BuildLeaveView(r.Context(), from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, view)
}

// BenefitsView implements DataPackageHandler.
func (h *DataPackageHandlerImpl) BenefitsView(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	view, err := h.packageService.BuildBenefitsView(r.Context(), from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, view)
}
