package datapackage

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/datapackage"
)

// regularMinutesPerDay is the boundary between regular and overtime minutes
// on a single attendance record.
const regularMinutesPerDay = 480

type DataPackageServiceImpl struct {
	attendanceRepo     attendance.Repository
	overtimeBonusHours int
}

func NewDataPackageService(attendanceRepo attendance.Repository, overtimeBonusHours int) datapackage.Service {
	return &DataPackageServiceImpl{
		attendanceRepo:     attendanceRepo,
		overtimeBonusHours: overtimeBonusHours,
	}
}

// BuildPayrollView implements datapackage.Service.
func (s *DataPackageServiceImpl) BuildPayrollView(ctx context.Context, from, to time.Time) (datapackage.PayrollView, error) {
	records, err := s.loadRecords(ctx, from, to)
	if err != nil {
		return datapackage.PayrollView{}, err
	}

	byEmployee := make(map[string]*datapackage.EmployeePayrollSummary)
	for _, rec := range records {
		summary := byEmployee[rec.EmployeeID]
		if summary == nil {
			summary = &datapackage.EmployeePayrollSummary{EmployeeID: rec.EmployeeID}
			byEmployee[rec.EmployeeID] = summary
		}

		regular, overtime := splitMinutes(rec.WorkMinutes())
		summary.RegularMinutes += regular
		summary.OvertimeMinutes += overtime
		if rec.IsLate() {
			summary.LateDays++
		}
		if rec.HasMissedPunch {
			summary.MissedPunchDays++
		}
	}

	employees := make([]datapackage.EmployeePayrollSummary, 0, len(byEmployee))
	for _, summary := range byEmployee {
		employees = append(employees, *summary)
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].EmployeeID < employees[j].EmployeeID })

	return datapackage.PayrollView{From: from, To: to, Employees: employees}, nil
}

// BuildLeaveView implements datapackage.Service. The leave module infers
// absence-vs-leave by exclusion, so the view is just the dates present.
func (s *DataPackageServiceImpl) BuildLeaveView(ctx context.Context, from, to time.Time) (datapackage.LeaveView, error) {
	records, err := s.loadRecords(ctx, from, to)
	if err != nil {
		return datapackage.LeaveView{}, err
	}

	byEmployee := make(map[string]map[string]bool)
	for _, rec := range records {
		if byEmployee[rec.EmployeeID] == nil {
			byEmployee[rec.EmployeeID] = make(map[string]bool)
		}
		byEmployee[rec.EmployeeID][rec.Date.Format("2006-01-02")] = true
	}

	employees := make([]datapackage.EmployeeAttendanceDates, 0, len(byEmployee))
	for employeeID, dateSet := range byEmployee {
		dates := make([]string, 0, len(dateSet))
		for date := range dateSet {
			dates = append(dates, date)
		}
		sort.Strings(dates)
		employees = append(employees, datapackage.EmployeeAttendanceDates{
			EmployeeID: employeeID,
			Dates:      dates,
		})
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].EmployeeID < employees[j].EmployeeID })

	return datapackage.LeaveView{From: from, To: to, Employees: employees}, nil
}

// BuildBenefitsView implements datapackage.Service. A perfect attendance day
// has no lateness, no early leave, and no missed punch.
func (s *DataPackageServiceImpl) BuildBenefitsView(ctx context.Context, from, to time.Time) (datapackage.BenefitsView, error) {
	records, err := s.loadRecords(ctx, from, to)
	if err != nil {
		return datapackage.BenefitsView{}, err
	}

	type benefitsAccum struct {
		totalMinutes    int
		overtimeMinutes int
		perfectDays     int
		totalDays       int
	}

	byEmployee := make(map[string]*benefitsAccum)
	for _, rec := range records {
		accum := byEmployee[rec.EmployeeID]
		if accum == nil {
			accum = &benefitsAccum{}
			byEmployee[rec.EmployeeID] = accum
		}

		_, overtime := splitMinutes(rec.WorkMinutes())
		accum.totalMinutes += rec.WorkMinutes()
		accum.overtimeMinutes += overtime
		accum.totalDays++
		if !rec.IsLate() && !rec.IsEarlyLeave() && !rec.HasMissedPunch {
			accum.perfectDays++
		}
	}

	employeeIDs := make([]string, 0, len(byEmployee))
	for employeeID := range byEmployee {
		employeeIDs = append(employeeIDs, employeeID)
	}
	sort.Strings(employeeIDs)

	view := datapackage.BenefitsView{
		From:                      from,
		To:                        to,
		Employees:                 make([]datapackage.EmployeeBenefitsSummary, 0, len(employeeIDs)),
		OvertimeBonusEligible:     []string{},
		PerfectAttendanceEligible: []string{},
	}

	for _, employeeID := range employeeIDs {
		accum := byEmployee[employeeID]
		overtimeHours := float64(accum.overtimeMinutes) / 60.0
		view.Employees = append(view.Employees, datapackage.EmployeeBenefitsSummary{
			EmployeeID:            employeeID,
			TotalHours:            float64(accum.totalMinutes) / 60.0,
			OvertimeHours:         overtimeHours,
			PerfectAttendanceDays: accum.perfectDays,
		})

		if overtimeHours >= float64(s.overtimeBonusHours) {
			view.OvertimeBonusEligible = append(view.OvertimeBonusEligible, employeeID)
		}
		if accum.totalDays > 0 && accum.perfectDays == accum.totalDays {
			view.PerfectAttendanceEligible = append(view.PerfectAttendanceEligible, employeeID)
		}
	}

	return view, nil
}

func (s *DataPackageServiceImpl) loadRecords(ctx context.Context, from, to time.Time) ([]attendance.Record, error) {
	records, err := s.attendanceRepo.ListByDateRange(ctx, from, to, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance records: %w", err)
	}
	return records, nil
}

func splitMinutes(workMinutes int) (regular, overtime int) {
	if workMinutes <= regularMinutesPerDay {
		return workMinutes, 0
	}
	return regularMinutesPerDay, workMinutes - regularMinutesPerDay
}
