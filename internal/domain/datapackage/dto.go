package datapackage

import (
	"context"
	"time"
)

// EmployeePayrollSummary splits an employee's minutes into regular and
// overtime at 480 minutes per day, with the counters payroll deducts from.
type EmployeePayrollSummary struct {
	EmployeeID      string `json:"employee_id"`
	RegularMinutes  int    `json:"regular_minutes"`
	OvertimeMinutes int    `json:"overtime_minutes"`
	LateDays        int    `json:"late_days"`
	MissedPunchDays int    `json:"missed_punch_days"`
}

type PayrollView struct {
	From      time.Time                `json:"from"`
	To        time.Time                `json:"to"`
	Employees []EmployeePayrollSummary `json:"employees"`
}

// EmployeeAttendanceDates lists the calendar dates an employee has an
// attendance record for; the leave module infers absence by exclusion.
type EmployeeAttendanceDates struct {
	EmployeeID string   `json:"employee_id"`
	Dates      []string `json:"dates"`
}

type LeaveView struct {
	From      time.Time                 `json:"from"`
	To        time.Time                 `json:"to"`
	Employees []EmployeeAttendanceDates `json:"employees"`
}

// EmployeeBenefitsSummary aggregates hours and perfect-attendance days for
// the benefits module's bonus cohorts.
type EmployeeBenefitsSummary struct {
	EmployeeID            string  `json:"employee_id"`
	TotalHours            float64 `json:"total_hours"`
	OvertimeHours         float64 `json:"overtime_hours"`
	PerfectAttendanceDays int     `json:"perfect_attendance_days"`
}

type BenefitsView struct {
	From                      time.Time                 `json:"from"`
	To                        time.Time                 `json:"to"`
	Employees                 []EmployeeBenefitsSummary `json:"employees"`
	OvertimeBonusEligible     []string                  `json:"overtime_bonus_eligible"`
	PerfectAttendanceEligible []string                  `json:"perfect_attendance_eligible"`
}

// Service builds the three read-only downstream views from the same
// attendance input set. Pure aggregation: no writes, deterministic output
// for identical inputs.
type Service interface {
	BuildPayrollView(ctx context.Context, from, to time.Time) (PayrollView, error)
	BuildLeaveView(ctx context.Context, from, to time.Time) (LeaveView, error)
	BuildBenefitsView(ctx context.Context, from, to time.Time) (BenefitsView, error)
}
