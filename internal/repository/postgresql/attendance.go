package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-exception-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) ListByDateRange(ctx context.Context, from, to time.Time, employeeID *string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, punches, total_work_minutes,
			has_missed_punch, finalized_for_payroll, late_minutes, early_leave_minutes,
			created_at, updated_at
		FROM attendance_records
		WHERE date >= $1 AND date <= $2
			AND ($3::text IS NULL OR employee_id = $3)
		ORDER BY employee_id, date
	`

	rows, err := q.Query(ctx, query, from, to, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Date, &rec.Punches, &rec.TotalWorkMinutes,
			&rec.HasMissedPunch, &rec.FinalizedForPayroll, &rec.LateMinutes, &rec.EarlyLeaveMinutes,
			&rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance records: %w", err)
	}

	return records, nil
}
