package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/correction"
	"github.com/cmlabs-hris/payroll-exception-go/internal/pkg/database"
)

type correctionRepository struct {
	db *database.DB
}

func NewCorrectionRepository(db *database.DB) correction.Repository {
	return &correctionRepository{db: db}
}

func (r *correctionRepository) ListUnresolvedInRange(ctx context.Context, from, to time.Time) ([]correction.Correction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, attendance_record_id, status, requested_at
		FROM attendance_corrections
		WHERE status IN ('SUBMITTED', 'IN_REVIEW')
			AND requested_at >= $1 AND requested_at <= $2
		ORDER BY requested_at
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list corrections: %w", err)
	}
	defer rows.Close()

	var corrections []correction.Correction
	for rows.Next() {
		var c correction.Correction
		if err := rows.Scan(
			&c.ID, &c.EmployeeID, &c.AttendanceRecordID, &c.Status, &c.RequestedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan correction: %w", err)
		}
		corrections = append(corrections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corrections: %w", err)
	}

	return corrections, nil
}
