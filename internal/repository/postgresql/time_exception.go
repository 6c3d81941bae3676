package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/timeexception"
	"github.com/cmlabs-hris/payroll-exception-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type timeExceptionRepository struct {
	db *database.DB
}

func NewTimeExceptionRepository(db *database.DB) timeexception.Repository {
	return &timeExceptionRepository{db: db}
}

const timeExceptionColumns = `
	id, employee_id, exception_type, status, attendance_record_id,
	assigned_to, reason, created_at, updated_at
`

func (r *timeExceptionRepository) GetByID(ctx context.Context, id string) (timeexception.TimeException, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeExceptionColumns + ` FROM time_exceptions WHERE id = $1`

	var e timeexception.TimeException
	err := q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.EmployeeID, &e.Type, &e.Status, &e.AttendanceRecordID,
		&e.AssignedTo, &e.Reason, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeexception.TimeException{}, timeexception.ErrExceptionNotFound
		}
		return timeexception.TimeException{}, fmt.Errorf("failed to get time exception: %w", err)
	}

	return e, nil
}

func (r *timeExceptionRepository) ListCreatedInRange(ctx context.Context, from, to time.Time, employeeID *string) ([]timeexception.TimeException, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeExceptionColumns + `
		FROM time_exceptions
		WHERE created_at >= $1 AND created_at <= $2
			AND ($3::text IS NULL OR employee_id = $3)
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, from, to, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list time exceptions: %w", err)
	}
	defer rows.Close()

	return collectTimeExceptions(rows)
}

func (r *timeExceptionRepository) ListByStatusIn(ctx context.Context, statuses []timeexception.Status) ([]timeexception.TimeException, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeExceptionColumns + `
		FROM time_exceptions
		WHERE status = ANY($1)
		ORDER BY created_at
	`

	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}

	rows, err := q.Query(ctx, query, values)
	if err != nil {
		return nil, fmt.Errorf("failed to list time exceptions by status: %w", err)
	}
	defer rows.Close()

	return collectTimeExceptions(rows)
}

func (r *timeExceptionRepository) ListOrphanOvertime(ctx context.Context) ([]timeexception.TimeException, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeExceptionColumns + `
		FROM time_exceptions
		WHERE exception_type = $1 AND attendance_record_id IS NULL
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, timeexception.TypeOvertimeRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to list orphan overtime exceptions: %w", err)
	}
	defer rows.Close()

	return collectTimeExceptions(rows)
}

func (r *timeExceptionRepository) ListReferencingRecords(ctx context.Context, recordIDs []string) ([]timeexception.TimeException, error) {
	if len(recordIDs) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeExceptionColumns + `
		FROM time_exceptions
		WHERE attendance_record_id = ANY($1) AND status IN ('OPEN', 'PENDING')
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, recordIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list exceptions referencing records: %w", err)
	}
	defer rows.Close()

	return collectTimeExceptions(rows)
}

// Escalate appends the annotation to reason rather than replacing it, and is
// guarded on the status still being unresolved.
func (r *timeExceptionRepository) Escalate(ctx context.Context, id string, annotation string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_exceptions
		SET status = 'ESCALATED', reason = reason || $2, updated_at = NOW()
		WHERE id = $1 AND status IN ('OPEN', 'PENDING')
	`

	tag, err := q.Exec(ctx, query, id, annotation)
	if err != nil {
		return false, fmt.Errorf("failed to escalate time exception: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *timeExceptionRepository) CountByStatus(ctx context.Context) (map[timeexception.Status]int, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT status, COUNT(*) FROM time_exceptions GROUP BY status`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count time exceptions: %w", err)
	}
	defer rows.Close()

	counts := make(map[timeexception.Status]int)
	for rows.Next() {
		var status timeexception.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan exception count: %w", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read exception counts: %w", err)
	}

	return counts, nil
}

func collectTimeExceptions(rows pgx.Rows) ([]timeexception.TimeException, error) {
	var exceptions []timeexception.TimeException
	for rows.Next() {
		var e timeexception.TimeException
		if err := rows.Scan(
			&e.ID, &e.EmployeeID, &e.Type, &e.Status, &e.AttendanceRecordID,
			&e.AssignedTo, &e.Reason, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan time exception: %w", err)
		}
		exceptions = append(exceptions, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read time exceptions: %w", err)
	}

	return exceptions, nil
}
