package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/refund"
	"github.com/cmlabs-hris/payroll-exception-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type refundRepository struct {
	db *database.DB
}

func NewRefundRepository(db *database.DB) refund.Repository {
	return &refundRepository{db: db}
}

const refundColumns = `
	id, description, amount, employee_id, finance_staff_id,
	claim_id, dispute_id, paid_in_payroll_run_id, status,
	created_at, processed_at, updated_at
`

// Create inserts a new refund. Partial unique indexes on claim_id and
// dispute_id reject a second refund for the same source even under
// concurrent generation; the violation is surfaced as ErrRefundAlreadyExists.
func (r *refundRepository) Create(ctx context.Context, rf refund.Refund) (refund.Refund, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO refunds (id, description, amount, employee_id, finance_staff_id, claim_id, dispute_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + refundColumns

	var created refund.Refund
	err := q.QueryRow(ctx, query,
		rf.ID, rf.Description, rf.Amount, rf.EmployeeID, rf.FinanceStaffID,
		rf.ClaimID, rf.DisputeID, rf.Status,
	).Scan(
		&created.ID, &created.Description, &created.Amount, &created.EmployeeID,
		&created.FinanceStaffID, &created.ClaimID, &created.DisputeID,
		&created.PaidInPayrollRunID, &created.Status,
		&created.CreatedAt, &created.ProcessedAt, &created.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return refund.Refund{}, refund.ErrRefundAlreadyExists
		}
		return refund.Refund{}, fmt.Errorf("failed to create refund: %w", err)
	}

	return created, nil
}

func (r *refundRepository) GetByID(ctx context.Context, id string) (refund.Refund, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + refundColumns + ` FROM refunds WHERE id = $1`

	rf, err := scanRefund(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return refund.Refund{}, refund.ErrRefundNotFound
		}
		return refund.Refund{}, fmt.Errorf("failed to get refund: %w", err)
	}

	return rf, nil
}

func (r *refundRepository) GetByClaimID(ctx context.Context, claimID string) (*refund.Refund, error) {
	return r.getBySource(ctx, "claim_id", claimID)
}

func (r *refundRepository) GetByDisputeID(ctx context.Context, disputeID string) (*refund.Refund, error) {
	return r.getBySource(ctx, "dispute_id", disputeID)
}

func (r *refundRepository) getBySource(ctx context.Context, column, sourceID string) (*refund.Refund, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + refundColumns + ` FROM refunds WHERE ` + column + ` = $1`

	rf, err := scanRefund(q.QueryRow(ctx, query, sourceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get refund by %s: %w", column, err)
	}

	return &rf, nil
}

func (r *refundRepository) Transition(ctx context.Context, rf refund.Refund, from refund.Status) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE refunds
		SET status = $1, paid_in_payroll_run_id = $2, processed_at = $3, updated_at = NOW()
		WHERE id = $4 AND status = $5
	`

	tag, err := q.Exec(ctx, query,
		rf.Status, rf.PaidInPayrollRunID, rf.ProcessedAt,
		rf.ID, from,
	)
	if err != nil {
		return false, fmt.Errorf("failed to transition refund: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

func scanRefund(row pgx.Row) (refund.Refund, error) {
	var rf refund.Refund
	err := row.Scan(
		&rf.ID, &rf.Description, &rf.Amount, &rf.EmployeeID,
		&rf.FinanceStaffID, &rf.ClaimID, &rf.DisputeID,
		&rf.PaidInPayrollRunID, &rf.Status,
		&rf.CreatedAt, &rf.ProcessedAt, &rf.UpdatedAt,
	)
	return rf, err
}
