package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/dispute"
	"github.com/cmlabs-hris/payroll-exception-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type disputeRepository struct {
	db *database.DB
}

func NewDisputeRepository(db *database.DB) dispute.Repository {
	return &disputeRepository{db: db}
}

const disputeColumns = `
	id, employee_id, payslip_id, finance_staff_id, description,
	status, rejection_reason, resolution_comment,
	created_at, specialist_decided_at, confirmed_at, updated_at
`

func (r *disputeRepository) Create(ctx context.Context, d dispute.Dispute) (dispute.Dispute, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO disputes (id, employee_id, payslip_id, description, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + disputeColumns

	var created dispute.Dispute
	err := q.QueryRow(ctx, query,
		d.ID, d.EmployeeID, d.PayslipID, d.Description, d.Status,
	).Scan(
		&created.ID, &created.EmployeeID, &created.PayslipID, &created.FinanceStaffID,
		&created.Description, &created.Status,
		&created.RejectionReason, &created.ResolutionComment,
		&created.CreatedAt, &created.SpecialistDecidedAt, &created.ConfirmedAt, &created.UpdatedAt,
	)
	if err != nil {
		return dispute.Dispute{}, fmt.Errorf("failed to create dispute: %w", err)
	}

	return created, nil
}

func (r *disputeRepository) GetByID(ctx context.Context, id string) (dispute.Dispute, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + disputeColumns + ` FROM disputes WHERE id = $1`

	var d dispute.Dispute
	err := q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.EmployeeID, &d.PayslipID, &d.FinanceStaffID,
		&d.Description, &d.Status,
		&d.RejectionReason, &d.ResolutionComment,
		&d.CreatedAt, &d.SpecialistDecidedAt, &d.ConfirmedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dispute.Dispute{}, dispute.ErrDisputeNotFound
		}
		return dispute.Dispute{}, fmt.Errorf("failed to get dispute: %w", err)
	}

	return d, nil
}

func (r *disputeRepository) Transition(ctx context.Context, d dispute.Dispute, from dispute.Status) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE disputes
		SET finance_staff_id = $1, status = $2,
			rejection_reason = $3, resolution_comment = $4,
			specialist_decided_at = $5, confirmed_at = $6, updated_at = NOW()
		WHERE id = $7 AND status = $8
	`

	tag, err := q.Exec(ctx, query,
		d.FinanceStaffID, d.Status,
		d.RejectionReason, d.ResolutionComment,
		d.SpecialistDecidedAt, d.ConfirmedAt,
		d.ID, from,
	)
	if err != nil {
		return false, fmt.Errorf("failed to transition dispute: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}
