package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/claim"
	"github.com/cmlabs-hris/payroll-exception-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type claimRepository struct {
	db *database.DB
}

func NewClaimRepository(db *database.DB) claim.Repository {
	return &claimRepository{db: db}
}

const claimColumns = `
	id, employee_id, finance_staff_id, claim_type, amount, approved_amount,
	status, rejection_reason, resolution_comment,
	created_at, specialist_decided_at, confirmed_at, updated_at
`

func (r *claimRepository) Create(ctx context.Context, c claim.Claim) (claim.Claim, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO claims (id, employee_id, claim_type, amount, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + claimColumns

	var created claim.Claim
	err := q.QueryRow(ctx, query,
		c.ID, c.EmployeeID, c.ClaimType, c.Amount, c.Status,
	).Scan(
		&created.ID, &created.EmployeeID, &created.FinanceStaffID, &created.ClaimType,
		&created.Amount, &created.ApprovedAmount, &created.Status,
		&created.RejectionReason, &created.ResolutionComment,
		&created.CreatedAt, &created.SpecialistDecidedAt, &created.ConfirmedAt, &created.UpdatedAt,
	)
	if err != nil {
		return claim.Claim{}, fmt.Errorf("failed to create claim: %w", err)
	}

	return created, nil
}

func (r *claimRepository) GetByID(ctx context.Context, id string) (claim.Claim, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + claimColumns + ` FROM claims WHERE id = $1`

	var c claim.Claim
	err := q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.EmployeeID, &c.FinanceStaffID, &c.ClaimType,
		&c.Amount, &c.ApprovedAmount, &c.Status,
		&c.RejectionReason, &c.ResolutionComment,
		&c.CreatedAt, &c.SpecialistDecidedAt, &c.ConfirmedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return claim.Claim{}, claim.ErrClaimNotFound
		}
		return claim.Claim{}, fmt.Errorf("failed to get claim: %w", err)
	}

	return c, nil
}

// Transition updates the mutable fields, guarded on the status the caller
// read. RowsAffected distinguishes a lost race from a real write.
func (r *claimRepository) Transition(ctx context.Context, c claim.Claim, from claim.Status) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE claims
		SET finance_staff_id = $1, approved_amount = $2, status = $3,
			rejection_reason = $4, resolution_comment = $5,
			specialist_decided_at = $6, confirmed_at = $7, updated_at = NOW()
		WHERE id = $8 AND status = $9
	`

	tag, err := q.Exec(ctx, query,
		c.FinanceStaffID, c.ApprovedAmount, c.Status,
		c.RejectionReason, c.ResolutionComment,
		c.SpecialistDecidedAt, c.ConfirmedAt,
		c.ID, from,
	)
	if err != nil {
		return false, fmt.Errorf("failed to transition claim: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}
