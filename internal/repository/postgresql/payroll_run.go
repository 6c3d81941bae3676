package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/payrollrun"
	"github.com/cmlabs-hris/payroll-exception-go/internal/pkg/database"
)

type payrollRunRegistry struct {
	db *database.DB
}

func NewPayrollRunRegistry(db *database.DB) payrollrun.Registry {
	return &payrollRunRegistry{db: db}
}

func (r *payrollRunRegistry) IsOpenRun(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS (SELECT 1 FROM payroll_runs WHERE id = $1 AND status = 'open')`

	var open bool
	if err := q.QueryRow(ctx, query, id).Scan(&open); err != nil {
		return false, fmt.Errorf("failed to check payroll run: %w", err)
	}

	return open, nil
}
