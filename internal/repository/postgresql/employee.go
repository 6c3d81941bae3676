package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-exception-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, base_salary, department_id, status, is_manager
		FROM employees
		WHERE id = $1
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.FullName, &e.BaseSalary, &e.DepartmentID, &e.Status, &e.IsManager,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) ListManagers(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, base_salary, department_id, status, is_manager
		FROM employees
		WHERE is_manager AND status = 'active'
		ORDER BY id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list managers: %w", err)
	}
	defer rows.Close()

	var managers []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.ID, &e.FullName, &e.BaseSalary, &e.DepartmentID, &e.Status, &e.IsManager,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		managers = append(managers, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read managers: %w", err)
	}

	return managers, nil
}
