package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shiftwork/attendance-bot-go/internal/domain/employee"
	"github.com/shiftwork/attendance-bot-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	employee_no, chat_user_id, full_name, role,
	base_salary, position_allowance, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.EmployeeNo, &emp.ChatUserID, &emp.FullName, &emp.Role,
		&emp.BaseSalary, &emp.PositionAllowance, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// GetByChatUserID implements employee.Repository.
func (e *employeeRepository) GetByChatUserID(ctx context.Context, chatUserID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE chat_user_id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, chatUserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrNotRegistered
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by chat user ID: %w", err)
	}
	return emp, nil
}

// GetByEmployeeNo implements employee.Repository.
func (e *employeeRepository) GetByEmployeeNo(ctx context.Context, employeeNo string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_no = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, employeeNo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by number: %w", err)
	}
	return emp, nil
}

// ListApprovers implements employee.Repository.
func (e *employeeRepository) ListApprovers(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE role = $1 ORDER BY employee_no`

	rows, err := q.Query(ctx, query, string(employee.RoleAdmin))
	if err != nil {
		return nil, fmt.Errorf("failed to query approvers: %w", err)
	}
	defer rows.Close()

	var approvers []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		approvers = append(approvers, emp)
	}
	return approvers, rows.Err()
}
