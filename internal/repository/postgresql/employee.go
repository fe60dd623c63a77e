package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/scanpoint/attend-backend-go/internal/domain/employee"
	"github.com/scanpoint/attend-backend-go/internal/pkg/database"
)

type employeeDirectoryImpl struct {
	db *database.DB
}

func NewEmployeeDirectory(db *database.DB) employee.EmployeeDirectory {
	return &employeeDirectoryImpl{db: db}
}

const employeeColumns = `
	id, full_name, position, finger_id, is_active, created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.FullName, &emp.Position, &emp.FingerID,
		&emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// GetByID implements employee.EmployeeDirectory.
func (e *employeeDirectoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return emp, nil
}

// GetByFingerID implements employee.EmployeeDirectory.
func (e *employeeDirectoryImpl) GetByFingerID(ctx context.Context, fingerID int) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE finger_id = $1
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, fingerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by finger ID: %w", err)
	}

	return emp, nil
}

// UpdateFingerID implements employee.EmployeeDirectory.
func (e *employeeDirectoryImpl) UpdateFingerID(ctx context.Context, employeeID string, fingerID int) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET finger_id = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + employeeColumns

	emp, err := scanEmployee(q.QueryRow(ctx, query, fingerID, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.Employee{}, employee.ErrFingerIDTaken
		}
		return employee.Employee{}, fmt.Errorf("failed to update finger ID for employee %s: %w", employeeID, err)
	}

	return emp, nil
}

// List implements employee.EmployeeDirectory.
func (e *employeeDirectoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE is_active = TRUE
		ORDER BY full_name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var list []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}
		list = append(list, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// MaxAssignedFingerID implements employee.EmployeeDirectory. Soft-deleted
// rows are intentionally included so a freed slot is never reallocated.
func (e *employeeDirectoryImpl) MaxAssignedFingerID(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, e.db)

	var max int
	err := q.QueryRow(ctx, `SELECT COALESCE(MAX(finger_id), 0) FROM employees`).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("failed to get max assigned finger ID: %w", err)
	}

	return max, nil
}
