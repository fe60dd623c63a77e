package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/scanpoint/attend-backend-go/internal/domain/attendance"
	"github.com/scanpoint/attend-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.check_in, a.check_out,
	a.status, a.work_hours, a.created_at, a.updated_at,
	e.full_name AS employee_name,
	e.position AS employee_position
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.CheckIn, &att.CheckOut,
		&att.Status, &att.WorkHours, &att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeName, &att.EmployeePosition,
	)
	return att, err
}

// FindByEmployeeAndDay implements attendance.AttendanceRepository.
// Most recently created first keeps the lookup deterministic even if
// the uniqueness constraint is ever violated out-of-band.
func (a *attendanceRepository) FindByEmployeeAndDay(ctx context.Context, employeeID string, day string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1
		  AND a.date = $2
		ORDER BY a.created_at DESC
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, day))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No record for this day
		}
		return nil, fmt.Errorf("failed to get attendance by employee and day: %w", err)
	}

	return &att, nil
}

// Insert implements attendance.AttendanceRepository. The unique index
// on (employee_id, date) is the idempotency enforcement for concurrent
// same-day check-ins; a violation comes back as ErrDuplicateRecord.
func (a *attendanceRepository) Insert(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			employee_id, date, check_in, check_out, status, work_hours
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.EmployeeID,
		att.Date,
		att.CheckIn,
		att.CheckOut,
		att.Status,
		att.WorkHours,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Attendance{}, attendance.ErrDuplicateRecord
		}
		return attendance.Attendance{}, fmt.Errorf("failed to insert attendance: %w", err)
	}

	return att, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_out = $1, work_hours = $2, status = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, att.CheckOut, att.WorkHours, att.Status, att.ID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to update attendance: %w", err)
	}

	return nil
}

func (a *attendanceRepository) list(ctx context.Context, where string, orderBy string, args ...any) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		` + where + `
		ORDER BY ` + orderBy

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var list []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		list = append(list, att)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context) ([]attendance.Attendance, error) {
	return a.list(ctx, "", "a.check_in DESC NULLS LAST")
}

// ListCheckIns implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListCheckIns(ctx context.Context) ([]attendance.Attendance, error) {
	return a.list(ctx, "WHERE a.check_in IS NOT NULL", "a.check_in DESC")
}

// ListCheckOuts implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListCheckOuts(ctx context.Context) ([]attendance.Attendance, error) {
	return a.list(ctx, "WHERE a.check_out IS NOT NULL", "a.check_out DESC")
}

// ListByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	return a.list(ctx, "WHERE a.employee_id = $1", "a.check_in DESC NULLS LAST", employeeID)
}
