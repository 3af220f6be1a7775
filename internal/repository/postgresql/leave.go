package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/buildforce/attendance-backend-go/internal/domain/attendance"
	"github.com/buildforce/attendance-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) attendance.LeaveRepository {
	return &leaveRepository{db: db}
}

const leaveColumns = `
	id, employee_id, start_date, end_date, leave_type, reason, created_at
`

// Create implements attendance.LeaveRepository.
func (r *leaveRepository) Create(ctx context.Context, entry attendance.LeaveEntry) (attendance.LeaveEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_entries (id, employee_id, start_date, end_date, leave_type, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		entry.ID, entry.EmployeeID, entry.StartDate, entry.EndDate, entry.LeaveType, entry.Reason,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return attendance.LeaveEntry{}, fmt.Errorf("failed to create leave entry: %w", err)
	}

	return entry, nil
}

// ListForDate implements attendance.LeaveRepository.
func (r *leaveRepository) ListForDate(ctx context.Context, date time.Time) ([]attendance.LeaveEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + leaveColumns + `
		FROM leave_entries
		WHERE start_date <= $1 AND end_date >= $1`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave entries: %w", err)
	}
	defer rows.Close()

	return collectLeaveEntries(rows)
}

// ListForEmployeeInRange implements attendance.LeaveRepository.
func (r *leaveRepository) ListForEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.LeaveEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + leaveColumns + `
		FROM leave_entries
		WHERE employee_id = $1 AND start_date <= $2 AND end_date >= $3`

	rows, err := q.Query(ctx, query, employeeID, to, from)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave entries: %w", err)
	}
	defer rows.Close()

	return collectLeaveEntries(rows)
}

// Delete implements attendance.LeaveRepository.
func (r *leaveRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrLeaveNotFound
	}

	return nil
}

func collectLeaveEntries(rows pgx.Rows) ([]attendance.LeaveEntry, error) {
	var entries []attendance.LeaveEntry
	for rows.Next() {
		var entry attendance.LeaveEntry
		if err := rows.Scan(
			&entry.ID, &entry.EmployeeID, &entry.StartDate, &entry.EndDate,
			&entry.LeaveType, &entry.Reason, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leave entries: %w", err)
	}
	return entries, nil
}
