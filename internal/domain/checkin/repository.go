package checkin

import (
	"context"
	"time"
)

type CheckinRepository interface {
	// Create inserts the record. A unique index on
	// (employee_id, checkin_type, date) backs the duplicate guard; the
	// implementation maps a unique violation to ErrDuplicateCheckin.
	Create(ctx context.Context, c CheckIn) (CheckIn, error)

	GetByID(ctx context.Context, id string) (CheckIn, error)

	// ListForEmployeeOnDate returns all of the employee's check-ins for one
	// worksite-local calendar day, ordered by checkin_time ascending.
	ListForEmployeeOnDate(ctx context.Context, employeeID string, date time.Time) ([]CheckIn, error)

	List(ctx context.Context, filter CheckinFilter) ([]CheckIn, int64, error)

	// ListForDate returns every check-in whose local date matches, used by
	// daily attendance classification.
	ListForDate(ctx context.Context, date time.Time) ([]CheckIn, error)

	UpdateStatus(ctx context.Context, id string, status Status, adminNotes *string) error

	// CountByStatus returns per-status counts for one local day.
	CountByStatus(ctx context.Context, date time.Time) (map[Status]int64, error)

	CountSuspiciousForDate(ctx context.Context, date time.Time) (int64, error)
}
