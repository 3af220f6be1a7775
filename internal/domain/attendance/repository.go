package attendance

import (
	"context"
	"time"
)

type LeaveRepository interface {
	Create(ctx context.Context, entry LeaveEntry) (LeaveEntry, error)

	// ListForDate returns every leave entry whose range covers the day.
	ListForDate(ctx context.Context, date time.Time) ([]LeaveEntry, error)

	// ListForEmployeeInRange returns the employee's leave entries that
	// overlap [from, to].
	ListForEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) ([]LeaveEntry, error)

	Delete(ctx context.Context, id string) error
}
