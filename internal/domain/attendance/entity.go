package attendance

import "time"

// DayStatus is the classified outcome for one employee on one calendar day.
type DayStatus string

const (
	StatusPresent DayStatus = "present"
	StatusLate    DayStatus = "late"
	StatusAbsent  DayStatus = "absent"
	StatusLeave   DayStatus = "leave"
)

// DailyRecord is the derived attendance row for one employee and day. It is
// computed from the day's approved check-ins, never stored directly.
type DailyRecord struct {
	EmployeeID   string
	EmployeeCode string
	EmployeeName string
	Date         time.Time

	Status DayStatus

	FirstCheckin *time.Time
	LastCheckout *time.Time

	// WorkedHours is the span between the first approved check-in and the
	// last approved check-out, in hours. Zero when the status is absent or
	// leave, or when no check-out has been recorded yet.
	WorkedHours float64

	WorksiteID   *string
	WorksiteName *string
}

// LeaveEntry marks an employee as on approved leave for a date range,
// inclusive of both endpoints.
type LeaveEntry struct {
	ID         string
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	LeaveType  string
	Reason     *string
	CreatedAt  time.Time
}

// Covers reports whether the leave entry spans the given calendar day.
func (l *LeaveEntry) Covers(day time.Time) bool {
	d := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	start := time.Date(l.StartDate.Year(), l.StartDate.Month(), l.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(l.EndDate.Year(), l.EndDate.Month(), l.EndDate.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(start) && !d.After(end)
}
