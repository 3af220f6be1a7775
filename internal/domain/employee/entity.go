package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID         string
	EmployeeID string // public EMP0001-style code
	FirstName  string
	LastName   string
	Email      *string
	Phone      *string

	Position     *string
	DepartmentID *string
	HourlyRate   *decimal.Decimal

	EmploymentType EmploymentType
	StartDate      *time.Time
	EndDate        *time.Time

	Status     Status
	CanCheckin bool

	// Site-safety credentials gating check-in eligibility.
	WhiteCardNumber          *string
	WhiteCardExpiry          *time.Time
	SafetyInductionCompleted bool
	SafetyInductionDate      *time.Time

	ProfilePhotoURL *string
	Notes           *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Status string

const (
	StatusActive     Status = "active"
	StatusInactive   Status = "inactive"
	StatusTerminated Status = "terminated"
)

type EmploymentType string

const (
	EmploymentTypeFullTime   EmploymentType = "full_time"
	EmploymentTypePartTime   EmploymentType = "part_time"
	EmploymentTypeCasual     EmploymentType = "casual"
	EmploymentTypeContractor EmploymentType = "contractor"
)

// FullName joins first and last name for display.
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// EligibleForCheckin reports whether the employee may check in on the given
// day. Any failure here is a hard rejection before geofence or time rules
// run: the employee must be active, permitted to check in, hold an unexpired
// White Card (when one is recorded) and have completed safety induction.
func (e *Employee) EligibleForCheckin(today time.Time) (bool, string) {
	if e.Status != StatusActive {
		return false, "employee is not active"
	}
	if !e.CanCheckin {
		return false, "employee is not permitted to check in"
	}
	if e.WhiteCardExpiry != nil {
		expiry := e.WhiteCardExpiry
		day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
		if expiry.Before(day) {
			return false, "white card has expired"
		}
	}
	if !e.SafetyInductionCompleted {
		return false, "safety induction has not been completed"
	}
	return true, ""
}
