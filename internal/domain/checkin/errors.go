package checkin

import (
	"errors"
	"fmt"
)

// Hard rejections. These surface before any attendance record is written.
var (
	ErrEmployeeIneligible = errors.New("employee is not eligible to check in")
	ErrWorksiteUnknown    = errors.New("worksite not found or inactive")
	ErrDuplicateCheckin   = errors.New("duplicate check-in for this day")
	ErrInvalidSequence    = errors.New("check-out requires a prior check-in today")
	ErrCheckinNotFound    = errors.New("check-in not found")
)

// OutOfRangeError rejects a scan outside the geofence at a worksite that
// does not allow remote check-ins. It carries the measured distance so the
// caller can tell the worker how far off they are.
type OutOfRangeError struct {
	DistanceMeters float64 // rounded to the nearest meter
	RadiusMeters   float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("location is %.0fm from the worksite, outside the %.0fm radius", e.DistanceMeters, e.RadiusMeters)
}

// IneligibleError wraps ErrEmployeeIneligible with the specific credential
// failure so the response can name it.
type IneligibleError struct {
	Reason string
}

func (e *IneligibleError) Error() string {
	return "employee is not eligible to check in: " + e.Reason
}

func (e *IneligibleError) Unwrap() error {
	return ErrEmployeeIneligible
}
