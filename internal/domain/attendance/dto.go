package attendance

import (
	"github.com/buildforce/attendance-backend-go/internal/pkg/validator"
)

type DailyAttendanceRequest struct {
	Date       string  `json:"date"`
	WorksiteID *string `json:"worksite_id,omitempty"` // internal UUID
}

func (r *DailyAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != "" {
		if _, valid := validator.IsValidDate(r.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DailyRecordResponse struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Date         string `json:"date"`
	Status       string `json:"status"`

	FirstCheckin *string `json:"first_checkin,omitempty"`
	LastCheckout *string `json:"last_checkout,omitempty"`
	WorkedHours  float64 `json:"worked_hours"`

	WorksiteName *string `json:"worksite_name,omitempty"`
}

type DailyAttendanceResponse struct {
	Date    string                `json:"date"`
	Records []DailyRecordResponse `json:"records"`
	Summary DailySummary          `json:"summary"`
}

// DailySummary aggregates one day's classification counts for the dashboard.
type DailySummary struct {
	TotalEmployees int64 `json:"total_employees"`
	Present        int64 `json:"present"`
	Late           int64 `json:"late"`
	Absent         int64 `json:"absent"`
	OnLeave        int64 `json:"on_leave"`
	Suspicious     int64 `json:"suspicious"`
}

type RangeAttendanceRequest struct {
	EmployeeID string `json:"-"` // internal UUID, from the path or employee_id query
	DateFrom   string `json:"date_from"`
	DateTo     string `json:"date_to"`
}

func (r *RangeAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	from, fromOK := validator.IsValidDate(r.DateFrom)
	if !fromOK {
		errs = append(errs, validator.ValidationError{
			Field:   "date_from",
			Message: "date_from must be in YYYY-MM-DD format",
		})
	}

	to, toOK := validator.IsValidDate(r.DateTo)
	if !toOK {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: "date_to must be in YYYY-MM-DD format",
		})
	}

	if fromOK && toOK && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: "date_to must not be before date_from",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RangeAttendanceResponse struct {
	EmployeeID string                `json:"employee_id"`
	DateFrom   string                `json:"date_from"`
	DateTo     string                `json:"date_to"`
	Records    []DailyRecordResponse `json:"records"`

	TotalWorkedHours float64 `json:"total_worked_hours"`
	DaysPresent      int     `json:"days_present"`
	DaysLate         int     `json:"days_late"`
	DaysAbsent       int     `json:"days_absent"`
	DaysOnLeave      int     `json:"days_on_leave"`
}

type CreateLeaveRequest struct {
	EmployeeID string  `json:"employee_id"` // public EMP0001-style code
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	LeaveType  string  `json:"leave_type"`
	Reason     *string `json:"reason,omitempty"`
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeCode(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must match the EMP0001 pattern",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	validTypes := []string{"annual", "sick", "personal", "unpaid"}
	if !validator.IsInSlice(r.LeaveType, validTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: annual, sick, personal, unpaid",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	LeaveType  string  `json:"leave_type"`
	Reason     *string `json:"reason,omitempty"`
	CreatedAt  string  `json:"created_at"`
}
