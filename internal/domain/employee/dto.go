package employee

import (
	"strings"

	"github.com/buildforce/attendance-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	EmployeeID string  `json:"employee_id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`

	Position     *string `json:"position,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	HourlyRate   *string `json:"hourly_rate,omitempty"`

	EmploymentType string  `json:"employment_type,omitempty"`
	StartDate      *string `json:"start_date,omitempty"`

	CanCheckin bool `json:"can_checkin"`

	WhiteCardNumber          *string `json:"white_card_number,omitempty"`
	WhiteCardExpiry          *string `json:"white_card_expiry,omitempty"`
	SafetyInductionCompleted bool    `json:"safety_induction_completed"`
	SafetyInductionDate      *string `json:"safety_induction_date,omitempty"`

	Notes *string `json:"notes,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeCode(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must match the EMP0001 pattern",
		})
	}

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name is required",
		})
	}

	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{
			Field:   "last_name",
			Message: "last_name is required",
		})
	}

	if r.Email != nil && *r.Email != "" && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is not a valid address",
		})
	}

	if r.EmploymentType != "" {
		validTypes := []string{"full_time", "part_time", "casual", "contractor"}
		if !validator.IsInSlice(strings.ToLower(r.EmploymentType), validTypes) {
			errs = append(errs, validator.ValidationError{
				Field:   "employment_type",
				Message: "employment_type must be one of: full_time, part_time, casual, contractor",
			})
		}
	}

	for field, value := range map[string]*string{
		"start_date":            r.StartDate,
		"white_card_expiry":     r.WhiteCardExpiry,
		"safety_induction_date": r.SafetyInductionDate,
	} {
		if value != nil && *value != "" {
			if _, valid := validator.IsValidDate(*value); !valid {
				errs = append(errs, validator.ValidationError{
					Field:   field,
					Message: field + " must be in YYYY-MM-DD format",
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEmployeeRequest struct {
	ID        string  `json:"-"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`

	Position     *string `json:"position,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	HourlyRate   *string `json:"hourly_rate,omitempty"`

	Status     *string `json:"status,omitempty"`
	CanCheckin *bool   `json:"can_checkin,omitempty"`

	WhiteCardNumber          *string `json:"white_card_number,omitempty"`
	WhiteCardExpiry          *string `json:"white_card_expiry,omitempty"`
	SafetyInductionCompleted *bool   `json:"safety_induction_completed,omitempty"`

	Notes *string `json:"notes,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Email != nil && *r.Email != "" && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is not a valid address",
		})
	}

	if r.Status != nil {
		validStatuses := []string{"active", "inactive", "terminated"}
		if !validator.IsInSlice(strings.ToLower(*r.Status), validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: active, inactive, terminated",
			})
		}
	}

	if r.WhiteCardExpiry != nil && *r.WhiteCardExpiry != "" {
		if _, valid := validator.IsValidDate(*r.WhiteCardExpiry); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "white_card_expiry",
				Message: "white_card_expiry must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeFilter struct {
	Search       *string `json:"search,omitempty"` // name or employee code
	Status       *string `json:"status,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	CanCheckin   *bool   `json:"can_checkin,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil {
		validStatuses := []string{"active", "inactive", "terminated"}
		if !validator.IsInSlice(*f.Status, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: active, inactive, terminated",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	FullName   string  `json:"full_name"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`

	Position     *string `json:"position,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	HourlyRate   *string `json:"hourly_rate,omitempty"`

	EmploymentType string  `json:"employment_type"`
	StartDate      *string `json:"start_date,omitempty"`

	Status     string `json:"status"`
	CanCheckin bool   `json:"can_checkin"`

	WhiteCardNumber          *string `json:"white_card_number,omitempty"`
	WhiteCardExpiry          *string `json:"white_card_expiry,omitempty"`
	SafetyInductionCompleted bool    `json:"safety_induction_completed"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ListEmployeesResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Employees  []EmployeeResponse `json:"employees"`
}
