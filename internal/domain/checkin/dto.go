package checkin

import (
	"strings"

	"github.com/buildforce/attendance-backend-go/internal/pkg/validator"
)

type CreateCheckinRequest struct {
	EmployeeID string `json:"employee_id"` // public EMP0001-style code
	WorksiteID string `json:"worksite_id"` // public SITE001-style code
	Type       string `json:"checkin_type"`

	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	GPSAccuracy *float64 `json:"gps_accuracy,omitempty"`

	PhotoURL  *string `json:"photo_url,omitempty"`
	DeviceID  *string `json:"device_id,omitempty"`
	IPAddress *string `json:"-"`
	UserAgent *string `json:"-"`
}

func (r *CreateCheckinRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeCode(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must match the EMP0001 pattern",
		})
	}

	if !validator.IsValidWorksiteCode(r.WorksiteID) {
		errs = append(errs, validator.ValidationError{
			Field:   "worksite_id",
			Message: "worksite_id must match the SITE001 pattern",
		})
	}

	if !validator.IsInSlice(strings.ToLower(r.Type), []string{"in", "out"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "checkin_type",
			Message: "checkin_type must be either in or out",
		})
	}

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.GPSAccuracy != nil && *r.GPSAccuracy < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "gps_accuracy",
			Message: "gps_accuracy must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckinResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	WorksiteID   string `json:"worksite_id"`
	WorksiteName string `json:"worksite_name,omitempty"`

	Type   string `json:"checkin_type"`
	Status string `json:"status"`

	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	GPSAccuracy *float64 `json:"gps_accuracy,omitempty"`

	IsWithinWorksite     bool    `json:"is_within_worksite"`
	DistanceFromWorksite float64 `json:"distance_from_worksite"`

	IsSuspicious      bool     `json:"is_suspicious"`
	SuspiciousReasons []string `json:"suspicious_reasons,omitempty"`

	VerificationMethod string `json:"verification_method"`

	CheckinTime string  `json:"checkin_time"`
	Date        string  `json:"date"`
	AdminNotes  *string `json:"admin_notes,omitempty"`

	CreatedAt string `json:"created_at"`
}

type CheckinFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"` // internal UUID
	WorksiteID *string `json:"worksite_id,omitempty"` // internal UUID
	Type       *string `json:"checkin_type,omitempty"`
	Status     *string `json:"status,omitempty"`
	DateFrom   *string `json:"date_from,omitempty"`
	DateTo     *string `json:"date_to,omitempty"`
	Suspicious *bool   `json:"suspicious,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *CheckinFilter) Validate() error {
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

	if f.Type != nil && !validator.IsInSlice(*f.Type, []string{"in", "out"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "checkin_type",
			Message: "checkin_type must be either in or out",
		})
	}

	if f.Status != nil {
		validStatuses := []string{"approved", "flagged", "rejected"}
		if !validator.IsInSlice(*f.Status, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: approved, flagged, rejected",
			})
		}
	}

	for field, value := range map[string]*string{
		"date_from": f.DateFrom,
		"date_to":   f.DateTo,
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

type ReviewCheckinRequest struct {
	ID         string  `json:"-"`
	Status     string  `json:"status"`
	AdminNotes *string `json:"admin_notes,omitempty"`
}

func (r *ReviewCheckinRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Status, []string{"approved", "flagged", "rejected"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: approved, flagged, rejected",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckinStatsResponse struct {
	Date       string `json:"date"`
	Total      int64  `json:"total"`
	Approved   int64  `json:"approved"`
	Flagged    int64  `json:"flagged"`
	Rejected   int64  `json:"rejected"`
	Suspicious int64  `json:"suspicious"`
}

type ListCheckinsResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Checkins   []CheckinResponse `json:"checkins"`
}
