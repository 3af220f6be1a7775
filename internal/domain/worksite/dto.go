package worksite

import (
	"strings"
	"time"

	"github.com/buildforce/attendance-backend-go/internal/pkg/validator"
)

type CreateWorksiteRequest struct {
	WorksiteID  string  `json:"worksite_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`

	CenterLatitude  float64 `json:"center_latitude"`
	CenterLongitude float64 `json:"center_longitude"`
	RadiusMeters    float64 `json:"radius"`

	StreetAddress *string `json:"street_address,omitempty"`
	Suburb        *string `json:"suburb,omitempty"`
	State         *string `json:"state,omitempty"`
	Postcode      *string `json:"postcode,omitempty"`
	Country       string  `json:"country,omitempty"`

	StandardWorkStart    string `json:"standard_work_start,omitempty"`
	StandardWorkEnd      string `json:"standard_work_end,omitempty"`
	EarlyCheckinBuffer   *int   `json:"early_checkin_buffer,omitempty"`
	LateCheckinTolerance *int   `json:"late_checkin_tolerance,omitempty"`
	Timezone             string `json:"timezone,omitempty"`

	MaxGPSAccuracy      *float64 `json:"max_gps_accuracy,omitempty"`
	AllowRemoteCheckin  bool     `json:"allow_remote_checkin"`
	AllowCheckinAnytime bool     `json:"allow_checkin_anytime"`

	RequirePhoto           *bool `json:"require_photo,omitempty"`
	RequireWhiteCard       *bool `json:"require_white_card,omitempty"`
	RequireSafetyInduction *bool `json:"require_safety_induction,omitempty"`

	ProjectManager *string `json:"project_manager,omitempty"`
}

func (r *CreateWorksiteRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidWorksiteCode(r.WorksiteID) {
		errs = append(errs, validator.ValidationError{
			Field:   "worksite_id",
			Message: "worksite_id must match the SITE001 pattern",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !validator.IsValidLatitude(r.CenterLatitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "center_latitude",
			Message: "center_latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.CenterLongitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "center_longitude",
			Message: "center_longitude must be between -180 and 180",
		})
	}

	if r.RadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "radius",
			Message: "radius must be a positive number of meters",
		})
	}

	if r.StandardWorkStart != "" && !validator.IsValidTimeOfDay(r.StandardWorkStart) {
		errs = append(errs, validator.ValidationError{
			Field:   "standard_work_start",
			Message: "standard_work_start must be in HH:MM or HH:MM:SS format",
		})
	}

	if r.StandardWorkEnd != "" && !validator.IsValidTimeOfDay(r.StandardWorkEnd) {
		errs = append(errs, validator.ValidationError{
			Field:   "standard_work_end",
			Message: "standard_work_end must be in HH:MM or HH:MM:SS format",
		})
	}

	if r.EarlyCheckinBuffer != nil && *r.EarlyCheckinBuffer < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "early_checkin_buffer",
			Message: "early_checkin_buffer must not be negative",
		})
	}

	if r.LateCheckinTolerance != nil && *r.LateCheckinTolerance < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "late_checkin_tolerance",
			Message: "late_checkin_tolerance must not be negative",
		})
	}

	if r.MaxGPSAccuracy != nil && *r.MaxGPSAccuracy <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_gps_accuracy",
			Message: "max_gps_accuracy must be a positive number of meters",
		})
	}

	if r.Timezone != "" {
		if _, err := time.LoadLocation(r.Timezone); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "timezone",
				Message: "timezone must be a valid IANA zone name",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateWorksiteRequest struct {
	ID          string  `json:"-"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`

	CenterLatitude  *float64 `json:"center_latitude,omitempty"`
	CenterLongitude *float64 `json:"center_longitude,omitempty"`
	RadiusMeters    *float64 `json:"radius,omitempty"`

	StandardWorkStart    *string `json:"standard_work_start,omitempty"`
	StandardWorkEnd      *string `json:"standard_work_end,omitempty"`
	EarlyCheckinBuffer   *int    `json:"early_checkin_buffer,omitempty"`
	LateCheckinTolerance *int    `json:"late_checkin_tolerance,omitempty"`
	Timezone             *string `json:"timezone,omitempty"`

	MaxGPSAccuracy      *float64 `json:"max_gps_accuracy,omitempty"`
	AllowRemoteCheckin  *bool    `json:"allow_remote_checkin,omitempty"`
	AllowCheckinAnytime *bool    `json:"allow_checkin_anytime,omitempty"`

	Status *string `json:"status,omitempty"`
}

func (r *UpdateWorksiteRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.CenterLatitude != nil && !validator.IsValidLatitude(*r.CenterLatitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "center_latitude",
			Message: "center_latitude must be between -90 and 90",
		})
	}

	if r.CenterLongitude != nil && !validator.IsValidLongitude(*r.CenterLongitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "center_longitude",
			Message: "center_longitude must be between -180 and 180",
		})
	}

	if r.RadiusMeters != nil && *r.RadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "radius",
			Message: "radius must be a positive number of meters",
		})
	}

	if r.StandardWorkStart != nil && !validator.IsValidTimeOfDay(*r.StandardWorkStart) {
		errs = append(errs, validator.ValidationError{
			Field:   "standard_work_start",
			Message: "standard_work_start must be in HH:MM or HH:MM:SS format",
		})
	}

	if r.Status != nil {
		validStatuses := []string{"active", "inactive", "completed"}
		if !validator.IsInSlice(strings.ToLower(*r.Status), validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: active, inactive, completed",
			})
		}
	}

	if r.Timezone != nil {
		if _, err := time.LoadLocation(*r.Timezone); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "timezone",
				Message: "timezone must be a valid IANA zone name",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WorksiteFilter struct {
	Search *string `json:"search,omitempty"`
	Status *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *WorksiteFilter) Validate() error {
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
		validStatuses := []string{"active", "inactive", "completed"}
		if !validator.IsInSlice(*f.Status, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: active, inactive, completed",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WorksiteResponse struct {
	ID          string  `json:"id"`
	WorksiteID  string  `json:"worksite_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`

	CenterLatitude  float64 `json:"center_latitude"`
	CenterLongitude float64 `json:"center_longitude"`
	RadiusMeters    float64 `json:"radius"`

	StreetAddress *string `json:"street_address,omitempty"`
	Suburb        *string `json:"suburb,omitempty"`
	State         *string `json:"state,omitempty"`
	Postcode      *string `json:"postcode,omitempty"`
	Country       string  `json:"country"`

	StandardWorkStart    string `json:"standard_work_start"`
	StandardWorkEnd      string `json:"standard_work_end"`
	EarlyCheckinBuffer   int    `json:"early_checkin_buffer"`
	LateCheckinTolerance int    `json:"late_checkin_tolerance"`
	Timezone             string `json:"timezone"`

	MaxGPSAccuracy      float64 `json:"max_gps_accuracy"`
	AllowRemoteCheckin  bool    `json:"allow_remote_checkin"`
	AllowCheckinAnytime bool    `json:"allow_checkin_anytime"`

	RequirePhoto           bool `json:"require_photo"`
	RequireWhiteCard       bool `json:"require_white_card"`
	RequireSafetyInduction bool `json:"require_safety_induction"`

	ProjectManager *string `json:"project_manager,omitempty"`
	Status         string  `json:"status"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ListWorksitesResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Worksites  []WorksiteResponse `json:"worksites"`
}
