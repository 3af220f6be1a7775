package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/buildforce/attendance-backend-go/internal/domain/attendance"
	"github.com/buildforce/attendance-backend-go/internal/domain/auth"
	"github.com/buildforce/attendance-backend-go/internal/domain/checkin"
	"github.com/buildforce/attendance-backend-go/internal/domain/employee"
	"github.com/buildforce/attendance-backend-go/internal/domain/qrcode"
	"github.com/buildforce/attendance-backend-go/internal/domain/user"
	"github.com/buildforce/attendance-backend-go/internal/domain/worksite"
	"github.com/buildforce/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Check-in hard rejections carry stable machine-readable codes the
	// mobile client switches on.
	var ineligible *checkin.IneligibleError
	if errors.As(err, &ineligible) {
		writeJSON(w, http.StatusForbidden, Response{
			Success: false,
			Error: &ErrorDetail{
				Code:    "INELIGIBLE_EMPLOYEE",
				Message: ineligible.Error(),
			},
		})
		return
	}
	var outOfRange *checkin.OutOfRangeError
	if errors.As(err, &outOfRange) {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error: &ErrorDetail{
				Code:    "OUT_OF_RANGE_NO_REMOTE",
				Message: outOfRange.Error(),
				Details: map[string]string{
					"distance_meters": fmt.Sprintf("%.0f", outOfRange.DistanceMeters),
					"radius_meters":   fmt.Sprintf("%.0f", outOfRange.RadiusMeters),
				},
			},
		})
		return
	}

	switch {
	case errors.Is(err, checkin.ErrEmployeeIneligible):
		Forbidden(w, err.Error())
	case errors.Is(err, checkin.ErrWorksiteUnknown):
		writeJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error: &ErrorDetail{
				Code:    "UNKNOWN_WORKSITE",
				Message: "Worksite not found or inactive",
			},
		})
	case errors.Is(err, checkin.ErrDuplicateCheckin):
		Conflict(w, "DUPLICATE", "A check-in of this type already exists for today")
	case errors.Is(err, checkin.ErrInvalidSequence):
		BadRequest(w, "INVALID_SEQUENCE", "Check-out requires a prior check-in today", nil)
	case errors.Is(err, checkin.ErrCheckinNotFound):
		NotFound(w, "Check-in not found")

	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid username or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token has been revoked")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User account is inactive")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "CONFLICT", "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "CONFLICT", "Email already registered")

	// Worksite domain errors
	case errors.Is(err, worksite.ErrWorksiteNotFound):
		NotFound(w, "Worksite not found")
	case errors.Is(err, worksite.ErrWorksiteCodeExists):
		Conflict(w, "CONFLICT", "Worksite code already exists")

	// QR code domain errors
	case errors.Is(err, qrcode.ErrQRCodeNotFound):
		NotFound(w, "QR code not found")
	case errors.Is(err, qrcode.ErrQRCodeExpired):
		BadRequest(w, "QR_EXPIRED", "QR code has expired or been deactivated", nil)

	// Leave domain errors
	case errors.Is(err, attendance.ErrLeaveNotFound):
		NotFound(w, "Leave entry not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
