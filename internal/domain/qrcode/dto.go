package qrcode

import (
	"github.com/buildforce/attendance-backend-go/internal/pkg/validator"
)

type CreateQRCodeRequest struct {
	WorksiteID          string  `json:"worksite_id"` // internal UUID
	AllowCheckinAnytime bool    `json:"allow_checkin_anytime"`
	ExpiresAt           *string `json:"expires_at,omitempty"` // RFC 3339
	CreatedBy           *string `json:"-"`
}

func (r *CreateQRCodeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorksiteID) {
		errs = append(errs, validator.ValidationError{
			Field:   "worksite_id",
			Message: "worksite_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type QRCodeResponse struct {
	ID         string `json:"id"`
	Token      string `json:"token"`
	WorksiteID string `json:"worksite_id"`

	AllowCheckinAnytime bool    `json:"allow_checkin_anytime"`
	ExpiresAt           *string `json:"expires_at,omitempty"`
	IsActive            bool    `json:"is_active"`

	ScanCount          int64 `json:"scan_count"`
	SuccessfulCheckins int64 `json:"successful_checkins"`

	CreatedAt string `json:"created_at"`
}

// PublicWorksiteResponse is the reduced worksite view returned to the
// unauthenticated QR landing page. It carries only what the scan flow needs.
type PublicWorksiteResponse struct {
	WorksiteName        string `json:"worksite_name"`
	RequirePhoto        bool   `json:"require_photo"`
	AllowCheckinAnytime bool   `json:"allow_checkin_anytime"`
}
