package qrcode

import "time"

// QRCode is a site-posted code that lets workers check in by scan. The token
// is an opaque 64-character hex string embedded in the printed code.
type QRCode struct {
	ID         string
	Token      string
	WorksiteID string // internal worksite UUID

	// AllowCheckinAnytime suppresses the too-early and late rules for scans
	// made through this code, for sites with rotating or irregular shifts.
	AllowCheckinAnytime bool

	ExpiresAt *time.Time
	IsActive  bool

	ScanCount          int64
	SuccessfulCheckins int64

	CreatedBy *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Usable reports whether the code can still be scanned at the given time.
func (q *QRCode) Usable(now time.Time) bool {
	if !q.IsActive {
		return false
	}
	if q.ExpiresAt != nil && now.After(*q.ExpiresAt) {
		return false
	}
	return true
}
