package checkin

import "time"

type CheckIn struct {
	ID         string
	EmployeeID string // internal employee UUID
	WorksiteID string // internal worksite UUID

	Type   Type
	Status Status

	// Client-reported position at the moment of the scan.
	Latitude    float64
	Longitude   float64
	GPSAccuracy *float64

	IsWithinWorksite     bool
	DistanceFromWorksite float64 // meters, rounded to the nearest meter

	IsSuspicious      bool
	SuspiciousReasons []string

	VerificationMethod VerificationMethod
	QRCodeID           *string

	CheckinTime time.Time
	// Date is the worksite-local calendar day of CheckinTime, stored
	// explicitly so the per-day uniqueness constraint is enforceable in SQL.
	Date time.Time

	PhotoURL   *string
	DeviceID   *string
	IPAddress  *string
	UserAgent  *string
	AdminNotes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Type string

const (
	TypeIn  Type = "in"
	TypeOut Type = "out"
)

type Status string

const (
	StatusApproved Status = "approved"
	StatusFlagged  Status = "flagged"
	StatusRejected Status = "rejected"
)

type VerificationMethod string

const (
	VerificationGPS VerificationMethod = "gps"
	VerificationQR  VerificationMethod = "qr"
)

// Suspicion reasons, in the order they are evaluated. The order is part of
// the contract: dashboards and audits rely on it being stable.
const (
	ReasonGPSAccuracyLow       = "gps_accuracy_low"
	ReasonOutsideWorksiteRange = "outside_worksite_radius"
	ReasonTooEarly             = "too_early"
	ReasonLateCheckin          = "late_checkin"
)
