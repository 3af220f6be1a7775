package worksite

import (
	"time"
)

// Worksite carries the registration and geofence configuration for one
// construction site. The check-in engine reads it as an immutable snapshot.
type Worksite struct {
	ID          string
	WorksiteID  string // public SITE001-style code
	Name        string
	Description *string

	CenterLatitude  float64
	CenterLongitude float64
	RadiusMeters    float64

	StreetAddress *string
	Suburb        *string
	State         *string
	Postcode      *string
	Country       string

	// Check-in window rules. StandardWorkStart is a wall-clock time in the
	// worksite's timezone; buffers and tolerances are minutes.
	StandardWorkStart    string
	StandardWorkEnd      string
	EarlyCheckinBuffer   int
	LateCheckinTolerance int
	Timezone             string

	// GPS plausibility rules.
	MaxGPSAccuracy      float64
	AllowRemoteCheckin  bool
	AllowCheckinAnytime bool

	RequirePhoto           bool
	RequireWhiteCard       bool
	RequireSafetyInduction bool

	ProjectManager *string
	Status         Status

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusCompleted Status = "completed"
)

// Location returns the worksite's timezone, falling back to UTC when the
// configured name does not resolve. Day boundaries and work-start times are
// always computed in this zone, never in the server's default zone.
func (w *Worksite) Location() *time.Location {
	loc, err := time.LoadLocation(w.Timezone)
	if err != nil || w.Timezone == "" {
		return time.UTC
	}
	return loc
}

// WorkStartOn returns StandardWorkStart anchored to the calendar day of t in
// the worksite's timezone.
func (w *Worksite) WorkStartOn(t time.Time) (time.Time, error) {
	loc := w.Location()
	clock, err := time.Parse("15:04:05", w.StandardWorkStart)
	if err != nil {
		clock, err = time.Parse("15:04", w.StandardWorkStart)
		if err != nil {
			return time.Time{}, err
		}
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, loc), nil
}
