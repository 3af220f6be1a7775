package attendance

import (
	"time"

	"github.com/buildforce/attendance-backend-go/internal/domain/attendance"
	"github.com/buildforce/attendance-backend-go/internal/domain/checkin"
)

// Late threshold for daily classification: an approved clock-in after 09:15
// local time counts the day as late. This is a company-wide cutoff and is
// deliberately independent of per-worksite start times, which only drive
// check-in suspicion flags.
const (
	lateThresholdHour   = 9
	lateThresholdMinute = 15
)

// DayOutcome is the classification of one employee's day.
type DayOutcome struct {
	Status       attendance.DayStatus
	FirstCheckin *time.Time
	LastCheckout *time.Time
	WorkedHours  float64
	WorksiteID   *string
}

// ClassifyDay derives an employee's attendance status for one calendar day
// from their check-ins. Leave takes precedence over everything and always
// yields zero worked hours. Only approved records count: a flagged or
// rejected clock-in leaves the day absent until an admin approves it.
func ClassifyDay(day time.Time, checkins []checkin.CheckIn, onLeave bool, loc *time.Location) DayOutcome {
	if onLeave {
		return DayOutcome{Status: attendance.StatusLeave}
	}

	var firstIn, lastOut *time.Time
	var worksiteID *string
	for _, c := range checkins {
		if c.Status != checkin.StatusApproved {
			continue
		}
		t := c.CheckinTime
		switch c.Type {
		case checkin.TypeIn:
			if firstIn == nil || t.Before(*firstIn) {
				firstIn = &t
				id := c.WorksiteID
				worksiteID = &id
			}
		case checkin.TypeOut:
			if lastOut == nil || t.After(*lastOut) {
				lastOut = &t
			}
		}
	}

	if firstIn == nil {
		return DayOutcome{Status: attendance.StatusAbsent}
	}

	outcome := DayOutcome{
		Status:       attendance.StatusPresent,
		FirstCheckin: firstIn,
		LastCheckout: lastOut,
		WorksiteID:   worksiteID,
	}

	local := firstIn.In(loc)
	threshold := time.Date(local.Year(), local.Month(), local.Day(),
		lateThresholdHour, lateThresholdMinute, 0, 0, loc)
	if local.After(threshold) {
		outcome.Status = attendance.StatusLate
	}

	if lastOut != nil && lastOut.After(*firstIn) {
		outcome.WorkedHours = lastOut.Sub(*firstIn).Hours()
	}

	return outcome
}
