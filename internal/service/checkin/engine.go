package checkin

import (
	"math"
	"time"

	"github.com/buildforce/attendance-backend-go/internal/domain/checkin"
	"github.com/buildforce/attendance-backend-go/internal/domain/employee"
	"github.com/buildforce/attendance-backend-go/internal/domain/worksite"
	"github.com/buildforce/attendance-backend-go/internal/pkg/utils"
)

// Input is everything one evaluation needs, captured up front. The engine
// holds no state and reads no clocks: the caller supplies the snapshots, the
// timestamp and the timezone, so two concurrent evaluations can never observe
// each other.
type Input struct {
	Employee employee.Employee
	Worksite worksite.Worksite

	// Existing holds the employee's check-ins for the same worksite-local
	// calendar day, ordered by time ascending.
	Existing []checkin.CheckIn

	Type        checkin.Type
	Latitude    float64
	Longitude   float64
	GPSAccuracy *float64

	// AllowAnytime suppresses the too-early and late rules. Set from the
	// worksite flag, or forced on by a QR code configured that way.
	AllowAnytime bool

	Now      time.Time
	Location *time.Location
}

// Result is the outcome of a successful evaluation. A hard rejection returns
// an error instead and no Result.
type Result struct {
	// DistanceMeters is the haversine distance from the worksite center,
	// rounded to the nearest meter.
	DistanceMeters   float64
	IsWithinWorksite bool

	IsSuspicious bool
	// Reasons lists suspicion flags in evaluation order: GPS accuracy,
	// geofence, then time rules.
	Reasons []string

	Status checkin.Status
}

// Evaluate runs the full rule chain for one scan. Hard rejections come back
// as typed errors and mean no record may be written; soft findings accumulate
// as suspicion reasons on an accepted record.
//
// The chain runs in a fixed order: employee eligibility, geofence, GPS
// plausibility, time-of-day rules, then the per-day duplicate and sequence
// guards. A check-in on the geofence boundary is inside it.
func Evaluate(in Input) (Result, error) {
	localNow := in.Now.In(in.Location)

	if ok, reason := in.Employee.EligibleForCheckin(localNow); !ok {
		return Result{}, &checkin.IneligibleError{Reason: reason}
	}

	// The radius comparison uses the exact distance; rounding happens only on
	// the value stored and reported.
	distance := utils.HaversineDistance(
		in.Latitude, in.Longitude,
		in.Worksite.CenterLatitude, in.Worksite.CenterLongitude,
	)
	within := distance <= in.Worksite.RadiusMeters

	var reasons []string

	if in.GPSAccuracy != nil && *in.GPSAccuracy > in.Worksite.MaxGPSAccuracy {
		reasons = append(reasons, checkin.ReasonGPSAccuracyLow)
	}

	if !within {
		if !in.Worksite.AllowRemoteCheckin {
			return Result{}, &checkin.OutOfRangeError{
				DistanceMeters: math.Round(distance),
				RadiusMeters:   in.Worksite.RadiusMeters,
			}
		}
		reasons = append(reasons, checkin.ReasonOutsideWorksiteRange)
	}

	if in.Type == checkin.TypeIn && !in.AllowAnytime {
		reasons = append(reasons, temporalReasons(in.Worksite, localNow)...)
	}

	if err := guardSequence(in.Type, in.Existing); err != nil {
		return Result{}, err
	}

	res := Result{
		DistanceMeters:   math.Round(distance),
		IsWithinWorksite: within,
		IsSuspicious:     len(reasons) > 0,
		Reasons:          reasons,
		Status:           checkin.StatusApproved,
	}
	if res.IsSuspicious {
		res.Status = checkin.StatusFlagged
	}
	return res, nil
}

// temporalReasons flags scans outside the allowed window around the
// worksite's standard start time. Only clock-in scans reach here; clock-outs
// carry no time rules. A worksite without a parsable start time has no window
// to enforce.
func temporalReasons(site worksite.Worksite, localNow time.Time) []string {
	workStart, err := site.WorkStartOn(localNow)
	if err != nil {
		return nil
	}

	earliest := workStart.Add(-time.Duration(site.EarlyCheckinBuffer) * time.Minute)
	latest := workStart.Add(time.Duration(site.LateCheckinTolerance) * time.Minute)

	var reasons []string
	if localNow.Before(earliest) {
		reasons = append(reasons, checkin.ReasonTooEarly)
	}
	if localNow.After(latest) {
		reasons = append(reasons, checkin.ReasonLateCheckin)
	}
	return reasons
}

// guardSequence enforces the per-day rules over the employee's existing
// records: at most one scan of each type per day, and no clock-out before a
// clock-in.
func guardSequence(typ checkin.Type, existing []checkin.CheckIn) error {
	var hasIn bool
	for _, c := range existing {
		if c.Type == typ {
			return checkin.ErrDuplicateCheckin
		}
		if c.Type == checkin.TypeIn {
			hasIn = true
		}
	}
	if typ == checkin.TypeOut && !hasIn {
		return checkin.ErrInvalidSequence
	}
	return nil
}

// LocalDate truncates t to midnight of its calendar day in loc. Repositories
// store and query this value so the per-day guards follow the worksite's
// clock rather than the server's.
func LocalDate(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
