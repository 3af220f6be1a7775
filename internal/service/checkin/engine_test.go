package checkin

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildforce/attendance-backend-go/internal/domain/checkin"
	"github.com/buildforce/attendance-backend-go/internal/domain/employee"
	"github.com/buildforce/attendance-backend-go/internal/domain/worksite"
)

func perthSite() worksite.Worksite {
	return worksite.Worksite{
		ID:                   "ws-1",
		WorksiteID:           "SITE001",
		Name:                 "Perth CBD Tower",
		CenterLatitude:       -31.9505,
		CenterLongitude:      115.8605,
		RadiusMeters:         100,
		StandardWorkStart:    "07:00:00",
		StandardWorkEnd:      "15:30:00",
		EarlyCheckinBuffer:   30,
		LateCheckinTolerance: 15,
		Timezone:             "Australia/Perth",
		MaxGPSAccuracy:       20,
		Status:               worksite.StatusActive,
	}
}

func activeEmployee() employee.Employee {
	expiry := time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC)
	return employee.Employee{
		ID:                       "emp-1",
		EmployeeID:               "EMP0001",
		FirstName:                "Jack",
		LastName:                 "Miller",
		Status:                   employee.StatusActive,
		CanCheckin:               true,
		WhiteCardExpiry:          &expiry,
		SafetyInductionCompleted: true,
	}
}

func perthTime(t *testing.T, hour, min int) (time.Time, *time.Location) {
	t.Helper()
	loc, err := time.LoadLocation("Australia/Perth")
	require.NoError(t, err)
	return time.Date(2026, 3, 16, hour, min, 0, 0, loc), loc
}

func TestEvaluate_CleanCheckin(t *testing.T) {
	now, loc := perthTime(t, 6, 50)

	res, err := Evaluate(Input{
		Employee:  activeEmployee(),
		Worksite:  perthSite(),
		Type:      checkin.TypeIn,
		Latitude:  -31.9505,
		Longitude: 115.8605,
		Now:       now,
		Location:  loc,
	})
	require.NoError(t, err)

	assert.Equal(t, checkin.StatusApproved, res.Status)
	assert.False(t, res.IsSuspicious)
	assert.Empty(t, res.Reasons)
	assert.True(t, res.IsWithinWorksite)
	assert.Equal(t, float64(0), res.DistanceMeters)
}

func TestEvaluate_EligibilityRejections(t *testing.T) {
	now, loc := perthTime(t, 6, 50)

	tests := []struct {
		name   string
		mutate func(e *employee.Employee)
		reason string
	}{
		{
			name:   "inactive employee",
			mutate: func(e *employee.Employee) { e.Status = employee.StatusInactive },
			reason: "employee is not active",
		},
		{
			name:   "checkin disabled",
			mutate: func(e *employee.Employee) { e.CanCheckin = false },
			reason: "employee is not permitted to check in",
		},
		{
			name: "expired white card",
			mutate: func(e *employee.Employee) {
				expired := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
				e.WhiteCardExpiry = &expired
			},
			reason: "white card has expired",
		},
		{
			name:   "missing safety induction",
			mutate: func(e *employee.Employee) { e.SafetyInductionCompleted = false },
			reason: "safety induction has not been completed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emp := activeEmployee()
			tt.mutate(&emp)

			_, err := Evaluate(Input{
				Employee:  emp,
				Worksite:  perthSite(),
				Type:      checkin.TypeIn,
				Latitude:  -31.9505,
				Longitude: 115.8605,
				Now:       now,
				Location:  loc,
			})
			require.Error(t, err)
			assert.ErrorIs(t, err, checkin.ErrEmployeeIneligible)

			var ineligible *checkin.IneligibleError
			require.ErrorAs(t, err, &ineligible)
			assert.Equal(t, tt.reason, ineligible.Reason)
		})
	}
}

func TestEvaluate_GeofenceBoundaryInclusive(t *testing.T) {
	now, loc := perthTime(t, 6, 50)
	site := perthSite()

	// Roughly 100m north of center. One degree of latitude is about 111195m,
	// so 100m is about 0.000899 degrees.
	res, err := Evaluate(Input{
		Employee:  activeEmployee(),
		Worksite:  site,
		Type:      checkin.TypeIn,
		Latitude:  site.CenterLatitude + 100.0/111195.0,
		Longitude: site.CenterLongitude,
		Now:       now,
		Location:  loc,
	})
	require.NoError(t, err)

	assert.Equal(t, float64(100), res.DistanceMeters)
	assert.True(t, res.IsWithinWorksite, "a scan exactly on the radius is inside the fence")
	assert.Equal(t, checkin.StatusApproved, res.Status)
}

func TestEvaluate_GeofenceJustOutsideStaysOutside(t *testing.T) {
	now, loc := perthTime(t, 6, 50)
	site := perthSite()

	// About 100.4m north of center. The fence comparison uses the exact
	// distance, so a scan that would round down to the radius is still out.
	_, err := Evaluate(Input{
		Employee:  activeEmployee(),
		Worksite:  site,
		Type:      checkin.TypeIn,
		Latitude:  site.CenterLatitude + 100.4/111195.0,
		Longitude: site.CenterLongitude,
		Now:       now,
		Location:  loc,
	})
	require.Error(t, err)

	var oor *checkin.OutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, float64(100), oor.DistanceMeters, "reported distance still rounds to whole meters")
}

func TestEvaluate_OutsideRadiusRemoteNotAllowed(t *testing.T) {
	now, loc := perthTime(t, 6, 50)
	site := perthSite()

	_, err := Evaluate(Input{
		Employee:  activeEmployee(),
		Worksite:  site,
		Type:      checkin.TypeIn,
		Latitude:  -31.9600,
		Longitude: 115.8700,
		Now:       now,
		Location:  loc,
	})
	require.Error(t, err)

	var oor *checkin.OutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, float64(100), oor.RadiusMeters)
	assert.InDelta(t, 1385, oor.DistanceMeters, 30)
	assert.Equal(t, oor.DistanceMeters, float64(int64(oor.DistanceMeters)), "reported distance is rounded to whole meters")
}

func TestEvaluate_OutsideRadiusRemoteAllowed(t *testing.T) {
	now, loc := perthTime(t, 6, 50)
	site := perthSite()
	site.AllowRemoteCheckin = true

	res, err := Evaluate(Input{
		Employee:  activeEmployee(),
		Worksite:  site,
		Type:      checkin.TypeIn,
		Latitude:  -31.9600,
		Longitude: 115.8700,
		Now:       now,
		Location:  loc,
	})
	require.NoError(t, err)

	assert.Equal(t, checkin.StatusFlagged, res.Status)
	assert.True(t, res.IsSuspicious)
	assert.Equal(t, []string{checkin.ReasonOutsideWorksiteRange}, res.Reasons)
	assert.False(t, res.IsWithinWorksite)
}

func TestEvaluate_GPSAccuracy(t *testing.T) {
	now, loc := perthTime(t, 6, 50)

	tests := []struct {
		name     string
		accuracy *float64
		flagged  bool
	}{
		{name: "missing accuracy is accepted", accuracy: nil, flagged: false},
		{name: "accuracy at the limit is accepted", accuracy: ptrFloat(20), flagged: false},
		{name: "accuracy over the limit is flagged", accuracy: ptrFloat(35), flagged: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Evaluate(Input{
				Employee:    activeEmployee(),
				Worksite:    perthSite(),
				Type:        checkin.TypeIn,
				Latitude:    -31.9505,
				Longitude:   115.8605,
				GPSAccuracy: tt.accuracy,
				Now:         now,
				Location:    loc,
			})
			require.NoError(t, err)

			if tt.flagged {
				assert.Equal(t, []string{checkin.ReasonGPSAccuracyLow}, res.Reasons)
				assert.Equal(t, checkin.StatusFlagged, res.Status)
			} else {
				assert.Empty(t, res.Reasons)
				assert.Equal(t, checkin.StatusApproved, res.Status)
			}
		})
	}
}

func TestEvaluate_TemporalRules(t *testing.T) {
	tests := []struct {
		name    string
		hour    int
		min     int
		typ     checkin.Type
		anytime bool
		reasons []string
	}{
		{name: "earliest allowed minute", hour: 6, min: 30, typ: checkin.TypeIn},
		{name: "before the early buffer", hour: 6, min: 0, typ: checkin.TypeIn, reasons: []string{checkin.ReasonTooEarly}},
		{name: "latest tolerated minute", hour: 7, min: 15, typ: checkin.TypeIn},
		{name: "after the late tolerance", hour: 7, min: 30, typ: checkin.TypeIn, reasons: []string{checkin.ReasonLateCheckin}},
		{name: "clock-out carries no time rules", hour: 5, min: 0, typ: checkin.TypeOut},
		{name: "anytime mode skips time rules", hour: 5, min: 0, typ: checkin.TypeIn, anytime: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now, loc := perthTime(t, tt.hour, tt.min)

			existing := []checkin.CheckIn{}
			if tt.typ == checkin.TypeOut {
				existing = append(existing, checkin.CheckIn{Type: checkin.TypeIn})
			}

			res, err := Evaluate(Input{
				Employee:     activeEmployee(),
				Worksite:     perthSite(),
				Existing:     existing,
				Type:         tt.typ,
				Latitude:     -31.9505,
				Longitude:    115.8605,
				AllowAnytime: tt.anytime,
				Now:          now,
				Location:     loc,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.reasons, res.Reasons)
		})
	}
}

func TestEvaluate_MalformedWorkStartSkipsTemporalRules(t *testing.T) {
	tests := []struct {
		name  string
		start string
	}{
		{name: "empty start time", start: ""},
		{name: "unparsable start time", start: "seven sharp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now, loc := perthTime(t, 5, 0)
			site := perthSite()
			site.StandardWorkStart = tt.start

			res, err := Evaluate(Input{
				Employee:  activeEmployee(),
				Worksite:  site,
				Type:      checkin.TypeIn,
				Latitude:  -31.9505,
				Longitude: 115.8605,
				Now:       now,
				Location:  loc,
			})
			require.NoError(t, err)

			assert.Equal(t, checkin.StatusApproved, res.Status)
			assert.Empty(t, res.Reasons)
		})
	}
}

func TestEvaluate_SequenceGuards(t *testing.T) {
	now, loc := perthTime(t, 6, 50)

	tests := []struct {
		name     string
		typ      checkin.Type
		existing []checkin.CheckIn
		wantErr  error
	}{
		{
			name:     "second clock-in same day",
			typ:      checkin.TypeIn,
			existing: []checkin.CheckIn{{Type: checkin.TypeIn}},
			wantErr:  checkin.ErrDuplicateCheckin,
		},
		{
			name:     "second clock-out same day",
			typ:      checkin.TypeOut,
			existing: []checkin.CheckIn{{Type: checkin.TypeIn}, {Type: checkin.TypeOut}},
			wantErr:  checkin.ErrDuplicateCheckin,
		},
		{
			name:    "clock-out with no clock-in",
			typ:     checkin.TypeOut,
			wantErr: checkin.ErrInvalidSequence,
		},
		{
			name:     "clock-out after clock-in",
			typ:      checkin.TypeOut,
			existing: []checkin.CheckIn{{Type: checkin.TypeIn}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(Input{
				Employee:  activeEmployee(),
				Worksite:  perthSite(),
				Existing:  tt.existing,
				Type:      tt.typ,
				Latitude:  -31.9505,
				Longitude: 115.8605,
				Now:       now,
				Location:  loc,
			})
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEvaluate_ReasonsAccumulateInOrder(t *testing.T) {
	now, loc := perthTime(t, 7, 45)
	site := perthSite()
	site.AllowRemoteCheckin = true

	res, err := Evaluate(Input{
		Employee:    activeEmployee(),
		Worksite:    site,
		Type:        checkin.TypeIn,
		Latitude:    -31.9600,
		Longitude:   115.8700,
		GPSAccuracy: ptrFloat(50),
		Now:         now,
		Location:    loc,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		checkin.ReasonGPSAccuracyLow,
		checkin.ReasonOutsideWorksiteRange,
		checkin.ReasonLateCheckin,
	}, res.Reasons)
	assert.True(t, res.IsSuspicious)
	assert.Equal(t, checkin.StatusFlagged, res.Status)
}

func TestEvaluate_MoreFindingsNeverClearSuspicion(t *testing.T) {
	now, loc := perthTime(t, 6, 50)
	site := perthSite()

	base := Input{
		Employee:  activeEmployee(),
		Worksite:  site,
		Type:      checkin.TypeIn,
		Latitude:  -31.9505,
		Longitude: 115.8605,
		Now:       now,
		Location:  loc,
	}

	clean, err := Evaluate(base)
	require.NoError(t, err)

	withAccuracy := base
	withAccuracy.GPSAccuracy = ptrFloat(50)
	flagged, err := Evaluate(withAccuracy)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(flagged.Reasons), len(clean.Reasons))
	assert.True(t, flagged.IsSuspicious)
	assert.False(t, clean.IsSuspicious)
}

func TestLocalDate(t *testing.T) {
	perth, err := time.LoadLocation("Australia/Perth")
	require.NoError(t, err)

	// 23:30 UTC on the 15th is already the 16th in Perth (UTC+8).
	utcEvening := time.Date(2026, 3, 15, 23, 30, 0, 0, time.UTC)
	got := LocalDate(utcEvening, perth)

	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 16, got.Day())
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, perth, got.Location())
}

func ptrFloat(f float64) *float64 {
	return &f
}
