package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildforce/attendance-backend-go/internal/domain/attendance"
	"github.com/buildforce/attendance-backend-go/internal/domain/checkin"
)

func perthLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Australia/Perth")
	require.NoError(t, err)
	return loc
}

func approvedIn(t time.Time) checkin.CheckIn {
	return checkin.CheckIn{Type: checkin.TypeIn, Status: checkin.StatusApproved, CheckinTime: t, WorksiteID: "ws-1"}
}

func approvedOut(t time.Time) checkin.CheckIn {
	return checkin.CheckIn{Type: checkin.TypeOut, Status: checkin.StatusApproved, CheckinTime: t, WorksiteID: "ws-1"}
}

func TestClassifyDay(t *testing.T) {
	loc := perthLoc(t)
	day := time.Date(2026, 3, 16, 0, 0, 0, 0, loc)
	at := func(hour, min int) time.Time {
		return time.Date(2026, 3, 16, hour, min, 0, 0, loc)
	}

	tests := []struct {
		name       string
		checkins   []checkin.CheckIn
		onLeave    bool
		wantStatus attendance.DayStatus
		wantHours  float64
	}{
		{
			name:       "no records is absent",
			wantStatus: attendance.StatusAbsent,
		},
		{
			name:       "on-time clock-in is present",
			checkins:   []checkin.CheckIn{approvedIn(at(7, 0)), approvedOut(at(15, 30))},
			wantStatus: attendance.StatusPresent,
			wantHours:  8.5,
		},
		{
			name:       "clock-in at the threshold is present",
			checkins:   []checkin.CheckIn{approvedIn(at(9, 15))},
			wantStatus: attendance.StatusPresent,
		},
		{
			name:       "clock-in after the threshold is late",
			checkins:   []checkin.CheckIn{approvedIn(at(9, 16)), approvedOut(at(15, 16))},
			wantStatus: attendance.StatusLate,
			wantHours:  6,
		},
		{
			name: "flagged clock-in does not count",
			checkins: []checkin.CheckIn{
				{Type: checkin.TypeIn, Status: checkin.StatusFlagged, CheckinTime: at(7, 0)},
			},
			wantStatus: attendance.StatusAbsent,
		},
		{
			name: "rejected clock-in does not count",
			checkins: []checkin.CheckIn{
				{Type: checkin.TypeIn, Status: checkin.StatusRejected, CheckinTime: at(7, 0)},
			},
			wantStatus: attendance.StatusAbsent,
		},
		{
			name:       "leave overrides records and hours",
			checkins:   []checkin.CheckIn{approvedIn(at(7, 0)), approvedOut(at(15, 30))},
			onLeave:    true,
			wantStatus: attendance.StatusLeave,
			wantHours:  0,
		},
		{
			name:       "no clock-out means zero hours",
			checkins:   []checkin.CheckIn{approvedIn(at(7, 0))},
			wantStatus: attendance.StatusPresent,
			wantHours:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := ClassifyDay(day, tt.checkins, tt.onLeave, loc)
			assert.Equal(t, tt.wantStatus, outcome.Status)
			assert.InDelta(t, tt.wantHours, outcome.WorkedHours, 1e-9)
		})
	}
}

func TestClassifyDay_EarliestInLatestOut(t *testing.T) {
	loc := perthLoc(t)
	day := time.Date(2026, 3, 16, 0, 0, 0, 0, loc)

	first := time.Date(2026, 3, 16, 6, 45, 0, 0, loc)
	second := time.Date(2026, 3, 16, 7, 30, 0, 0, loc)
	earlyOut := time.Date(2026, 3, 16, 12, 0, 0, 0, loc)
	lateOut := time.Date(2026, 3, 16, 15, 45, 0, 0, loc)

	outcome := ClassifyDay(day, []checkin.CheckIn{
		approvedIn(second), approvedOut(earlyOut), approvedIn(first), approvedOut(lateOut),
	}, false, loc)

	require.NotNil(t, outcome.FirstCheckin)
	require.NotNil(t, outcome.LastCheckout)
	assert.True(t, outcome.FirstCheckin.Equal(first))
	assert.True(t, outcome.LastCheckout.Equal(lateOut))
	assert.InDelta(t, 9, outcome.WorkedHours, 1e-9)
}
