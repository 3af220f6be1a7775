package worksite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation(t *testing.T) {
	site := Worksite{Timezone: "Australia/Perth"}
	assert.Equal(t, "Australia/Perth", site.Location().String())

	site.Timezone = "not-a-zone"
	assert.Equal(t, time.UTC, site.Location())

	site.Timezone = ""
	assert.Equal(t, time.UTC, site.Location())
}

func TestWorkStartOn(t *testing.T) {
	site := Worksite{
		StandardWorkStart: "07:00:00",
		Timezone:          "Australia/Perth",
	}
	loc := site.Location()

	// An instant late in the UTC day falls on the next calendar day in Perth.
	at := time.Date(2026, 3, 15, 23, 30, 0, 0, time.UTC)

	start, err := site.WorkStartOn(at)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 16, 7, 0, 0, 0, loc).Unix(), start.Unix())
	assert.Equal(t, loc.String(), start.Location().String())
}

func TestWorkStartOn_ShortClockFormat(t *testing.T) {
	site := Worksite{
		StandardWorkStart: "06:30",
		Timezone:          "Australia/Perth",
	}

	at := time.Date(2026, 3, 16, 1, 0, 0, 0, site.Location())
	start, err := site.WorkStartOn(at)
	require.NoError(t, err)

	assert.Equal(t, 6, start.Hour())
	assert.Equal(t, 30, start.Minute())
}

func TestWorkStartOn_BadClock(t *testing.T) {
	site := Worksite{StandardWorkStart: "seven", Timezone: "Australia/Perth"}

	_, err := site.WorkStartOn(time.Now())
	assert.Error(t, err)
}
