package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance_ZeroForSamePoint(t *testing.T) {
	t.Parallel()

	d := HaversineDistance(-31.9505, 115.8605, -31.9505, 115.8605)
	assert.Equal(t, 0.0, d)
}

func TestHaversineDistance_Symmetry(t *testing.T) {
	t.Parallel()

	pairs := [][4]float64{
		{-31.9505, 115.8605, -31.9600, 115.8700},
		{0, 0, 0, 180},
		{51.5007, -0.1246, 40.6892, -74.0445},
		{-89.9, 10, 89.9, -170},
	}

	for _, p := range pairs {
		ab := HaversineDistance(p[0], p[1], p[2], p[3])
		ba := HaversineDistance(p[2], p[3], p[0], p[1])
		assert.InDelta(t, ab, ba, 1e-9)
	}
}

func TestHaversineDistance_KnownDistances(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		tolerance              float64
	}{
		{
			// Perth CBD to a point ~1.4km away, matches the worksite
			// sample data used by the seeder.
			name: "perth worksite offsets",
			lat1: -31.9505, lon1: 115.8605,
			lat2: -31.9600, lon2: 115.8700,
			want:      1378,
			tolerance: 30,
		},
		{
			name: "one degree of latitude",
			lat1: 0, lon1: 0,
			lat2: 1, lon2: 0,
			want:      111195,
			tolerance: 100,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := HaversineDistance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.want, got, tt.tolerance)
		})
	}
}
