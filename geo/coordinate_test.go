package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHemisphereRefs(t *testing.T) {

	tests := []struct {
		name    string
		c       Coordinate
		lat_ref string
		lon_ref string
	}{
		{
			name:    "northern eastern",
			c:       Coordinate{Latitude: 48.85837, Longitude: 2.29448},
			lat_ref: "N",
			lon_ref: "E",
		},
		{
			name:    "northern western",
			c:       Coordinate{Latitude: 37.61799, Longitude: -122.38998},
			lat_ref: "N",
			lon_ref: "W",
		},
		{
			name:    "southern western",
			c:       Coordinate{Latitude: -33.44889, Longitude: -70.66927},
			lat_ref: "S",
			lon_ref: "W",
		},
		{
			name:    "null island",
			c:       Coordinate{},
			lat_ref: "N",
			lon_ref: "E",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.lat_ref, tt.c.LatitudeRef())
			assert.Equal(t, tt.lon_ref, tt.c.LongitudeRef())
		})
	}
}

func TestFormat(t *testing.T) {

	c := &Coordinate{Latitude: 37.61799, Longitude: -122.38998}

	assert.Equal(t, "37.61799° N", c.FormatLatitude())
	assert.Equal(t, "122.38998° W", c.FormatLongitude())
	assert.Equal(t, "Latitude: 37.61799° N, Longitude: 122.38998° W", c.String())
}

func TestIsValid(t *testing.T) {

	valid := &Coordinate{Latitude: 37.61799, Longitude: -122.38998}
	assert.True(t, valid.IsValid())

	bad_lat := &Coordinate{Latitude: 91.0}
	assert.False(t, bad_lat.IsValid())

	bad_lon := &Coordinate{Longitude: -181.0}
	assert.False(t, bad_lon.IsValid())
}

func TestDMSRoundTrip(t *testing.T) {

	tests := []float64{
		37.61799,
		-122.38998,
		0.0,
		-0.00027,
		89.99999,
	}

	for _, deg := range tests {

		d, m, s := DMS(deg)

		require.GreaterOrEqual(t, d, 0)
		require.GreaterOrEqual(t, m, 0)
		require.Less(t, m, 60)
		require.GreaterOrEqual(t, s, 0.0)
		require.Less(t, s, 60.0)

		ref := "N"

		if deg < 0 {
			ref = "S"
		}

		assert.InDelta(t, deg, FromDMS(d, m, s, ref), 0.000001)
	}
}

func TestDistance(t *testing.T) {

	sfo := &Coordinate{Latitude: 37.61799, Longitude: -122.38998}
	oak := &Coordinate{Latitude: 37.71161, Longitude: -122.21084}

	d := sfo.Distance(oak)

	// roughly 19km between the two airports
	assert.InDelta(t, 19000.0, d, 1000.0)
	assert.Zero(t, sfo.Distance(sfo))
}
