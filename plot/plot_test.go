package plot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrimCommonPrefix(t *testing.T) {

	tests := []struct {
		name   string
		labels []string
		want   []string
	}{
		{
			name:   "shared prefix",
			labels: []string{"IMG_0001.jpg", "IMG_0002.jpg", "IMG_0010.jpg"},
			want:   []string{"01.jpg", "02.jpg", "10.jpg"},
		},
		{
			name:   "prefix runs to the last shared digit",
			labels: []string{"IMG_0001.jpg", "IMG_0002.jpg"},
			want:   []string{"1.jpg", "2.jpg"},
		},
		{
			name:   "no shared prefix",
			labels: []string{"beach.jpg", "IMG_0002.jpg"},
			want:   []string{"beach.jpg", "IMG_0002.jpg"},
		},
		{
			name:   "single label is untouched",
			labels: []string{"IMG_0001.jpg"},
			want:   []string{"IMG_0001.jpg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			locations := make([]*Location, len(tt.labels))

			for i, l := range tt.labels {
				locations[i] = &Location{Label: l}
			}

			assert.Equal(t, tt.want, trimCommonPrefix(locations))
		})
	}
}

func TestLabelOffsetXY(t *testing.T) {

	mag := 48.0
	n := 4

	// four points are pushed east, south, west and north (y grows downwards on the canvas)

	dx, dy := labelOffsetXY(0, n, mag)
	assert.InDelta(t, mag, dx, 0.000001)
	assert.InDelta(t, 0.0, dy, 0.000001)

	dx, dy = labelOffsetXY(1, n, mag)
	assert.InDelta(t, 0.0, dx, 0.000001)
	assert.InDelta(t, mag, dy, 0.000001)

	dx, dy = labelOffsetXY(2, n, mag)
	assert.InDelta(t, -mag, dx, 0.000001)
	assert.InDelta(t, 0.0, dy, 0.000001)

	for i := 0; i < n; i++ {
		dx, dy = labelOffsetXY(i, n, mag)
		assert.InDelta(t, mag, math.Hypot(dx, dy), 0.000001)
	}
}

func TestBoundsWithMargin(t *testing.T) {

	locations := []*Location{
		{Label: "a", Latitude: 37.0, Longitude: -122.0},
		{Label: "b", Latitude: 38.0, Longitude: -121.0},
	}

	r := boundsWithMargin(locations, 0.4)

	lo := r.Lo()
	hi := r.Hi()

	assert.InDelta(t, 36.6, lo.Lat.Degrees(), 0.000001)
	assert.InDelta(t, 38.4, hi.Lat.Degrees(), 0.000001)
	assert.InDelta(t, -122.4, lo.Lng.Degrees(), 0.000001)
	assert.InDelta(t, -120.6, hi.Lng.Degrees(), 0.000001)
}

func TestBoundsWithMarginSinglePoint(t *testing.T) {

	locations := []*Location{
		{Label: "a", Latitude: 37.61799, Longitude: -122.38998},
	}

	r := boundsWithMargin(locations, 0.4)

	require.False(t, r.IsEmpty())

	assert.Greater(t, r.Hi().Lat.Degrees(), r.Lo().Lat.Degrees())
	assert.Greater(t, r.Hi().Lng.Degrees(), r.Lo().Lng.Degrees())
}
