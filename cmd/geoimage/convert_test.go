package main

import (
	"testing"

	"github.com/sfomuseum/go-geoimage/geo"
	"github.com/sfomuseum/go-geoimage/operations/convert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifestEntriesUseBaseNames(t *testing.T) {

	responses := []*convert.ConvertResponse{
		{
			Source:      "2024/IMG_0001.heic",
			Target:      "2024/IMG_0001.jpg",
			Coordinate:  &geo.Coordinate{Latitude: 37.61799, Longitude: -122.38998},
			Fingerprint: "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed",
		},
		{
			Source:     "IMG_0002.heic",
			Target:     "IMG_0002.jpg",
			Coordinate: &geo.Coordinate{Latitude: 37.0, Longitude: -122.0},
		},
	}

	entries := manifestEntries(responses)

	require.Len(t, entries, 2)

	assert.Equal(t, "IMG_0001.jpg", entries[0].Filename)
	assert.Equal(t, "IMG_0002.jpg", entries[1].Filename)
	assert.Equal(t, responses[0].Fingerprint, entries[0].Fingerprint)
	assert.Equal(t, responses[0].Coordinate, entries[0].Coordinate)
}

func TestPlotLocationsUseBaseNames(t *testing.T) {

	responses := []*convert.ConvertResponse{
		{
			Target:     "derivatives/nested/IMG_0001.jpg",
			Coordinate: &geo.Coordinate{Latitude: 37.61799, Longitude: -122.38998},
		},
	}

	locations := plotLocations(responses)

	require.Len(t, locations, 1)

	assert.Equal(t, "IMG_0001.jpg", locations[0].Label)
	assert.InDelta(t, 37.61799, locations[0].Latitude, 0.000001)
	assert.InDelta(t, -122.38998, locations[0].Longitude, 0.000001)
}

func TestManifestWriterURI(t *testing.T) {

	uri, err := manifestWriterURI("", "file:///tmp/photos")
	require.NoError(t, err)
	assert.Equal(t, "fs:///tmp/photos", uri)

	uri, err = manifestWriterURI("fs:///elsewhere", "s3://bucket")
	require.NoError(t, err)
	assert.Equal(t, "fs:///elsewhere", uri)

	_, err = manifestWriterURI("", "s3://bucket")
	require.Error(t, err)
}
