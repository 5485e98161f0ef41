package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sfomuseum/go-geoimage/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/whosonfirst/go-writer/v3"
)

func testEntries() []*Entry {

	return []*Entry{
		{
			Filename:    "IMG_0001.jpg",
			Coordinate:  &geo.Coordinate{Latitude: 37.61799, Longitude: -122.38998},
			Fingerprint: "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed",
		},
		{
			Filename:   "IMG_0002.jpg",
			Coordinate: &geo.Coordinate{Latitude: 48.85837, Longitude: 2.29448},
			Text:       "DEPARTURES",
		},
	}
}

func testWriter(t *testing.T) (writer.Writer, string) {

	ctx := context.Background()

	root := t.TempDir()

	wr, err := writer.NewWriter(ctx, fmt.Sprintf("fs://%s", root))
	require.NoError(t, err)

	return wr, root
}

func TestMapsURL(t *testing.T) {

	e := &Entry{
		Coordinate: &geo.Coordinate{Latitude: 37.61799, Longitude: -122.38998},
	}

	assert.Equal(t, "https://www.google.com/maps?q=37.61799%2C-122.38998", e.MapsURL())
}

func TestWriteHTML(t *testing.T) {

	ctx := context.Background()

	wr, root := testWriter(t)

	err := WriteHTML(ctx, wr, "manifest.html", testEntries())
	require.NoError(t, err)

	body, err := os.ReadFile(filepath.Join(root, "manifest.html"))
	require.NoError(t, err)

	html := string(body)

	assert.Contains(t, html, "<title>Photo locations</title>")
	assert.Contains(t, html, "IMG_0001.jpg")
	assert.Contains(t, html, "https://www.google.com/maps?q=37.61799%2C-122.38998")
	assert.Contains(t, html, "<em>DEPARTURES</em>")
}

func TestWriteGeoJSON(t *testing.T) {

	ctx := context.Background()

	wr, root := testWriter(t)

	err := WriteGeoJSON(ctx, wr, "locations.geojson", testEntries())
	require.NoError(t, err)

	body, err := os.ReadFile(filepath.Join(root, "locations.geojson"))
	require.NoError(t, err)

	assert.Equal(t, "FeatureCollection", gjson.GetBytes(body, "type").String())

	features := gjson.GetBytes(body, "features").Array()
	require.Len(t, features, 2)

	first := features[0]

	assert.Equal(t, "Point", first.Get("geometry.type").String())
	assert.Equal(t, "IMG_0001.jpg", first.Get("properties.geoimage:filename").String())
	assert.InDelta(t, -122.38998, first.Get("geometry.coordinates.0").Float(), 0.000001)
	assert.InDelta(t, 37.61799, first.Get("geometry.coordinates.1").Float(), 0.000001)
}
