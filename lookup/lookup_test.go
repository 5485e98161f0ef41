package lookup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sfomuseum/go-geoimage/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

const testSidecar = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": { "geoimage:filename": "IMG_0001.jpg" },
      "geometry": { "type": "Point", "coordinates": [ -122.38998, 37.61799 ] }
    },
    {
      "type": "Feature",
      "properties": { "geoimage:filename": "IMG_0002.jpg" },
      "geometry": { "type": "Point", "coordinates": [ 2.29448, 48.85837, 35.0 ] }
    },
    {
      "type": "Feature",
      "properties": { "name": "no filename, skipped" },
      "geometry": { "type": "Point", "coordinates": [ 0.0, 51.0 ] }
    }
  ]
}`

func TestBlobLookerUpper(t *testing.T) {

	ctx := context.Background()

	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	err := bucket.WriteAll(ctx, "locations.geojson", []byte(testSidecar), nil)
	require.NoError(t, err)

	err = bucket.WriteAll(ctx, "notes.txt", []byte("not geojson"), nil)
	require.NoError(t, err)

	l, err := NewBlobLookerUpperWithBucket(ctx, bucket)
	require.NoError(t, err)

	append_funcs := []AppendLookupFunc{
		CoordinateAppendLookupFunc,
	}

	lu, err := NewLookupMap(ctx, []LookerUpper{l}, append_funcs)
	require.NoError(t, err)

	v, ok := lu.Load("IMG_0001.jpg")
	require.True(t, ok)

	c := v.(*geo.Coordinate)
	assert.InDelta(t, 37.61799, c.Latitude, 0.000001)
	assert.InDelta(t, -122.38998, c.Longitude, 0.000001)

	v, ok = lu.Load("IMG_0002.jpg")
	require.True(t, ok)

	c = v.(*geo.Coordinate)
	assert.InDelta(t, 35.0, c.Altitude, 0.000001)

	count := 0

	lu.Range(func(k interface{}, v interface{}) bool {
		count += 1
		return true
	})

	assert.Equal(t, 2, count)
}

func TestReaderLookerUpper(t *testing.T) {

	ctx := context.Background()

	root := t.TempDir()

	err := os.WriteFile(filepath.Join(root, "locations.geojson"), []byte(testSidecar), 0644)
	require.NoError(t, err)

	l := NewReaderLookerUpper(ctx)

	err = l.Open(ctx, fmt.Sprintf("fs://%s", root))
	require.NoError(t, err)

	lu, err := NewLookupMap(ctx, []LookerUpper{l}, []AppendLookupFunc{CoordinateAppendLookupFunc})
	require.NoError(t, err)

	v, ok := lu.Load("IMG_0002.jpg")
	require.True(t, ok)

	c := v.(*geo.Coordinate)
	assert.InDelta(t, 48.85837, c.Latitude, 0.000001)
}

func TestRecordCoordinate(t *testing.T) {

	ctx := context.Background()

	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	sfo := &geo.Coordinate{Latitude: 37.61799, Longitude: -122.38998}
	cdg := &geo.Coordinate{Latitude: 49.00969, Longitude: 2.54786}

	err := RecordCoordinate(ctx, bucket, "locations.geojson", "IMG_0001.jpg", sfo)
	require.NoError(t, err)

	err = RecordCoordinate(ctx, bucket, "locations.geojson", "IMG_0002.jpg", cdg)
	require.NoError(t, err)

	// recording the same filename twice is a no-op
	err = RecordCoordinate(ctx, bucket, "locations.geojson", "IMG_0001.jpg", cdg)
	require.NoError(t, err)

	l, err := NewBlobLookerUpperWithBucket(ctx, bucket)
	require.NoError(t, err)

	lu, err := NewLookupMap(ctx, []LookerUpper{l}, []AppendLookupFunc{CoordinateAppendLookupFunc})
	require.NoError(t, err)

	v, ok := lu.Load("IMG_0001.jpg")
	require.True(t, ok)

	c := v.(*geo.Coordinate)
	assert.InDelta(t, sfo.Latitude, c.Latitude, 0.000001)
	assert.InDelta(t, sfo.Longitude, c.Longitude, 0.000001)

	_, ok = lu.Load("IMG_0002.jpg")
	assert.True(t, ok)
}
