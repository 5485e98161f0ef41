package lookup

import (
	"context"
	"fmt"
	"sync"

	"github.com/sfomuseum/go-geoimage/geo"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"gocloud.dev/blob"
)

const emptyCollection = `{"type":"FeatureCollection","features":[]}`

var sidecar_mu = new(sync.Mutex)

// RecordCoordinate appends a (filename, coordinate) Feature to a sidecar GeoJSON
// FeatureCollection document stored in a blob.Bucket instance, creating the document if
// necessary. Filenames already present in the document are left untouched.
func RecordCoordinate(ctx context.Context, bucket *blob.Bucket, sidecar_path string, fname string, c *geo.Coordinate) error {

	if !c.IsValid() {
		return fmt.Errorf("Invalid coordinate for %s, %s", fname, c)
	}

	sidecar_mu.Lock()
	defer sidecar_mu.Unlock()

	body := []byte(emptyCollection)

	exists, err := bucket.Exists(ctx, sidecar_path)

	if err != nil {
		return fmt.Errorf("Failed to determine whether %s exists, %w", sidecar_path, err)
	}

	if exists {

		body, err = bucket.ReadAll(ctx, sidecar_path)

		if err != nil {
			return fmt.Errorf("Failed to read %s, %w", sidecar_path, err)
		}
	}

	for _, f := range gjson.GetBytes(body, "features").Array() {

		if f.Get("properties.geoimage:filename").String() == fname {
			return nil
		}
	}

	f := []byte(`{"type":"Feature","properties":{},"geometry":{"type":"Point"}}`)

	f, err = sjson.SetBytes(f, "properties.geoimage:filename", fname)

	if err != nil {
		return fmt.Errorf("Failed to assign filename, %w", err)
	}

	coords := []float64{
		c.Longitude,
		c.Latitude,
	}

	if c.Altitude != 0.0 {
		coords = append(coords, c.Altitude)
	}

	f, err = sjson.SetBytes(f, "geometry.coordinates", coords)

	if err != nil {
		return fmt.Errorf("Failed to assign coordinates, %w", err)
	}

	body, err = sjson.SetRawBytes(body, "features.-1", f)

	if err != nil {
		return fmt.Errorf("Failed to append feature, %w", err)
	}

	err = bucket.WriteAll(ctx, sidecar_path, body, nil)

	if err != nil {
		return fmt.Errorf("Failed to write %s, %w", sidecar_path, err)
	}

	return nil
}
