package manifest

import (
	"context"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/whosonfirst/go-writer/v3"
)

// WriteGeoJSON builds a GeoJSON FeatureCollection of Point features for entries and writes
// it to path using a whosonfirst/go-writer.Writer instance. Each feature carries
// "geoimage:" prefixed properties describing the photograph it depicts.
func WriteGeoJSON(ctx context.Context, wr writer.Writer, path string, entries []*Entry) error {

	fc := geojson.NewFeatureCollection()

	for _, e := range entries {

		pt := orb.Point{
			e.Coordinate.Longitude,
			e.Coordinate.Latitude,
		}

		f := geojson.NewFeature(pt)

		f.Properties["geoimage:filename"] = e.Filename

		if e.Fingerprint != "" {
			f.Properties["geoimage:fingerprint"] = e.Fingerprint
		}

		if e.Text != "" {
			f.Properties["geoimage:text"] = e.Text
		}

		fc.Append(f)
	}

	body, err := fc.MarshalJSON()

	if err != nil {
		return fmt.Errorf("Failed to marshal feature collection, %w", err)
	}

	return write(ctx, wr, path, body)
}
