package lookup

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/sfomuseum/go-geoimage/geo"
	"github.com/tidwall/gjson"
)

// AppendLookupFunc is a function for deriving lookup keys and values from the body of a
// sidecar document and storing them in a sync.Map instance.
type AppendLookupFunc func(context.Context, *sync.Map, io.ReadCloser) error

// CoordinateAppendLookupFunc indexes the Features of a sidecar GeoJSON document by their
// "geoimage:filename" property, mapped to a geo.Coordinate instance derived from each
// feature's Point geometry. Documents may contain a single Feature or a FeatureCollection.
func CoordinateAppendLookupFunc(ctx context.Context, lu *sync.Map, fh io.ReadCloser) error {

	body, err := io.ReadAll(fh)

	if err != nil {
		return err
	}

	features := gjson.GetBytes(body, "features")

	if !features.Exists() {
		return appendFeature(lu, gjson.ParseBytes(body))
	}

	for _, f := range features.Array() {

		err := appendFeature(lu, f)

		if err != nil {
			return err
		}
	}

	return nil
}

func appendFeature(lu *sync.Map, f gjson.Result) error {

	fname_rsp := f.Get("properties.geoimage:filename")

	if !fname_rsp.Exists() {
		slog.Debug("Sidecar feature is missing geoimage:filename, skipping")
		return nil
	}

	geom_type := f.Get("geometry.type")

	if geom_type.String() != "Point" {
		slog.Debug("Sidecar feature does not have a Point geometry, skipping", "filename", fname_rsp.String())
		return nil
	}

	coords := f.Get("geometry.coordinates").Array()

	if len(coords) < 2 {
		return fmt.Errorf("Invalid coordinates for %s", fname_rsp.String())
	}

	c := &geo.Coordinate{
		Longitude: coords[0].Float(),
		Latitude:  coords[1].Float(),
	}

	if len(coords) > 2 {
		c.Altitude = coords[2].Float()
	}

	if !c.IsValid() {
		return fmt.Errorf("Invalid coordinate for %s, %s", fname_rsp.String(), c)
	}

	fname := fname_rsp.String()

	_, exists := lu.LoadOrStore(fname, c)

	if exists {
		return fmt.Errorf("Existing lookup key for %s", fname)
	}

	return nil
}
