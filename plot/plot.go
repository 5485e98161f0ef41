// Package plot implements rendering a set of photo locations on a satellite basemap.
package plot

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"

	sm "github.com/flopp/go-staticmaps"
	"github.com/golang/geo/s2"
	"gocloud.dev/blob"
)

// A photo location to be plotted, with the label to draw beside its marker.
type Location struct {
	Label     string
	Latitude  float64
	Longitude float64
}

// PlotOptions is a struct containing application-specific options for rendering a map of
// photo locations.
type PlotOptions struct {
	// The pixel width of the rendered map. Default is 1600.
	Width int
	// The pixel height of the rendered map. Default is 1600.
	Height int
	// The margin applied around the extent of the locations, as a fraction of the extent
	// on each axis. Default is 0.4.
	Margin float64
	// The tile provider for the basemap. Default is the ArcGIS World Imagery (satellite) layer.
	Provider *sm.TileProvider
}

func DefaultPlotOptions() *PlotOptions {

	return &PlotOptions{
		Width:    1600,
		Height:   1600,
		Margin:   0.4,
		Provider: sm.NewTileProviderArcgisWorldImagery(),
	}
}

// PlotLocations renders locations on a satellite basemap and writes the resulting PNG image
// to path in a blob.Bucket instance.
func PlotLocations(ctx context.Context, bucket *blob.Bucket, path string, locations []*Location) error {

	opts := DefaultPlotOptions()

	im, err := RenderLocations(ctx, locations, opts)

	if err != nil {
		return fmt.Errorf("Failed to render locations, %w", err)
	}

	wr, err := bucket.NewWriter(ctx, path, nil)

	if err != nil {
		return fmt.Errorf("Failed to create writer for %s, %w", path, err)
	}

	err = png.Encode(wr, im)

	if err != nil {
		bucket.Delete(ctx, path)
		return fmt.Errorf("Failed to encode %s, %w", path, err)
	}

	return wr.Close()
}

// RenderLocations renders locations as red markers with labelled offsets on a basemap,
// fetching basemap tiles as needed.
func RenderLocations(ctx context.Context, locations []*Location, opts *PlotOptions) (image.Image, error) {

	if len(locations) == 0 {
		return nil, fmt.Errorf("Nothing to plot")
	}

	mc := sm.NewContext()
	mc.SetSize(opts.Width, opts.Height)
	mc.SetTileProvider(opts.Provider)
	mc.SetBoundingBox(boundsWithMargin(locations, opts.Margin))

	labels := trimCommonPrefix(locations)

	offset_mag := labelOffset(opts.Width, opts.Height)
	count := len(locations)

	for i, loc := range locations {

		pos := s2.LatLngFromDegrees(loc.Latitude, loc.Longitude)

		mc.AddObject(sm.NewMarker(pos, color.RGBA{0xff, 0x00, 0x00, 0xff}, 16.0))

		dx, dy := labelOffsetXY(i, count, offset_mag)

		label, err := newLocationLabel(pos, labels[i], dx, dy)

		if err != nil {
			return nil, fmt.Errorf("Failed to create label for %s, %w", labels[i], err)
		}

		mc.AddObject(label)
	}

	return mc.Render()
}

// boundsWithMargin returns the bounding box of the locations expanded by margin (a fraction
// of the extent) on each axis. A minimum span keeps single-point extents renderable.
func boundsWithMargin(locations []*Location, margin float64) s2.Rect {

	min_lat, min_lon := locations[0].Latitude, locations[0].Longitude
	max_lat, max_lon := min_lat, min_lon

	for _, loc := range locations[1:] {
		min_lat = math.Min(min_lat, loc.Latitude)
		max_lat = math.Max(max_lat, loc.Latitude)
		min_lon = math.Min(min_lon, loc.Longitude)
		max_lon = math.Max(max_lon, loc.Longitude)
	}

	d_lat := (max_lat - min_lat) * margin
	d_lon := (max_lon - min_lon) * margin

	min_span := 0.002

	if d_lat == 0.0 {
		d_lat = min_span
	}

	if d_lon == 0.0 {
		d_lon = min_span
	}

	r := s2.EmptyRect()
	r = r.AddPoint(s2.LatLngFromDegrees(math.Max(min_lat-d_lat, -90.0), math.Max(min_lon-d_lon, -180.0)))
	r = r.AddPoint(s2.LatLngFromDegrees(math.Min(max_lat+d_lat, 90.0), math.Min(max_lon+d_lon, 180.0)))

	return r
}

// labelOffset returns the pixel magnitude used to push labels away from their markers.
func labelOffset(width int, height int) float64 {
	return 0.03 * float64(min(width, height))
}

// labelOffsetXY distributes label offsets on a circle around each marker (angle 2πi/n) so
// that the labels of nearby points do not all pile up on the same side.
func labelOffsetXY(i int, n int, mag float64) (float64, float64) {

	angle := 2.0 * math.Pi * float64(i) / float64(n)

	return math.Cos(angle) * mag, math.Sin(angle) * mag
}

// trimCommonPrefix returns the labels for locations with the longest common prefix of all
// the labels removed, so that maps of files named "IMG_0001.jpg", "IMG_0002.jpg" read
// "1.jpg", "2.jpg".
func trimCommonPrefix(locations []*Location) []string {

	labels := make([]string, len(locations))

	for i, loc := range locations {
		labels[i] = loc.Label
	}

	if len(labels) < 2 {
		return labels
	}

	prefix := labels[0]

	for _, l := range labels[1:] {

		for !strings.HasPrefix(l, prefix) {

			prefix = prefix[:len(prefix)-1]

			if prefix == "" {
				return labels
			}
		}
	}

	trimmed := make([]string, len(labels))

	for i, l := range labels {
		trimmed[i] = strings.TrimPrefix(l, prefix)
	}

	return trimmed
}
