package exifgps

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
	"github.com/sfomuseum/go-geoimage/geo"
	"gocloud.dev/blob"
)

var register_mknote sync.Once

// ExtractJPEG returns the GPS EXIF location recorded in a JPEG file stored in a blob.Bucket instance.
func ExtractJPEG(ctx context.Context, bucket *blob.Bucket, path string) (*geo.Coordinate, error) {

	x, err := decodeJPEG(ctx, bucket, path)

	if err != nil {
		return nil, err
	}

	lat, lon, err := x.LatLong()

	if err != nil {
		return nil, ErrNoLocation
	}

	c := &geo.Coordinate{
		Latitude:  lat,
		Longitude: lon,
	}

	if !c.IsValid() || c.IsZero() {
		return nil, ErrNoLocation
	}

	return c, nil
}

// ExtractJPEGCreated returns the DateTimeOriginal timestamp recorded in a JPEG file stored in
// a blob.Bucket instance. Timestamps are assumed to be local to the camera and are returned in UTC.
func ExtractJPEGCreated(ctx context.Context, bucket *blob.Bucket, path string) (time.Time, error) {

	x, err := decodeJPEG(ctx, bucket, path)

	if err != nil {
		return time.Time{}, err
	}

	tag, err := x.Get("DateTimeOriginal")

	if err != nil {
		return time.Time{}, ErrNoExif
	}

	str_dt := tag.String()
	str_dt = strings.Trim(str_dt, "\"") // see this? it's important

	// remember these datetime formats are Go's internal cray-cray
	// for working with time...

	t, err := time.Parse("2006:01:02 15:04:05", str_dt)

	if err != nil {
		return time.Time{}, fmt.Errorf("Failed to parse '%s', %w", str_dt, err)
	}

	return t.UTC(), nil
}

func decodeJPEG(ctx context.Context, bucket *blob.Bucket, path string) (*exif.Exif, error) {

	register_mknote.Do(func() {
		exif.RegisterParsers(mknote.All...)
	})

	r, err := bucket.NewReader(ctx, path, nil)

	if err != nil {
		return nil, fmt.Errorf("Failed to open %s for reading, %w", path, err)
	}

	defer r.Close()

	x, err := exif.Decode(r)

	if err != nil {
		return nil, ErrNoExif
	}

	return x, nil
}
