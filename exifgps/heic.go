package exifgps

import (
	"context"
	"fmt"
	"io"

	exifcommon "github.com/dsoprea/go-exif/v3/common"
	heicexif "github.com/dsoprea/go-heic-exif-extractor/v2"
	"github.com/sfomuseum/go-geoimage/geo"
	"gocloud.dev/blob"
)

// ExtractHEIC returns the GPS EXIF location recorded in a HEIC file stored in a blob.Bucket instance.
func ExtractHEIC(ctx context.Context, bucket *blob.Bucket, path string) (*geo.Coordinate, error) {

	r, err := bucket.NewReader(ctx, path, nil)

	if err != nil {
		return nil, fmt.Errorf("Failed to open %s for reading, %w", path, err)
	}

	defer r.Close()

	body, err := io.ReadAll(r)

	if err != nil {
		return nil, fmt.Errorf("Failed to read %s, %w", path, err)
	}

	return ExtractHEICBytes(body)
}

// ExtractHEICBytes returns the GPS EXIF location recorded in the body of a HEIC file. The EXIF
// item is located by walking the ISOBMFF box structure of the container; the GPS IFD is then
// resolved in to decimal degrees.
func ExtractHEICBytes(body []byte) (*geo.Coordinate, error) {

	mp := heicexif.NewHeicExifMediaParser()

	mc, err := mp.ParseBytes(body)

	if err != nil {
		return nil, fmt.Errorf("Failed to parse HEIC container, %w", err)
	}

	root_ifd, _, err := mc.Exif()

	if err != nil {
		return nil, ErrNoExif
	}

	gps_ifd, err := root_ifd.ChildWithIfdPath(exifcommon.IfdGpsInfoStandardIfdIdentity)

	if err != nil {
		return nil, ErrNoLocation
	}

	gi, err := gps_ifd.GpsInfo()

	if err != nil {
		return nil, ErrNoLocation
	}

	c := &geo.Coordinate{
		Latitude:  gi.Latitude.Decimal(),
		Longitude: gi.Longitude.Decimal(),
		Altitude:  float64(gi.Altitude),
	}

	if !c.IsValid() || c.IsZero() {
		return nil, ErrNoLocation
	}

	return c, nil
}
