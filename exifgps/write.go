package exifgps

import (
	"bytes"
	"fmt"
	"math"

	dexif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"
	"github.com/sfomuseum/go-geoimage/geo"
)

// AppendGPS returns a copy of the body of a JPEG file with GPS EXIF tags describing c written
// in to its GPS IFD. Any existing EXIF block is preserved; one is created if necessary.
func AppendGPS(body []byte, c *geo.Coordinate) ([]byte, error) {

	if !c.IsValid() {
		return nil, fmt.Errorf("Invalid coordinate, %s", c)
	}

	jmp := jpegstructure.NewJpegMediaParser()

	intfc, err := jmp.ParseBytes(body)

	if err != nil {
		return nil, fmt.Errorf("Failed to parse JPEG segments, %w", err)
	}

	sl := intfc.(*jpegstructure.SegmentList)

	root_ib, err := sl.ConstructExifBuilder()

	if err != nil {

		im, err := exifcommon.NewIfdMappingWithStandard()

		if err != nil {
			return nil, fmt.Errorf("Failed to create IFD mapping, %w", err)
		}

		ti := dexif.NewTagIndex()
		root_ib = dexif.NewIfdBuilder(im, ti, exifcommon.IfdStandardIfdIdentity, exifcommon.EncodeDefaultByteOrder)
	}

	gps_ib, err := dexif.GetOrCreateIbFromRootIb(root_ib, "IFD/GPSInfo")

	if err != nil {
		return nil, fmt.Errorf("Failed to create GPS IFD, %w", err)
	}

	updates := []struct {
		name  string
		value interface{}
	}{
		{"GPSVersionID", []byte{2, 3, 0, 0}},
		{"GPSLatitudeRef", c.LatitudeRef()},
		{"GPSLatitude", degreesToRationals(c.Latitude)},
		{"GPSLongitudeRef", c.LongitudeRef()},
		{"GPSLongitude", degreesToRationals(c.Longitude)},
	}

	if c.Altitude != 0.0 {

		alt := []struct {
			name  string
			value interface{}
		}{
			{"GPSAltitudeRef", []byte{0}},
			{"GPSAltitude", []exifcommon.Rational{altitudeToRational(c.Altitude)}},
		}

		updates = append(updates, alt...)
	}

	for _, u := range updates {

		err := gps_ib.SetStandardWithName(u.name, u.value)

		if err != nil {
			return nil, fmt.Errorf("Failed to set %s, %w", u.name, err)
		}
	}

	err = sl.SetExif(root_ib)

	if err != nil {
		return nil, fmt.Errorf("Failed to update EXIF segment, %w", err)
	}

	buf := new(bytes.Buffer)

	err = sl.Write(buf)

	if err != nil {
		return nil, fmt.Errorf("Failed to write JPEG segments, %w", err)
	}

	return buf.Bytes(), nil
}

// degreesToRationals converts an unsigned decimal degree value in to the three EXIF GPS
// rationals (degrees, minutes, seconds). Seconds carry a 1/10000 denominator which keeps
// round-trips within ~1e-5 degrees.
func degreesToRationals(deg float64) []exifcommon.Rational {

	d, m, s := geo.DMS(deg)

	return []exifcommon.Rational{
		{Numerator: uint32(d), Denominator: 1},
		{Numerator: uint32(m), Denominator: 1},
		{Numerator: uint32(math.Round(s * 10000.0)), Denominator: 10000},
	}
}

func altitudeToRational(alt float64) exifcommon.Rational {

	return exifcommon.Rational{
		Numerator:   uint32(math.Round(math.Abs(alt) * 100.0)),
		Denominator: 100,
	}
}
