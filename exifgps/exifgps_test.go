package exifgps

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/sfomuseum/go-geoimage/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func testJPEG(t *testing.T) []byte {

	im := image.NewRGBA(image.Rect(0, 0, 64, 48))

	for x := 0; x < 64; x++ {
		for y := 0; y < 48; y++ {
			im.Set(x, y, color.RGBA{uint8(x * 4), uint8(y * 5), 0x7f, 0xff})
		}
	}

	buf := new(bytes.Buffer)
	err := jpeg.Encode(buf, im, nil)
	require.NoError(t, err)

	return buf.Bytes()
}

func TestAppendGPSRoundTrip(t *testing.T) {

	ctx := context.Background()

	tests := []*geo.Coordinate{
		{Latitude: 37.61799, Longitude: -122.38998},
		{Latitude: -33.44889, Longitude: -70.66927, Altitude: 520.0},
		{Latitude: 48.85837, Longitude: 2.29448},
	}

	for _, c := range tests {

		body, err := AppendGPS(testJPEG(t), c)
		require.NoError(t, err)

		bucket := memblob.OpenBucket(nil)
		defer bucket.Close()

		err = bucket.WriteAll(ctx, "test.jpg", body, nil)
		require.NoError(t, err)

		roundtrip, err := ExtractJPEG(ctx, bucket, "test.jpg")
		require.NoError(t, err)

		assert.InDelta(t, c.Latitude, roundtrip.Latitude, 0.0001)
		assert.InDelta(t, c.Longitude, roundtrip.Longitude, 0.0001)
	}
}

func TestAppendGPSInvalidCoordinate(t *testing.T) {

	c := &geo.Coordinate{Latitude: 91.0}

	_, err := AppendGPS(testJPEG(t), c)
	assert.Error(t, err)
}

func TestExtractJPEGWithoutExif(t *testing.T) {

	ctx := context.Background()

	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	err := bucket.WriteAll(ctx, "plain.jpg", testJPEG(t), nil)
	require.NoError(t, err)

	_, err = ExtractJPEG(ctx, bucket, "plain.jpg")
	assert.ErrorIs(t, err, ErrNoExif)
}

func TestExtractHEICBytesMalformed(t *testing.T) {

	_, err := ExtractHEICBytes([]byte("not a heic file"))
	assert.Error(t, err)
}
