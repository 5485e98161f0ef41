// Package gather implements crawling a bucket of images and deriving the GPS EXIF
// location each one was taken at.
package gather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sfomuseum/go-geoimage/common"
	"github.com/sfomuseum/go-geoimage/exifgps"
	"github.com/sfomuseum/go-geoimage/geo"
	"gocloud.dev/blob"
)

// GatherLocationsResponse is a struct representing the location of a single geotagged image.
type GatherLocationsResponse struct {
	// The path of the image in the bucket being crawled.
	Path string
	// The mimetype of the image.
	MimeType string
	// The SHA-1 fingerprint of the image.
	Fingerprint string
	// The GPS EXIF location recorded in the image.
	Coordinate *geo.Coordinate
	// The Unix timestamp of the image's DateTimeOriginal EXIF tag, when present.
	Created int64 `json:",omitempty"`
}

// GatherLocationsCallbackFunc is a function invoked with each GatherLocationsResponse.
type GatherLocationsCallbackFunc func(*GatherLocationsResponse) error

// GatherLocationsOptions is a struct containing application-specific options for gathering
// the locations of the images in a bucket.
type GatherLocationsOptions struct {
	Callback    GatherLocationsCallbackFunc
	Fingerprint bool
}

// GatherLocations crawls all the images stored in a blob.Bucket instance and dispatches a
// GatherLocationsResponse for each one that carries a GPS EXIF location to cb.
func GatherLocations(ctx context.Context, bucket *blob.Bucket, cb GatherLocationsCallbackFunc) error {

	opts := &GatherLocationsOptions{
		Callback:    cb,
		Fingerprint: true,
	}

	return GatherLocationsWithOptions(ctx, bucket, opts)
}

func GatherLocationsWithOptions(ctx context.Context, bucket *blob.Bucket, opts *GatherLocationsOptions) error {

	gather_ch := make(chan *GatherLocationsResponse)

	done_ch := make(chan bool)
	err_ch := make(chan error)

	go func() {

		err := CrawlLocations(ctx, bucket, opts, gather_ch)

		if err != nil {
			err_ch <- err
		}

		done_ch <- true
	}()

	gathering := true
	wg := new(sync.WaitGroup)

	for {
		select {

		case <-done_ch:
			gathering = false
		case err := <-err_ch:
			return err
		case gather_rsp := <-gather_ch:

			wg.Add(1)

			go func(rsp *GatherLocationsResponse) {

				defer wg.Done()

				err := opts.Callback(rsp)

				if err != nil {
					slog.Error("Failed to process response", "path", rsp.Path, "error", err)
				}

			}(gather_rsp)
		}

		if !gathering {
			break
		}
	}

	wg.Wait()
	return nil
}

// CrawlLocations iterates through all the items stored in a blob.Bucket instance, generates a
// GatherLocationsResponse for things that are geotagged images and dispatches each response to
// a user-defined channel.
func CrawlLocations(ctx context.Context, bucket *blob.Bucket, opts *GatherLocationsOptions, rsp_ch chan *GatherLocationsResponse) error {

	var list func(context.Context, *blob.Bucket, string) error

	list = func(ctx context.Context, b *blob.Bucket, prefix string) error {

		iter := b.List(&blob.ListOptions{
			Delimiter: "/",
			Prefix:    prefix,
		})

		for {

			select {
			case <-ctx.Done():
				return nil
			default:
				// pass
			}

			obj, err := iter.Next(ctx)

			if err == io.EOF {
				break
			}

			if err != nil {
				return err
			}

			if obj.IsDir {

				err := list(ctx, b, obj.Key)

				if err != nil {
					return err
				}

				continue
			}

			rsp, err := GatherLocationResponseWithPath(ctx, bucket, opts, obj.Key)

			if err != nil {
				return err
			}

			if rsp == nil {
				continue
			}

			rsp_ch <- rsp
		}

		return nil
	}

	return list(ctx, bucket, "")
}

// GatherLocationResponseWithPath generates a GatherLocationsResponse for the file at path in a
// blob.Bucket instance. Files that are not images, and images with no GPS EXIF location, yield
// a nil response.
func GatherLocationResponseWithPath(ctx context.Context, bucket *blob.Bucket, opts *GatherLocationsOptions, path string) (*GatherLocationsResponse, error) {

	ext := strings.ToLower(filepath.Ext(path))

	var c *geo.Coordinate
	var created int64
	var err error

	switch ext {

	case ".heic", ".heif":

		c, err = exifgps.ExtractHEIC(ctx, bucket, path)

	case ".jpg", ".jpeg":

		c, err = exifgps.ExtractJPEG(ctx, bucket, path)

		if err == nil {

			t, t_err := exifgps.ExtractJPEGCreated(ctx, bucket, path)

			if t_err == nil {
				created = t.Unix()
			}
		}

	default:
		return nil, nil
	}

	if err != nil {

		if errors.Is(err, exifgps.ErrNoExif) || errors.Is(err, exifgps.ErrNoLocation) {
			return nil, nil
		}

		return nil, fmt.Errorf("Failed to extract location for %s, %w", path, err)
	}

	rsp := &GatherLocationsResponse{
		Path:       path,
		MimeType:   mimeType(ext),
		Coordinate: c,
		Created:    created,
	}

	if opts.Fingerprint {

		fp, err := common.FingerprintFile(ctx, bucket, path)

		if err != nil {
			return nil, fmt.Errorf("Failed to fingerprint %s, %w", path, err)
		}

		rsp.Fingerprint = fp
	}

	return rsp, nil
}

func mimeType(ext string) string {

	t := mime.TypeByExtension(ext)

	if t != "" {
		return t
	}

	switch ext {
	case ".heic", ".heif":
		return "image/heic"
	default:
		return ""
	}
}
