// Package convert implements the conversion of HEIC photographs in to annotated JPEG
// derivatives carrying GPS EXIF tags.
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	_ "github.com/gen2brain/heic" // required to recognize HEIC
	_ "image/jpeg"
	_ "image/png"

	"github.com/aaronland/go-image-tools/util"
	"github.com/aaronland/go-string/random"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/maruel/natural"
	"github.com/schollz/progressbar/v3"
	"github.com/sfomuseum/go-geoimage/common"
	"github.com/sfomuseum/go-geoimage/exifgps"
	"github.com/sfomuseum/go-geoimage/geo"
	"github.com/sfomuseum/go-geoimage/lookup"
	emboss "github.com/sfomuseum/go-text-emboss/v2"
	"gocloud.dev/blob"
)

// ConvertResponse is a struct representing the results of converting a single HEIC photograph.
type ConvertResponse struct {
	// The path of the source HEIC file.
	Source string
	// The path of the JPEG derivative written to the target bucket.
	Target string
	// The GPS location resolved for the photograph.
	Coordinate *geo.Coordinate
	// The SHA-1 fingerprint of the source file.
	Fingerprint string
	// Perceptual hashes of the converted image.
	ImageHashes []*common.ImageHash
	// Optional text extracted from the image, when an embosser is configured.
	Text string `json:",omitempty"`
}

// ConvertCallbackFunc is a function invoked with each ConvertResponse as it is produced.
type ConvertCallbackFunc func(*ConvertResponse) error

// ConvertImagesOptions is a struct containing application-specific options for converting
// the HEIC photographs in a bucket.
type ConvertImagesOptions struct {
	// The gocloud.dev/blob.Bucket where HEIC photographs are read from.
	Source *blob.Bucket
	// The gocloud.dev/blob.Bucket where JPEG derivatives are written to.
	Target *blob.Bucket
	// An optional lookup map (filename to *geo.Coordinate) used to resolve locations for
	// photographs that do not carry GPS EXIF data.
	Lookup *sync.Map
	// An optional embosser for extracting text depicted in photographs.
	Embosser emboss.Embosser
	// An optional S3 canned ACL to assign to derivatives (for example "public-read").
	ACL string
	// Append a random alphanumeric secret to derivative filenames.
	WithSecret bool
	// Display a progress bar on STDERR.
	Progress bool
	// An optional path for a sidecar GeoJSON document, relative to the source bucket, where
	// resolved locations are recorded.
	SidecarPath string
	// An optional ConvertCallbackFunc invoked with each response.
	Callback ConvertCallbackFunc
}

// ConvertImages converts every HEIC photograph in the source bucket in to an annotated JPEG
// derivative in the target bucket. Photographs are processed concurrently; responses are
// returned in the natural-sort order of their source paths. Photographs with no resolvable
// location, and duplicates of photographs already converted in this run, are logged and skipped.
func ConvertImages(ctx context.Context, opts *ConvertImagesOptions) ([]*ConvertResponse, error) {

	paths, err := listImages(ctx, opts.Source)

	if err != nil {
		return nil, fmt.Errorf("Failed to list images, %w", err)
	}

	sort.Slice(paths, func(i int, j int) bool {
		return natural.Less(paths[i], paths[j])
	})

	var bar *progressbar.ProgressBar

	if opts.Progress {
		bar = progressbar.NewOptions(len(paths),
			progressbar.OptionSetDescription("Converting"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	seen := new(sync.Map)

	done_ch := make(chan bool)
	err_ch := make(chan error)
	rsp_ch := make(chan *ConvertResponse)

	for _, path := range paths {

		go func(path string) {

			defer func() {
				done_ch <- true
			}()

			select {
			case <-ctx.Done():
				return
			default:
				// pass
			}

			rsp, err := convertImage(ctx, opts, seen, path)

			if err != nil {
				err_ch <- fmt.Errorf("Failed to convert %s, %w", path, err)
				return
			}

			if rsp != nil {
				rsp_ch <- rsp
			}

		}(path)
	}

	remaining := len(paths)
	responses := make([]*ConvertResponse, 0)

	for remaining > 0 {

		select {
		case <-done_ch:

			remaining -= 1

			if bar != nil {
				bar.Add(1)
			}

		case err := <-err_ch:
			slog.Error("Convert channel received error", "error", err)
		case rsp := <-rsp_ch:

			responses = append(responses, rsp)

			if opts.Callback != nil {

				err := opts.Callback(rsp)

				if err != nil {
					slog.Error("Convert callback failed", "path", rsp.Source, "error", err)
				}
			}
		}
	}

	if bar != nil {
		bar.Finish()
	}

	sort.Slice(responses, func(i int, j int) bool {
		return natural.Less(responses[i].Source, responses[j].Source)
	})

	return responses, nil
}

func convertImage(ctx context.Context, opts *ConvertImagesOptions, seen *sync.Map, path string) (*ConvertResponse, error) {

	fp, err := common.FingerprintFile(ctx, opts.Source, path)

	if err != nil {
		return nil, fmt.Errorf("Failed to fingerprint %s, %w", path, err)
	}

	prev, exists := seen.LoadOrStore(fp, path)

	if exists {
		slog.Info("Skipping duplicate photograph", "path", path, "duplicate_of", prev)
		return nil, nil
	}

	c, err := resolveCoordinate(ctx, opts, path)

	if err != nil {
		return nil, err
	}

	if c == nil {
		slog.Warn("Missing GPS data, skipping", "path", path)
		return nil, nil
	}

	r, err := opts.Source.NewReader(ctx, path, nil)

	if err != nil {
		return nil, fmt.Errorf("Failed to open %s for reading, %w", path, err)
	}

	im, _, err := util.DecodeImageFromReader(r)

	r.Close()

	if err != nil {
		return nil, fmt.Errorf("Failed to decode %s, %w", path, err)
	}

	im, err = AppendFooter(im, c)

	if err != nil {
		return nil, fmt.Errorf("Failed to append footer to %s, %w", path, err)
	}

	buf := new(bytes.Buffer)

	err = util.EncodeImage(im, "jpeg", buf)

	if err != nil {
		return nil, fmt.Errorf("Failed to encode %s, %w", path, err)
	}

	body, err := exifgps.AppendGPS(buf.Bytes(), c)

	if err != nil {
		return nil, fmt.Errorf("Failed to append GPS tags to %s, %w", path, err)
	}

	target_path, err := targetPath(path, opts.WithSecret)

	if err != nil {
		return nil, err
	}

	err = writeImage(ctx, opts, target_path, body)

	if err != nil {
		return nil, fmt.Errorf("Failed to write %s, %w", target_path, err)
	}

	hashes, err := common.HashImage(ctx, im)

	if err != nil {
		return nil, fmt.Errorf("Failed to hash %s, %w", path, err)
	}

	rsp := &ConvertResponse{
		Source:      path,
		Target:      target_path,
		Coordinate:  c,
		Fingerprint: fp,
		ImageHashes: hashes,
	}

	if opts.Embosser != nil {

		text, err := common.ExtractText(ctx, opts.Embosser, opts.Target, target_path)

		if err != nil {
			slog.Warn("Failed to extract text", "path", target_path, "error", err)
		} else {
			rsp.Text = string(text)
		}
	}

	if opts.SidecarPath != "" {

		err := lookup.RecordCoordinate(ctx, opts.Source, opts.SidecarPath, filepath.Base(path), c)

		if err != nil {
			slog.Warn("Failed to record sidecar coordinate", "path", path, "error", err)
		}
	}

	return rsp, nil
}

// resolveCoordinate returns the location for a photograph: its GPS EXIF data when present,
// otherwise the lookup map entry for its base filename. A nil coordinate (and nil error)
// means the photograph has no resolvable location.
func resolveCoordinate(ctx context.Context, opts *ConvertImagesOptions, path string) (*geo.Coordinate, error) {

	c, err := exifgps.ExtractHEIC(ctx, opts.Source, path)

	if err == nil {
		return c, nil
	}

	if !errors.Is(err, exifgps.ErrNoExif) && !errors.Is(err, exifgps.ErrNoLocation) {
		return nil, err
	}

	if opts.Lookup == nil {
		return nil, nil
	}

	v, ok := opts.Lookup.Load(filepath.Base(path))

	if !ok {
		return nil, nil
	}

	return v.(*geo.Coordinate), nil
}

func writeImage(ctx context.Context, opts *ConvertImagesOptions, target_path string, body []byte) error {

	var wr_opts *blob.WriterOptions

	if opts.ACL != "" {

		before := func(asFunc func(interface{}) bool) error {

			s3_req := &s3manager.UploadInput{}
			ok := asFunc(&s3_req)

			if ok {
				s3_req.ACL = aws.String(opts.ACL)
			}

			return nil
		}

		wr_opts = &blob.WriterOptions{
			BeforeWrite: before,
		}
	}

	wr, err := opts.Target.NewWriter(ctx, target_path, wr_opts)

	if err != nil {
		return err
	}

	_, err = io.Copy(wr, bytes.NewReader(body))

	if err != nil {
		opts.Target.Delete(ctx, target_path)
		return err
	}

	return wr.Close()
}

// targetPath derives the derivative filename for a source path: the extension is replaced
// with ".jpg" and, when with_secret is true, a random alphanumeric secret is appended to
// the name (following the "name_secret.ext" convention for published media).
func targetPath(path string, with_secret bool) (string, error) {

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)

	if !with_secret {
		return fmt.Sprintf("%s.jpg", base), nil
	}

	rand_opts := random.DefaultOptions()
	rand_opts.AlphaNumeric = true

	secret, err := random.String(rand_opts)

	if err != nil {
		return "", fmt.Errorf("Failed to generate secret, %w", err)
	}

	return fmt.Sprintf("%s_%s.jpg", base, secret), nil
}

// listImages returns the keys of all the HEIC files in a bucket, crawling recursively.
func listImages(ctx context.Context, bucket *blob.Bucket) ([]string, error) {

	paths := make([]string, 0)

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

			ext := strings.ToLower(filepath.Ext(obj.Key))

			if ext != ".heic" {
				continue
			}

			paths = append(paths, obj.Key)
		}

		return nil
	}

	err := list(ctx, bucket, "")

	if err != nil {
		return nil, err
	}

	return paths, nil
}
