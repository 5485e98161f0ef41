package common

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/corona10/goimagehash"
	"gocloud.dev/blob"
)

// ImageHash is a struct representing the results of an image hashing operation.
type ImageHash struct {
	// String label describing the image hashing procedure used.
	Approach string
	// The hexidecimal hash of an image.
	Hash string
}

var approaches = []string{
	"avg",
	"diff",
	// "ext" appears to return the same string hash as "avg" so don't bother with it
}

// ImageHashes generates a list of perceptual ImageHash instances for a file stored in a
// blob.Bucket instance, using the corona10/goimagehash package.
func ImageHashes(ctx context.Context, bucket *blob.Bucket, im_path string) ([]*ImageHash, error) {

	r, err := bucket.NewReader(ctx, im_path, nil)

	if err != nil {
		return nil, fmt.Errorf("Failed to create reader for %s, %w", im_path, err)
	}

	defer r.Close()

	im, _, err := image.Decode(r)

	if err != nil {
		return nil, fmt.Errorf("Failed to decode image from %s, %w", im_path, err)
	}

	return HashImage(ctx, im)
}

// HashImage generates a list of perceptual ImageHash instances for an image.Image instance.
func HashImage(ctx context.Context, im image.Image) ([]*ImageHash, error) {

	done_ch := make(chan bool)
	err_ch := make(chan error)
	rsp_ch := make(chan *ImageHash)

	for _, a := range approaches {

		go func(ctx context.Context, im image.Image, a string) {

			defer func() {
				done_ch <- true
			}()

			select {
			case <-ctx.Done():
				return
			default:
				// pass
			}

			h, err := imageHash(im, a)

			if err != nil {
				err_ch <- fmt.Errorf("Failed to process image hash approach '%s', %w", a, err)
				return
			}

			rsp_ch <- &ImageHash{
				Approach: a,
				Hash:     h,
			}

		}(ctx, im, a)
	}

	remaining := len(approaches)
	hashes := make([]*ImageHash, 0)

	for remaining > 0 {

		select {
		case <-done_ch:
			remaining -= 1
		case err := <-err_ch:
			slog.Error("Image hash channel received error", "error", err)
		case rsp := <-rsp_ch:
			hashes = append(hashes, rsp)
		}
	}

	return hashes, nil
}

func imageHash(im image.Image, approach string) (string, error) {

	switch approach {
	case "avg":

		h, err := goimagehash.AverageHash(im)

		if err != nil {
			return "", err
		}

		return h.ToString(), nil

	case "diff":

		h, err := goimagehash.DifferenceHash(im)

		if err != nil {
			return "", err
		}

		return h.ToString(), nil

	default:
		return "", fmt.Errorf("Unknown approach")
	}
}
