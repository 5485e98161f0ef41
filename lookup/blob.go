package lookup

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"sync"

	"gocloud.dev/blob"
)

// BlobLookerUpper gathers sidecar GeoJSON documents from a gocloud.dev/blob.Bucket instance.
type BlobLookerUpper struct {
	LookerUpper
	bucket *blob.Bucket
}

func NewBlobLookerUpper(ctx context.Context, uri string) (LookerUpper, error) {

	bucket, err := blob.OpenBucket(ctx, uri)

	if err != nil {
		return nil, err
	}

	return NewBlobLookerUpperWithBucket(ctx, bucket)
}

func NewBlobLookerUpperWithBucket(ctx context.Context, bucket *blob.Bucket) (LookerUpper, error) {

	l := &BlobLookerUpper{
		bucket: bucket,
	}

	return l, nil
}

func (l *BlobLookerUpper) Open(ctx context.Context, uri string) error {

	bucket, err := blob.OpenBucket(ctx, uri)

	if err != nil {
		return err
	}

	l.bucket = bucket
	return nil
}

func (l *BlobLookerUpper) Append(ctx context.Context, lu *sync.Map, append_funcs ...AppendLookupFunc) error {

	bucket_iter := l.bucket.List(nil)

	for {
		obj, err := bucket_iter.Next(ctx)

		if err == io.EOF {
			break
		}

		if err != nil {
			return err
		}

		if filepath.Ext(obj.Key) != ".geojson" {
			continue
		}

		body, err := l.bucket.ReadAll(ctx, obj.Key)

		if err != nil {
			return err
		}

		for _, f := range append_funcs {

			br := bytes.NewReader(body)
			fh := io.NopCloser(br)

			err := f(ctx, lu, fh)

			if err != nil {
				return err
			}
		}
	}

	return nil
}
