package lookup

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/sfomuseum/go-geoimage/common"
	"github.com/whosonfirst/go-reader/v2"
)

// ReaderLookerUpper gathers named sidecar GeoJSON documents through a
// whosonfirst/go-reader.Reader instance.
type ReaderLookerUpper struct {
	LookerUpper
	reader reader.Reader
	paths  []string
}

// NewReaderLookerUpper returns a LookerUpper that reads paths through a go-reader
// instance (assigned with Open). If no paths are given "locations.geojson" is assumed.
func NewReaderLookerUpper(ctx context.Context, paths ...string) LookerUpper {

	if len(paths) == 0 {
		paths = []string{"locations.geojson"}
	}

	l := &ReaderLookerUpper{
		paths: paths,
	}

	return l
}

func (l *ReaderLookerUpper) Open(ctx context.Context, uri string) error {

	r, err := common.NewReader(ctx, uri)

	if err != nil {
		return err
	}

	l.reader = r
	return nil
}

func (l *ReaderLookerUpper) Append(ctx context.Context, lu *sync.Map, append_funcs ...AppendLookupFunc) error {

	for _, path := range l.paths {

		fh, err := l.reader.Read(ctx, path)

		if err != nil {
			return err
		}

		body, err := io.ReadAll(fh)

		fh.Close()

		if err != nil {
			return err
		}

		for _, f := range append_funcs {

			br := bytes.NewReader(body)

			err := f(ctx, lu, io.NopCloser(br))

			if err != nil {
				return err
			}
		}
	}

	return nil
}
