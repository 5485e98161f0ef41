// Package lookup provides methods for building lookup tables of photo locations from
// sidecar GeoJSON documents. Lookup tables are used to resolve coordinates for photographs
// that do not carry their own GPS EXIF data.
package lookup

import (
	"context"
	"sync"
)

// LookerUpper is an interface for gathering sidecar documents from a storage source and
// appending their contents to a lookup map.
type LookerUpper interface {
	Open(context.Context, string) error
	Append(context.Context, *sync.Map, ...AppendLookupFunc) error
}

// NewLookupMap builds a sync.Map instance by applying each append_funcs to every sidecar
// document produced by each of the looker_uppers, concurrently.
func NewLookupMap(ctx context.Context, looker_uppers []LookerUpper, append_funcs []AppendLookupFunc) (*sync.Map, error) {

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lu := new(sync.Map)

	done_ch := make(chan bool)
	err_ch := make(chan error)

	remaining := len(looker_uppers)

	for _, l := range looker_uppers {

		go func(l LookerUpper) {

			err := l.Append(ctx, lu, append_funcs...)

			if err != nil {
				err_ch <- err
			}

			done_ch <- true

		}(l)
	}

	for remaining > 0 {
		select {
		case <-done_ch:
			remaining -= 1
		case err := <-err_ch:
			return nil, err
		default:
			// pass
		}
	}

	return lu, nil
}
