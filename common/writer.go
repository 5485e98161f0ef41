package common

import (
	"context"
	"sync"

	"github.com/whosonfirst/go-writer/v3"
)

var writers = make(map[string]writer.Writer)
var writers_mu = new(sync.RWMutex)

// NewWriter returns a whosonfirst/go-writer.Writer instance for publishing manifest
// documents. Instances are cached in memory for repeat lookups.
func NewWriter(ctx context.Context, uri string) (writer.Writer, error) {

	writers_mu.Lock()
	defer writers_mu.Unlock()

	wr, ok := writers[uri]

	if ok {
		return wr, nil
	}

	wr, err := writer.NewWriter(ctx, uri)

	if err != nil {
		return nil, err
	}

	writers[uri] = wr
	return wr, nil
}
