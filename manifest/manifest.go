// Package manifest implements the production of HTML and GeoJSON manifests describing a
// set of converted photographs and the locations they were taken at.
package manifest

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"strconv"

	"github.com/sfomuseum/go-geoimage/geo"
	"github.com/whosonfirst/go-ioutil"
	"github.com/whosonfirst/go-writer/v3"
)

// Entry is a struct representing a single photograph in a manifest.
type Entry struct {
	// The filename of the converted photograph.
	Filename string
	// The location the photograph was taken at.
	Coordinate *geo.Coordinate
	// The SHA-1 fingerprint of the source photograph.
	Fingerprint string
	// Optional text extracted from the photograph.
	Text string
}

// MapsURL returns a Google Maps query URL for the entry's location.
func (e *Entry) MapsURL() string {

	q := fmt.Sprintf("%s,%s",
		strconv.FormatFloat(e.Coordinate.Latitude, 'f', -1, 64),
		strconv.FormatFloat(e.Coordinate.Longitude, 'f', -1, 64),
	)

	u := url.URL{
		Scheme:   "https",
		Host:     "www.google.com",
		Path:     "/maps",
		RawQuery: fmt.Sprintf("q=%s", url.QueryEscape(q)),
	}

	return u.String()
}

const htmlManifest = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Photo locations</title>
</head>
<body>
  <h1>Photo locations</h1>
  <ul>
{{ range . }}    <li><a href="{{ .MapsURL }}">{{ .Filename }}</a>{{ if .Text }} <em>{{ .Text }}</em>{{ end }}</li>
{{ end }}  </ul>
</body>
</html>
`

var html_t = template.Must(template.New("manifest").Parse(htmlManifest))

// WriteHTML renders the HTML manifest for entries and writes it to path using a
// whosonfirst/go-writer.Writer instance.
func WriteHTML(ctx context.Context, wr writer.Writer, path string, entries []*Entry) error {

	buf := new(bytes.Buffer)

	err := html_t.Execute(buf, entries)

	if err != nil {
		return fmt.Errorf("Failed to render manifest, %w", err)
	}

	return write(ctx, wr, path, buf.Bytes())
}

func write(ctx context.Context, wr writer.Writer, path string, body []byte) error {

	br := bytes.NewReader(body)

	fh, err := ioutil.NewReadSeekCloser(br)

	if err != nil {
		return fmt.Errorf("Failed to create ReadSeekCloser, %w", err)
	}

	_, err = wr.Write(ctx, path, fh)

	if err != nil {
		return fmt.Errorf("Failed to write %s, %w", path, err)
	}

	return nil
}
