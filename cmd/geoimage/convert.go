package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sfomuseum/go-geoimage/common"
	"github.com/sfomuseum/go-geoimage/lookup"
	"github.com/sfomuseum/go-geoimage/manifest"
	"github.com/sfomuseum/go-geoimage/operations/convert"
	"github.com/sfomuseum/go-geoimage/plot"
	emboss "github.com/sfomuseum/go-text-emboss/v2"
	"github.com/spf13/cobra"
	"gocloud.dev/blob"
)

var convert_lookup_uris []string
var convert_embosser_uri string
var convert_acl string
var convert_with_secret bool
var convert_sidecar string
var convert_writer_uri string
var convert_no_map bool
var convert_no_manifest bool
var convert_no_progress bool

var convertCmd = &cobra.Command{
	Use:   "convert <source-bucket-uri> <target-bucket-uri>",
	Short: "Convert HEIC photographs to annotated, geotagged JPEGs",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {

		ctx := cmd.Context()

		source, err := blob.OpenBucket(ctx, args[0])

		if err != nil {
			return fmt.Errorf("failed to open source bucket: %w", err)
		}

		defer source.Close()

		target, err := blob.OpenBucket(ctx, args[1])

		if err != nil {
			return fmt.Errorf("failed to open target bucket: %w", err)
		}

		defer target.Close()

		opts := &convert.ConvertImagesOptions{
			Source:      source,
			Target:      target,
			ACL:         convert_acl,
			WithSecret:  convert_with_secret,
			SidecarPath: convert_sidecar,
			Progress:    !convert_no_progress,
		}

		if len(convert_lookup_uris) > 0 {

			lu, err := buildLookupMap(ctx, convert_lookup_uris)

			if err != nil {
				return fmt.Errorf("failed to build lookup map: %w", err)
			}

			opts.Lookup = lu
		}

		if convert_embosser_uri != "" {

			e, err := emboss.NewEmbosser(ctx, convert_embosser_uri)

			if err != nil {
				return fmt.Errorf("failed to create embosser: %w", err)
			}

			opts.Embosser = e
		}

		responses, err := convert.ConvertImages(ctx, opts)

		if err != nil {
			return err
		}

		log.Printf("converted %d photographs\n", len(responses))

		if len(responses) == 0 {
			return nil
		}

		if !convert_no_manifest {

			wr_uri, err := manifestWriterURI(convert_writer_uri, args[1])

			if err != nil {
				return err
			}

			wr, err := common.NewWriter(ctx, wr_uri)

			if err != nil {
				return fmt.Errorf("failed to create writer: %w", err)
			}

			entries := manifestEntries(responses)

			err = manifest.WriteHTML(ctx, wr, "manifest.html", entries)

			if err != nil {
				return err
			}

			err = manifest.WriteGeoJSON(ctx, wr, "locations.geojson", entries)

			if err != nil {
				return err
			}

			log.Println("manifest saved to manifest.html, locations.geojson")
		}

		if !convert_no_map {

			locations := plotLocations(responses)

			err := plot.PlotLocations(ctx, target, "map.png", locations)

			if err != nil {
				return err
			}

			log.Println("map saved to map.png")
		}

		return nil
	},
}

// manifestEntries derives manifest entries from convert responses. Entries are labeled
// with the base name of each derivative so that nested target prefixes do not leak into
// the manifest.
func manifestEntries(responses []*convert.ConvertResponse) []*manifest.Entry {

	entries := make([]*manifest.Entry, len(responses))

	for i, rsp := range responses {

		entries[i] = &manifest.Entry{
			Filename:    filepath.Base(rsp.Target),
			Coordinate:  rsp.Coordinate,
			Fingerprint: rsp.Fingerprint,
			Text:        rsp.Text,
		}
	}

	return entries
}

// plotLocations derives map locations from convert responses, labeled the same way as
// manifest entries.
func plotLocations(responses []*convert.ConvertResponse) []*plot.Location {

	locations := make([]*plot.Location, len(responses))

	for i, rsp := range responses {

		locations[i] = &plot.Location{
			Label:     filepath.Base(rsp.Target),
			Latitude:  rsp.Coordinate.Latitude,
			Longitude: rsp.Coordinate.Longitude,
		}
	}

	return locations
}

// buildLookupMap assembles a filename to coordinate lookup map from one or more sidecar
// sources. URIs with a git scheme are cloned, fs:// and repo:// URIs are read through a
// whosonfirst/go-reader instance and everything else is treated as a bucket URI.
func buildLookupMap(ctx context.Context, uris []string) (*sync.Map, error) {

	looker_uppers := make([]lookup.LookerUpper, 0, len(uris))

	for _, uri := range uris {

		u, err := url.Parse(uri)

		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", uri, err)
		}

		var l lookup.LookerUpper

		switch {
		case strings.HasPrefix(u.Scheme, "git"):
			l = lookup.NewGitLookerUpper(ctx)
		case u.Scheme == "fs" || u.Scheme == "repo":
			l = lookup.NewReaderLookerUpper(ctx)
		default:

			b, err := lookup.NewBlobLookerUpper(ctx, uri)

			if err != nil {
				return nil, err
			}

			l = b
		}

		err = l.Open(ctx, uri)

		if err != nil {
			return nil, err
		}

		looker_uppers = append(looker_uppers, l)
	}

	append_funcs := []lookup.AppendLookupFunc{
		lookup.CoordinateAppendLookupFunc,
	}

	return lookup.NewLookupMap(ctx, looker_uppers, append_funcs)
}

// manifestWriterURI derives a whosonfirst/go-writer URI for manifest outputs. file://
// bucket URIs map to fs:// writers; anything else needs an explicit -writer-uri flag.
func manifestWriterURI(writer_uri string, bucket_uri string) (string, error) {

	if writer_uri != "" {
		return writer_uri, nil
	}

	u, err := url.Parse(bucket_uri)

	if err != nil {
		return "", err
	}

	if u.Scheme != "file" {
		return "", fmt.Errorf("unable to derive a writer URI from %s, please pass --writer-uri", bucket_uri)
	}

	return fmt.Sprintf("fs://%s%s", u.Host, u.Path), nil
}

func init() {

	convertCmd.Flags().StringSliceVar(&convert_lookup_uris, "lookup-uri", nil, "Zero or more bucket or Git repository URIs containing sidecar GeoJSON location documents")
	convertCmd.Flags().StringVar(&convert_embosser_uri, "embosser-uri", "", "An optional sfomuseum/go-text-emboss URI for extracting text depicted in photographs")
	convertCmd.Flags().StringVar(&convert_acl, "acl", "", "An optional S3 canned ACL to assign to derivatives")
	convertCmd.Flags().BoolVar(&convert_with_secret, "with-secret", false, "Append a random alphanumeric secret to derivative filenames")
	convertCmd.Flags().StringVar(&convert_sidecar, "sidecar", "", "An optional path, relative to the source bucket, where resolved locations are recorded as sidecar GeoJSON")
	convertCmd.Flags().StringVar(&convert_writer_uri, "writer-uri", "", "An optional whosonfirst/go-writer URI for manifest outputs (derived from the target bucket for file:// URIs)")
	convertCmd.Flags().BoolVar(&convert_no_map, "no-map", false, "Skip rendering map.png")
	convertCmd.Flags().BoolVar(&convert_no_manifest, "no-manifest", false, "Skip writing manifest.html and locations.geojson")
	convertCmd.Flags().BoolVar(&convert_no_progress, "no-progress", false, "Do not display a progress bar")

	rootCmd.AddCommand(convertCmd)
}
