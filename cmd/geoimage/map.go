package main

import (
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"sync"

	"github.com/maruel/natural"
	"github.com/sfomuseum/go-geoimage/operations/gather"
	"github.com/sfomuseum/go-geoimage/plot"
	"github.com/spf13/cobra"
	"gocloud.dev/blob"
)

var map_path string

var mapCmd = &cobra.Command{
	Use:   "map <bucket-uri>",
	Short: "Render a satellite map of the geotagged images in a bucket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {

		ctx := cmd.Context()

		bucket, err := blob.OpenBucket(ctx, args[0])

		if err != nil {
			return fmt.Errorf("failed to open bucket: %w", err)
		}

		defer bucket.Close()

		mu := new(sync.Mutex)
		locations := make([]*plot.Location, 0)

		cb := func(rsp *gather.GatherLocationsResponse) error {

			mu.Lock()
			defer mu.Unlock()

			locations = append(locations, &plot.Location{
				Label:     filepath.Base(rsp.Path),
				Latitude:  rsp.Coordinate.Latitude,
				Longitude: rsp.Coordinate.Longitude,
			})

			return nil
		}

		opts := &gather.GatherLocationsOptions{
			Callback: cb,
		}

		err = gather.GatherLocationsWithOptions(ctx, bucket, opts)

		if err != nil {
			return err
		}

		if len(locations) == 0 {
			return fmt.Errorf("no geotagged images found in %s", args[0])
		}

		sort.Slice(locations, func(i int, j int) bool {
			return natural.Less(locations[i].Label, locations[j].Label)
		})

		err = plot.PlotLocations(ctx, bucket, map_path, locations)

		if err != nil {
			return err
		}

		log.Printf("map saved to %s\n", map_path)
		return nil
	},
}

func init() {

	mapCmd.Flags().StringVar(&map_path, "map-path", "map.png", "The path, relative to the bucket, where the rendered map is written")

	rootCmd.AddCommand(mapCmd)
}
