package main

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/sfomuseum/go-geoimage/operations/gather"
	"github.com/spf13/cobra"
	"gocloud.dev/blob"
)

var gatherCmd = &cobra.Command{
	Use:   "gather <bucket-uri>...",
	Short: "Emit the locations of geotagged images as JSON lines",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {

		ctx := cmd.Context()

		cb := func(rsp *gather.GatherLocationsResponse) error {

			enc, err := json.Marshal(rsp)

			if err != nil {
				return err
			}

			fmt.Println(string(enc))
			return nil
		}

		for _, uri := range args {

			log.Println(uri)

			bucket, err := blob.OpenBucket(ctx, uri)

			if err != nil {
				return err
			}

			err = gather.GatherLocations(ctx, bucket, cb)

			bucket.Close()

			if err != nil {
				return err
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(gatherCmd)
}
