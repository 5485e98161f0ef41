package main

import (
	"fmt"
	"log"
	"os"

	"github.com/sfomuseum/go-geoimage/common"
	"github.com/sfomuseum/go-geoimage/exifgps"
	"github.com/sfomuseum/go-geoimage/geo"
	"github.com/spf13/cobra"
)

var tag_latitude float64
var tag_longitude float64
var tag_altitude float64

var tagCmd = &cobra.Command{
	Use:   "tag <path>...",
	Short: "Write GPS EXIF tags in to one or more JPEG files, in place",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {

		c := &geo.Coordinate{
			Latitude:  tag_latitude,
			Longitude: tag_longitude,
			Altitude:  tag_altitude,
		}

		if !c.IsValid() {
			return fmt.Errorf("invalid coordinate: %s", c)
		}

		for _, path := range args {

			info, err := os.Stat(path)

			if err != nil {
				return err
			}

			body, err := os.ReadFile(path)

			if err != nil {
				return err
			}

			tagged, err := exifgps.AppendGPS(body, c)

			if err != nil {
				return fmt.Errorf("failed to tag %s: %w", path, err)
			}

			err = os.WriteFile(path, tagged, info.Mode().Perm())

			if err != nil {
				return err
			}

			fp, err := common.HashFile(path)

			if err != nil {
				return err
			}

			log.Printf("tagged %s (%s)\n", path, fp)
		}

		return nil
	},
}

func init() {

	tagCmd.Flags().Float64Var(&tag_latitude, "latitude", 0.0, "The latitude to record, in decimal degrees")
	tagCmd.Flags().Float64Var(&tag_longitude, "longitude", 0.0, "The longitude to record, in decimal degrees")
	tagCmd.Flags().Float64Var(&tag_altitude, "altitude", 0.0, "An optional altitude to record, in meters")

	tagCmd.MarkFlagRequired("latitude")
	tagCmd.MarkFlagRequired("longitude")

	rootCmd.AddCommand(tagCmd)
}
