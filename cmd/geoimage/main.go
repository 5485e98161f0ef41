// geoimage converts HEIC photographs to annotated JPEG derivatives, derives their GPS EXIF
// locations and produces manifests and maps of photo locations.
package main

import (
	"os"

	"github.com/spf13/cobra"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/s3blob"
)

var rootCmd = &cobra.Command{
	Use:   "geoimage",
	Short: "Derive GPS locations from HEIC photographs",
	Long: `
geoimage converts HEIC photographs to annotated JPEG derivatives, derives
the GPS EXIF locations they were taken at and produces HTML and GeoJSON
manifests and a satellite map of photo locations.

Source and target locations are gocloud.dev/blob bucket URIs, for example
file:///path/to/photos or s3://bucket-name/prefix/.
`,
}

func main() {

	err := rootCmd.Execute()

	if err != nil {
		os.Exit(1)
	}
}
