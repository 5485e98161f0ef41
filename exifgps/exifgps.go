// Package exifgps provides methods for extracting GPS EXIF locations from HEIC and JPEG files and for writing GPS EXIF tags in to JPEG files.
package exifgps

import (
	"errors"
)

// ErrNoExif is returned when a file does not contain an EXIF metadata block.
var ErrNoExif = errors.New("No EXIF data")

// ErrNoLocation is returned when a file contains an EXIF metadata block but no usable GPS location.
var ErrNoLocation = errors.New("No GPS location")
