package geoimage

// This package defines common methods and operations for deriving GPS EXIF locations from HEIC photographs and producing annotated JPEG derivatives. Common operations include: Converting files, gathering locations, producing manifests and rendering maps of photo locations.
