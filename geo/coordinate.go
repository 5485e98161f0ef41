package geo

import (
	"fmt"
	"math"
)

const earthRadius = 6371e3 // meters

// Coordinate stores a single latitude, longitude position in decimal degrees.
type Coordinate struct {
	// The latitude of the position, in decimal degrees. Positive values are north of the equator.
	Latitude float64 `json:"latitude"`
	// The longitude of the position, in decimal degrees. Positive values are east of the prime meridian.
	Longitude float64 `json:"longitude"`
	// The (optional) altitude of the position, in meters above sea level.
	Altitude float64 `json:"altitude,omitempty"`
}

// LatitudeRef returns the EXIF hemisphere reference ("N" or "S") for the coordinate's latitude.
func (c *Coordinate) LatitudeRef() string {

	if c.Latitude < 0 {
		return "S"
	}

	return "N"
}

// LongitudeRef returns the EXIF hemisphere reference ("E" or "W") for the coordinate's longitude.
func (c *Coordinate) LongitudeRef() string {

	if c.Longitude < 0 {
		return "W"
	}

	return "E"
}

// IsValid returns true if the coordinate falls inside the WGS84 latitude and longitude ranges.
func (c *Coordinate) IsValid() bool {

	if c.Latitude < -90.0 || c.Latitude > 90.0 {
		return false
	}

	if c.Longitude < -180.0 || c.Longitude > 180.0 {
		return false
	}

	return true
}

// IsZero returns true if the coordinate is the (0, 0) "null island" position.
func (c *Coordinate) IsZero() bool {
	return c.Latitude == 0.0 && c.Longitude == 0.0
}

// FormatLatitude returns the coordinate's latitude as an unsigned decimal string with a hemisphere reference, for example "37.61799° N".
func (c *Coordinate) FormatLatitude() string {
	return fmt.Sprintf("%.5f° %s", math.Abs(c.Latitude), c.LatitudeRef())
}

// FormatLongitude returns the coordinate's longitude as an unsigned decimal string with a hemisphere reference, for example "122.38998° W".
func (c *Coordinate) FormatLongitude() string {
	return fmt.Sprintf("%.5f° %s", math.Abs(c.Longitude), c.LongitudeRef())
}

func (c *Coordinate) String() string {
	return fmt.Sprintf("Latitude: %s, Longitude: %s", c.FormatLatitude(), c.FormatLongitude())
}

// Distance returns the haversine distance between two coordinates, in meters.
func (c *Coordinate) Distance(other *Coordinate) float64 {

	lat1 := c.Latitude * math.Pi / 180
	lat2 := other.Latitude * math.Pi / 180
	d_lat := (other.Latitude - c.Latitude) * math.Pi / 180
	d_lon := (other.Longitude - c.Longitude) * math.Pi / 180

	a := math.Sin(d_lat/2)*math.Sin(d_lat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(d_lon/2)*math.Sin(d_lon/2)

	h := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * h
}

// DMS converts an unsigned decimal degree value in to its degree, minute and (fractional) second components.
func DMS(deg float64) (int, int, float64) {

	deg = math.Abs(deg)

	d := math.Floor(deg)
	m := math.Floor((deg - d) * 60.0)
	s := (deg - d - (m / 60.0)) * 3600.0

	return int(d), int(m), s
}

// FromDMS converts degree, minute and second components and a hemisphere reference ("N", "S", "E", "W") in to a signed decimal degree value.
func FromDMS(d int, m int, s float64, ref string) float64 {

	deg := float64(d) + (float64(m) / 60.0) + (s / 3600.0)

	switch ref {
	case "S", "W":
		return -deg
	default:
		return deg
	}
}
