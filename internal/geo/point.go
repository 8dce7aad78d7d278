package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/s2"
)

// Point is a user or map location in decimal degrees.
type Point struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// LatLng converts the point for use with the s2 package.
func (p Point) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(p.Lat, p.Lng)
}

// InRange reports whether lat and lon are finite and fall within the
// geographic coordinate bounds.
func InRange(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return Point{Lat: lat, Lng: lon}.LatLng().IsValid()
}

// IsValidLatLon returns true if the given latitude and longitude values
// fall within the valid geographic coordinate bounds.
//
// Note: This function treats the coordinate (0,0) as invalid, even though it
// is a valid location in the Gulf of Guinea. Configured map centers use it to
// detect placeholder values left in a configuration file.
func IsValidLatLon(lat, lon float64) bool {
	if lat == 0 && lon == 0 {
		return false
	}
	return InRange(lat, lon)
}

// ParsePoint parses a latitude and longitude pair as received in query
// strings or CLI flags. Both empty means no location and yields nil.
func ParsePoint(lat, lng string) (*Point, error) {
	lat = strings.TrimSpace(lat)
	lng = strings.TrimSpace(lng)
	if lat == "" && lng == "" {
		return nil, nil
	}
	if lat == "" || lng == "" {
		return nil, fmt.Errorf("both lat and lng are required for a location")
	}

	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid lat %q: %w", lat, err)
	}
	lo, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid lng %q: %w", lng, err)
	}
	if !InRange(la, lo) {
		return nil, fmt.Errorf("location %.6f,%.6f is out of range", la, lo)
	}
	return &Point{Lat: la, Lng: lo}, nil
}
