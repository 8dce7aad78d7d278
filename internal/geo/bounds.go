package geo

import (
	"fmt"
	"math"

	"manoscerca.app/internal/models"
)

// BoundingBox defines the corners of a lat/lon box
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lng"`
	MaxLon float64 `json:"max_lng"`
}

// ComputeBoundingBox computes the bounding box of the given providers,
// skipping any whose coordinates are out of range.
func ComputeBoundingBox(providers []models.Provider) (BoundingBox, error) {
	if len(providers) == 0 {
		return BoundingBox{}, fmt.Errorf("no providers to compute bounding box")
	}

	minLat := math.MaxFloat64
	maxLat := -math.MaxFloat64
	minLon := math.MaxFloat64
	maxLon := -math.MaxFloat64

	for _, p := range providers {
		if !InRange(p.Lat, p.Lng) {
			continue
		}
		minLat = math.Min(minLat, p.Lat)
		maxLat = math.Max(maxLat, p.Lat)
		minLon = math.Min(minLon, p.Lng)
		maxLon = math.Max(maxLon, p.Lng)
	}

	if minLat == math.MaxFloat64 {
		return BoundingBox{}, fmt.Errorf("no valid latitude/longitude found in providers")
	}

	return BoundingBox{
		MinLat: minLat,
		MaxLat: maxLat,
		MinLon: minLon,
		MaxLon: maxLon,
	}, nil
}
