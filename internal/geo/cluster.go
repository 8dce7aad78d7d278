package geo

import (
	"fmt"
	"sort"

	"github.com/golang/geo/s2"

	"manoscerca.app/internal/models"
)

// DefaultClusterLevel is the S2 cell level used to group map markers.
// Level 13 cells are roughly one kilometer across.
const DefaultClusterLevel = 13

// Cluster groups the providers that share an S2 cell at the configured level.
type Cluster struct {
	ID          string  `json:"id"`
	Center      Point   `json:"center"`
	Count       int     `json:"count"`
	ProviderIDs []int64 `json:"provider_ids"`
}

// ClusterID generates a stable S2-based cluster ID for a lat/lon.
func ClusterID(lat, lon float64, level int) string {
	cellID := s2.CellIDFromLatLng(Point{Lat: lat, Lng: lon}.LatLng()).Parent(level)
	return fmt.Sprintf("s2_%d", uint64(cellID))
}

// Clusters groups providers into S2 cells. The cluster center is the mean
// of its members' coordinates. Clusters are ordered by the position of
// their first member in the input, and providers with out of range
// coordinates are left out.
func Clusters(providers []models.Provider, level int) []Cluster {
	type acc struct {
		order   int
		cluster Cluster
		sumLat  float64
		sumLng  float64
	}

	byID := make(map[string]*acc)
	for _, p := range providers {
		if !InRange(p.Lat, p.Lng) {
			continue
		}
		id := ClusterID(p.Lat, p.Lng, level)
		a, ok := byID[id]
		if !ok {
			a = &acc{order: len(byID), cluster: Cluster{ID: id}}
			byID[id] = a
		}
		a.cluster.Count++
		a.cluster.ProviderIDs = append(a.cluster.ProviderIDs, p.ID)
		a.sumLat += p.Lat
		a.sumLng += p.Lng
	}

	accs := make([]*acc, 0, len(byID))
	for _, a := range byID {
		accs = append(accs, a)
	}
	sort.Slice(accs, func(i, j int) bool { return accs[i].order < accs[j].order })

	out := make([]Cluster, 0, len(accs))
	for _, a := range accs {
		n := float64(a.cluster.Count)
		a.cluster.Center = Point{Lat: a.sumLat / n, Lng: a.sumLng / n}
		out = append(out, a.cluster)
	}
	return out
}
