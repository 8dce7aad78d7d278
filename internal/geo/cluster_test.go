package geo

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"manoscerca.app/internal/models"
)

func TestClusterIDIsStable(t *testing.T) {
	a := ClusterID(40.4168, -3.7038, DefaultClusterLevel)
	b := ClusterID(40.4168, -3.7038, DefaultClusterLevel)
	if a != b {
		t.Errorf("Expected identical cluster IDs, got %q and %q", a, b)
	}
	if far := ClusterID(41.3870, 2.1701, DefaultClusterLevel); far == a {
		t.Errorf("Expected distant points to land in different cells, both got %q", a)
	}
}

func TestClusters(t *testing.T) {
	providers := []models.Provider{
		{ID: 1, Lat: 40.41680, Lng: -3.70380},
		{ID: 2, Lat: 41.38700, Lng: 2.17010},
		{ID: 3, Lat: 40.41681, Lng: -3.70381},
		{ID: 4, Lat: 120, Lng: 0},
	}

	clusters := Clusters(providers, 10)
	if len(clusters) != 2 {
		t.Fatalf("Expected 2 clusters, got %d: %+v", len(clusters), clusters)
	}

	if diff := cmp.Diff([]int64{1, 3}, clusters[0].ProviderIDs); diff != "" {
		t.Errorf("first cluster members mismatch (-want +got):\n%s", diff)
	}
	if clusters[0].Count != 2 {
		t.Errorf("Expected count 2, got %d", clusters[0].Count)
	}
	if diff := cmp.Diff([]int64{2}, clusters[1].ProviderIDs); diff != "" {
		t.Errorf("second cluster members mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeBoundingBox(t *testing.T) {
	if _, err := ComputeBoundingBox(nil); err == nil {
		t.Error("Expected error for empty provider list")
	}

	bbox, err := ComputeBoundingBox([]models.Provider{
		{Lat: 40.4158, Lng: -3.7038},
		{Lat: 40.4218, Lng: -3.7098},
		{Lat: 200, Lng: 0},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := BoundingBox{MinLat: 40.4158, MaxLat: 40.4218, MinLon: -3.7098, MaxLon: -3.7038}
	if diff := cmp.Diff(want, bbox); diff != "" {
		t.Errorf("bounding box mismatch (-want +got):\n%s", diff)
	}
}
