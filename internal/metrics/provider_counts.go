package metrics

import (
	"manoscerca.app/internal/geo"
	"manoscerca.app/internal/models"
)

// reportProviderCounts sets ProvidersByCategory for every known category,
// reporting zero for empty ones so dashboards keep a stable series set.
// Providers with codes outside the category table are reported under their
// raw code.
func reportProviderCounts(providers []models.Provider) {
	counts := make(map[string]int)
	for _, c := range models.Categories() {
		counts[c.Code] = 0
	}
	for _, p := range providers {
		counts[p.Category]++
	}

	ProvidersByCategory.Reset()
	for category, n := range counts {
		ProvidersByCategory.WithLabelValues(category).Set(float64(n))
	}
}

// reportProviderClusters groups providers into S2 cells and reports the
// size of each cell. Cells that emptied since the last call disappear.
//
// Parameters:
//   - providers: the full directory
//   - level: the S2 cell level, see geo.DefaultClusterLevel
func reportProviderClusters(providers []models.Provider, level int) {
	ProviderClusterSize.Reset()
	for _, c := range geo.Clusters(providers, level) {
		ProviderClusterSize.WithLabelValues(c.ID).Set(float64(c.Count))
	}
}
