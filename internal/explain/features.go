package explain

import (
	"sort"

	"github.com/jonathan/career-mentor/internal/types"
)

// TopFeatures returns the n strongest contributing features, descending by
// value. Ties keep the backend's original order. The input is not modified.
func TopFeatures(explanation []types.FeatureWeight, n int) []types.FeatureWeight {
	sorted := make([]types.FeatureWeight, len(explanation))
	copy(sorted, explanation)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value > sorted[j].Value
	})

	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
