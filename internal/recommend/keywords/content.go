package keywords

import (
	"maps"
	"slices"
	"strings"

	"github.com/FACorreiaa/go-itinerary-recommender/internal/types"
)

// ContentScore is the fraction of keywords contained verbatim (case
// sensitive) in text. It is 0 for an empty keyword list.
func ContentScore(text string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	matches := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			matches++
		}
	}
	return float64(matches) / float64(len(keywords))
}

// WeightedSimilarity scales ContentScore by the average weight excess of the
// requested keywords: score * (1 + Σ(w-1)/|keywords|). Keywords missing from
// weights count as 1.0.
func WeightedSimilarity(text string, keywords []string, weights map[string]float64) float64 {
	score := ContentScore(text, keywords)
	if score == 0 {
		return 0
	}
	var excess float64
	for _, kw := range keywords {
		w, ok := weights[kw]
		if !ok {
			w = 1.0
		}
		excess += w - 1.0
	}
	return score * (1 + excess/float64(len(keywords)))
}

// ItemWeight is the sampling weight of a place: its rating plus the weight of
// every keyword found in its reviews. Keywords are summed in lexical order so
// the result is bit-for-bit stable across calls.
func ItemWeight(p types.Place, weights map[string]float64) float64 {
	w := p.RatingOrZero()
	for _, kw := range slices.Sorted(maps.Keys(weights)) {
		if strings.Contains(p.Reviews, kw) {
			w += weights[kw]
		}
	}
	return w
}
