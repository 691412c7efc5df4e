package vectorstore

import (
	"fmt"
	"math/rand/v2"

	"github.com/FACorreiaa/go-itinerary-recommender/internal/types"
)

const fallbackSeed = 42

var fallbackWords = map[string][]float32{
	"자연":  {0.1, 0.2, 0.3, 0.4, 0.5},
	"체험":  {0.2, 0.3, 0.4, 0.5, 0.6},
	"힐링":  {0.3, 0.4, 0.5, 0.6, 0.7},
	"청결":  {0.4, 0.5, 0.6, 0.7, 0.8},
	"맛":   {0.5, 0.6, 0.7, 0.8, 0.9},
	"분위기": {0.6, 0.7, 0.8, 0.9, 1.0},
	"뷰":   {0.7, 0.8, 0.9, 1.0, 0.1},
}

var fallbackPlaceNames = []string{
	"협재해수욕장", "성산일출봉", "한라산", "중문관광단지", "제주올레길",
	"제주맛집1", "제주맛집2", "제주맛집3", "제주맛집4", "제주맛집5",
	"제주카페1", "제주카페2", "제주카페3", "제주카페4", "제주카페5",
	"제주호텔1", "제주호텔2", "제주호텔3", "제주호텔4", "제주호텔5",
}

// Fallback returns the built-in dataset: a handful of words and twenty
// places, five per category, with small pseudo-random vectors. The vectors
// come from a fixed seed so every process sees the same dataset.
func Fallback() *Store {
	const dim = 5
	categories := types.Categories
	perCategory := len(fallbackPlaceNames) / len(categories)
	rng := rand.New(rand.NewPCG(fallbackSeed, fallbackSeed))

	words := make(map[string][]float32, len(fallbackWords))
	for w, v := range fallbackWords {
		words[w] = append([]float32(nil), v...)
	}

	places := make([]types.Place, len(fallbackPlaceNames))
	vecs := make([][]float32, len(fallbackPlaceNames))
	for i, name := range fallbackPlaceNames {
		lat := 33.0 + float64(i%10)*0.1
		lng := 126.0 + float64(i%10)*0.1
		places[i] = types.Place{
			ID:        fmt.Sprintf("place_%d", i),
			Name:      name,
			Category:  categories[i/perCategory].String(),
			Latitude:  &lat,
			Longitude: &lng,
		}
		v := make([]float32, dim)
		for j := range v {
			v[j] = rng.Float32()*0.1 + 0.1
		}
		vecs[i] = v
	}

	s, err := newStore(words, places, vecs, true)
	if err != nil {
		// the built-in tables are consistent by construction
		panic(fmt.Sprintf("vectorstore: invalid built-in dataset: %v", err))
	}
	return s
}
