// Package ranking orders the places of a category against keyword
// preferences and samples shortlists from the ordered result.
package ranking

import (
	"cmp"
	"slices"

	"github.com/FACorreiaa/go-itinerary-recommender/internal/recommend/keywords"
	"github.com/FACorreiaa/go-itinerary-recommender/internal/recommend/vectorstore"
	"github.com/FACorreiaa/go-itinerary-recommender/internal/types"
)

// Ranker returns at most k places of category ordered by how well they match
// the keywords. An empty category or k <= 0 yields an empty slice.
type Ranker interface {
	Rank(category types.Category, keywords []string, k int) []types.Place
}

// TopKIndices returns the store indices of the k places of category most
// similar to q. A nil q keeps the load order.
func TopKIndices(s *vectorstore.Store, category string, q []float32, k int) []int {
	pool := s.Pool(category)
	if len(pool) == 0 || k <= 0 {
		return []int{}
	}
	k = min(k, len(pool))

	if q == nil {
		return slices.Clone(pool[:k])
	}

	type scored struct {
		idx   int
		score float32
	}
	ranked := make([]scored, len(pool))
	for i, idx := range pool {
		ranked[i] = scored{idx: idx, score: s.Similarity(idx, q)}
	}
	slices.SortStableFunc(ranked, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	out := make([]int, k)
	for i := range out {
		out[i] = ranked[i].idx
	}
	return out
}

// TopK is TopKIndices resolved to places.
func TopK(s *vectorstore.Store, category string, q []float32, k int) []types.Place {
	idx := TopKIndices(s, category, q, k)
	out := make([]types.Place, len(idx))
	for i, j := range idx {
		out[i] = s.Place(j)
	}
	return out
}

// VectorRanker ranks by cosine similarity between the place vectors and the
// mean vector of the keywords.
type VectorRanker struct {
	store *vectorstore.Store
}

func NewVectorRanker(store *vectorstore.Store) *VectorRanker {
	return &VectorRanker{store: store}
}

func (r *VectorRanker) Rank(category types.Category, kws []string, k int) []types.Place {
	return TopK(r.store, category.String(), r.store.MeanVec(kws), k)
}

// ContentRanker ranks by keyword containment in review text, scaled by the
// combination weights of the requested keywords.
type ContentRanker struct {
	engine *keywords.Engine
	pools  map[types.Category][]types.Place
}

// NewContentRanker groups places by category. Places whose category is not
// recognised are dropped.
func NewContentRanker(engine *keywords.Engine, places []types.Place) *ContentRanker {
	r := &ContentRanker{
		engine: engine,
		pools:  make(map[types.Category][]types.Place, len(types.Categories)),
	}
	for _, p := range places {
		c, ok := types.ParseCategory(p.Category)
		if !ok {
			continue
		}
		r.pools[c] = append(r.pools[c], p)
	}
	return r
}

func (r *ContentRanker) Rank(category types.Category, kws []string, k int) []types.Place {
	pool := r.pools[category]
	if len(pool) == 0 || k <= 0 {
		return []types.Place{}
	}

	weights := r.engine.CombinationWeight(kws)
	scores := make(map[string]float64, len(pool))
	for _, p := range pool {
		scores[p.Key()] = keywords.WeightedSimilarity(p.Reviews, kws, weights)
	}

	ranked := slices.Clone(pool)
	slices.SortStableFunc(ranked, func(a, b types.Place) int {
		return cmp.Compare(scores[b.Key()], scores[a.Key()])
	})
	return ranked[:min(k, len(ranked))]
}

// Len reports how many places are known for category.
func (r *ContentRanker) Len(category types.Category) int {
	return len(r.pools[category])
}
