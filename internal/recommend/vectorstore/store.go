package vectorstore

import (
	"context"
	"log/slog"
	"math"
	"slices"

	"github.com/FACorreiaa/go-itinerary-recommender/internal/types"
)

const normEpsilon = 1e-9

// Source provides the raw embedding tables.
type Source interface {
	Words(ctx context.Context) (map[string][]float32, error)
	Places(ctx context.Context) ([]types.Place, [][]float32, error)
}

// Store is an immutable in-memory embedding index partitioned by category.
type Store struct {
	words    map[string][]float32
	places   []types.Place
	matrix   [][]float32 // rows are L2-normalized
	dim      int
	pools    map[string][]int
	fallback bool
}

// Load builds a Store from src. Any failure to read or parse the tables is
// logged and replaced by the built-in dataset, so Load never fails.
func Load(ctx context.Context, src Source, logger *slog.Logger) *Store {
	if src == nil {
		logger.WarnContext(ctx, "No embedding source configured, using built-in dataset")
		return Fallback()
	}

	s, err := build(ctx, src)
	if err != nil {
		logger.WarnContext(ctx, "Failed to load embedding tables, using built-in dataset", slog.Any("error", err))
		return Fallback()
	}

	logger.InfoContext(ctx, "Embedding tables loaded",
		slog.Int("words", len(s.words)),
		slog.Int("places", len(s.places)),
		slog.Int("dim", s.dim),
	)
	return s
}

func build(ctx context.Context, src Source) (*Store, error) {
	words, err := src.Words(ctx)
	if err != nil {
		return nil, err
	}
	places, vecs, err := src.Places(ctx)
	if err != nil {
		return nil, err
	}
	return newStore(words, places, vecs, false)
}

func newStore(words map[string][]float32, places []types.Place, vecs [][]float32, fallback bool) (*Store, error) {
	if len(places) != len(vecs) {
		return nil, &ErrCorruptTable{Table: "places", Reason: "place and vector counts differ"}
	}

	dim := 0
	for _, v := range words {
		dim = len(v)
		break
	}
	if dim == 0 && len(vecs) > 0 {
		dim = len(vecs[0])
	}
	for w, v := range words {
		if len(v) != dim {
			return nil, &ErrDimensionMismatch{Table: "words", Key: w, Expected: dim, Actual: len(v)}
		}
	}
	for i, v := range vecs {
		if len(v) != dim {
			return nil, &ErrDimensionMismatch{Table: "places", Key: places[i].ID, Expected: dim, Actual: len(v)}
		}
	}

	s := &Store{
		words:    words,
		places:   places,
		matrix:   vecs,
		dim:      dim,
		pools:    make(map[string][]int),
		fallback: fallback,
	}
	for i, p := range places {
		s.pools[p.Category] = append(s.pools[p.Category], i)
	}
	s.normalize()
	return s, nil
}

// normalize divides every place row by its L2 norm (plus epsilon). Word
// vectors are left as loaded; MeanVec normalizes the aggregate instead.
func (s *Store) normalize() {
	for _, row := range s.matrix {
		normalizeInPlace(row)
	}
}

func normalizeInPlace(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	n := float32(math.Sqrt(sum) + normEpsilon)
	for i := range v {
		v[i] /= n
	}
}

// MeanVec averages the vectors of the known words and returns the result at
// unit length. It returns nil when words is empty or none of them is in the
// vocabulary; callers treat nil as "no preference".
func (s *Store) MeanVec(words []string) []float32 {
	if len(words) == 0 || s.dim == 0 {
		return nil
	}
	m := make([]float32, s.dim)
	matched := 0
	for _, w := range words {
		v, ok := s.words[w]
		if !ok {
			continue
		}
		for i := range m {
			m[i] += v[i]
		}
		matched++
	}
	if matched == 0 {
		return nil
	}
	normalizeInPlace(m)
	return m
}

// Pool returns the indices of the places in category, in load order. Unknown
// categories yield an empty pool. The returned slice must not be modified.
func (s *Store) Pool(category string) []int {
	if p, ok := s.pools[category]; ok {
		return p
	}
	return []int{}
}

// Similarity is the dot product of place idx and the unit-length query q.
func (s *Store) Similarity(idx int, q []float32) float32 {
	row := s.matrix[idx]
	var dot float32
	for i := range row {
		dot += row[i] * q[i]
	}
	return dot
}

// Place returns the place at idx.
func (s *Store) Place(idx int) types.Place {
	return s.places[idx]
}

// Places returns a copy of every loaded place in load order.
func (s *Store) Places() []types.Place {
	return slices.Clone(s.places)
}

// Vector returns the normalized vector of place idx. The slice must not be modified.
func (s *Store) Vector(idx int) []float32 {
	return s.matrix[idx]
}

// Len is the number of loaded places.
func (s *Store) Len() int { return len(s.places) }

// Dim is the embedding dimension shared by words and places.
func (s *Store) Dim() int { return s.dim }

// HasWord reports whether w is in the vocabulary.
func (s *Store) HasWord(w string) bool {
	_, ok := s.words[w]
	return ok
}

// IsFallback reports whether the built-in dataset is in use.
func (s *Store) IsFallback() bool { return s.fallback }

// Stats summarises the store for health endpoints.
func (s *Store) Stats() types.StoreStats {
	return types.StoreStats{
		Words:    len(s.words),
		Places:   len(s.places),
		Dim:      s.dim,
		Fallback: s.fallback,
	}
}
