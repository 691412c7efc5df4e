package ranking

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-itinerary-recommender/internal/recommend/keywords"
	"github.com/FACorreiaa/go-itinerary-recommender/internal/recommend/vectorstore"
	"github.com/FACorreiaa/go-itinerary-recommender/internal/types"
)

type staticSource struct {
	words  map[string][]float32
	places []types.Place
	vecs   [][]float32
}

func (s staticSource) Words(context.Context) (map[string][]float32, error) { return s.words, nil }

func (s staticSource) Places(context.Context) ([]types.Place, [][]float32, error) {
	return s.places, s.vecs, nil
}

func testStore(t *testing.T) *vectorstore.Store {
	t.Helper()
	src := staticSource{
		words: map[string][]float32{
			"자연": {1, 0, 0},
			"맛":  {0, 1, 0},
		},
		places: []types.Place{
			{ID: "t1", Name: "시내", Category: "관광지"},
			{ID: "t2", Name: "오름", Category: "관광지"},
			{ID: "t3", Name: "숲길", Category: "관광지"},
			{ID: "t4", Name: "박물관", Category: "관광지"},
			{ID: "r1", Name: "흑돼지", Category: "맛집"},
		},
		vecs: [][]float32{
			{0, 0, 1},
			{1, 0, 1},
			{1, 0, 0},
			{0, 0, 1},
			{0, 1, 0},
		},
	}

	s := vectorstore.Load(context.Background(), src, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.False(t, s.IsFallback())
	return s
}

func names(places []types.Place) []string {
	out := make([]string, len(places))
	for i, p := range places {
		out[i] = p.Name
	}
	return out
}

func TestTopK(t *testing.T) {
	s := testStore(t)
	q := s.MeanVec([]string{"자연"})

	tests := []struct {
		name     string
		category string
		q        []float32
		k        int
		want     []string
	}{
		{"NilQueryKeepsLoadOrder", "관광지", nil, 3, []string{"시내", "오름", "숲길"}},
		{"KLargerThanPool", "관광지", nil, 10, []string{"시내", "오름", "숲길", "박물관"}},
		{"SortedBySimilarity", "관광지", q, 4, []string{"숲길", "오름", "시내", "박물관"}},
		{"EmptyPool", "숙소", q, 3, []string{}},
		{"UnknownCategory", "nope", nil, 3, []string{}},
		{"ZeroK", "관광지", q, 0, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(TopK(s, tt.category, tt.q, tt.k)))
		})
	}
}

func TestTopK_Deterministic(t *testing.T) {
	s := vectorstore.Fallback()
	first := TopK(s, "관광지", nil, 3)
	for range 5 {
		assert.Equal(t, first, TopK(s, "관광지", nil, 3))
	}
}

func TestTopKIndices_DescendingSimilarity(t *testing.T) {
	s := vectorstore.Fallback()
	q := s.MeanVec([]string{"자연", "뷰"})
	require.NotNil(t, q)

	for _, c := range types.Categories {
		idx := TopKIndices(s, c.String(), q, 5)
		for i := 1; i < len(idx); i++ {
			assert.GreaterOrEqual(t, s.Similarity(idx[i-1], q), s.Similarity(idx[i], q))
		}
	}
}

func TestVectorRanker(t *testing.T) {
	r := NewVectorRanker(testStore(t))

	assert.Equal(t, []string{"숲길", "오름"}, names(r.Rank(types.CategoryTouristSpot, []string{"자연"}, 2)))
	assert.Equal(t, []string{"시내", "오름"}, names(r.Rank(types.CategoryTouristSpot, []string{"unknown"}, 2)))
	assert.Empty(t, r.Rank(types.CategoryAccommodation, []string{"자연"}, 2))
}

func TestContentRanker(t *testing.T) {
	places := []types.Place{
		{ID: "1", Name: "A", Category: "tourist_spot", Reviews: "바다가 아름다워요"},
		{ID: "2", Name: "B", Category: "tourist_spot", Reviews: "자연 속 체험"},
		{ID: "3", Name: "C", Category: "관광지", Reviews: "자연 경관"},
		{ID: "4", Name: "D", Category: "cafe", Reviews: "자연 체험"},
		{ID: "5", Name: "E", Category: "unknown", Reviews: "자연 체험"},
	}
	r := NewContentRanker(keywords.NewEngine(nil, nil), places)

	assert.Equal(t, 3, r.Len(types.CategoryTouristSpot))
	assert.Equal(t, []string{"B", "C", "A"}, names(r.Rank(types.CategoryTouristSpot, []string{"자연", "체험"}, 5)))
	assert.Equal(t, []string{"B"}, names(r.Rank(types.CategoryTouristSpot, []string{"자연", "체험"}, 1)))
	assert.Empty(t, r.Rank(types.CategoryAccommodation, []string{"자연"}, 5))
}
