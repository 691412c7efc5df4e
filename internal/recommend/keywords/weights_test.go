package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-itinerary-recommender/internal/types"
)

func TestEngine_Weight(t *testing.T) {
	e := NewEngine(nil, nil)

	assert.Equal(t, 1.2, e.Weight("맛"))
	assert.Equal(t, 0.8, e.Weight("가성비"))
	assert.Equal(t, 1.0, e.Weight("unknown_word_xyz"))
}

func TestEngine_CombinationWeight(t *testing.T) {
	e := NewEngine(nil, nil)

	tests := []struct {
		name     string
		keywords []string
		want     map[string]float64
	}{
		{
			name:     "Empty",
			keywords: nil,
			want:     map[string]float64{},
		},
		{
			name:     "SingleKeywordNoBonus",
			keywords: []string{"자연"},
			want:     map[string]float64{"자연": 1.0},
		},
		{
			name:     "FullPatternGetsBonus",
			keywords: []string{"자연", "체험"},
			want:     map[string]float64{"자연": 1.0 * 1.2, "체험": 1.1 * 1.2},
		},
		{
			name:     "UnknownKeywordIsNeutral",
			keywords: []string{"역사", "unknown"},
			want:     map[string]float64{"역사": 0.9, "unknown": 1.0},
		},
		{
			name:     "OverlappingPatternsStack",
			keywords: []string{"뷰", "맛", "분위기"},
			want: map[string]float64{
				"뷰":   1.3 * 1.4,
				"맛":   1.2 * 1.3,
				"분위기": 1.1 * 1.3 * 1.4,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.CombinationWeight(tt.keywords)
			require.Len(t, got, len(tt.want))
			for kw, w := range tt.want {
				assert.InDelta(t, w, got[kw], 1e-9, "keyword %s", kw)
			}
		})
	}
}

func TestEngine_CombinationBonusRequiresFullPattern(t *testing.T) {
	e := NewEngine(nil, nil)

	alone := e.CombinationWeight([]string{"자연"})["자연"]
	together := e.CombinationWeight([]string{"자연", "체험"})["자연"]
	assert.Greater(t, together, alone)
}

func TestEngine_CombinationOrderIsInputIndependent(t *testing.T) {
	e := NewEngine(nil, nil)

	a := e.CombinationWeight([]string{"분위기", "뷰", "맛"})
	b := e.CombinationWeight([]string{"맛", "뷰", "분위기"})
	assert.Equal(t, a, b)
}

func TestNewEngine_CustomTables(t *testing.T) {
	e := NewEngine(
		map[string]float64{"a": 2},
		[]Combination{
			{Keywords: []string{"b", "a"}, Bonus: 3},
			{Keywords: []string{"a"}, Bonus: 100},
		},
	)

	assert.Equal(t, 1.0, e.Weight("자연"), "custom table replaces the defaults")
	combos := e.Combinations()
	require.Len(t, combos, 1, "single keyword patterns are ignored")
	assert.Equal(t, []string{"a", "b"}, combos[0].Keywords)

	got := e.CombinationWeight([]string{"a", "b"})
	assert.InDelta(t, 6.0, got["a"], 1e-9)
	assert.InDelta(t, 3.0, got["b"], 1e-9)
}

func TestContentScore(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		keywords []string
		want     float64
	}{
		{"NoKeywords", "자연 경관", nil, 0},
		{"AllMatch", "자연 경관이 좋고 체험도 많아요", []string{"자연", "체험"}, 1},
		{"HalfMatch", "자연 경관", []string{"자연", "맛"}, 0.5},
		{"CaseSensitive", "Ocean view", []string{"ocean"}, 0},
		{"EmptyText", "", []string{"자연"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ContentScore(tt.text, tt.keywords), 1e-9)
		})
	}
}

func TestWeightedSimilarity(t *testing.T) {
	weights := map[string]float64{"자연": 1.2, "맛": 1.4}

	got := WeightedSimilarity("자연 경관", []string{"자연", "맛"}, weights)
	// 0.5 * (1 + (0.2 + 0.4) / 2)
	assert.InDelta(t, 0.65, got, 1e-9)

	assert.Zero(t, WeightedSimilarity("바다", []string{"자연"}, weights))
	assert.InDelta(t, 1.0, WeightedSimilarity("바다", []string{"바다"}, nil), 1e-9)
}

func TestItemWeight(t *testing.T) {
	rating := 4.5
	p := types.Place{Name: "오름", Rating: &rating, Reviews: "자연 경관이 멋지고 체험 프로그램이 있어요"}

	got := ItemWeight(p, map[string]float64{"자연": 1.2, "체험": 1.1, "맛": 1.5})
	assert.InDelta(t, 4.5+1.2+1.1, got, 1e-9)

	assert.InDelta(t, 1.2, ItemWeight(types.Place{Reviews: "자연"}, map[string]float64{"자연": 1.2}), 1e-9)
}

func TestItemWeight_SumsInKeywordOrder(t *testing.T) {
	p := types.Place{Reviews: "a b c d e f"}
	weights := map[string]float64{"f": 0.3, "e": 0.7, "d": 0.1, "c": 0.2, "b": 1e-17, "a": 0.6}

	var want float64
	for _, w := range []float64{0.6, 1e-17, 0.2, 0.1, 0.7, 0.3} {
		want += w
	}
	for range 100 {
		require.Equal(t, want, ItemWeight(p, weights))
	}
}
