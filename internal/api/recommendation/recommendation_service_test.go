package recommendation

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-itinerary-recommender/app/observability/metrics"
	"github.com/FACorreiaa/go-itinerary-recommender/internal/recommend/catalog"
	"github.com/FACorreiaa/go-itinerary-recommender/internal/recommend/keywords"
	"github.com/FACorreiaa/go-itinerary-recommender/internal/recommend/ranking"
	"github.com/FACorreiaa/go-itinerary-recommender/internal/recommend/vectorstore"
	"github.com/FACorreiaa/go-itinerary-recommender/internal/types"
)

var fixedNow = time.Date(2025, 7, 1, 9, 15, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMetrics(t *testing.T) *metrics.AppMetrics {
	t.Helper()
	require.NoError(t, metrics.InitAppMetrics())
	return metrics.Get()
}

func newTestService(t *testing.T, store *vectorstore.Store) *ServiceImpl {
	t.Helper()
	engine := keywords.NewEngine(nil, nil)
	places, err := catalog.NewDerivedCatalog(store).Places(context.Background())
	require.NoError(t, err)

	return NewServiceImpl(
		store,
		ranking.NewVectorRanker(store),
		ranking.NewContentRanker(engine, places),
		engine,
		testMetrics(t),
		Options{Now: func() time.Time { return fixedNow }},
		testLogger(),
	)
}

func intPtr(v int) *int { return &v }

func slotsOf(d types.Day) []types.Slot {
	out := make([]types.Slot, len(d.Items))
	for i, it := range d.Items {
		out[i] = it.Slot
	}
	return out
}

func TestServiceImpl_Recommend_ThreeDays(t *testing.T) {
	svc := newTestService(t, vectorstore.Fallback())

	resp, err := svc.Recommend(context.Background(), types.RecommendRequest{
		StartDate:  "2025-07-01",
		EndDate:    "2025-07-03",
		Travelers:  2,
		Keywords:   map[string][]string{"관광지": {"자연"}, "맛집": {"맛"}},
		NumOptions: intPtr(2),
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-07-01", resp.StartDate)
	assert.Equal(t, 2, resp.Travelers)
	assert.Equal(t, []string{"자연"}, resp.SelectedKeywords[types.CategoryTouristSpot])
	require.Len(t, resp.Options, 2)
	for _, o := range resp.Options {
		assert.NotEmpty(t, o.Title)
		require.Len(t, o.Days, 3)
		full := []types.Slot{types.SlotMorning, types.SlotLunch, types.SlotAfternoon, types.SlotDinner, types.SlotLodging}
		assert.Equal(t, full, slotsOf(o.Days[0]))
		assert.Equal(t, full, slotsOf(o.Days[1]))
		assert.Equal(t, full[:4], slotsOf(o.Days[2]))
	}

	assert.NotEqual(t, resp.Options[0].Days[0].Items[0].Label, resp.Options[1].Days[0].Items[0].Label,
		"rotation offset changes the first morning item")
	assert.NotEqual(t, resp.Options[0].Title, resp.Options[1].Title)
}

func TestServiceImpl_Recommend_SingleDayHasNoLodging(t *testing.T) {
	svc := newTestService(t, vectorstore.Fallback())

	resp, err := svc.Recommend(context.Background(), types.RecommendRequest{
		StartDate: "2025-07-01",
		EndDate:   "2025-07-01",
		Travelers: 1,
	})
	require.NoError(t, err)
	require.Len(t, resp.Options, 2, "defaults to two options")
	for _, o := range resp.Options {
		require.Len(t, o.Days, 1)
		assert.Len(t, o.Days[0].Items, 4)
		for _, it := range o.Days[0].Items {
			assert.NotEqual(t, types.SlotLodging, it.Slot)
		}
	}
}

func TestServiceImpl_Recommend_EmptyCategory(t *testing.T) {
	src := staticSource{
		words: map[string][]float32{"자연": {1, 0}},
		places: []types.Place{
			{ID: "t1", Name: "오름", Category: "관광지"},
			{ID: "t2", Name: "숲", Category: "관광지"},
		},
		vecs: [][]float32{{1, 0}, {0, 1}},
	}
	store := vectorstore.Load(context.Background(), src, testLogger())
	require.False(t, store.IsFallback())
	svc := newTestService(t, store)

	var resp *types.RecommendResponse
	var err error
	require.NotPanics(t, func() {
		resp, err = svc.Recommend(context.Background(), types.RecommendRequest{
			StartDate: "2025-07-01",
			EndDate:   "2025-07-02",
			Travelers: 2,
			Keywords:  map[string][]string{"맛집": {"맛"}},
		})
	})
	require.NoError(t, err)

	day := resp.Options[0].Days[0]
	require.Len(t, day.Items, 5)
	assert.Equal(t, "식당 자유 선택", day.Items[1].Label)
	assert.Nil(t, day.Items[1].PlaceID)
	assert.Equal(t, "숙소 체크인", day.Items[4].Label)
}

func TestServiceImpl_Recommend_Errors(t *testing.T) {
	svc := newTestService(t, vectorstore.Fallback())

	tests := []struct {
		name    string
		req     types.RecommendRequest
		wantErr error
	}{
		{
			name:    "EndBeforeStart",
			req:     types.RecommendRequest{StartDate: "2025-07-03", EndDate: "2025-07-01", Travelers: 1},
			wantErr: ErrInvalidDateRange,
		},
		{
			name:    "BadDate",
			req:     types.RecommendRequest{StartDate: "07/01/2025", EndDate: "2025-07-01", Travelers: 1},
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "UnknownCategory",
			req:     types.RecommendRequest{StartDate: "2025-07-01", EndDate: "2025-07-01", Travelers: 1, Keywords: map[string][]string{"쇼핑": {"x"}}},
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "TooManyOptions",
			req:     types.RecommendRequest{StartDate: "2025-07-01", EndDate: "2025-07-01", Travelers: 1, NumOptions: intPtr(9)},
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "TripTooLong",
			req:     types.RecommendRequest{StartDate: "2025-07-01", EndDate: "2025-07-31", Travelers: 1},
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "CenturiesLong",
			req:     types.RecommendRequest{StartDate: "2025-01-01", EndDate: "2500-01-01", Travelers: 1},
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "NoTravelers",
			req:     types.RecommendRequest{StartDate: "2025-07-01", EndDate: "2025-07-01"},
			wantErr: ErrInvalidRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Recommend(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsClientError(err))
		})
	}
}

func TestServiceImpl_Recommend_AliasesMerge(t *testing.T) {
	svc := newTestService(t, vectorstore.Fallback())

	resp, err := svc.Recommend(context.Background(), types.RecommendRequest{
		StartDate: "2025-07-01",
		EndDate:   "2025-07-01",
		Travelers: 1,
		Keywords:  map[string][]string{"관광지": {"자연"}, "tourist_spot": {"뷰", " "}},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"자연", "뷰"}, resp.SelectedKeywords[types.CategoryTouristSpot])
}

func TestServiceImpl_Recommend_SameMinuteIsStable(t *testing.T) {
	svc := newTestService(t, vectorstore.Fallback())
	req := types.RecommendRequest{
		StartDate: "2025-07-01",
		EndDate:   "2025-07-02",
		Travelers: 2,
		Keywords:  map[string][]string{"카페": {"뷰"}},
	}

	a, err := svc.Recommend(context.Background(), req)
	require.NoError(t, err)
	b, err := svc.Recommend(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestServiceImpl_Recommend_CacheKeepsKeywordSetsApart(t *testing.T) {
	svc := newTestService(t, vectorstore.Fallback())
	base := types.RecommendRequest{StartDate: "2025-07-01", EndDate: "2025-07-02", Travelers: 2}

	first := base
	first.Keywords = map[string][]string{"관광지": {"자연", "뷰"}}
	_, err := svc.Recommend(context.Background(), first)
	require.NoError(t, err)

	second := base
	second.Keywords = map[string][]string{"관광지": {"뷰_관광지:자연"}}
	got, err := svc.Recommend(context.Background(), second)
	require.NoError(t, err)
	assert.Equal(t, []string{"뷰_관광지:자연"}, got.SelectedKeywords[types.CategoryTouristSpot])

	want, err := newTestService(t, vectorstore.Fallback()).Recommend(context.Background(), second)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTripDays(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       int
		wantErr    error
	}{
		{"SameDay", "2025-07-01", "2025-07-01", 1, nil},
		{"LeapDay", "2024-02-28", "2024-03-01", 3, nil},
		{"YearBoundary", "2024-12-31", "2025-01-01", 2, nil},
		{"Maximum", "2025-07-01", "2025-07-30", maxTripDays, nil},
		{"OverMaximum", "2025-07-01", "2025-07-31", 0, ErrInvalidRequest},
		{"Centuries", "2025-01-01", "2500-01-01", 0, ErrInvalidRequest},
		{"Millennia", "0001-01-01", "9999-12-31", 0, ErrInvalidRequest},
		{"Reversed", "2025-07-02", "2025-07-01", 0, ErrInvalidDateRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tripDays(tt.start, tt.end)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnhancedCacheKey(t *testing.T) {
	key := func(kws ...string) string {
		return enhancedCacheKey(fixedNow, types.CategoryTouristSpot, 5, kws)
	}

	assert.Equal(t, key("자연", "체험"), key("체험", "자연"))
	assert.NotEqual(t, key("자연", "체험"), key("자연_체험"))
	assert.NotEqual(t, key("a", "b"), key("a,b"))
	assert.NotEqual(t, key("a", "b"), key(`a","b`))
	assert.NotEqual(t, key("자연"), enhancedCacheKey(fixedNow.Add(time.Minute), types.CategoryTouristSpot, 5, []string{"자연"}))
}

func TestServiceImpl_EnhancedRecommend(t *testing.T) {
	svc := newTestService(t, vectorstore.Fallback())

	places, err := svc.EnhancedRecommend(context.Background(), types.EnhancedKeywordRequest{
		Category: "tourist_spot",
		Keywords: []string{"바다", "자연"},
		Limit:    intPtr(3),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, places)
	assert.LessOrEqual(t, len(places), 3)

	seen := map[string]bool{}
	for _, p := range places {
		assert.Equal(t, "tourist_spot", p.Category)
		assert.False(t, seen[p.Name])
		seen[p.Name] = true
	}

	again, err := svc.EnhancedRecommend(context.Background(), types.EnhancedKeywordRequest{
		Category: "관광지",
		Keywords: []string{"자연", "바다"},
		Limit:    intPtr(3),
	})
	require.NoError(t, err)
	assert.Equal(t, places, again, "same minute and keyword set")
}

func TestServiceImpl_EnhancedRecommend_CacheKeepsKeywordSetsApart(t *testing.T) {
	svc := newTestService(t, vectorstore.Fallback())

	_, err := svc.EnhancedRecommend(context.Background(), types.EnhancedKeywordRequest{
		Category: "tourist_spot",
		Keywords: []string{"자연", "체험"},
	})
	require.NoError(t, err)

	joined := types.EnhancedKeywordRequest{Category: "tourist_spot", Keywords: []string{"자연_체험"}}
	got, err := svc.EnhancedRecommend(context.Background(), joined)
	require.NoError(t, err)

	want, err := newTestService(t, vectorstore.Fallback()).EnhancedRecommend(context.Background(), joined)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestServiceImpl_EnhancedRecommend_DefaultLimit(t *testing.T) {
	svc := newTestService(t, vectorstore.Fallback())

	places, err := svc.EnhancedRecommend(context.Background(), types.EnhancedKeywordRequest{
		Category: "cafe",
		Keywords: []string{"분위기"},
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(places), defaultLimit)
}

func TestServiceImpl_EnhancedRecommend_Errors(t *testing.T) {
	svc := newTestService(t, vectorstore.Fallback())

	_, err := svc.EnhancedRecommend(context.Background(), types.EnhancedKeywordRequest{Category: "mall", Keywords: []string{"a"}})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.EnhancedRecommend(context.Background(), types.EnhancedKeywordRequest{Category: "cafe"})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.EnhancedRecommend(context.Background(), types.EnhancedKeywordRequest{Category: "cafe", Keywords: []string{"a"}, Limit: intPtr(0)})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestServiceImpl_KeywordWeights(t *testing.T) {
	svc := newTestService(t, vectorstore.Fallback())

	w, err := svc.KeywordWeights(context.Background(), []string{"맛", "분위기"})
	require.NoError(t, err)
	assert.InDelta(t, 1.2*1.3, w["맛"], 1e-9)
	assert.InDelta(t, 1.1*1.3, w["분위기"], 1e-9)

	_, err = svc.KeywordWeights(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestServiceImpl_Stats(t *testing.T) {
	svc := newTestService(t, vectorstore.Fallback())
	stats := svc.Stats(context.Background())
	assert.True(t, stats.Fallback)
	assert.Equal(t, 20, stats.Places)
}

func TestServiceImpl_UnknownKeywords(t *testing.T) {
	svc := newTestService(t, vectorstore.Fallback())

	assert.Empty(t, svc.unknownKeywords([]string{"자연", "뷰"}))
	assert.Equal(t, []string{"unknown_word_xyz", "바다"}, svc.unknownKeywords([]string{"자연", "unknown_word_xyz", "맛", "바다"}))
	assert.Empty(t, svc.unknownKeywords(nil))
}

type staticSource struct {
	words  map[string][]float32
	places []types.Place
	vecs   [][]float32
}

func (s staticSource) Words(context.Context) (map[string][]float32, error) { return s.words, nil }

func (s staticSource) Places(context.Context) ([]types.Place, [][]float32, error) {
	return s.places, s.vecs, nil
}
