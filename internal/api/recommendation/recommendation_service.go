package recommendation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-itinerary-recommender/app/observability/metrics"
	"github.com/FACorreiaa/go-itinerary-recommender/internal/recommend/itinerary"
	"github.com/FACorreiaa/go-itinerary-recommender/internal/recommend/keywords"
	"github.com/FACorreiaa/go-itinerary-recommender/internal/recommend/ranking"
	"github.com/FACorreiaa/go-itinerary-recommender/internal/types"
)

const (
	dateLayout   = "2006-01-02"
	defaultLimit = 5
	maxLimit     = 50
	maxOptions   = len(itinerary.Titles)
	maxTripDays  = 30
	// cacheMinuteLayout matches the granularity of the session seed.
	cacheMinuteLayout = "200601021504"
	secondsPerDay     = 24 * 60 * 60
	// shortlistFactor sizes the content shortlist relative to the limit.
	shortlistFactor = 3
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the recommendation use cases.
type Service interface {
	Recommend(ctx context.Context, req types.RecommendRequest) (*types.RecommendResponse, error)
	EnhancedRecommend(ctx context.Context, req types.EnhancedKeywordRequest) ([]types.Place, error)
	KeywordWeights(ctx context.Context, kws []string) (map[string]float64, error)
	Stats(ctx context.Context) types.StoreStats
}

// StatsProvider reports the state of the embedding data.
type StatsProvider interface {
	Stats() types.StoreStats
	HasWord(w string) bool
}

// Options tune a ServiceImpl. Zero values select the defaults.
type Options struct {
	CacheTTL   time.Duration
	TitleCount int
	Now        func() time.Time
}

type ServiceImpl struct {
	logger  *slog.Logger
	stats   StatsProvider
	vector  ranking.Ranker
	content ranking.Ranker
	engine  *keywords.Engine
	cache   *cache.Cache
	metrics *metrics.AppMetrics

	titleCount int
	now        func() time.Time
}

func NewServiceImpl(
	stats StatsProvider,
	vector ranking.Ranker,
	content ranking.Ranker,
	engine *keywords.Engine,
	m *metrics.AppMetrics,
	opts Options,
	logger *slog.Logger,
) *ServiceImpl {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Minute
	}
	if opts.TitleCount <= 0 || opts.TitleCount > len(itinerary.Titles) {
		opts.TitleCount = len(itinerary.Titles)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &ServiceImpl{
		logger:     logger,
		stats:      stats,
		vector:     vector,
		content:    content,
		engine:     engine,
		cache:      cache.New(opts.CacheTTL, 2*opts.CacheTTL),
		metrics:    m,
		titleCount: opts.TitleCount,
		now:        opts.Now,
	}
}

// Recommend builds itinerary options for the requested date range.
func (s *ServiceImpl) Recommend(ctx context.Context, req types.RecommendRequest) (resp *types.RecommendResponse, err error) {
	ctx, span := otel.Tracer("RecommendationService").Start(ctx, "Recommend", trace.WithAttributes(
		attribute.String("request.start_date", req.StartDate),
		attribute.String("request.end_date", req.EndDate),
		attribute.Int("request.travelers", req.Travelers),
	))
	defer span.End()
	start := time.Now()
	defer func() { s.record(ctx, "keyword-template", start, err, optionCount(resp)) }()

	days, err := tripDays(req.StartDate, req.EndDate)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid date range")
		return nil, err
	}

	if req.Travelers < 1 {
		err = fmt.Errorf("%w: travelers must be at least 1", ErrInvalidRequest)
		span.RecordError(err)
		return nil, err
	}

	selected, err := resolveKeywords(req.Keywords)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid keywords")
		return nil, err
	}

	var requested []string
	for _, c := range types.Categories {
		requested = append(requested, selected[c]...)
	}
	s.noteUnknown(ctx, span, requested)

	numOptions := itinerary.DefaultOptions
	if req.NumOptions != nil {
		numOptions = *req.NumOptions
	}
	if numOptions < 1 || numOptions > maxOptions {
		err = fmt.Errorf("%w: numOptions must be between 1 and %d", ErrInvalidRequest, maxOptions)
		span.RecordError(err)
		return nil, err
	}

	now := s.now()
	seed := ranking.SessionSeed(now, qualifiedKeywords(selected))
	cacheKey := fmt.Sprintf("itinerary:%s:%s:%s:%d:%d:%s",
		now.Format(cacheMinuteLayout), req.StartDate, req.EndDate, req.Travelers, numOptions, encodeKey(selected))
	if cached, ok := s.cache.Get(cacheKey); ok {
		s.metrics.CacheHitsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("endpoint", "keyword-template")))
		span.SetAttributes(attribute.Bool("cache.hit", true))
		r := cached.(types.RecommendResponse)
		return &r, nil
	}

	ranked, err := s.rankAll(ctx, selected, days)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "ranking failed")
		return nil, fmt.Errorf("failed to rank candidates: %w", err)
	}

	pools := itinerary.NewPools(
		ranked[types.CategoryTouristSpot],
		ranked[types.CategoryCafe],
		ranked[types.CategoryRestaurant],
		ranked[types.CategoryAccommodation],
		days,
	)
	titleOffset := ranking.NewRand(seed).IntN(s.titleCount)

	out := types.RecommendResponse{
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		Travelers:        req.Travelers,
		SelectedKeywords: selected,
		Options:          itinerary.Assemble(pools, days, numOptions, titleOffset),
	}
	s.cache.SetDefault(cacheKey, out)

	s.logger.InfoContext(ctx, "Itinerary options generated",
		slog.Int("days", days),
		slog.Int("options", numOptions),
		slog.Int("tours", len(pools.Tours)),
		slog.Int("restaurants", len(pools.Restaurants)),
		slog.Int("lodging", len(pools.Lodging)),
	)
	span.SetAttributes(attribute.Int("itinerary.days", days), attribute.Int("itinerary.options", numOptions))
	span.SetStatus(codes.Ok, "Itinerary generated")
	return &out, nil
}

// rankAll ranks every category concurrently. The store behind the ranker is
// read-only so the goroutines share it without locking.
func (s *ServiceImpl) rankAll(ctx context.Context, selected map[types.Category][]string, days int) (map[types.Category][]types.Place, error) {
	results := make([][]types.Place, len(types.Categories))
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range types.Categories {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.vector.Rank(c, selected[c], itinerary.Candidates(c, days))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[types.Category][]types.Place, len(types.Categories))
	for i, c := range types.Categories {
		out[c] = results[i]
	}
	return out, nil
}

// EnhancedRecommend ranks the category by review content, keeps a shortlist
// of three times the limit and samples up to limit places from it.
func (s *ServiceImpl) EnhancedRecommend(ctx context.Context, req types.EnhancedKeywordRequest) (places []types.Place, err error) {
	ctx, span := otel.Tracer("RecommendationService").Start(ctx, "EnhancedRecommend", trace.WithAttributes(
		attribute.String("request.category", req.Category),
		attribute.StringSlice("request.keywords", req.Keywords),
	))
	defer span.End()
	start := time.Now()
	defer func() { s.record(ctx, "enhanced-keyword", start, err, len(places)) }()

	category, ok := types.ParseCategory(req.Category)
	if !ok {
		err = fmt.Errorf("%w: unknown category %q", ErrInvalidRequest, req.Category)
		span.RecordError(err)
		return nil, err
	}
	if len(req.Keywords) == 0 {
		err = fmt.Errorf("%w: keywords are required", ErrInvalidRequest)
		span.RecordError(err)
		return nil, err
	}
	limit := defaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}
	if limit < 1 || limit > maxLimit {
		err = fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidRequest, maxLimit)
		span.RecordError(err)
		return nil, err
	}

	now := s.now()
	seed := ranking.SessionSeed(now, req.Keywords)
	cacheKey := enhancedCacheKey(now, category, limit, req.Keywords)
	if cached, ok := s.cache.Get(cacheKey); ok {
		s.metrics.CacheHitsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("endpoint", "enhanced-keyword")))
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return slices.Clone(cached.([]types.Place)), nil
	}

	s.noteUnknown(ctx, span, req.Keywords)
	weights := s.engine.CombinationWeight(req.Keywords)
	shortlist := s.content.Rank(category, req.Keywords, shortlistFactor*limit)
	itemWeights := make([]float64, len(shortlist))
	for i, p := range shortlist {
		itemWeights[i] = keywords.ItemWeight(p, weights)
	}
	places = ranking.Select(shortlist, itemWeights, limit, ranking.NewRand(seed))
	s.cache.SetDefault(cacheKey, slices.Clone(places))

	s.logger.DebugContext(ctx, "Content recommendations sampled",
		slog.String("category", category.Slug()),
		slog.Int("shortlist", len(shortlist)),
		slog.Int("returned", len(places)),
	)
	span.SetAttributes(attribute.Int("results.count", len(places)))
	span.SetStatus(codes.Ok, "Content recommendations generated")
	return places, nil
}

// KeywordWeights exposes the combination weights of kws.
func (s *ServiceImpl) KeywordWeights(ctx context.Context, kws []string) (weights map[string]float64, err error) {
	ctx, span := otel.Tracer("RecommendationService").Start(ctx, "KeywordWeights", trace.WithAttributes(
		attribute.StringSlice("request.keywords", kws),
	))
	defer span.End()
	start := time.Now()
	defer func() { s.record(ctx, "keyword-weights", start, err, len(weights)) }()

	if len(kws) == 0 {
		err = fmt.Errorf("%w: keywords are required", ErrInvalidRequest)
		span.RecordError(err)
		return nil, err
	}
	weights = s.engine.CombinationWeight(kws)
	span.SetStatus(codes.Ok, "Weights computed")
	return weights, nil
}

func (s *ServiceImpl) Stats(_ context.Context) types.StoreStats {
	return s.stats.Stats()
}

// unknownKeywords returns the keywords without an embedding, in request
// order. They still take part in content matching but not in vector ranking.
func (s *ServiceImpl) unknownKeywords(kws []string) []string {
	var out []string
	for _, kw := range kws {
		if !s.stats.HasWord(kw) {
			out = append(out, kw)
		}
	}
	return out
}

func (s *ServiceImpl) noteUnknown(ctx context.Context, span trace.Span, kws []string) {
	unknown := s.unknownKeywords(kws)
	if len(unknown) == 0 {
		return
	}
	span.SetAttributes(attribute.StringSlice("keywords.unknown", unknown))
	s.logger.DebugContext(ctx, "Keywords missing from vocabulary", slog.Any("keywords", unknown))
}

func (s *ServiceImpl) record(ctx context.Context, endpoint string, start time.Time, err error, items int) {
	outcome := "ok"
	switch {
	case err == nil:
	case IsClientError(err):
		outcome = "invalid"
	default:
		outcome = "error"
	}
	attrs := metric.WithAttributes(attribute.String("endpoint", endpoint), attribute.String("outcome", outcome))
	s.metrics.RecommendationRequestsTotal.Add(ctx, 1, attrs)
	s.metrics.RecommendationDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
	if err == nil {
		s.metrics.RecommendationItemsReturned.Record(ctx, int64(items), metric.WithAttributes(attribute.String("endpoint", endpoint)))
	}
}

// tripDays returns the inclusive number of days between two YYYY-MM-DD dates.
func tripDays(startDate, endDate string) (int, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid startDate %q", ErrInvalidRequest, startDate)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid endDate %q", ErrInvalidRequest, endDate)
	}
	if end.Before(start) {
		return 0, fmt.Errorf("%w: %s is before %s", ErrInvalidDateRange, endDate, startDate)
	}
	// Both dates parse to UTC midnight, so the difference is whole days.
	days := (end.Unix()-start.Unix())/secondsPerDay + 1
	if days > maxTripDays {
		return 0, fmt.Errorf("%w: trip must not exceed %d days", ErrInvalidRequest, maxTripDays)
	}
	return int(days), nil
}

// enhancedCacheKey identifies a content recommendation. Keyword order does
// not change the result, so the keywords are sorted before encoding.
func enhancedCacheKey(now time.Time, category types.Category, limit int, kws []string) string {
	sorted := slices.Clone(kws)
	slices.Sort(sorted)
	return fmt.Sprintf("enhanced:%s:%s:%d:%s", now.Format(cacheMinuteLayout), category.Slug(), limit, encodeKey(sorted))
}

// encodeKey renders v as JSON. Strings are quoted and escaped, so distinct
// keyword sets never share an encoding.
func encodeKey(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%#v", v)
	}
	return string(b)
}

// resolveKeywords maps request category names, Korean or English, onto the
// known categories. Lists given under aliases of the same category are merged.
func resolveKeywords(in map[string][]string) (map[types.Category][]string, error) {
	out := make(map[types.Category][]string, len(in))
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		c, ok := types.ParseCategory(k)
		if !ok {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidRequest, k)
		}
		for _, kw := range in[k] {
			kw = strings.TrimSpace(kw)
			if kw != "" {
				out[c] = append(out[c], kw)
			}
		}
	}
	return out, nil
}

// qualifiedKeywords prefixes every keyword with its category so that the
// same word under different categories seeds differently.
func qualifiedKeywords(selected map[types.Category][]string) []string {
	var out []string
	for c, kws := range selected {
		for _, kw := range kws {
			out = append(out, c.String()+":"+kw)
		}
	}
	return out
}

func optionCount(r *types.RecommendResponse) int {
	if r == nil {
		return 0
	}
	return len(r.Options)
}
