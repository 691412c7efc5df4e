package container

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	database "github.com/FACorreiaa/go-itinerary-recommender/app/db"
	appMiddleware "github.com/FACorreiaa/go-itinerary-recommender/app/middleware"
	"github.com/FACorreiaa/go-itinerary-recommender/app/observability/metrics"
	"github.com/FACorreiaa/go-itinerary-recommender/config"
	"github.com/FACorreiaa/go-itinerary-recommender/internal/api/recommendation"
	"github.com/FACorreiaa/go-itinerary-recommender/internal/recommend/catalog"
	"github.com/FACorreiaa/go-itinerary-recommender/internal/recommend/keywords"
	"github.com/FACorreiaa/go-itinerary-recommender/internal/recommend/ranking"
	"github.com/FACorreiaa/go-itinerary-recommender/internal/recommend/vectorstore"
	"github.com/FACorreiaa/go-itinerary-recommender/internal/router"
	"github.com/FACorreiaa/go-itinerary-recommender/internal/types"
)

// Container holds all application dependencies
type Container struct {
	Config                *config.Config
	Logger                *slog.Logger
	Pool                  *pgxpool.Pool
	Store                 *vectorstore.Store
	RecommendationHandler *recommendation.HandlerImpl
}

// NewContainer loads the embedding store and review catalog and wires the
// recommendation service. metrics.InitAppMetrics must have been called.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	c := &Container{Config: cfg, Logger: logger}

	var src vectorstore.Source
	fileSource, err := vectorstore.FindFileSource(cfg.Recommender.DataDir)
	if err != nil {
		logger.WarnContext(ctx, "Embedding tables not found", slog.Any("error", err))
	} else {
		src = fileSource
	}
	c.Store = vectorstore.Load(ctx, src, logger)

	engine := keywords.NewEngine(cfg.Keywords.Weights, cfg.Keywords.Combinations)
	m := metrics.Get()

	places, err := c.reviewCatalog(ctx, m)
	if err != nil {
		c.Close()
		return nil, err
	}

	service := recommendation.NewServiceImpl(
		c.Store,
		ranking.NewVectorRanker(c.Store),
		ranking.NewContentRanker(engine, places),
		engine,
		m,
		recommendation.Options{
			CacheTTL:   cfg.Recommender.CacheTTL,
			TitleCount: cfg.Recommender.TitleCount,
		},
		logger,
	)
	c.RecommendationHandler = recommendation.NewHandlerImpl(service, logger)
	return c, nil
}

// reviewCatalog returns the places used by the content path: the Postgres
// places table when enabled, otherwise the catalog derived from the store.
func (c *Container) reviewCatalog(ctx context.Context, m *metrics.AppMetrics) ([]types.Place, error) {
	derived := catalog.NewDerivedCatalog(c.Store)
	if !c.Config.Repositories.Postgres.Enabled {
		return derived.Places(ctx)
	}

	dbConfig, err := database.NewDatabaseConfig(c.Config, c.Logger)
	if err != nil {
		return nil, err
	}
	if err = database.RunMigrations(dbConfig.ConnectionURL, c.Logger); err != nil {
		return nil, err
	}
	c.Pool, err = database.Init(ctx, dbConfig.ConnectionURL, c.Logger)
	if err != nil {
		return nil, err
	}
	if !database.WaitForDB(ctx, c.Pool, c.Logger) {
		return nil, errors.New("database not ready")
	}

	pg := catalog.NewPostgresCatalog(c.Pool, c.Logger)
	places, err := timedQuery(ctx, m, "places.select", func() ([]types.Place, error) {
		return pg.Places(ctx)
	})
	if err != nil {
		return nil, err
	}
	if len(places) > 0 || !c.Config.Repositories.Postgres.SeedCatalog {
		return places, nil
	}

	seed, err := derived.Places(ctx)
	if err != nil {
		return nil, err
	}
	inserted, err := timedQuery(ctx, m, "places.seed", func() (int64, error) {
		return pg.Seed(ctx, seed)
	})
	if err != nil {
		return nil, err
	}
	c.Logger.InfoContext(ctx, "Seeded review catalog", slog.Int64("inserted", inserted))

	return timedQuery(ctx, m, "places.select", func() ([]types.Place, error) {
		return pg.Places(ctx)
	})
}

func timedQuery[T any](ctx context.Context, m *metrics.AppMetrics, op string, fn func() (T, error)) (T, error) {
	start := time.Now()
	out, err := fn()
	attrs := metric.WithAttributes(attribute.String("db.operation", op))
	m.DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil {
		m.DbQueryErrorsTotal.Add(ctx, 1, attrs)
	}
	return out, err
}

// AuthMiddleware returns the bearer-token check, or nil when JWT is disabled.
func (c *Container) AuthMiddleware() func(http.Handler) http.Handler {
	if !c.Config.JWT.Enabled {
		return nil
	}
	return appMiddleware.Authenticate(appMiddleware.AuthConfig{
		Secret:   []byte(c.Config.JWT.Secret),
		Issuer:   c.Config.JWT.Issuer,
		Audience: c.Config.JWT.Audience,
	}, c.Logger)
}

// RouterConfig assembles the router dependencies.
func (c *Container) RouterConfig() *router.Config {
	return &router.Config{
		RecommendationHandler:  c.RecommendationHandler,
		AuthenticateMiddleware: c.AuthMiddleware(),
		AllowedOrigins:         c.Config.CORS.AllowedOrigins,
		RateLimit:              c.Config.Recommender.RateLimit,
	}
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}
