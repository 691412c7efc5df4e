package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/FACorreiaa/go-itinerary-recommender/internal/api"
	"github.com/FACorreiaa/go-itinerary-recommender/internal/api/recommendation"
)

// Config contains dependencies needed for the router setup
type Config struct {
	RecommendationHandler *recommendation.HandlerImpl
	// AuthenticateMiddleware guards the recommendation routes when set.
	AuthenticateMiddleware func(http.Handler) http.Handler
	AllowedOrigins         []string
	// RateLimit is the number of recommendation requests allowed per IP per minute.
	// Zero disables the limiter.
	RateLimit int
}

// SetupRouter initializes and configures the application router.
// Server-wide middleware (logger, request id, recoverer) are applied by main.go
// before mounting it.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})
	r.Get("/healthz", cfg.RecommendationHandler.Health)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
	))

	r.Route("/api/v1/recommendations", func(r chi.Router) {
		if cfg.RateLimit > 0 {
			r.Use(httprate.Limit(cfg.RateLimit, time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(rateLimited),
			))
		}
		if cfg.AuthenticateMiddleware != nil {
			r.Use(cfg.AuthenticateMiddleware)
		}
		r.Use(cfg.RecommendationHandler.Recover)

		r.Post("/keyword-template", cfg.RecommendationHandler.KeywordTemplate)
		r.Post("/enhanced-keyword", cfg.RecommendationHandler.EnhancedKeyword)
		r.Post("/keyword-weights", cfg.RecommendationHandler.KeywordWeights)
	})

	return r
}

func rateLimited(w http.ResponseWriter, r *http.Request) {
	api.ErrorResponse(w, r, http.StatusTooManyRequests, api.CodeRateLimit, "Too many requests, slow down")
}
