package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-itinerary-recommender/internal/recommend/keywords"
)

func TestEmbedded(t *testing.T) {
	cfg, err := Embedded()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Mode)
	assert.Equal(t, "8000", cfg.Server.HTTPPort)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "8084", cfg.Handlers.Prometheus.Port)
	assert.Equal(t, time.Minute, cfg.Recommender.CacheTTL)
	assert.Equal(t, 8, cfg.Recommender.TitleCount)
	assert.False(t, cfg.Repositories.Postgres.Enabled)
	assert.False(t, cfg.JWT.Enabled)
	assert.NotEmpty(t, cfg.CORS.AllowedOrigins)
}

func TestEmbedded_KeywordTablesMatchDefaults(t *testing.T) {
	cfg, err := Embedded()
	require.NoError(t, err)

	assert.Equal(t, keywords.DefaultWeights, cfg.Keywords.Weights)
	require.Len(t, cfg.Keywords.Combinations, len(keywords.DefaultCombinations))

	fromFile := keywords.NewEngine(cfg.Keywords.Weights, cfg.Keywords.Combinations)
	builtIn := keywords.NewEngine(nil, nil)
	assert.Equal(t, builtIn.Combinations(), fromFile.Combinations())
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load([]byte("mode: production\nrecommender:\n  titleCount: 12\n"))
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Mode)
	assert.Equal(t, "8000", cfg.Server.HTTPPort)
	assert.Equal(t, time.Minute, cfg.Recommender.CacheTTL)
	assert.Equal(t, DefaultRateLimit, cfg.Recommender.RateLimit)
	assert.Equal(t, 8, cfg.Recommender.TitleCount, "clamped to the number of titles")
	assert.Nil(t, cfg.Keywords.Weights)
}

func TestLoad_RateLimit(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want int
	}{
		{"Unset", "mode: production\n", DefaultRateLimit},
		{"ZeroDisables", "recommender:\n  rateLimit: 0\n", 0},
		{"Explicit", "recommender:\n  rateLimit: 5\n", 5},
		{"NegativeDisables", "recommender:\n  rateLimit: -3\n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load([]byte(tt.yaml))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Recommender.RateLimit)
		})
	}
}

func TestLoad_JWTRequiresSecret(t *testing.T) {
	_, err := Load([]byte("jwt:\n  enabled: true\n"))
	assert.ErrorIs(t, err, ErrMissingJWTSecret)

	cfg, err := Load([]byte("jwt:\n  enabled: true\n  secret: s3cret\n"))
	require.NoError(t, err)
	assert.True(t, cfg.JWT.Enabled)

	_, err = Load([]byte("jwt:\n  enabled: false\n"))
	assert.NoError(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load([]byte("server: [unclosed"))
	assert.Error(t, err)
}
