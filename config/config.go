package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/FACorreiaa/go-itinerary-recommender/internal/recommend/keywords"
)

//go:embed config.yml
var embeddedConfig []byte

// EnvPrefix prefixes every environment override, e.g. RECOMMENDER_SERVER_HTTPPORT.
const EnvPrefix = "RECOMMENDER"

// DefaultRateLimit is the per-IP requests per minute when recommender.rateLimit
// is not set. An explicit 0 disables the limiter.
const DefaultRateLimit = 60

// ErrMissingJWTSecret is returned when JWT is enabled without a signing secret.
var ErrMissingJWTSecret = errors.New("jwt.secret is required when jwt.enabled is true")

type Config struct {
	Mode     string `mapstructure:"mode"`
	Dotenv   string `mapstructure:"dotenv"`
	Handlers struct {
		Prometheus struct {
			Port string `mapstructure:"port"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Repositories struct {
		Postgres struct {
			Enabled           bool   `mapstructure:"enabled"`
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"SSLMODE"`
			MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
			SeedCatalog       bool   `mapstructure:"seedCatalog"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	Recommender struct {
		DataDir    string        `mapstructure:"dataDir"`
		CacheTTL   time.Duration `mapstructure:"cacheTTL"`
		RateLimit  int           `mapstructure:"rateLimit"`
		TitleCount int           `mapstructure:"titleCount"`
	} `mapstructure:"recommender"`
	JWT struct {
		Enabled  bool   `mapstructure:"enabled"`
		Secret   string `mapstructure:"secret"`
		Issuer   string `mapstructure:"issuer"`
		Audience string `mapstructure:"audience"`
	} `mapstructure:"jwt"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowedOrigins"`
	} `mapstructure:"cors"`
	Keywords struct {
		Weights      map[string]float64     `mapstructure:"weights"`
		Combinations []keywords.Combination `mapstructure:"combinations"`
	} `mapstructure:"keywords"`
}

func InitConfig() (Config, error) {
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	return decode(v)
}

// Load reads configuration from raw YAML without touching the filesystem.
func Load(raw []byte) (Config, error) {
	v := viper.New()
	v.SetConfigType("yml")
	setDefaults(v)
	if err := v.ReadConfig(bytes.NewReader(raw)); err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return decode(v)
}

// Embedded returns the configuration compiled into the binary.
func Embedded() (Config, error) {
	return Load(embeddedConfig)
}

func decode(v *viper.Viper) (Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	applyDefaults(&config)
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate reports settings that cannot be repaired with a default.
func (c *Config) Validate() error {
	if c.JWT.Enabled && c.JWT.Secret == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

// setDefaults covers keys whose zero value is meaningful, so they cannot be
// defaulted after decoding.
func setDefaults(v *viper.Viper) {
	v.SetDefault("recommender.rateLimit", DefaultRateLimit)
}

func applyDefaults(c *Config) {
	if c.Server.HTTPPort == "" {
		c.Server.HTTPPort = "8000"
	}
	if c.Server.Timeout <= 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Recommender.CacheTTL <= 0 {
		c.Recommender.CacheTTL = time.Minute
	}
	if c.Recommender.TitleCount <= 0 || c.Recommender.TitleCount > 8 {
		c.Recommender.TitleCount = 8
	}
	if c.Recommender.RateLimit < 0 {
		c.Recommender.RateLimit = 0
	}
}
