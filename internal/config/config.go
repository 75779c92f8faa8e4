package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"churn-insight-service/internal/core/domain"
)

type Config struct {
	Server    ServerConfig
	Model     ModelConfig
	Upload    UploadConfig
	Analytics AnalyticsConfig
	Logger    LoggerConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
}

type ModelConfig struct {
	Path             string
	TopFactors       int
	SchemaPolicy     domain.SchemaPolicy
	EncodingStrategy domain.EncodingStrategy
}

type UploadConfig struct {
	MaxBytes    int64
	PreviewRows int
}

type AnalyticsConfig struct {
	HistogramBins int
}

type LoggerConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("MODEL_PATH", "model.json")
	v.SetDefault("MODEL_TOP_FACTORS", 3)
	v.SetDefault("SCHEMA_POLICY", string(domain.SchemaPolicyZeroFill))
	v.SetDefault("ENCODING_STRATEGY", string(domain.EncodingArtifact))
	v.SetDefault("UPLOAD_MAX_BYTES", 32<<20)
	v.SetDefault("PREVIEW_ROWS", 5)
	v.SetDefault("ANALYTICS_HISTOGRAM_BINS", 20)
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")

	// Env
	v.AutomaticEnv()

	shutdown, err := time.ParseDuration(v.GetString("SHUTDOWN_TIMEOUT"))
	if err != nil {
		shutdown = 10 * time.Second
	}

	policy := domain.SchemaPolicy(v.GetString("SCHEMA_POLICY"))
	if !policy.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSchemaPolicy, policy)
	}
	strategy := domain.EncodingStrategy(v.GetString("ENCODING_STRATEGY"))
	if !strategy.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidEncodingStrategy, strategy)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:            v.GetString("SERVER_HOST"),
			Port:            v.GetInt("SERVER_PORT"),
			ShutdownTimeout: shutdown,
		},
		Model: ModelConfig{
			Path:             v.GetString("MODEL_PATH"),
			TopFactors:       v.GetInt("MODEL_TOP_FACTORS"),
			SchemaPolicy:     policy,
			EncodingStrategy: strategy,
		},
		Upload: UploadConfig{
			MaxBytes:    v.GetInt64("UPLOAD_MAX_BYTES"),
			PreviewRows: v.GetInt("PREVIEW_ROWS"),
		},
		Analytics: AnalyticsConfig{
			HistogramBins: v.GetInt("ANALYTICS_HISTOGRAM_BINS"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
	}

	return cfg, nil
}
