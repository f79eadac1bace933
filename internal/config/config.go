package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Scorer  ScorerConfig  `yaml:"scorer" mapstructure:"scorer"`
	Collect CollectConfig `yaml:"collect" mapstructure:"collect"`
	Export  ExportConfig  `yaml:"export" mapstructure:"export"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"` // "sqlite" or "postgres"
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ScorerConfig carries the heuristic thresholds of the CIRF text scorer.
// The defaults reproduce the calibration the framework was published with;
// they are configurable because their derivation is unverified and may need
// recalibration against a hand-coded sample.
type ScorerConfig struct {
	PresenceThreshold      float64 `yaml:"presence_threshold" mapstructure:"presence_threshold"`           // sentiment rules apply above this
	WeakPresenceThreshold  float64 `yaml:"weak_presence_threshold" mapstructure:"weak_presence_threshold"` // mixed-evidence floor
	SentimentThreshold     float64 `yaml:"sentiment_threshold" mapstructure:"sentiment_threshold"`         // |polarity| must exceed this
	DensityScale           float64 `yaml:"density_scale" mapstructure:"density_scale"`                     // keyword density multiplier before saturation
	ViolationConfidence    float64 `yaml:"violation_confidence" mapstructure:"violation_confidence"`       // presence multiplier on violation
	SatisfactionConfidence float64 `yaml:"satisfaction_confidence" mapstructure:"satisfaction_confidence"` // presence multiplier on satisfaction
	MixedConfidence        float64 `yaml:"mixed_confidence" mapstructure:"mixed_confidence"`               // presence multiplier on mixed evidence
	NoEvidenceConfidence   float64 `yaml:"no_evidence_confidence" mapstructure:"no_evidence_confidence"`   // flat confidence with no evidence
}

// CollectConfig configures document collection.
type CollectConfig struct {
	MaxQueries          int      `yaml:"max_queries" mapstructure:"max_queries"`
	MaxResultsPerQuery  int      `yaml:"max_results_per_query" mapstructure:"max_results_per_query"`
	Concurrency         int      `yaml:"concurrency" mapstructure:"concurrency"`
	RequestsPerSecond   float64  `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	MaxRetries          int      `yaml:"max_retries" mapstructure:"max_retries"`
	TimeoutSecs         int      `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	UserAgent           string   `yaml:"user_agent" mapstructure:"user_agent"`
	PrimaryTerms        []string `yaml:"primary_terms" mapstructure:"primary_terms"`
	GeographicModifiers []string `yaml:"geographic_modifiers" mapstructure:"geographic_modifiers"`
	SectorModifiers     []string `yaml:"sector_modifiers" mapstructure:"sector_modifiers"`
}

// ExportConfig configures file export.
type ExportConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// ServerConfig configures the dashboard API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CIRF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Default returns the built-in configuration, ignoring any config file or
// environment overrides. Used to seed a fresh config.yaml.
func Default() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal defaults")
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "cirf_analysis.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("export.dir", ".")

	v.SetDefault("scorer.presence_threshold", 0.1)
	v.SetDefault("scorer.weak_presence_threshold", 0.05)
	v.SetDefault("scorer.sentiment_threshold", 0.1)
	v.SetDefault("scorer.density_scale", 100)
	v.SetDefault("scorer.violation_confidence", 0.8)
	v.SetDefault("scorer.satisfaction_confidence", 0.7)
	v.SetDefault("scorer.mixed_confidence", 0.5)
	v.SetDefault("scorer.no_evidence_confidence", 0.2)

	v.SetDefault("collect.max_queries", 50)
	v.SetDefault("collect.max_results_per_query", 20)
	v.SetDefault("collect.concurrency", 4)
	v.SetDefault("collect.requests_per_second", 1)
	v.SetDefault("collect.max_retries", 3)
	v.SetDefault("collect.timeout_secs", 30)
	v.SetDefault("collect.user_agent", "CIRF-Research-Bot/1.0")
	v.SetDefault("collect.primary_terms", []string{
		"cultural entrepreneurship failure",
		"indigenous business closure",
		"traditional craft business failed",
		"cultural tourism failure",
		"ethnic minority business bankruptcy",
		"social enterprise collapse cultural",
		"community enterprise failure",
		"cultural heritage business closed",
	})
	v.SetDefault("collect.geographic_modifiers", []string{
		"Canada", "Australia", "New Zealand", "United States",
		"Africa", "Asia", "Europe", "Latin America",
	})
	v.SetDefault("collect.sector_modifiers", []string{
		"tourism", "crafts", "artisan", "heritage", "museum",
		"festival", "cooperative", "social enterprise",
	})
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
