package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	SourceFixture  = "fixture"
	SourcePostgres = "postgres"
)

// Config is everything the server reads at start-up.
type Config struct {
	Port           string        `mapstructure:"port"`
	DataSource     string        `mapstructure:"data_source"`
	DatabaseURL    string        `mapstructure:"database_url"`
	FixtureLatency time.Duration `mapstructure:"fixture_latency"`
	FeedInterval   time.Duration `mapstructure:"feed_interval"`
	JWTSecret      string        `mapstructure:"jwt_secret"`
	SessionTTL     time.Duration `mapstructure:"session_ttl"`
	LogLevel       string        `mapstructure:"log_level"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`

	// FederatedSecret enables "google" sign-in through a gateway-issued token.
	FederatedSecret string `mapstructure:"federated_secret"`
	FederatedIssuer string `mapstructure:"federated_issuer"`

	// EphemeralSecret is set when no jwt_secret was configured and a random
	// one was generated; sessions then die with the process.
	EphemeralSecret bool `mapstructure:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("data_source", SourceFixture)
	v.SetDefault("database_url", "")
	v.SetDefault("fixture_latency", 500*time.Millisecond)
	v.SetDefault("feed_interval", 30*time.Second)
	v.SetDefault("jwt_secret", "")
	v.SetDefault("session_ttl", 24*time.Hour)
	v.SetDefault("federated_secret", "")
	v.SetDefault("federated_issuer", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})
}

// Load reads .env, the optional yaml file at path, and the environment,
// in increasing order of precedence. An empty path skips the file.
func Load(path string) (*Config, *viper.Viper, error) {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, nil, err
	}
	return cfg, v, nil
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.DataSource = strings.ToLower(strings.TrimSpace(cfg.DataSource))
	switch cfg.DataSource {
	case SourceFixture:
	case SourcePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("data_source %q requires database_url", cfg.DataSource)
		}
	default:
		return nil, fmt.Errorf("unknown data_source %q", cfg.DataSource)
	}
	if cfg.JWTSecret == "" {
		if cfg.DataSource != SourceFixture {
			return nil, fmt.Errorf("data_source %q requires jwt_secret", cfg.DataSource)
		}
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.JWTSecret, cfg.EphemeralSecret = secret, true
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("session_ttl must be positive, got %s", cfg.SessionTTL)
	}
	return &cfg, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate jwt secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// ParseLevel maps a level name onto slog; unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Watch re-reads the yaml file at path whenever it is written and applies
// the new log level to level. Other keys need a restart.
func Watch(v *viper.Viper, path string, level *slog.LevelVar, logger *slog.Logger) error {
	if path == "" {
		return nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	v.SetConfigFile(abs)

	var last time.Time
	const debounce = time.Second
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) {
			return
		}
		now := time.Now()
		if now.Sub(last) < debounce {
			return
		}
		last = now

		cfg, err := decode(v)
		if err != nil {
			logger.Warn("ignoring config change", "file", e.Name, "error", err)
			return
		}
		next := ParseLevel(cfg.LogLevel)
		if next != level.Level() {
			level.Set(next)
			logger.Info("log level changed", "level", next.String())
		}
	})
	v.WatchConfig()
	return nil
}
