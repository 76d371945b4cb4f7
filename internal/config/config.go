package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/varoOP/matchday/internal/domain"
)

const EnvPrefix = "MATCHDAY"

// SetDefaults registers every known key so that environment variables are
// picked up by Unmarshal even without a config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api_token", "")
	v.SetDefault("news_api_key", "")
	v.SetDefault("api_base_url", "https://api.football-data.org/v4")
	v.SetDefault("news_base_url", "https://gnews.io/api/v4")
	v.SetDefault("competitions", []string{"PL", "PD", "BL1", "SA", "FL1"})
	v.SetDefault("request_delay", 5*time.Second)
	v.SetDefault("teams_delay", 3*time.Second)
	v.SetDefault("request_jitter", time.Duration(0))
	v.SetDefault("max_retries", 3)
	v.SetDefault("lookback_days", 7)
	v.SetDefault("lookahead_days", 3)
	v.SetDefault("timezone", "Local")
	v.SetDefault("storage_backend", string(domain.StorageSQLite))
	v.SetDefault("storage_path", "")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("discord_webhook_url", "")
	v.SetDefault("match_refresh_cron", "*/5 * * * *")
	v.SetDefault("news_refresh_cron", "*/5 * * * *")
	v.SetDefault("log_level", "info")
	v.SetDefault("output", string(domain.OutputText))
}

// Load reads the configuration from the global viper instance:
// config file (config.yaml or .matchday.yaml) and MATCHDAY_* environment variables.
func Load() (*domain.Config, error) {
	return LoadFrom(viper.GetViper())
}

func LoadFrom(v *viper.Viper) (*domain.Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cfg := &domain.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *domain.Config) error {
	if cfg.APIToken == "" {
		return errors.New("api_token is required (set via config.yaml or MATCHDAY_API_TOKEN environment variable)")
	}

	codes := make([]string, 0, len(cfg.Competitions))
	for _, c := range cfg.Competitions {
		if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
			codes = append(codes, c)
		}
	}
	if len(codes) == 0 {
		return errors.New("competitions must name at least one competition code")
	}
	cfg.Competitions = codes

	if cfg.RequestDelay < 0 || cfg.TeamsDelay < 0 || cfg.RequestJitter < 0 {
		return errors.New("request_delay, teams_delay and request_jitter must not be negative")
	}
	if cfg.MaxRetries < 0 {
		return errors.Errorf("invalid max_retries: %d", cfg.MaxRetries)
	}
	if cfg.LookbackDays < 0 || cfg.LookaheadDays < 0 {
		return errors.New("lookback_days and lookahead_days must not be negative")
	}

	loc, err := loadLocation(cfg.Timezone)
	if err != nil {
		return errors.Wrapf(err, "invalid timezone: %s", cfg.Timezone)
	}
	cfg.Location = loc

	switch cfg.StorageBackend {
	case domain.StorageMemory, domain.StorageRedis:
	case domain.StorageFile, domain.StorageSQLite:
		if cfg.StoragePath == "" {
			cfg.StoragePath = defaultStoragePath(cfg.StorageBackend)
		}
	default:
		return errors.Errorf("invalid storage_backend: %s (must be 'memory', 'file', 'sqlite' or 'redis')", cfg.StorageBackend)
	}
	if cfg.StorageBackend == domain.StorageRedis && cfg.RedisAddr == "" {
		return errors.New("redis_addr is required for the redis storage backend")
	}

	for key, schedule := range map[string]string{"match_refresh_cron": cfg.MatchRefreshCron, "news_refresh_cron": cfg.NewsRefreshCron} {
		if _, err := cron.ParseStandard(schedule); err != nil {
			return errors.Wrapf(err, "invalid %s", key)
		}
	}

	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return errors.Wrapf(err, "invalid log_level")
	}

	switch cfg.Output {
	case domain.OutputText, domain.OutputJSON, domain.OutputYAML:
	default:
		return errors.Errorf("invalid output: %s (must be 'text', 'json' or 'yaml')", cfg.Output)
	}

	return nil
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

func defaultStoragePath(backend domain.StorageBackend) string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = "."
	}

	name := "cache.json"
	if backend == domain.StorageSQLite {
		name = "matchday.db"
	}
	return filepath.Join(dir, "matchday", name)
}
