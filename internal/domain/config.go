package domain

import "time"

// StorageBackend selects the persistent key-value store behind the cache
type StorageBackend string

const (
	// StorageMemory keeps entries in process memory only
	StorageMemory StorageBackend = "memory"
	// StorageFile keeps entries in a single JSON document on disk
	StorageFile StorageBackend = "file"
	// StorageSQLite keeps entries in a sqlite database
	StorageSQLite StorageBackend = "sqlite"
	// StorageRedis keeps entries in a redis server
	StorageRedis StorageBackend = "redis"
)

type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

type Config struct {
	APIToken          string         `mapstructure:"api_token"`
	NewsAPIKey        string         `mapstructure:"news_api_key"`
	APIBaseURL        string         `mapstructure:"api_base_url"`
	NewsBaseURL       string         `mapstructure:"news_base_url"`
	Competitions      []string       `mapstructure:"competitions"`
	RequestDelay      time.Duration  `mapstructure:"request_delay"`
	TeamsDelay        time.Duration  `mapstructure:"teams_delay"`
	RequestJitter     time.Duration  `mapstructure:"request_jitter"`
	MaxRetries        int            `mapstructure:"max_retries"`
	LookbackDays      int            `mapstructure:"lookback_days"`
	LookaheadDays     int            `mapstructure:"lookahead_days"`
	Timezone          string         `mapstructure:"timezone"`
	Location          *time.Location `mapstructure:"-"`
	StorageBackend    StorageBackend `mapstructure:"storage_backend"`
	StoragePath       string         `mapstructure:"storage_path"`
	RedisAddr         string         `mapstructure:"redis_addr"`
	DiscordWebhookURL string         `mapstructure:"discord_webhook_url"`
	MatchRefreshCron  string         `mapstructure:"match_refresh_cron"`
	NewsRefreshCron   string         `mapstructure:"news_refresh_cron"`
	LogLevel          string         `mapstructure:"log_level"`
	Output            OutputFormat   `mapstructure:"output"`
}
