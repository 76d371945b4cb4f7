package config

import (
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/varoOP/matchday/internal/domain"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	v.Set("api_token", "secret")

	cfg, err := LoadFrom(v)
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.APIToken)
	assert.Equal(t, []string{"PL", "PD", "BL1", "SA", "FL1"}, cfg.Competitions)
	assert.Equal(t, 5*time.Second, cfg.RequestDelay)
	assert.Equal(t, 3*time.Second, cfg.TeamsDelay)
	assert.Equal(t, 7, cfg.LookbackDays)
	assert.Equal(t, 3, cfg.LookaheadDays)
	assert.Equal(t, domain.StorageSQLite, cfg.StorageBackend)
	assert.Equal(t, "matchday.db", filepath.Base(cfg.StoragePath))
	assert.Equal(t, "*/5 * * * *", cfg.MatchRefreshCron)
	assert.Equal(t, domain.OutputText, cfg.Output)
	assert.Equal(t, time.Local, cfg.Location)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MATCHDAY_API_TOKEN", "from-env")
	t.Setenv("MATCHDAY_REQUEST_DELAY", "750ms")
	t.Setenv("MATCHDAY_COMPETITIONS", "pl, cl")
	t.Setenv("MATCHDAY_TIMEZONE", "Europe/London")
	t.Setenv("MATCHDAY_STORAGE_BACKEND", "sqlite")

	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.APIToken)
	assert.Equal(t, 750*time.Millisecond, cfg.RequestDelay)
	assert.Equal(t, []string{"PL", "CL"}, cfg.Competitions)
	assert.Equal(t, "Europe/London", cfg.Location.String())
	assert.Equal(t, domain.StorageSQLite, cfg.StorageBackend)
	assert.NotEmpty(t, cfg.StoragePath, "sqlite gets a default path")
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{"missing token", "api_token", ""},
		{"bad backend", "storage_backend", "dynamodb"},
		{"bad timezone", "timezone", "Mars/Olympus"},
		{"bad cron", "match_refresh_cron", "every minute"},
		{"bad level", "log_level", "loud"},
		{"bad output", "output", "xml"},
		{"negative delay", "request_delay", "-1s"},
		{"negative lookback", "lookback_days", -2},
		{"no competitions", "competitions", []string{" "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set("api_token", "secret")
			v.Set(tt.key, tt.val)

			_, err := LoadFrom(v)
			assert.Error(t, err)
		})
	}
}
