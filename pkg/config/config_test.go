package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.Database.ConnectTimeout)
	assert.Equal(t, 30*time.Second, cfg.Database.MonitorInterval)
	assert.Equal(t, []string{"teachers", "calendar"}, cfg.Tables.Allowed)
	assert.Equal(t, []string{"service_role", "authenticated"}, cfg.Tables.AllowedRoles)
	assert.Equal(t, 5*time.Minute, cfg.Dashboard.CacheTTL)
	assert.False(t, cfg.Redis.Enabled)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("DB_MONITOR_INTERVAL", "not-a-duration")
	v.Set("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	v.Set("SUPABASE_URL", "https://abcd.supabase.co")
	v.Set("RATE_LIMIT_PER_SEC", 2.5)

	cfg := fromViper(v)

	assert.Equal(t, 30*time.Second, cfg.Database.MonitorInterval)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "https://abcd.supabase.co", cfg.Supabase.URL)
	assert.Equal(t, 2.5, cfg.RateLimit.PerSecond)
}
