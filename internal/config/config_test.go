package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/delveteam/delve/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_PASSWORD", "")
	t.Setenv("REDIS_DB", "")
	t.Setenv("COMBAT_MAX_ROUNDS", "")
	t.Setenv("COMBAT_TIMEOUT_SECONDS", "")

	cfg := config.Load()

	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "", cfg.Redis.Password)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, 50, cfg.Combat.MaxRounds)
	assert.Equal(t, 60*time.Second, cfg.Combat.Timeout)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("REDIS_PASSWORD", "hunter2")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("COMBAT_MAX_ROUNDS", "25")
	t.Setenv("COMBAT_TIMEOUT_SECONDS", "10")

	cfg := config.Load()

	assert.Equal(t, "redis.internal:6380", cfg.Redis.Addr)
	assert.Equal(t, "hunter2", cfg.Redis.Password)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 25, cfg.Combat.MaxRounds)
	assert.Equal(t, 10*time.Second, cfg.Combat.Timeout)
}

func TestLoad_IgnoresMalformedInts(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("COMBAT_MAX_ROUNDS", "many")
	t.Setenv("COMBAT_TIMEOUT_SECONDS", "")

	cfg := config.Load()

	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, 50, cfg.Combat.MaxRounds)
}
