package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/travel-order-service/internal/config"
)

func TestPoolConfig(t *testing.T) {
	cfg, err := poolConfig(config.PostgresConfig{
		DSN:            "postgres://app:secret@db:5432/travel?sslmode=disable",
		MaxConns:       20,
		MinConns:       3,
		ConnMaxIdleSec: 10,
		ConnMaxLifeSec: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, "db", cfg.ConnConfig.Host)
	assert.Equal(t, "travel", cfg.ConnConfig.Database)
	assert.Equal(t, int32(20), cfg.MaxConns)
	assert.Equal(t, int32(3), cfg.MinConns)
	assert.Equal(t, 10*time.Second, cfg.MaxConnIdleTime)
	assert.Equal(t, time.Minute, cfg.MaxConnLifetime)
}

func TestPoolConfig_InvalidDSN(t *testing.T) {
	_, err := poolConfig(config.PostgresConfig{DSN: "::not a dsn"})
	assert.Error(t, err)
}

func TestNewPostgres_WithoutDSN(t *testing.T) {
	pg, err := NewPostgres(context.Background(), config.PostgresConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, pg.PoolHandle())
	assert.Error(t, pg.Ping(context.Background()))
	pg.Close()
}

func TestRedis_Disabled(t *testing.T) {
	r := NewRedis(context.Background(), config.RedisConfig{}, zap.NewNop())
	assert.False(t, r.Enabled())
	assert.Error(t, r.Ping(context.Background()))
	r.Close()
}
