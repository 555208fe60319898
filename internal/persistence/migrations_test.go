package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cookfarm/pantry-service/internal/config"
)

func TestMigrationFilesAreOrdered(t *testing.T) {
	files, err := MigrationFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_users.sql", "0002_ingredients.sql"}, files)
}

func TestRunMigrationsWithoutPool(t *testing.T) {
	assert.NoError(t, RunMigrations(context.Background(), nil, zap.NewNop()))
}

func TestNewPostgresWithoutDSN(t *testing.T) {
	pg, err := NewPostgres(context.Background(), config.PostgresConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, pg.Enabled())
	assert.Error(t, pg.Ping(context.Background()))
	pg.Close()
}

func TestNewRedisWithoutAddr(t *testing.T) {
	r := NewRedis(context.Background(), config.RedisConfig{}, zap.NewNop())
	assert.False(t, r.Enabled())
	assert.Error(t, r.Ping(context.Background()))
	r.Close()
}
