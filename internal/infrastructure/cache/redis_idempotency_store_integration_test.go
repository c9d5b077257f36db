//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/limpcred/limpcred-api/internal/infrastructure/cache"
	"github.com/limpcred/limpcred-api/pkg/config"
)

func startRedis(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	endpoint, err := c.Endpoint(ctx, "")
	require.NoError(t, err)
	return endpoint
}

func TestRedisIdempotencyStore(t *testing.T) {
	ctx := context.Background()
	client, err := cache.NewRedisClient(ctx, config.RedisConfig{Addr: startRedis(t)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	store := cache.NewRedisIdempotencyStore(client, "test:")

	ok, err := store.MarkProcessed(ctx, "pay-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.MarkProcessed(ctx, "pay-1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "segunda marca da mesma chave")

	require.NoError(t, store.Release(ctx, "pay-1"))
	ok, err = store.MarkProcessed(ctx, "pay-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "marca de novo após Release")

	ttl, err := client.TTL(ctx, "test:pay-1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
