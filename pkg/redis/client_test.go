package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-board-backend/pkg/redis"
)

func TestConnect(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		client, err := redis.Connect(context.Background(), redis.Config{})
		assert.Nil(t, client)
		assert.ErrorIs(t, err, redis.ErrNotConfigured)
	})

	t.Run("invalid url", func(t *testing.T) {
		client, err := redis.Connect(context.Background(), redis.Config{URL: "http://nope"})
		assert.Nil(t, client)
		assert.Error(t, err)
	})

	t.Run("connects and pings", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client, err := redis.Connect(context.Background(), redis.Config{URL: "redis://" + mr.Addr()})
		require.NoError(t, err)
		defer client.Close()

		assert.NoError(t, redis.HealthCheck(context.Background(), client))
	})

	t.Run("password override", func(t *testing.T) {
		mr := miniredis.RunT(t)
		mr.RequireAuth("s3cret")

		_, err := redis.Connect(context.Background(), redis.Config{URL: "redis://" + mr.Addr()})
		assert.Error(t, err)

		client, err := redis.Connect(context.Background(), redis.Config{URL: "redis://" + mr.Addr(), Password: "s3cret"})
		require.NoError(t, err)
		_ = client.Close()
	})
}

func TestHealthCheckNilClient(t *testing.T) {
	assert.Error(t, redis.HealthCheck(context.Background(), nil))
}
