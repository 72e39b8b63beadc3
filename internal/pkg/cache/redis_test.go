package cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/storefront/internal/config"
)

func redisConfig(host, port string) *config.Config {
	return &config.Config{Redis: config.RedisConfig{Enabled: true, Host: host, Port: port}}
}

func TestWaitForRedis_Connects(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client, err := WaitForRedis(redisConfig(mr.Host(), mr.Port()), 3, 10*time.Millisecond)

	require.NoError(t, err)
	defer client.Close()
}

func TestWaitForRedis_GivesUp(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	host, port := mr.Host(), mr.Port()
	mr.Close()

	client, err := WaitForRedis(redisConfig(host, port), 2, 10*time.Millisecond)

	assert.Nil(t, client)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 retries")
}
