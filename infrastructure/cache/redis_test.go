package cache_test

import (
	"context"
	"testing"

	"cdn-service/infrastructure/cache"

	"github.com/stretchr/testify/assert"
)

func TestNewCache_NotConfigured(t *testing.T) {
	client, err := cache.NewCache(context.Background(), "", "", "", 0)
	assert.ErrorIs(t, err, cache.ErrNotConfigured)
	assert.Nil(t, client)
}

func TestNewCache_Unreachable(t *testing.T) {
	// port 1 is reserved and refuses connections
	client, err := cache.NewCache(context.Background(), "127.0.0.1:1", "", "", 0)
	assert.Error(t, err)
	assert.Nil(t, client)
}
