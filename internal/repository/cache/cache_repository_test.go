package cache_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atl08-heightmap/internal/config"
	"github.com/atl08-heightmap/internal/repository/cache"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *cache.Redis) {
	t.Helper()
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	r, err := cache.NewRedis(&config.RedisConfig{Host: mr.Host(), Port: port}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return mr, r
}

func TestCacheRepository_MapRoundTrip(t *testing.T) {
	mr, r := newTestRedis(t)
	repo := cache.NewCacheRepository(r)
	ctx := context.Background()

	html := []byte("<!DOCTYPE html><html></html>")
	require.NoError(t, repo.SetMap(ctx, "5d41402abc4b2a76", html, time.Hour))

	got, err := repo.GetMap(ctx, "5d41402abc4b2a76")
	require.NoError(t, err)
	assert.Equal(t, html, got)
	assert.True(t, mr.Exists("map:html:5d41402abc4b2a76"))

	mr.FastForward(2 * time.Hour)
	got, err = repo.GetMap(ctx, "5d41402abc4b2a76")
	require.NoError(t, err)
	assert.Nil(t, got, "expired entry is a miss")
}

func TestCacheRepository_MissIsNil(t *testing.T) {
	_, r := newTestRedis(t)
	repo := cache.NewCacheRepository(r)

	got, err := repo.Get(context.Background(), "absent")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheRepository_ExistsAndDelete(t *testing.T) {
	_, r := newTestRedis(t)
	repo := cache.NewCacheRepository(r)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "k", []byte("v"), 0))
	ok, err := repo.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, repo.Delete(ctx, "k"))
	ok, err = repo.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheRepository_ErrorWhenServerGone(t *testing.T) {
	mr, r := newTestRedis(t)
	repo := cache.NewCacheRepository(r)
	mr.Close()

	_, err := repo.Get(context.Background(), "k")
	assert.Error(t, err)
}

func TestNewRedis_Unreachable(t *testing.T) {
	_, err := cache.NewRedis(&config.RedisConfig{Host: "127.0.0.1", Port: 1}, zap.NewNop())
	assert.Error(t, err)
}
