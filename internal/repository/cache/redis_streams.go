package cache

import (
	"github.com/atl08-heightmap/internal/config"
	"go.uber.org/zap"
)

// NewRedisStreams connects to the Redis instance carrying the render job
// streams. It may be the cache instance or a dedicated one.
func NewRedisStreams(cfg *config.RedisStreamsConfig, logger *zap.Logger) (*Redis, error) {
	return connect("Redis Streams", cfg.Host, cfg.Port, cfg.Password, cfg.DB, logger)
}
