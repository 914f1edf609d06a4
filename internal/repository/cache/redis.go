package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/atl08-heightmap/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Redis struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedis подключается к Redis, используемому для кеша карт
func NewRedis(cfg *config.RedisConfig, logger *zap.Logger) (*Redis, error) {
	return connect("Redis", cfg.Host, cfg.Port, cfg.Password, cfg.DB, logger)
}

func connect(name, host string, port int, password string, db int, logger *zap.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w", name, err)
	}

	logger.Info(name+" connected",
		zap.String("host", host),
		zap.Int("port", port),
	)

	return &Redis{
		client: client,
		logger: logger,
	}, nil
}

func (r *Redis) Close() error {
	r.logger.Info("Closing Redis connection")
	return r.client.Close()
}

func (r *Redis) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Client() *redis.Client {
	return r.client
}
