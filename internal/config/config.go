package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	RedisStreams RedisStreamsConfig
	Cache        CacheConfig
	Log          LogConfig
	Worker       WorkerConfig
	Map          MapConfig
	Data         DataConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisStreamsConfig points at the instance carrying render jobs.
// Empty fields fall back to RedisConfig.
type RedisStreamsConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	MapCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
	PollInterval  time.Duration
	BatchSize     int
	MaxRetries    int
	// ShutdownTimeout bounds how long in-flight renders may finish on stop
	ShutdownTimeout time.Duration
}

// MapConfig holds rendering defaults applied when a request leaves them out.
type MapConfig struct {
	MetricColumn    string
	NightOnly       bool
	NightFlagColumn string
	NightSentinel   string
	Width           int
	Height          int
	MarkerRadius    float64
}

type DataConfig struct {
	// Source selects where observation tables come from: "postgres" or "csv".
	Source            string
	ObservationsTable string
	CSVDir            string
	OverlayDir        string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("MAP_CACHE_TTL", 3600)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("WORKER_CONSUMER_GROUP", "atl08-render-workers")
	v.SetDefault("WORKER_POLL_INTERVAL", 1000)
	v.SetDefault("WORKER_BATCH_SIZE", 10)
	v.SetDefault("WORKER_MAX_RETRIES", 3)
	v.SetDefault("WORKER_SHUTDOWN_TIMEOUT", 30)
	v.SetDefault("MAP_METRIC_COLUMN", "h_can")
	v.SetDefault("MAP_NIGHT_ONLY", true)
	v.SetDefault("MAP_NIGHT_FLAG_COLUMN", "night_flg")
	v.SetDefault("MAP_NIGHT_SENTINEL", "1")
	v.SetDefault("MAP_WIDTH", 1000)
	v.SetDefault("MAP_HEIGHT", 400)
	v.SetDefault("MAP_RADIUS", 10)
	v.SetDefault("DATA_SOURCE", "postgres")
	v.SetDefault("OBSERVATIONS_TABLE", "atl08_observations")
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	return LoadFrom(viper.New(), ".env")
}

// LoadFrom reads configuration through v. Flags bound to v by the caller
// take precedence over the environment and the file at path.
func LoadFrom(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("API_HOST"),
			Port: v.GetInt("API_PORT"),
			Env:  v.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		RedisStreams: RedisStreamsConfig{
			Host:     v.GetString("REDIS_STREAMS_HOST"),
			Port:     v.GetInt("REDIS_STREAMS_PORT"),
			Password: v.GetString("REDIS_STREAMS_PASSWORD"),
			DB:       v.GetInt("REDIS_STREAMS_DB"),
		},
		Cache: CacheConfig{
			MapCacheTTL: time.Duration(v.GetInt("MAP_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:         v.GetBool("WORKER_ENABLED"),
			ConsumerGroup:   v.GetString("WORKER_CONSUMER_GROUP"),
			PollInterval:    time.Duration(v.GetInt("WORKER_POLL_INTERVAL")) * time.Millisecond,
			BatchSize:       v.GetInt("WORKER_BATCH_SIZE"),
			MaxRetries:      v.GetInt("WORKER_MAX_RETRIES"),
			ShutdownTimeout: time.Duration(v.GetInt("WORKER_SHUTDOWN_TIMEOUT")) * time.Second,
		},
		Map: MapConfig{
			MetricColumn:    v.GetString("MAP_METRIC_COLUMN"),
			NightOnly:       v.GetBool("MAP_NIGHT_ONLY"),
			NightFlagColumn: v.GetString("MAP_NIGHT_FLAG_COLUMN"),
			NightSentinel:   v.GetString("MAP_NIGHT_SENTINEL"),
			Width:           v.GetInt("MAP_WIDTH"),
			Height:          v.GetInt("MAP_HEIGHT"),
			MarkerRadius:    v.GetFloat64("MAP_RADIUS"),
		},
		Data: DataConfig{
			Source:            strings.ToLower(v.GetString("DATA_SOURCE")),
			ObservationsTable: v.GetString("OBSERVATIONS_TABLE"),
			CSVDir:            v.GetString("CSV_DIR"),
			OverlayDir:        v.GetString("OVERLAY_DIR"),
		},
	}

	// Стримы по умолчанию живут в том же Redis, что и кеш
	if cfg.RedisStreams.Host == "" {
		cfg.RedisStreams.Host = cfg.Redis.Host
	}
	if cfg.RedisStreams.Port == 0 {
		cfg.RedisStreams.Port = cfg.Redis.Port
	}
	if cfg.RedisStreams.Password == "" {
		cfg.RedisStreams.Password = cfg.Redis.Password
	}
	if cfg.RedisStreams.DB == 0 {
		cfg.RedisStreams.DB = cfg.Redis.DB
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects values no renderer could use.
func (c *Config) Validate() error {
	switch c.Data.Source {
	case "postgres", "csv":
	default:
		return fmt.Errorf("unknown DATA_SOURCE %q", c.Data.Source)
	}
	if c.Data.Source == "csv" && c.Data.CSVDir == "" {
		return fmt.Errorf("CSV_DIR is required when DATA_SOURCE=csv")
	}
	if c.Map.Width <= 0 || c.Map.Height <= 0 {
		return fmt.Errorf("map size must be positive, got %dx%d", c.Map.Width, c.Map.Height)
	}
	if c.Map.MarkerRadius <= 0 {
		return fmt.Errorf("MAP_RADIUS must be positive")
	}
	if c.Map.MetricColumn == "" {
		return fmt.Errorf("MAP_METRIC_COLUMN is required")
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func (c *Config) GetRedisStreamsAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisStreams.Host, c.RedisStreams.Port)
}
