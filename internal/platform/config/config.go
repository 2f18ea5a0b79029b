package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	pstrings "mintgate/pkg/platform/strings"
)

// Storage backends for the issuance journal.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// Server captures process level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration

	// AdminTokenHash is a bcrypt hash of the admin token and wins over
	// AdminToken when both are set.
	AdminToken     string
	AdminTokenHash string

	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string

	StorageBackend string
	AssetCapacity  uint64
	InitialAssets  int

	LogLevel  string
	LogFormat string

	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
}

// DatabaseConfig configures the PostgreSQL journal.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig configures the Redis client.
type RedisConfig struct {
	URL          string
	KeyPrefix    string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the event publisher. Empty Brokers disables it.
type KafkaConfig struct {
	Brokers           []string
	Topic             string
	Partitions        int32
	ReplicationFactor int16
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:           getEnv("MINTGATE_ADDR", ":8080"),
		AdminToken:     os.Getenv("ADMIN_API_TOKEN"),
		AdminTokenHash: os.Getenv("ADMIN_API_TOKEN_HASH"),
		JWTSigningKey:  os.Getenv("JWT_SIGNING_KEY"),
		JWTIssuer:      getEnv("JWT_ISSUER", "mintgate"),
		JWTAudience:    getEnv("JWT_AUDIENCE", "mintgate"),
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", StorageMemory)),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Redis: RedisConfig{
			URL:       os.Getenv("REDIS_URL"),
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "mintgate:"),
		},
		Kafka: KafkaConfig{
			Brokers: pstrings.SplitList(os.Getenv("KAFKA_BROKERS"), ","),
			Topic:   getEnv("KAFKA_TOPIC", "mintgate.issuance"),
		},
	}

	if cfg.JWTSigningKey == "" {
		// Use a default for development - should be overridden in production
		cfg.JWTSigningKey = "dev-secret-key-change-in-production"
	}

	var err error
	if cfg.ShutdownTimeout, err = durationEnv("SHUTDOWN_TIMEOUT", 15*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.AssetCapacity, err = uintEnv("ASSET_CAPACITY", 0); err != nil {
		return Server{}, err
	}
	if cfg.InitialAssets, err = intEnv("INITIAL_ASSETS", 0); err != nil {
		return Server{}, err
	}
	if cfg.Database.MaxOpenConns, err = intEnv("DATABASE_MAX_OPEN_CONNS", 10); err != nil {
		return Server{}, err
	}
	if cfg.Database.MaxIdleConns, err = intEnv("DATABASE_MAX_IDLE_CONNS", 5); err != nil {
		return Server{}, err
	}
	if cfg.Database.ConnMaxLifetime, err = durationEnv("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute); err != nil {
		return Server{}, err
	}
	if cfg.Redis.PoolSize, err = intEnv("REDIS_POOL_SIZE", 10); err != nil {
		return Server{}, err
	}
	if cfg.Redis.MinIdleConns, err = intEnv("REDIS_MIN_IDLE_CONNS", 2); err != nil {
		return Server{}, err
	}
	if cfg.Redis.DialTimeout, err = durationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.Redis.ReadTimeout, err = durationEnv("REDIS_READ_TIMEOUT", 3*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.Redis.WriteTimeout, err = durationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second); err != nil {
		return Server{}, err
	}
	partitions, err := intEnv("KAFKA_PARTITIONS", 3)
	if err != nil {
		return Server{}, err
	}
	replication, err := intEnv("KAFKA_REPLICATION_FACTOR", 1)
	if err != nil {
		return Server{}, err
	}
	cfg.Kafka.Partitions = int32(partitions)
	cfg.Kafka.ReplicationFactor = int16(replication)

	if err := cfg.validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

func (c Server) validate() error {
	switch c.StorageBackend {
	case StorageMemory:
	case StoragePostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s storage backend", StoragePostgres)
		}
	case StorageRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("REDIS_URL is required for the %s storage backend", StorageRedis)
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	if c.AdminToken == "" && c.AdminTokenHash == "" {
		return fmt.Errorf("one of ADMIN_API_TOKEN or ADMIN_API_TOKEN_HASH must be set")
	}
	if c.InitialAssets < 0 {
		return fmt.Errorf("INITIAL_ASSETS must be non-negative")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

func uintEnv(key string, fallback uint64) (uint64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}

