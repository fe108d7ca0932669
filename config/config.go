package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	CacheMemory = "memory"
	CacheRedis  = "redis"
)

type Config struct {
	Postgres    PostgresConfig
	HTTP        HTTPConfig
	StorageType string
	PerPage     int
	PageCache   PageCacheConfig
	Redis       RedisConfig
	Auth        AuthConfig
	Media       MediaConfig
	RateLimit   RateLimitConfig
}

type PostgresConfig struct {
	User     string
	Password string
	DB       string
	Host     string
	Port     int
	SSLMode  string
}

func (pc PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		pc.User,
		pc.Password,
		pc.Host,
		pc.Port,
		pc.DB,
		pc.SSLMode,
	)
}

type HTTPConfig struct {
	Port string
}

type PageCacheConfig struct {
	Backend string
	TTL     time.Duration
	Size    int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	Secret     string
	SessionTTL time.Duration
}

type MediaConfig struct {
	Root string
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// LoadConfig reads the environment, after merging a .env file from the
// working directory when there is one. Missing required values panic.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic("load .env: " + err.Error())
	}

	storageType := getEnv("STORAGE_TYPE", StorageMemory)

	cfg := Config{
		StorageType: storageType,
		HTTP: HTTPConfig{
			Port: getEnv("HTTP_PORT", "8080"),
		},
		PerPage: getInt("POSTS_PER_PAGE", 10),
		PageCache: PageCacheConfig{
			Backend: getEnv("PAGE_CACHE_BACKEND", CacheMemory),
			TTL:     time.Duration(getInt("PAGE_CACHE_TTL_SECONDS", 20)) * time.Second,
			Size:    getInt("PAGE_CACHE_SIZE", 512),
		},
		Auth: AuthConfig{
			Secret:     mustGetEnv("JWT_SECRET"),
			SessionTTL: time.Duration(getInt("SESSION_TTL_HOURS", 14*24)) * time.Hour,
		},
		Media: MediaConfig{
			Root: getEnv("MEDIA_ROOT", "./media"),
		},
		RateLimit: RateLimitConfig{
			RPS:   getFloat("RATE_LIMIT_RPS", 5),
			Burst: getInt("RATE_LIMIT_BURST", 20),
		},
	}

	if storageType == StoragePostgres {
		cfg.Postgres = PostgresConfig{
			User:     mustGetEnv("POSTGRES_USER"),
			Password: mustGetEnv("POSTGRES_PASSWORD"),
			DB:       mustGetEnv("POSTGRES_DB"),
			Host:     mustGetEnv("POSTGRES_HOST"),
			Port:     mustGetInt("POSTGRES_PORT"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		}
	}

	if cfg.PageCache.Backend == CacheRedis {
		cfg.Redis = RedisConfig{
			Addr:     mustGetEnv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		}
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic("missing required env var: " + key)
	}
	return val
}

func mustGetInt(key string) int {
	val := mustGetEnv(key)
	i, err := strconv.Atoi(val)
	if err != nil {
		panic("invalid int for env var " + key + ": " + val)
	}
	return i
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	if os.Getenv(key) == "" {
		return def
	}
	return mustGetInt(key)
}

func getFloat(key string, def float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		panic("invalid number for env var " + key + ": " + val)
	}
	return f
}
