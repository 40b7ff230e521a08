package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// RiotConfiguration holds the Riot API access values.
type RiotConfiguration struct {
	ApiKey         string
	Platform       string
	PlatformURL    string // Overrides the platform host, used on tests.
	RegionalURL    string // Overrides the regional host, used on tests.
	RequestTimeout time.Duration
}

// LimitsConfiguration holds the outbound rate limit window.
type LimitsConfiguration struct {
	Count  int
	Window time.Duration
}

// DatabaseConfiguration holds the postgres connection values.
type DatabaseConfiguration struct {
	DSN            string
	Database       string
	MigrationsPath string
}

// Redis configuration struct.
type RedisConfiguration struct {
	Host     string
	Port     string
	Password string
}

// BucketConfiguration holds the S3 compatible bucket used for log uploads.
type BucketConfiguration struct {
	Region       string
	Endpoint     string
	AccessKey    string
	AccessSecret string
	LogBucket    string
}

// FetcherConfiguration holds the gRPC addresses of the fetcher.
type FetcherConfiguration struct {
	ListenAddr  string
	Addr        string
	MetricsAddr string
}

// ApiConfiguration holds the values used by the HTTP api.
type ApiConfiguration struct {
	ListenAddr          string
	GamesCatalogPath    string
	LeaderboardCacheTTL time.Duration
	RefreshLockTTL      time.Duration
}

// SchedulerConfiguration holds the stale stats refresh job values.
type SchedulerConfiguration struct {
	Interval   time.Duration
	BatchSize  int
	StaleAfter time.Duration
}

// Config is the full configuration shared by all the processes.
type Config struct {
	Riot      RiotConfiguration
	Limits    LimitsConfiguration
	Database  DatabaseConfiguration
	Redis     RedisConfiguration
	Bucket    BucketConfiguration
	Fetcher   FetcherConfiguration
	Api       ApiConfiguration
	Scheduler SchedulerConfiguration
}

// Load the variables.
// The .env file is only read when not running on docker.
func Load() (*Config, error) {
	if os.Getenv("ENVIRONMENT") != "docker" {
		// Missing .env is fine, the environment can still be set.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Riot: RiotConfiguration{
			ApiKey:         os.Getenv("RIOT_API_KEY"),
			Platform:       getEnv("RIOT_PLATFORM", "EUW1"),
			PlatformURL:    os.Getenv("RIOT_PLATFORM_URL"),
			RegionalURL:    os.Getenv("RIOT_REGIONAL_URL"),
			RequestTimeout: getDuration("RIOT_REQUEST_TIMEOUT", 10*time.Second),
		},
		Limits: LimitsConfiguration{
			Count:  getInt("RIOT_LIMIT_COUNT", 100),
			Window: getDuration("RIOT_LIMIT_WINDOW", 120*time.Second),
		},
		Database: DatabaseConfiguration{
			DSN:            os.Getenv("POSTGRES_DSN"),
			Database:       getEnv("POSTGRES_DB", "tourneyhub"),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "pkg/database/migrations"),
		},
		Redis: RedisConfiguration{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Bucket: BucketConfiguration{
			Region:       os.Getenv("BUCKET_REGION"),
			Endpoint:     os.Getenv("BUCKET_ENDPOINT"),
			AccessKey:    os.Getenv("BUCKET_ACCESS_KEY"),
			AccessSecret: os.Getenv("BUCKET_ACCESS_SECRET"),
			LogBucket:    os.Getenv("BUCKET_LOG_BUCKET"),
		},
		Fetcher: FetcherConfiguration{
			ListenAddr:  getEnv("FETCHER_LISTEN_ADDR", ":50051"),
			Addr:        getEnv("FETCHER_ADDR", "fetcher:50051"),
			MetricsAddr: getEnv("FETCHER_METRICS_ADDR", ":9091"),
		},
		Api: ApiConfiguration{
			ListenAddr:          getEnv("API_LISTEN_ADDR", ":8080"),
			GamesCatalogPath:    getEnv("GAMES_CATALOG_PATH", "config/games.yaml"),
			LeaderboardCacheTTL: getDuration("LEADERBOARD_CACHE_TTL", 30*time.Second),
			RefreshLockTTL:      getDuration("REFRESH_LOCK_TTL", 15*time.Second),
		},
		Scheduler: SchedulerConfiguration{
			Interval:   getDuration("SCHEDULER_INTERVAL", 30*time.Minute),
			BatchSize:  getInt("SCHEDULER_BATCH_SIZE", 20),
			StaleAfter: getDuration("SCHEDULER_STALE_AFTER", 6*time.Hour),
		},
	}

	if cfg.Limits.Count <= 0 || cfg.Limits.Window <= 0 {
		return nil, fmt.Errorf("rate limit count and window must be positive")
	}

	return cfg, nil
}

// Get a value or its fallback.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

// Durations accept Go syntax ("90s") or plain seconds ("90").
func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if seconds, err := strconv.Atoi(raw); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}
