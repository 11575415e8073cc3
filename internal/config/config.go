package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	App      AppConfig
	JWT      JWTConfig
	Database DatabaseConfig
	Redis    RedisConfig
	GitHub   GitHubConfig
	CORS     CORSConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	SeedDemo    bool
}

type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

type DatabaseConfig struct {
	Driver        string
	MigrationsDir string

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout      time.Duration
	PoolMaxConns        int32
	PoolMinConns        int32
	PoolMaxConnLifetime time.Duration
	PoolMaxConnIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Disabled bool
}

type GitHubConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
	CacheTTL     time.Duration
}

type CORSConfig struct {
	AllowOrigins []string
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

// Load reads the process environment. A .env file in the working directory,
// when present, is loaded first without overriding variables already set.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{}

	var missing, invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}
	optInt := func(key string, def int) int {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}

	optBool := func(key string) bool {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return false
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return false
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     opt("APP_NAME", "devconnector"),
		Environment: opt("APP_ENV", "development"),
		HTTPPort:    opt("HTTP_PORT", opt("PORT", "5000")),
		SeedDemo:    optBool("SEED_DEMO"),
	}

	cfg.JWT = JWTConfig{
		Secret:    req("JWT_SECRET"),
		ExpiresIn: optDuration("JWT_EXPIRES_IN", 100*time.Hour),
	}

	driver := strings.ToLower(opt("DB_DRIVER", DriverPostgres))
	switch driver {
	case DriverPostgres:
		cfg.Database = DatabaseConfig{
			DBHost:     req("DB_HOST"),
			DBPort:     req("DB_PORT"),
			DBName:     req("DB_NAME"),
			DBUser:     req("DB_USER"),
			DBPassword: opt("DB_PASSWORD", ""),
			DBSSLMode:  opt("DB_SSL_MODE", "disable"),
		}
	case DriverMemory:
	default:
		invalid = append(invalid, "DB_DRIVER")
	}
	cfg.Database.Driver = driver
	cfg.Database.MigrationsDir = opt("MIGRATIONS_DIR", "")
	cfg.Database.ConnectTimeout = optDuration("DB_CONNECT_TIMEOUT", 0)
	cfg.Database.PoolMaxConns = int32(optInt("DB_POOL_MAX_CONNS", 0))
	cfg.Database.PoolMinConns = int32(optInt("DB_POOL_MIN_CONNS", 0))
	cfg.Database.PoolMaxConnLifetime = optDuration("DB_POOL_MAX_CONN_LIFETIME", 0)
	cfg.Database.PoolMaxConnIdleTime = optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 0)

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD", ""),
		DB:       optInt("REDIS_DB", 0),
		Disabled: optBool("REDIS_DISABLED"),
	}

	cfg.GitHub = GitHubConfig{
		BaseURL:      strings.TrimRight(opt("GITHUB_API_BASE_URL", "https://api.github.com"), "/"),
		ClientID:     opt("GITHUB_CLIENT_ID", ""),
		ClientSecret: opt("GITHUB_CLIENT_SECRET", ""),
		Timeout:      optDuration("GITHUB_TIMEOUT", 5*time.Second),
		CacheTTL:     optDuration("GITHUB_CACHE_TTL", 10*time.Minute),
	}

	cfg.CORS = CORSConfig{AllowOrigins: splitList(opt("CORS_ALLOW_ORIGINS", "*"))}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
