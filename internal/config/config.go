package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	StoreDriver string // postgres / memory

	DatabaseURL      string // あれば最優先
	PostgresHost     string
	PostgresPort     int
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	RedisAddr       string // 空なら商品キャッシュなし
	RedisPassword   string
	RedisDB         int
	ProductCacheTTL time.Duration

	JWTSecret string // 空ならBearer検証なし

	AllowedOrigins []string // CORS
	LogLevel       string   // debug/info/warn/error

	ReconcileInterval time.Duration // 0なら集計の再計算ジョブを動かさない
	BcryptCost        int
}

// Loadは環境変数
func Load() (Config, error) {
	pgPort, err := atoiOr("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	redisDB, err := atoiOr("REDIS_DB", 0)
	if err != nil {
		return Config{}, err
	}
	bcryptCost, err := atoiOr("BCRYPT_COST", 10)
	if err != nil {
		return Config{}, err
	}
	cacheTTL, err := durationOr("PRODUCT_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return Config{}, err
	}
	reconcile, err := durationOr("RECONCILE_INTERVAL", 0)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:        getenv("PORT", "8080"),
		StoreDriver: getenv("STORE_DRIVER", StoreDriverPostgres),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresPort:     pgPort,
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "marketplace"),
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         redisDB,
		ProductCacheTTL: cacheTTL,

		JWTSecret: os.Getenv("JWT_SECRET"),

		AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),

		ReconcileInterval: reconcile,
		BcryptCost:        bcryptCost,
	}

	//値チェック
	switch cfg.StoreDriver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return Config{}, fmt.Errorf("STORE_DRIVER must be %q or %q", StoreDriverPostgres, StoreDriverMemory)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("LOG_LEVEL must be one of debug/info/warn/error")
	}
	if cfg.ReconcileInterval < 0 {
		return Config{}, fmt.Errorf("RECONCILE_INTERVAL must not be negative")
	}

	return cfg, nil
}

// Postgres接続文字列
func (c Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiOr(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func durationOr(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration: %w", key, err)
	}
	return d, nil
}

func splitList(v string) []string {
	out := []string{}
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
