package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	RateRPS     int
	Workers     int
	CacheTTL    time.Duration

	// EnforceChildAccompaniment switches on the unaccompanied-children rule.
	// Off by default to keep parity with the upstream integration.
	EnforceChildAccompaniment bool
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	boolean := func(k string, def bool) bool {
		if v := os.Getenv(k); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				return b
			}
		}
		return def
	}
	c := Config{
		AppEnv:                    env("APP_ENV", "prod"),
		HTTPAddr:                  env("HTTP_ADDR", ":8080"),
		MetricsAddr:               env("METRICS_ADDR", ":9100"),
		RedisAddr:                 env("REDIS_ADDR", ""),
		RedisDB:                   atoi("REDIS_DB", 0),
		RedisPass:                 env("REDIS_PASSWORD", ""),
		RateRPS:                   atoi("RATE_LIMIT_RPS", 50),
		Workers:                   atoi("CHECK_WORKERS", 4),
		CacheTTL:                  time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		EnforceChildAccompaniment: boolean("ENFORCE_CHILD_ACCOMPANIMENT", false),
	}
	if c.RedisAddr == "" {
		log.Warn().Msg("REDIS_ADDR is empty; response caching disabled")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
