package shared

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	SourcesFile string

	RedisAddr string
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	Workers      int
	FetchTimeout time.Duration
	ScrapeRPS    int

	// Collector sweep window
	CollectLeadDays   int
	CollectStayNights int
	CollectGuests     int
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
	return Config{
		AppEnv:            env("APP_ENV", "prod"),
		HTTPAddr:          env("HTTP_ADDR", ":5000"),
		MetricsAddr:       env("METRICS_ADDR", ""),
		SourcesFile:       env("SOURCES_FILE", ""),
		RedisAddr:         env("REDIS_ADDR", "localhost:6379"),
		RedisDB:           atoi("REDIS_DB", 0),
		RedisPass:         env("REDIS_PASSWORD", ""),
		CacheTTL:          time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		Workers:           atoi("SCRAPE_WORKERS", 6),
		FetchTimeout:      time.Duration(atoi("FETCH_TIMEOUT_SECONDS", 10)) * time.Second,
		ScrapeRPS:         atoi("SCRAPE_RPS", 2),
		CollectLeadDays:   atoi("COLLECT_LEAD_DAYS", 14),
		CollectStayNights: atoi("COLLECT_STAY_NIGHTS", 1),
		CollectGuests:     atoi("COLLECT_GUESTS", 2),
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
