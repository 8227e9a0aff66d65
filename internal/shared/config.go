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
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	GroqBase    string
	GroqKey     string
	LLMModel    string
	LLMTemp     float64
	LLMTokens   int
	LLMRPS      int
	Workers     int
	ExportDir   string
	CacheTTL    time.Duration
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
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/reviews?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisDB:     atoi("REDIS_DB", 0),
		RedisPass:   env("REDIS_PASSWORD", ""),
		GroqBase:    env("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqKey:     env("GROQ_API_KEY", ""),
		LLMModel:    env("LLM_MODEL", "mixtral-8x7b-32768"),
		LLMTemp:     atof("LLM_TEMPERATURE", 0.7),
		LLMTokens:   atoi("LLM_MAX_TOKENS", 500),
		LLMRPS:      atoi("LLM_RPS", 2),
		Workers:     atoi("ANALYZE_WORKERS", 8),
		ExportDir:   env("EXPORT_DIR", "exports"),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if c.GroqKey == "" {
		log.Warn().Msg("GROQ_API_KEY is empty; analyses will run on pattern fallback only")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
