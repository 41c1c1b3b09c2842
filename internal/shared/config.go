package shared

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv             string
	HTTPAddr           string
	MetricsAddr        string
	MapsBase           string
	MapsKey            string
	MapsRPS            int
	SearchRadius       int
	SessionStore       string // memory|redis
	RedisAddr          string
	RedisDB            int
	RedisPass          string
	SessionTTL         time.Duration
	MaxConcurrentTurns int
	SpeechEnabled      bool
	SpeechCmd          string
}

// Load reads envFile (if present) into the environment without overriding
// variables that are already set, then builds the Config.
func Load(envFile string) Config {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Str("file", envFile).Msg("could not read env file")
		}
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:             env("APP_ENV", "prod"),
		HTTPAddr:           env("HTTP_ADDR", ":8080"),
		MetricsAddr:        env("METRICS_ADDR", ""),
		MapsBase:           env("MAPS_BASE_URL", "https://maps.googleapis.com/maps/api"),
		MapsKey:            env("GOOGLE_MAPS_API_KEY", ""),
		MapsRPS:            atoi("MAPS_RPS", 5),
		SearchRadius:       atoi("SEARCH_RADIUS_METERS", 5000),
		SessionStore:       env("SESSION_STORE", "memory"),
		RedisAddr:          env("REDIS_ADDR", "localhost:6379"),
		RedisDB:            atoi("REDIS_DB", 0),
		RedisPass:          env("REDIS_PASSWORD", ""),
		SessionTTL:         time.Duration(atoi("SESSION_TTL_SECONDS", 3600)) * time.Second,
		MaxConcurrentTurns: atoi("MAX_CONCURRENT_TURNS", 16),
		SpeechEnabled:      envBool("SPEECH_ENABLED", false),
		SpeechCmd:          env("SPEECH_CMD", "espeak"),
	}
	if c.MaxConcurrentTurns <= 0 {
		log.Warn().Int("value", c.MaxConcurrentTurns).Msg("MAX_CONCURRENT_TURNS must be positive, using 16")
		c.MaxConcurrentTurns = 16
	}
	if c.MapsKey == "" {
		log.Warn().Msg("GOOGLE_MAPS_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
