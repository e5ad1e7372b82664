package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     int
	LogLevel string

	// Object store
	BucketName         string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	S3Endpoint         string
	DataDir            string // when set, read exports from this directory instead of S3

	// Exports
	PrimaryPrefix   string
	SecondaryPrefix string
	TimeOffset      time.Duration

	// Login gate
	Username      string
	Password      string
	SessionSecret string
	SessionTTL    time.Duration

	// Dashboard
	HerName     string
	HisName     string
	CORSOrigins []string

	NatsURL   string
	NatsToken string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:               envInt("ECHOES_PORT", 8760),
		LogLevel:           envStr("LOG_LEVEL", "info"),
		BucketName:         envStr("BUCKET_NAME", ""),
		AWSRegion:          envStr("AWS_DEFAULT_REGION", "us-east-1"),
		AWSAccessKeyID:     envStr("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: envStr("AWS_SECRET_ACCESS_KEY", ""),
		S3Endpoint:         envStr("S3_ENDPOINT", ""),
		DataDir:            envStr("ECHOES_DATA_DIR", ""),
		PrimaryPrefix:      envStr("ECHOES_PRIMARY_PREFIX", "message"),
		SecondaryPrefix:    envStr("ECHOES_SECONDARY_PREFIX", "X"),
		TimeOffset:         envDuration("ECHOES_TZ_OFFSET", 8*time.Hour),
		Username:           envStr("USERNAME", ""),
		Password:           envStr("PASSWORD", ""),
		SessionSecret:      envStr("ECHOES_SESSION_SECRET", ""),
		SessionTTL:         envDuration("ECHOES_SESSION_TTL", 12*time.Hour),
		HerName:            envStr("HER_NAME", ""),
		HisName:            envStr("HIS_NAME", ""),
		CORSOrigins:        envList("ECHOES_CORS_ORIGINS"),
		NatsURL:            envStr("NATS_URL", ""),
		NatsToken:          envStr("NATS_TOKEN", ""),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// envDuration accepts Go durations ("8h", "-5h30m") or a bare number of hours.
func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if h, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(h * float64(time.Hour))
	}
	return fallback
}

func envList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
