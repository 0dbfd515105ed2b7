package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures process-level configuration. Values come from the
// environment so main stays lean and deployments stay twelve-factor.
type Config struct {
	Addr string

	// DatabaseURL selects PostgreSQL persistence. Empty means in-memory
	// stores, which is what local development and the test harness use.
	DatabaseURL string

	// RedisURL enables the profile read-through cache. Empty disables it.
	RedisURL string

	// KafkaBrokers enables the audit outbox relay. Empty disables it.
	KafkaBrokers []string
	KafkaTopic   string

	// Narrative verification service.
	NarrativeURL     string
	NarrativeAPIKey  string
	NarrativeTimeout time.Duration

	// VerifyInterval schedules in-process verification runs. Zero means
	// runs happen only via the HTTP trigger.
	VerifyInterval time.Duration

	// VerifyConcurrency bounds the per-run worker pool. 1 keeps the
	// strictly sequential behavior.
	VerifyConcurrency int
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	cfg := Config{
		Addr:              envOr("VERIPASS_ADDR", ":8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		KafkaTopic:        envOr("KAFKA_AUDIT_TOPIC", "veripass.audit"),
		NarrativeURL:      os.Getenv("NARRATIVE_VERIFIER_URL"),
		NarrativeAPIKey:   os.Getenv("NARRATIVE_VERIFIER_API_KEY"),
		NarrativeTimeout:  envDurationOr("NARRATIVE_VERIFIER_TIMEOUT", 30*time.Second),
		VerifyInterval:    envDurationOr("VERIFY_INTERVAL", 0),
		VerifyConcurrency: envIntOr("VERIFY_CONCURRENCY", 1),
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	if cfg.VerifyConcurrency < 1 {
		cfg.VerifyConcurrency = 1
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
