package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config aggregates application configuration loaded from environment
// variables. Mongo and Kafka are optional: without them the service runs on
// the in-memory repositories and a log-only event publisher.
type Config struct {
	Env                string
	HTTPAddr           string
	MongoURI           string
	MongoDB            string
	KafkaBrokers       []string
	KafkaTopicPrefix   string
	BaseCurrency       string
	FXFeedURL          string
	FXRefreshInterval  time.Duration
	FXRequestTimeout   time.Duration
	OutboxPollInterval time.Duration
	RetryBackoff       []time.Duration
	ListingFixtures    string
}

// Load parses configuration from the current environment.
func Load() (Config, error) {
	cfg := Config{
		Env:              getEnv("APP_ENV", "dev"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDB:          getEnv("MONGO_DB", "shortlet"),
		KafkaTopicPrefix: getEnv("KAFKA_TOPIC_PREFIX", ""),
		BaseCurrency:     strings.ToUpper(getEnv("BASE_CURRENCY", "NGN")),
		FXFeedURL:        getEnv("FX_FEED_URL", ""),
		ListingFixtures:  getEnv("LISTING_FIXTURES", ""),
	}
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	refresh, err := parseDurationEnv("FX_REFRESH_INTERVAL", 15*time.Minute)
	if err != nil {
		return Config{}, err
	}
	cfg.FXRefreshInterval = refresh

	fxTimeout, err := parseDurationEnv("FX_REQUEST_TIMEOUT", 5*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.FXRequestTimeout = fxTimeout

	poll, err := parseDurationEnv("OUTBOX_POLL_INTERVAL", 500*time.Millisecond)
	if err != nil {
		return Config{}, err
	}
	cfg.OutboxPollInterval = poll

	retryStr := getEnv("RETRY_BACKOFF", "1s,5s,30s")
	for _, raw := range strings.Split(retryStr, ",") {
		val := strings.TrimSpace(raw)
		if val == "" {
			continue
		}
		d, err := time.ParseDuration(val)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RETRY_BACKOFF component %q: %w", raw, err)
		}
		cfg.RetryBackoff = append(cfg.RetryBackoff, d)
	}

	if len(cfg.BaseCurrency) != 3 {
		return Config{}, fmt.Errorf("BASE_CURRENCY must be a three-letter code, got %q", cfg.BaseCurrency)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}
