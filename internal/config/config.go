package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Token          string
	RAAPIUsername  string
	RAAPIKey       string
	DatabaseURL    string
	DiscordGuildID string

	PollInterval      time.Duration
	BaseCheckInterval time.Duration
	ChunkSize         int
	ChunkDelay        time.Duration
	HistoryCap        int
	RecentCount       int

	RateLimitInterval time.Duration
	RateLimitRetries  int
	RateLimitDelay    time.Duration

	AwardsChannel string
	MetricsAddr   string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	token := readSecret("discord_token")
	if token == "" {
		token = os.Getenv("DISCORD_TOKEN")
	}
	if token == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is not set (via secret or env var)")
	}

	apiKey := readSecret("ra_api_key")
	if apiKey == "" {
		apiKey = os.Getenv("RA_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("RA_API_KEY is not set (via secret or env var)")
	}

	dbURL := readSecret("database_url")
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set (via secret or env var)")
	}

	cfg := &Config{
		Token:          token,
		RAAPIUsername:  envString("RA_API_USERNAME", ""),
		RAAPIKey:       apiKey,
		DatabaseURL:    dbURL,
		DiscordGuildID: envString("DISCORD_GUILD_ID", ""),

		PollInterval:      envDuration("POLL_INTERVAL", 15*time.Minute),
		BaseCheckInterval: envDuration("BASE_CHECK_INTERVAL", 15*time.Minute),
		ChunkSize:         envInt("CHUNK_SIZE", 3),
		ChunkDelay:        envDuration("CHUNK_DELAY", 2*time.Second),
		HistoryCap:        envInt("HISTORY_CAP", 200),
		RecentCount:       envInt("RECENT_COUNT", 50),

		RateLimitInterval: envDuration("RATE_LIMIT_INTERVAL", time.Second),
		RateLimitRetries:  envInt("RATE_LIMIT_RETRIES", 3),
		RateLimitDelay:    envDuration("RATE_LIMIT_DELAY", 3*time.Second),

		AwardsChannel: envString("AWARDS_CHANNEL", "challenge-awards"),
		MetricsAddr:   envString("METRICS_ADDR", ":9091"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

var secretsDir = "/run/secrets/"

func readSecret(name string) string {
	data, err := os.ReadFile(secretsDir + name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
