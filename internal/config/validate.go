package config

import (
	"errors"
	"fmt"
	"time"
)

// Validation constants define acceptable bounds for configuration values
const (
	// Token validation
	minTokenLength = 50 // Discord tokens are typically 50+ characters

	// Poll interval validation
	minPollInterval = 1 * time.Minute // Minimum to avoid excessive API calls
	maxPollInterval = 24 * time.Hour  // Maximum reasonable interval

	// Chunk validation
	minChunkSize = 1
	maxChunkSize = 25 // Prevent bursts the RA API cannot absorb

	// History cap validation
	minHistoryCap = 10

	// Channel name validation
	maxChannelNameLength = 100 // Discord limit
)

// Validate checks if the configuration values are valid and within acceptable
// ranges. It returns all validation errors at once using errors.Join for
// better user experience.
func (c *Config) Validate() error {
	var errs []error

	if err := c.validateToken(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateIntervals(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateChunking(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateHistoryCap(); err != nil {
		errs = append(errs, err)
	}

	if err := validateChannelName("AWARDS_CHANNEL", c.AwardsChannel); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %w", errors.Join(errs...))
	}

	return nil
}

// validateToken ensures the Discord token is present and has valid length
func (c *Config) validateToken() error {
	if c.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required but not set")
	}

	if len(c.Token) < minTokenLength {
		return fmt.Errorf(
			"DISCORD_TOKEN appears invalid (too short: %d chars, expected %d+)",
			len(c.Token), minTokenLength,
		)
	}

	return nil
}

// validateIntervals ensures the polling cadence is within acceptable bounds
func (c *Config) validateIntervals() error {
	var errs []error

	if c.PollInterval < minPollInterval || c.PollInterval > maxPollInterval {
		errs = append(errs, fmt.Errorf(
			"POLL_INTERVAL must be between %v and %v, got %v (hint: recommended range is 5m-15m)",
			minPollInterval, maxPollInterval, c.PollInterval,
		))
	}

	if c.BaseCheckInterval < minPollInterval || c.BaseCheckInterval > maxPollInterval {
		errs = append(errs, fmt.Errorf(
			"BASE_CHECK_INTERVAL must be between %v and %v, got %v",
			minPollInterval, maxPollInterval, c.BaseCheckInterval,
		))
	}

	if c.RateLimitInterval <= 0 {
		errs = append(errs, fmt.Errorf(
			"RATE_LIMIT_INTERVAL must be positive, got %v", c.RateLimitInterval,
		))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// validateChunking ensures batch sizing cannot overwhelm the external API
func (c *Config) validateChunking() error {
	if c.ChunkSize < minChunkSize || c.ChunkSize > maxChunkSize {
		return fmt.Errorf(
			"CHUNK_SIZE must be between %d and %d, got %d",
			minChunkSize, maxChunkSize, c.ChunkSize,
		)
	}

	if c.ChunkDelay < 0 {
		return fmt.Errorf("CHUNK_DELAY cannot be negative, got %v", c.ChunkDelay)
	}

	return nil
}

// validateHistoryCap ensures the announcement history keeps enough entries to
// dedup across restarts
func (c *Config) validateHistoryCap() error {
	if c.HistoryCap < minHistoryCap {
		return fmt.Errorf(
			"HISTORY_CAP must be at least %d, got %d",
			minHistoryCap, c.HistoryCap,
		)
	}

	return nil
}

// validateChannelName validates a single channel name
func validateChannelName(fieldName, channelName string) error {
	if channelName == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}

	if len(channelName) > maxChannelNameLength {
		return fmt.Errorf(
			"%s must be at most %d characters (Discord limit), got %d",
			fieldName, maxChannelNameLength, len(channelName),
		)
	}

	return nil
}
