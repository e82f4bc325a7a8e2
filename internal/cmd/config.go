package main

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the client configuration, loaded from an optional YAML file
// with environment-variable overrides.
type Config struct {
	Server struct {
		BaseURL    string `yaml:"base_url"`
		ChannelURL string `yaml:"channel_url"`
	} `yaml:"server"`
	Auction struct {
		AdminUsername  string `yaml:"admin_username"`
		PollIntervalMS int    `yaml:"poll_interval_ms"`
	} `yaml:"auction"`
	LogLevel string `yaml:"log_level"`
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func loadConfig(path string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Config file is optional; env vars and defaults cover everything.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	config.Server.BaseURL = getEnv("AUCTION_SERVER_URL", config.Server.BaseURL)
	if config.Server.BaseURL == "" {
		config.Server.BaseURL = "http://localhost:8080"
	}
	config.Server.ChannelURL = getEnv("AUCTION_CHANNEL_URL", config.Server.ChannelURL)
	config.Auction.AdminUsername = getEnv("AUCTION_ADMIN_USERNAME", config.Auction.AdminUsername)
	if config.Auction.AdminUsername == "" {
		config.Auction.AdminUsername = "mithesh"
	}
	config.Auction.PollIntervalMS = getEnvAsInt("AUCTION_POLL_INTERVAL_MS", config.Auction.PollIntervalMS)
	config.LogLevel = getEnv("LOG_LEVEL", config.LogLevel)

	return &config, nil
}

// channelURL returns the websocket endpoint, derived from the base URL
// when not configured explicitly.
func (c *Config) channelURL() (string, error) {
	if c.Server.ChannelURL != "" {
		return c.Server.ChannelURL, nil
	}

	u, err := url.Parse(c.Server.BaseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse server base URL: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	return u.String(), nil
}

// pollInterval returns the configured poll interval, or zero to use the
// poller's default.
func (c *Config) pollInterval() time.Duration {
	return time.Duration(c.Auction.PollIntervalMS) * time.Millisecond
}
