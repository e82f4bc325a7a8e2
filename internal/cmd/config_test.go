package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", config.Server.BaseURL)
	assert.Equal(t, "mithesh", config.Auction.AdminUsername)
	assert.Zero(t, config.Auction.PollIntervalMS)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  base_url: https://auction.example.com
auction:
  admin_username: auctioneer
  poll_interval_ms: 2000
log_level: debug
`)

	config, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://auction.example.com", config.Server.BaseURL)
	assert.Equal(t, "auctioneer", config.Auction.AdminUsername)
	assert.Equal(t, 2000, config.Auction.PollIntervalMS)
	assert.Equal(t, "debug", config.LogLevel)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  base_url: https://auction.example.com
`)
	t.Setenv("AUCTION_SERVER_URL", "http://override:9090")
	t.Setenv("AUCTION_POLL_INTERVAL_MS", "500")

	config, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://override:9090", config.Server.BaseURL)
	assert.Equal(t, 500, config.Auction.PollIntervalMS)
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "server: [not a mapping")
	_, err := loadConfig(path)
	assert.Error(t, err)
}

func TestChannelURLDerivedFromBaseURL(t *testing.T) {
	cases := []struct {
		name    string
		base    string
		channel string
		want    string
	}{
		{name: "http becomes ws", base: "http://localhost:8080", want: "ws://localhost:8080/ws"},
		{name: "https becomes wss", base: "https://auction.example.com", want: "wss://auction.example.com/ws"},
		{name: "trailing slash collapses", base: "http://localhost:8080/", want: "ws://localhost:8080/ws"},
		{
			name:    "explicit channel URL wins",
			base:    "http://localhost:8080",
			channel: "wss://push.example.com/auction",
			want:    "wss://push.example.com/auction",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var config Config
			config.Server.BaseURL = tc.base
			config.Server.ChannelURL = tc.channel

			got, err := config.channelURL()
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
