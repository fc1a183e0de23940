package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://places-api.foursquare.com", cfg.PlacesBaseURL)
	assert.Equal(t, "2025-06-17", cfg.PlacesAPIVersion)
	assert.Equal(t, "restaurant", cfg.ParticipantIdentity)
	assert.Equal(t, ":8080", cfg.HealthAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.RedirectEnabled)
	assert.Empty(t, cfg.RedirectNumber)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("FOURSQUARE_API_KEY", "fsq-test-key")
	t.Setenv("LIVEKIT_OUTBOUND_TRUNK_ID", "ST_trunk")
	t.Setenv("CALL_REDIRECT_ENABLED", "true")
	t.Setenv("CALL_REDIRECT_NUMBER", "+15550001111")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "fsq-test-key", cfg.PlacesAPIKey)
	assert.Equal(t, "ST_trunk", cfg.OutboundTrunkID)
	assert.True(t, cfg.RedirectEnabled)
	assert.Equal(t, "+15550001111", cfg.RedirectNumber)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMissingOptionalValuesDegradeToEmpty(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.PlacesAPIKey)
	assert.Empty(t, cfg.TelephonyURL)
	assert.Empty(t, cfg.OutboundTrunkID)
}
