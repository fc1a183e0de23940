package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds the process-wide settings for the agent. It is built once at
// startup and passed explicitly to the components that need it; nothing reads
// the environment after Load returns.
type Config struct {
	// Places service
	PlacesAPIKey     string
	PlacesBaseURL    string
	PlacesAPIVersion string

	// Telephony provider
	TelephonyURL       string
	TelephonyAPIKey    string
	TelephonyAPISecret string
	OutboundTrunkID    string

	// When RedirectEnabled is set and RedirectNumber is non-empty, every
	// outbound transfer dials RedirectNumber instead of the requested number.
	RedirectEnabled bool
	RedirectNumber  string

	ParticipantIdentity string

	HealthAddr string
	LogLevel   string
}

const defaultPlacesBaseURL = "https://places-api.foursquare.com"

// The places API requires the version header to be pinned.
const defaultPlacesAPIVersion = "2025-06-17"

// Load reads configuration from a .env file (if present) and the process
// environment. Missing optional values fall back to defaults or empty strings.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "failed to load .env")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("FOURSQUARE_BASE_URL", defaultPlacesBaseURL)
	v.SetDefault("FOURSQUARE_API_VERSION", defaultPlacesAPIVersion)
	v.SetDefault("PARTICIPANT_IDENTITY", "restaurant")
	v.SetDefault("HEALTH_ADDR", ":8080")
	v.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		PlacesAPIKey:     v.GetString("FOURSQUARE_API_KEY"),
		PlacesBaseURL:    v.GetString("FOURSQUARE_BASE_URL"),
		PlacesAPIVersion: v.GetString("FOURSQUARE_API_VERSION"),

		TelephonyURL:       v.GetString("LIVEKIT_URL"),
		TelephonyAPIKey:    v.GetString("LIVEKIT_API_KEY"),
		TelephonyAPISecret: v.GetString("LIVEKIT_API_SECRET"),
		OutboundTrunkID:    v.GetString("LIVEKIT_OUTBOUND_TRUNK_ID"),

		RedirectEnabled: v.GetBool("CALL_REDIRECT_ENABLED"),
		RedirectNumber:  v.GetString("CALL_REDIRECT_NUMBER"),

		ParticipantIdentity: v.GetString("PARTICIPANT_IDENTITY"),

		HealthAddr: v.GetString("HEALTH_ADDR"),
		LogLevel:   v.GetString("LOG_LEVEL"),
	}

	return cfg, nil
}
