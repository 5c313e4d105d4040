package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the planning configuration threaded explicitly through every
// component. Credentials and connection strings come from the
// environment instead (see cmd/addtransit).
type Config struct {
	// DefaultBaseAddress is the fixed home address a day starts and ends
	// at when no stay overrides it. Required.
	DefaultBaseAddress string `yaml:"default_base_address"`
	// DefaultBaseName is the display name used for the default base.
	DefaultBaseName string `yaml:"default_base_name"`

	// TravelTag is the calendar category tag reserved for travel legs
	// (a Google Calendar colorId).
	TravelTag string `yaml:"travel_tag"`
	// HoldTag is the tag marking tentative appointments.
	HoldTag string `yaml:"hold_tag"`

	// CarOnlyPatterns are address substrings that force driving mode.
	// Checked in order; the first case-insensitive match names the
	// diagnostic reason.
	CarOnlyPatterns []string `yaml:"car_only_patterns"`

	// VideoDomains are location substrings that mark a video meeting.
	VideoDomains []string `yaml:"video_domains"`
	// FlightTokens are title substrings indicating a flight.
	FlightTokens []string `yaml:"flight_tokens"`
	// HomeAirportTokens are location substrings naming the traveler's
	// home airports; a matching flight marks its date as a trip date.
	HomeAirportTokens []string `yaml:"home_airport_tokens"`
	// LodgingTokens are title substrings indicating an overnight stay.
	LodgingTokens []string `yaml:"lodging_tokens"`
}

// Normalize fills in missing values with defaults so partially-filled
// config files still behave correctly.
func (c *Config) Normalize() {
	if c.DefaultBaseName == "" {
		c.DefaultBaseName = "Home"
	}
	if c.TravelTag == "" {
		c.TravelTag = "8"
	}
	if c.HoldTag == "" {
		c.HoldTag = "5"
	}
	if c.VideoDomains == nil {
		c.VideoDomains = []string{"zoom.us", "meet.google", "teams.microsoft", "webex"}
	}
	if c.FlightTokens == nil {
		c.FlightTokens = []string{"flight to", "flight from", "delta", "jetblue", "united", "american airlines"}
	}
	if c.HomeAirportTokens == nil {
		c.HomeAirportTokens = []string{"jfk", "lga", "laguardia", "ewr", "newark"}
	}
	if c.LodgingTokens == nil {
		c.LodgingTokens = []string{"hotel", "stay:", "airbnb", "hostel"}
	}
}

// Validate reports configuration errors that must abort the run before
// any leg synthesis.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DefaultBaseAddress) == "" {
		return errors.New("config: default_base_address is required")
	}
	if c.TravelTag == c.HoldTag {
		return fmt.Errorf("config: travel_tag and hold_tag must differ (both %q)", c.TravelTag)
	}
	return nil
}

// Load reads the YAML config at path, normalizes defaults, and validates.
// A missing file is a configuration error: the base address has no
// sensible default.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config: path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: %q not found (copy config.yaml.example and set default_base_address)", path)
		}
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Get returns the value of an environment variable, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
