package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/metoffice-forecast/internal/units"
	"github.com/i474232898/metoffice-forecast/internal/weather"
)

const defaultBaseURL = "https://" + weather.DataHubHost

type AppConfig struct {
	// DataHubAPIKey is sent as the apikey header on every request.
	DataHubAPIKey  string
	DataHubBaseURL string
	HTTPTimeout    time.Duration

	// DataHub limits free plans to a few hundred calls a day.
	RateLimitRPS   float64
	RateLimitBurst int

	// FetchInterval controls how often watched locations are fetched.
	FetchInterval    time.Duration
	WatchLocations   []Location
	WatchGranularity weather.Granularity

	GeocoderAPIKey string
	LogLevel       string
	Port           string
}

// Location is a validated point to watch.
type Location struct {
	Latitude  units.Latitude
	Longitude units.Longitude
}

func (l Location) Key() string {
	return fmt.Sprintf("%v,%v", l.Latitude.Degrees(), l.Longitude.Degrees())
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	return fromEnv()
}

func fromEnv() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.DataHubAPIKey = os.Getenv("MET_OFFICE_DATAHUB_KEY")
	cfg.DataHubBaseURL = getenvDefault("DATAHUB_BASE_URL", defaultBaseURL)
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")
	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")
	cfg.Port = getenvDefault("PORT", "8080")

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.RateLimitRPS, err = getenvFloat("DATAHUB_RATE_LIMIT_RPS", 0.1)
	if err != nil {
		return nil, fmt.Errorf("invalid DATAHUB_RATE_LIMIT_RPS: %w", err)
	}
	cfg.RateLimitBurst = getenvInt("DATAHUB_RATE_LIMIT_BURST", 3)

	// Scheduler interval: default one hour, the DataHub model update cadence.
	interval, err := time.ParseDuration(getenvDefault("FETCH_INTERVAL", "60m"))
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_INTERVAL: %w", err)
	}
	cfg.FetchInterval = interval

	g, err := weather.ParseGranularity(getenvDefault("WATCH_GRANULARITY", weather.GranularityThreeHourly.String()))
	if err != nil {
		return nil, fmt.Errorf("invalid WATCH_GRANULARITY: %w", err)
	}
	cfg.WatchGranularity = g

	locs, err := ParseLocations(os.Getenv("WATCH_LOCATIONS"))
	if err != nil {
		return nil, fmt.Errorf("invalid WATCH_LOCATIONS: %w", err)
	}
	cfg.WatchLocations = locs

	return cfg, nil
}

// ParseLocations parses "lat,lon;lat,lon". An empty string gives no locations.
func ParseLocations(s string) ([]Location, error) {
	var locs []Location
	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.Split(pair, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("location %q must be lat,lon", pair)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("location %q: %w", pair, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("location %q: %w", pair, err)
		}
		latitude, err := units.NewLatitude(lat)
		if err != nil {
			return nil, err
		}
		longitude, err := units.NewLongitude(lon)
		if err != nil {
			return nil, err
		}
		locs = append(locs, Location{Latitude: latitude, Longitude: longitude})
	}
	return locs, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	return strconv.ParseFloat(v, 64)
}
