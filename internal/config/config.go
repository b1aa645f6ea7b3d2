package config

import (
	"os"
	"strconv"
)

// Config holds application configuration from environment variables.
type Config struct {
	Port          int
	DBPath        string
	StationsPath  string
	AliasesPath   string
	GoogleMapsKey string

	// Routing constants.
	TrainSpeedKmh     float64
	DwellMinutes      float64
	MinSegmentMinutes float64
	TransferMinutes   float64
	ProximityMeters   float64
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:          envInt("MASAR_PORT", 8080),
		DBPath:        envStr("MASAR_DB_PATH", "./masar.db"),
		StationsPath:  envStr("MASAR_STATIONS_PATH", "./data/stations.json"),
		AliasesPath:   envStr("MASAR_ALIASES_PATH", ""),
		GoogleMapsKey: envStr("GOOGLE_MAPS_API_KEY", ""),

		TrainSpeedKmh:     envFloat("MASAR_TRAIN_SPEED_KMH", 40),
		DwellMinutes:      envFloat("MASAR_DWELL_MINUTES", 0.5),
		MinSegmentMinutes: envFloat("MASAR_MIN_SEGMENT_MINUTES", 1.5),
		TransferMinutes:   envFloat("MASAR_TRANSFER_MINUTES", 5),
		ProximityMeters:   envFloat("MASAR_PROXIMITY_METERS", 300),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
