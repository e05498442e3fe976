/*
Package configs loads the server and client configuration from environment variables.

A `.env` file in the working directory is read first when present; real environment
variables always win over it.
*/
package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DefaultMapStyleURL is the tile style used when MAP_STYLE_URL is unset.
	DefaultMapStyleURL = "mapbox://styles/mapbox/streets-v9"

	// Default viewport shown until the device position is known.
	DefaultLatitude  = 37.7577
	DefaultLongitude = -122.4376
	DefaultZoom      = 13
)

// AppConfig contains all configuration parameters required by the server.
type AppConfig struct {
	// General Server Settings
	Environment string
	Port        int

	// Security Settings
	AllowedOrigins []string
	JWTSecret      string

	// Rate limit for createPin, in pins per second and burst size.
	CreatePinRate  float64
	CreatePinBurst int

	// S3 Storage Settings (optional; image routes fail with ErrStorageFailed when unset)
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string

	// Database Settings (empty selects the in-memory repository in development)
	DatabaseDSN string

	// Map Settings handed to clients as static configuration
	MapTileToken string
	MapStyleURL  string
}

// IsDevelopment reports whether the server runs in the development environment.
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// loadDotEnv reads .env when it exists. A missing file is not an error.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read .env file: %w", err)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// LoadConfig reads and validates the server configuration.
func LoadConfig() (*AppConfig, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &AppConfig{}

	// --- General Server Settings ---
	cfg.Environment = getenv("ENVIRONMENT", "development")

	port, err := strconv.Atoi(getenv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
	}
	if port < 1024 || port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", port, 1024, 65535)
	}
	cfg.Port = port

	// --- Security Settings ---
	cfg.AllowedOrigins = []string{}
	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("JWT_SECRET environment variable is required in %s environment for security", cfg.Environment)
		}
		cfg.JWTSecret = "your_default_insecure_secret_key_change_me"
	}

	cfg.CreatePinRate, err = strconv.ParseFloat(getenv("CREATE_PIN_RATE", "0.2"), 64)
	if err != nil || cfg.CreatePinRate <= 0 {
		return nil, fmt.Errorf("invalid CREATE_PIN_RATE environment variable: %q", os.Getenv("CREATE_PIN_RATE"))
	}

	cfg.CreatePinBurst, err = strconv.Atoi(getenv("CREATE_PIN_BURST", "5"))
	if err != nil || cfg.CreatePinBurst < 1 {
		return nil, fmt.Errorf("invalid CREATE_PIN_BURST environment variable: %q", os.Getenv("CREATE_PIN_BURST"))
	}

	// --- S3 Storage Settings ---
	cfg.S3BucketName = os.Getenv("S3_BUCKET_NAME")
	cfg.S3Endpoint = os.Getenv("S3_ENDPOINT")
	cfg.S3AccessKeyID = os.Getenv("S3_ACCESS_KEY_ID")
	cfg.S3SecretAccessKey = os.Getenv("S3_SECRET_ACCESS_KEY")

	// --- Database Settings ---
	cfg.DatabaseDSN = os.Getenv("DATABASE_URL")
	if cfg.DatabaseDSN == "" && !cfg.IsDevelopment() {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required in %s environment", cfg.Environment)
	}

	// --- Map Settings ---
	cfg.MapTileToken = os.Getenv("MAP_TILE_TOKEN")
	cfg.MapStyleURL = getenv("MAP_STYLE_URL", DefaultMapStyleURL)

	return cfg, nil
}

// ClientConfig configures the headless map client.
type ClientConfig struct {
	// APIURL is the base URL of the pin server, without the /api suffix.
	APIURL string

	// Token is the identity token issued by the external provider.
	Token string

	// Development toggles the console log format.
	Development bool

	// Position is the fixed device position reported to the map, nil when unknown.
	Position *ClientPosition
}

// ClientPosition is a latitude/longitude pair.
type ClientPosition struct {
	Latitude  float64
	Longitude float64
}

// parsePosition reads a "lat,lng" pair.
func parsePosition(raw string) (*ClientPosition, error) {
	latRaw, lngRaw, ok := strings.Cut(raw, ",")
	if !ok {
		return nil, fmt.Errorf("expected \"lat,lng\", got %q", raw)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latRaw), 64)
	if err != nil || lat < -90 || lat > 90 {
		return nil, fmt.Errorf("invalid latitude %q", latRaw)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngRaw), 64)
	if err != nil || lng < -180 || lng > 180 {
		return nil, fmt.Errorf("invalid longitude %q", lngRaw)
	}
	return &ClientPosition{Latitude: lat, Longitude: lng}, nil
}

// LoadClientConfig reads the client configuration.
func LoadClientConfig() (*ClientConfig, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &ClientConfig{
		APIURL:      strings.TrimRight(getenv("PINMAP_API_URL", "http://localhost:8080"), "/"),
		Token:       os.Getenv("PINMAP_TOKEN"),
		Development: getenv("ENVIRONMENT", "development") == "development",
	}

	if !strings.HasPrefix(cfg.APIURL, "http://") && !strings.HasPrefix(cfg.APIURL, "https://") {
		return nil, fmt.Errorf("PINMAP_API_URL must be an http(s) URL, got %q", cfg.APIURL)
	}

	if raw := strings.TrimSpace(os.Getenv("PINMAP_POSITION")); raw != "" {
		pos, err := parsePosition(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid PINMAP_POSITION environment variable: %w", err)
		}
		cfg.Position = pos
	}

	return cfg, nil
}
