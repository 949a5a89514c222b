// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	Port         int
	BaseURL      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Authentication
	APIPassword string

	// Proxy settings
	GlobalProxies   []string
	TransportRoutes []TransportRoute

	// UTLSDomains are hosts that get a browser-like TLS fingerprint
	UTLSDomains []string

	// Metadata source
	TMDBAPIKey       string
	TMDBBaseURL      string
	TMDBImageBaseURL string
	TMDBTimeout      time.Duration

	// Playback host
	PlaybackBaseURL     string
	PlaybackEmbedMarker string
	IdentifierScheme    string

	// Extraction capability
	ExtractorsEnabled bool
	// ExtractorsAllowPrivate lets extraction reach loopback and private hosts
	ExtractorsAllowPrivate bool

	// Variant behaviour
	ProfileName  string
	ProfilesFile string
	Profile      Profile

	// Logging
	LogLevel string
	LogJSON  bool

	// FlareSolverr settings (for Cloudflare bypass)
	FlareSolverrURL     string
	FlareSolverrTimeout time.Duration
}

// TransportRoute defines URL-specific proxy routing.
type TransportRoute struct {
	URLPattern string
	Proxy      string
	DisableSSL bool
	Direct     bool // If true, bypass global proxy and connect directly
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	port := getEnvInt("PORT", 7860)
	cfg := &Config{
		Port:                   port,
		BaseURL:                getEnvString("BASE_URL", fmt.Sprintf("http://localhost:%d", port)),
		ReadTimeout:            getEnvDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:           getEnvDuration("WRITE_TIMEOUT", 120*time.Second),
		IdleTimeout:            getEnvDuration("IDLE_TIMEOUT", 60*time.Second),
		APIPassword:            os.Getenv("API_PASSWORD"),
		GlobalProxies:          getEnvStringSlice("GLOBAL_PROXIES", nil),
		UTLSDomains:            getEnvStringSlice("UTLS_DOMAINS", []string{"vidplus.to"}),
		TMDBAPIKey:             os.Getenv("TMDB_API_KEY"),
		TMDBBaseURL:            getEnvString("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		TMDBImageBaseURL:       getEnvString("TMDB_IMAGE_BASE_URL", "https://image.tmdb.org/t/p/w500"),
		TMDBTimeout:            getEnvDuration("TMDB_TIMEOUT", 15*time.Second),
		PlaybackBaseURL:        getEnvString("PLAYBACK_BASE_URL", "https://player.vidplus.to/embed"),
		PlaybackEmbedMarker:    getEnvString("PLAYBACK_EMBED_MARKER", "player.vidplus.to/embed/"),
		IdentifierScheme:       getEnvString("IDENTIFIER_SCHEME", "vidplus"),
		ExtractorsEnabled:      getEnvBool("EXTRACTORS_ENABLED", true),
		ExtractorsAllowPrivate: getEnvBool("EXTRACTORS_ALLOW_PRIVATE", false),
		ProfileName:            getEnvString("PROFILE", ProfileStandard),
		ProfilesFile:           os.Getenv("PROFILES_FILE"),
		LogLevel:               getEnvString("LOG_LEVEL", "info"),
		LogJSON:                getEnvBool("LOG_JSON", false),
		FlareSolverrURL:        getEnvString("FLARESOLVERR_URL", ""),
		FlareSolverrTimeout:    getEnvDuration("FLARESOLVERR_TIMEOUT", 60*time.Second),
	}

	cfg.TransportRoutes = parseTransportRoutes(os.Getenv("TRANSPORT_ROUTES"))

	// Legacy single proxy support
	if globalProxy := os.Getenv("GLOBAL_PROXY"); globalProxy != "" && len(cfg.GlobalProxies) == 0 {
		cfg.GlobalProxies = []string{globalProxy}
	}

	profiles := BuiltinProfiles()
	if cfg.ProfilesFile != "" {
		custom, err := LoadProfiles(cfg.ProfilesFile)
		if err != nil {
			return nil, err
		}
		for name, p := range custom {
			profiles[name] = p
		}
	}

	p, ok := profiles[cfg.ProfileName]
	if !ok {
		return nil, fmt.Errorf("unknown profile %q", cfg.ProfileName)
	}
	cfg.Profile = p

	return cfg, nil
}

// parseTransportRoutes parses the TRANSPORT_ROUTES env var.
// Format: {URL=pattern, PROXY=url, DISABLE_SSL=true}, {URL=pattern2}
func parseTransportRoutes(s string) []TransportRoute {
	if s == "" {
		return nil
	}

	var routes []TransportRoute
	s = strings.TrimSpace(s)

	parts := strings.Split(s, "}, {")
	for _, part := range parts {
		part = strings.Trim(part, "{} ")
		if part == "" {
			continue
		}

		route := TransportRoute{}
		for _, field := range strings.Split(part, ", ") {
			kv := strings.SplitN(field, "=", 2)
			if len(kv) != 2 {
				continue
			}
			key := strings.TrimSpace(kv[0])
			value := strings.TrimSpace(kv[1])

			switch strings.ToUpper(key) {
			case "URL":
				route.URLPattern = value
			case "PROXY":
				route.Proxy = value
			case "DISABLE_SSL":
				route.DisableSSL = strings.ToLower(value) == "true"
			case "DIRECT":
				route.Direct = strings.ToLower(value) == "true"
			}
		}
		if route.URLPattern != "" {
			routes = append(routes, route)
		}
	}

	return routes
}

func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return strings.ToLower(val) == "true" || val == "1"
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		// Plain integers are seconds
		if secs, err := strconv.Atoi(val); err == nil {
			return time.Duration(secs) * time.Second
		}
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvStringSlice(key string, defaultVal []string) []string {
	if val := os.Getenv(key); val != "" {
		parts := strings.Split(val, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return defaultVal
}
