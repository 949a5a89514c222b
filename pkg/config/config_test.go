package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("PROFILE", "")
	t.Setenv("PROFILES_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7860, cfg.Port)
	assert.Equal(t, "http://localhost:7860", cfg.BaseURL)
	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDBBaseURL)
	assert.Equal(t, "https://player.vidplus.to/embed", cfg.PlaybackBaseURL)
	assert.Equal(t, "vidplus", cfg.IdentifierScheme)
	assert.True(t, cfg.ExtractorsEnabled)
	assert.False(t, cfg.ExtractorsAllowPrivate)
	assert.Equal(t, ProfileStandard, cfg.ProfileName)
	assert.Equal(t, BuiltinProfiles()[ProfileStandard], cfg.Profile)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("TMDB_API_KEY", "k")
	t.Setenv("TMDB_TIMEOUT", "5")
	t.Setenv("EXTRACTORS_ENABLED", "false")
	t.Setenv("PROFILE", ProfileOptimized)
	t.Setenv("GLOBAL_PROXIES", "")
	t.Setenv("GLOBAL_PROXY", "socks5://127.0.0.1:1080")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "k", cfg.TMDBAPIKey)
	assert.Equal(t, 5*time.Second, cfg.TMDBTimeout)
	assert.False(t, cfg.ExtractorsEnabled)
	assert.Equal(t, 15, cfg.Profile.SearchLimit)
	assert.Equal(t, SeasonFailureAbort, cfg.Profile.SeasonFailure)
	assert.Equal(t, []string{"socks5://127.0.0.1:1080"}, cfg.GlobalProxies)
}

func TestLoad_UnknownProfile(t *testing.T) {
	t.Setenv("PROFILE", "nope")
	t.Setenv("PROFILES_FILE", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ProfilesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	body := `profiles:
  strict:
    search_limit: 5
    require_poster: true
    season_failure: abort
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	t.Setenv("PROFILES_FILE", path)
	t.Setenv("PROFILE", "strict")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Profile.SearchLimit)
	assert.True(t, cfg.Profile.RequirePoster)
	assert.Equal(t, SeasonFailureAbort, cfg.Profile.SeasonFailure)
	// Unset fields inherit the standard profile.
	assert.Equal(t, 20, cfg.Profile.FallbackEpisodes)
	assert.Equal(t, "Movie", cfg.Profile.MovieLabel)
}

func TestLoadProfiles_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad season policy", "profiles:\n  x:\n    season_failure: retry\n"},
		{"zero limit", "profiles:\n  x:\n    search_limit: 0\n"},
		{"bad label", "profiles:\n  x:\n    episode_label: weird\n"},
		{"not yaml", "profiles: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "p.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))

			_, err := LoadProfiles(path)
			assert.Error(t, err)
		})
	}
}

func TestParseTransportRoutes(t *testing.T) {
	routes := parseTransportRoutes("{URL=api.themoviedb.org, PROXY=socks5://p:1080}, {URL=vidplus.to, DIRECT=true, DISABLE_SSL=true}")

	require.Len(t, routes, 2)
	assert.Equal(t, TransportRoute{URLPattern: "api.themoviedb.org", Proxy: "socks5://p:1080"}, routes[0])
	assert.Equal(t, TransportRoute{URLPattern: "vidplus.to", Direct: true, DisableSSL: true}, routes[1])
	assert.Nil(t, parseTransportRoutes(""))
}
