package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Built-in profile names.
const (
	ProfileStandard  = "standard"
	ProfileOptimized = "optimized"
)

// SeasonFailure policies.
const (
	SeasonFailureContinue = "continue"
	SeasonFailureAbort    = "abort"
)

// Episode label styles.
const (
	LabelSeasonEpisode = "season-episode"
	LabelSeason        = "season"
)

// Profile collects the knobs on which the catalog variants differ.
type Profile struct {
	SearchLimit         int    `yaml:"search_limit"`
	RequirePoster       bool   `yaml:"require_poster"`
	SearchErrorSentinel bool   `yaml:"search_error_sentinel"`
	SearchErrorTitle    string `yaml:"search_error_title"`

	// MaxSeasons caps how many seasons are fetched; 0 means no cap.
	MaxSeasons       int    `yaml:"max_seasons"`
	FallbackEpisodes int    `yaml:"fallback_episodes"`
	SeasonFailure    string `yaml:"season_failure"`
	MovieLabel       string `yaml:"movie_label"`
	EpisodeLabel     string `yaml:"episode_label"`
}

// BuiltinProfiles returns the profiles shipped with the service.
func BuiltinProfiles() map[string]Profile {
	return map[string]Profile{
		ProfileStandard: {
			SearchLimit:         20,
			SearchErrorSentinel: true,
			SearchErrorTitle:    "Search Error",
			MaxSeasons:          10,
			FallbackEpisodes:    20,
			SeasonFailure:       SeasonFailureContinue,
			MovieLabel:          "Movie",
			EpisodeLabel:        LabelSeasonEpisode,
		},
		ProfileOptimized: {
			SearchLimit:         15,
			RequirePoster:       true,
			SearchErrorSentinel: true,
			SearchErrorTitle:    "Error",
			MaxSeasons:          10,
			FallbackEpisodes:    20,
			SeasonFailure:       SeasonFailureAbort,
			MovieLabel:          "1",
			EpisodeLabel:        LabelSeason,
		},
	}
}

// LoadProfiles reads custom profiles from a YAML file:
//
//	profiles:
//	  strict:
//	    search_limit: 10
//	    require_poster: true
//
// Fields left out fall back to the standard profile.
func LoadProfiles(path string) (map[string]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles file: %w", err)
	}

	var doc struct {
		Profiles map[string]yaml.Node `yaml:"profiles"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse profiles file: %w", err)
	}

	out := make(map[string]Profile, len(doc.Profiles))
	for name, node := range doc.Profiles {
		p := BuiltinProfiles()[ProfileStandard]
		if err := node.Decode(&p); err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		out[name] = p
	}
	return out, nil
}

// Validate checks that the profile values are usable.
func (p Profile) Validate() error {
	if p.SearchLimit <= 0 {
		return fmt.Errorf("search_limit must be positive")
	}
	if p.MaxSeasons < 0 {
		return fmt.Errorf("max_seasons must not be negative")
	}
	if p.FallbackEpisodes < 0 {
		return fmt.Errorf("fallback_episodes must not be negative")
	}
	switch p.SeasonFailure {
	case SeasonFailureContinue, SeasonFailureAbort:
	default:
		return fmt.Errorf("unknown season_failure %q", p.SeasonFailure)
	}
	switch p.EpisodeLabel {
	case LabelSeasonEpisode, LabelSeason:
	default:
		return fmt.Errorf("unknown episode_label %q", p.EpisodeLabel)
	}
	return nil
}
