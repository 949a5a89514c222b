// Package catalog adapts TMDB responses into the entry shapes the host
// application renders: search hits, detail records and playable units.
//
// Every public method returns a well-formed value. Failures are logged and
// converted into placeholders, sentinels or empty lists.
package catalog

import (
	"strings"

	"vidplus-go/pkg/config"
	"vidplus-go/pkg/interfaces"
	"vidplus-go/pkg/logging"
	"vidplus-go/pkg/types"
)

// Service implements the search, details and episode callbacks.
type Service struct {
	source          interfaces.MetadataSource
	profile         config.Profile
	scheme          string
	imageBaseURL    string
	playbackBaseURL string
	log             *logging.Logger
}

// New creates a catalog service backed by source.
func New(cfg *config.Config, source interfaces.MetadataSource, log *logging.Logger) *Service {
	scheme := cfg.IdentifierScheme
	if scheme == "" {
		scheme = types.DefaultScheme
	}
	return &Service{
		source:          source,
		profile:         cfg.Profile,
		scheme:          scheme,
		imageBaseURL:    strings.TrimSuffix(cfg.TMDBImageBaseURL, "/"),
		playbackBaseURL: strings.TrimSuffix(cfg.PlaybackBaseURL, "/"),
		log:             log.WithComponent("catalog"),
	}
}

func (s *Service) parse(href string) (types.Identifier, error) {
	return types.ParseIdentifier(s.scheme, strings.TrimSpace(href))
}
