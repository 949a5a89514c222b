package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"vidplus-go/pkg/config"
	"vidplus-go/pkg/types"
)

// Episodes expands href into playable units. A movie yields one unit
// without touching the metadata source. A series yields one unit per
// episode of each season, in season order.
func (s *Service) Episodes(ctx context.Context, href string) []types.EpisodeUnit {
	id, err := s.parse(href)
	if err != nil {
		s.log.WithError(err).Warn("episodes failed", "href", href)
		return []types.EpisodeUnit{}
	}
	log := s.log.WithIdentifier(id)

	if id.IsMovie() {
		return []types.EpisodeUnit{{
			Href:   fmt.Sprintf("%s/movie/%s", s.playbackBaseURL, id.ID),
			Number: s.profile.MovieLabel,
		}}
	}

	show, err := s.source.TV(ctx, id.ID)
	if err != nil {
		log.WithError(err).Warn("show lookup failed")
		return []types.EpisodeUnit{}
	}

	seasons := s.seasonCount(show.NumberOfSeasons)
	units := []types.EpisodeUnit{}

	for season := 1; season <= seasons; season++ {
		if ctx.Err() != nil {
			log.Debug("enumeration cancelled", "season", season)
			break
		}

		numbers, err := s.seasonEpisodes(ctx, id.ID, season)
		if err == nil {
			for _, n := range numbers {
				units = append(units, s.episodeUnit(id.ID, season, n))
			}
			continue
		}

		log.WithError(err).Warn("season lookup failed, synthesizing episodes",
			"season", season, "count", s.profile.FallbackEpisodes)
		for n := 1; n <= s.profile.FallbackEpisodes; n++ {
			units = append(units, s.episodeUnit(id.ID, season, n))
		}
		if s.profile.SeasonFailure == config.SeasonFailureAbort {
			break
		}
	}

	log.Debug("episodes enumerated", "seasons", seasons, "units", len(units))
	return units
}

// seasonCeiling bounds the season loop when the profile sets no cap, so a
// bogus number_of_seasons cannot drive unbounded lookups.
const seasonCeiling = 100

var errEmptySeason = errors.New("season has no episodes")

func (s *Service) seasonEpisodes(ctx context.Context, showID string, season int) ([]int, error) {
	details, err := s.source.Season(ctx, showID, season)
	if err != nil {
		return nil, err
	}
	if len(details.Episodes) == 0 {
		return nil, errEmptySeason
	}
	numbers := make([]int, len(details.Episodes))
	for i, ep := range details.Episodes {
		numbers[i] = ep.EpisodeNumber
	}
	return numbers, nil
}

func (s *Service) seasonCount(reported int) int {
	n := reported
	if n <= 0 {
		n = 1
	}
	if s.profile.MaxSeasons > 0 && n > s.profile.MaxSeasons {
		n = s.profile.MaxSeasons
	}
	return min(n, seasonCeiling)
}

func (s *Service) episodeUnit(showID string, season, episode int) types.EpisodeUnit {
	label := strconv.Itoa(season)
	if s.profile.EpisodeLabel == config.LabelSeasonEpisode {
		label = fmt.Sprintf("S%dE%d", season, episode)
	}
	return types.EpisodeUnit{
		Href:   fmt.Sprintf("%s/tv/%s/%d/%d", s.playbackBaseURL, showID, season, episode),
		Number: label,
	}
}
