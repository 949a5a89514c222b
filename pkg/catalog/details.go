package catalog

import (
	"context"
	"fmt"
	"strconv"

	"vidplus-go/pkg/types"
)

const (
	unknown            = "Unknown"
	noDescription      = "No description available"
	detailsUnavailable = "Error loading description"
)

// Details returns exactly one record describing the title behind href.
func (s *Service) Details(ctx context.Context, href string) []types.DetailRecord {
	record, err := s.details(ctx, href)
	if err != nil {
		s.log.WithError(err).Warn("details failed", "href", href)
		record = types.DetailRecord{
			Description: detailsUnavailable,
			Aliases:     unknown,
			Airdate:     unknown,
		}
	}
	return []types.DetailRecord{record}
}

func (s *Service) details(ctx context.Context, href string) (types.DetailRecord, error) {
	id, err := s.parse(href)
	if err != nil {
		return types.DetailRecord{}, err
	}

	if id.IsMovie() {
		m, err := s.source.Movie(ctx, id.ID)
		if err != nil {
			return types.DetailRecord{}, err
		}
		return types.DetailRecord{
			Description: orDefault(m.Overview, noDescription),
			Aliases:     fmt.Sprintf("Runtime: %s minutes", positiveOrUnknown(m.Runtime)),
			Airdate:     "Released: " + orDefault(m.ReleaseDate, unknown),
		}, nil
	}

	tv, err := s.source.TV(ctx, id.ID)
	if err != nil {
		return types.DetailRecord{}, err
	}
	return types.DetailRecord{
		Description: orDefault(tv.Overview, noDescription),
		Aliases:     "Seasons: " + positiveOrUnknown(tv.NumberOfSeasons),
		Airdate:     "First Air Date: " + orDefault(tv.FirstAirDate, unknown),
	}, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func positiveOrUnknown(n int) string {
	if n <= 0 {
		return unknown
	}
	return strconv.Itoa(n)
}
