package catalog

import (
	"context"
	"strconv"

	"vidplus-go/pkg/tmdb"
	"vidplus-go/pkg/types"
)

// Search runs a multi search and returns at most Profile.SearchLimit movie
// and series entries in source order.
func (s *Service) Search(ctx context.Context, keyword string) []types.SearchEntry {
	log := s.log.With("keyword", keyword)

	resp, err := s.source.SearchMulti(ctx, keyword)
	if err != nil {
		log.WithError(err).Warn("search failed")
		return s.searchFailure()
	}

	entries := make([]types.SearchEntry, 0, s.profile.SearchLimit)
	for _, r := range resp.Results {
		if len(entries) == s.profile.SearchLimit {
			break
		}
		entry, ok := s.searchEntry(r)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}

	log.Debug("search complete", "results", len(resp.Results), "entries", len(entries))
	return entries
}

func (s *Service) searchEntry(r tmdb.SearchResult) (types.SearchEntry, bool) {
	var kind types.Kind
	switch r.MediaType {
	case tmdb.MediaTypeMovie:
		kind = types.KindMovie
	case tmdb.MediaTypeTV:
		kind = types.KindSeries
	default:
		return types.SearchEntry{}, false
	}
	if s.profile.RequirePoster && r.PosterPath == "" {
		return types.SearchEntry{}, false
	}

	var image string
	if r.PosterPath != "" {
		image = s.imageBaseURL + r.PosterPath
	}

	id := types.Identifier{Kind: kind, ID: strconv.Itoa(r.ID)}
	return types.SearchEntry{
		Title: r.DisplayTitle(),
		Image: image,
		Href:  id.Format(s.scheme),
	}, true
}

func (s *Service) searchFailure() []types.SearchEntry {
	if !s.profile.SearchErrorSentinel {
		return []types.SearchEntry{}
	}
	return []types.SearchEntry{{Title: s.profile.SearchErrorTitle}}
}
