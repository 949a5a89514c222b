// Package types defines core domain types used throughout the application.
package types

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidIdentifier is returned when an href does not encode a catalog identifier.
var ErrInvalidIdentifier = errors.New("invalid identifier format")

// Kind identifies the catalog kind of a title.
type Kind string

const (
	KindMovie  Kind = "movie"
	KindSeries Kind = "tv"
)

// DefaultScheme is the custom URL scheme used for identifiers.
const DefaultScheme = "vidplus"

// Identifier is a compact reference to a movie or series in the metadata source.
type Identifier struct {
	Kind Kind
	ID   string
}

// String serializes the identifier with the default scheme.
func (id Identifier) String() string {
	return id.Format(DefaultScheme)
}

// Format serializes the identifier as scheme://kind/id.
func (id Identifier) Format(scheme string) string {
	return fmt.Sprintf("%s://%s/%s", scheme, id.Kind, id.ID)
}

// IsMovie reports whether the identifier refers to a movie.
func (id Identifier) IsMovie() bool {
	return id.Kind == KindMovie
}

var identifierPatterns = map[string]*regexp.Regexp{
	DefaultScheme: compileIdentifierPattern(DefaultScheme),
}

func compileIdentifierPattern(scheme string) *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(scheme) + `://(movie|tv)/(\d+)$`)
}

// ParseIdentifier parses an href of the form scheme://(movie|tv)/(digits).
func ParseIdentifier(scheme, href string) (Identifier, error) {
	re, ok := identifierPatterns[scheme]
	if !ok {
		re = compileIdentifierPattern(scheme)
	}

	match := re.FindStringSubmatch(href)
	if match == nil {
		return Identifier{}, fmt.Errorf("%w: %q", ErrInvalidIdentifier, href)
	}

	return Identifier{Kind: Kind(match[1]), ID: match[2]}, nil
}

// SearchEntry is a single search hit in the shape the host expects.
type SearchEntry struct {
	Title string `json:"title"`
	Image string `json:"image"`
	Href  string `json:"href"`
}

// DetailRecord holds descriptive metadata for a title.
// All fields are always populated.
type DetailRecord struct {
	Description string `json:"description"`
	Aliases     string `json:"aliases"`
	Airdate     string `json:"airdate"`
}

// EpisodeUnit is one playable unit: a movie or a single episode.
type EpisodeUnit struct {
	Href   string `json:"href"`
	Number string `json:"number"`
}
