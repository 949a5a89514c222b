// Package interfaces defines the core abstractions for the catalog adapter.
// The metadata source and the extraction capability are collaborators the
// adapters depend on only through these interfaces, which keeps them
// replaceable in tests.
package interfaces

import (
	"context"

	"vidplus-go/pkg/tmdb"
	"vidplus-go/pkg/types"
)

// MetadataSource is the content-discovery API behind the catalog adapters.
type MetadataSource interface {
	// SearchMulti runs a multi-type search for the keyword.
	SearchMulti(ctx context.Context, keyword string) (*tmdb.SearchResponse, error)

	// Movie returns details for a single movie.
	Movie(ctx context.Context, id string) (*tmdb.MovieDetails, error)

	// TV returns show-level details for a series.
	TV(ctx context.Context, id string) (*tmdb.TVDetails, error)

	// Season returns the episode list for one season of a series.
	Season(ctx context.Context, id string, season int) (*tmdb.SeasonDetails, error)
}

// Capability turns a page URL into a raw, loosely structured result that may
// contain a direct media URL. It is optional: a nil Capability means none
// is configured.
type Capability interface {
	Extract(ctx context.Context, url string) (types.Value, error)
}

// Extractor extracts stream data from a specific hosting platform.
//
// To add a new extractor:
// 1. Create a new file in pkg/extractors/
// 2. Implement this interface
// 3. Register it in the ExtractorRegistry
type Extractor interface {
	// Name returns a unique identifier for this extractor.
	Name() string

	// CanExtract returns true if this extractor can handle the given URL.
	CanExtract(url string) bool

	// Extract fetches the page behind url and returns whatever it found.
	Extract(ctx context.Context, url string) (types.Value, error)

	// Close releases any resources held by the extractor.
	Close() error
}

// HTTPClient fetches raw response bodies. Non-2xx answers are errors.
type HTTPClient interface {
	Get(ctx context.Context, url string, headers map[string]string) ([]byte, error)
}
