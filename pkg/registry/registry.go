// Package registry routes extraction requests to the extractor that
// handles a URL's host.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"vidplus-go/pkg/interfaces"
	"vidplus-go/pkg/types"
)

// ErrNoExtractor is returned when no extractor matches and no fallback is set.
var ErrNoExtractor = errors.New("no extractor for URL")

// ExtractorRegistry manages URL extractors. It implements
// interfaces.Capability so the resolver can use it directly.
type ExtractorRegistry struct {
	mu         sync.RWMutex
	extractors []interfaces.Extractor
	byName     map[string]interfaces.Extractor
	fallback   interfaces.Extractor
}

// NewExtractorRegistry creates a new extractor registry.
func NewExtractorRegistry() *ExtractorRegistry {
	return &ExtractorRegistry{
		extractors: make([]interfaces.Extractor, 0),
		byName:     make(map[string]interfaces.Extractor),
	}
}

// Register adds an extractor to the registry.
func (r *ExtractorRegistry) Register(extractor interfaces.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractors = append(r.extractors, extractor)
	r.byName[extractor.Name()] = extractor
}

// SetFallback sets the fallback extractor used when no extractor matches.
func (r *ExtractorRegistry) SetFallback(extractor interfaces.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = extractor
	r.byName[extractor.Name()] = extractor
}

// Get returns the appropriate extractor for the given URL.
func (r *ExtractorRegistry) Get(url string) interfaces.Extractor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.extractors {
		if e.CanExtract(url) {
			return e
		}
	}
	return r.fallback
}

// GetByName returns an extractor by its name, or nil.
func (r *ExtractorRegistry) GetByName(name string) interfaces.Extractor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byName[name]
}

// Names returns the registered extractor names, fallback last.
func (r *ExtractorRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.extractors)+1)
	for _, e := range r.extractors {
		names = append(names, e.Name())
	}
	if r.fallback != nil {
		names = append(names, r.fallback.Name())
	}
	return names
}

// Extract runs the extractor matching url.
func (r *ExtractorRegistry) Extract(ctx context.Context, url string) (types.Value, error) {
	e := r.Get(url)
	if e == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoExtractor, url)
	}
	v, err := e.Extract(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.Name(), err)
	}
	return v, nil
}

// Close closes all registered extractors.
func (r *ExtractorRegistry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for _, e := range r.extractors {
		errs = append(errs, e.Close())
	}
	if r.fallback != nil {
		errs = append(errs, r.fallback.Close())
	}
	return errors.Join(errs...)
}

var _ interfaces.Capability = (*ExtractorRegistry)(nil)
