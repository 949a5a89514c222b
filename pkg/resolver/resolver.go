// Package resolver turns a playback page URL into the URL the host should
// play. Internal embed URLs are normalized; any other URL is offered to the
// optional extraction capability and searched for a direct media link.
package resolver

import (
	"context"
	"fmt"
	"strings"

	"vidplus-go/pkg/config"
	"vidplus-go/pkg/httpclient"
	"vidplus-go/pkg/interfaces"
	"vidplus-go/pkg/logging"
	"vidplus-go/pkg/urlutil"
)

// Resolver implements the stream callback.
type Resolver struct {
	embedMarker  string
	capability   interfaces.Capability
	allowPrivate bool
	log          *logging.Logger
}

// New creates a resolver. capability may be nil, in which case non-embed
// URLs are returned unchanged. Unless EXTRACTORS_ALLOW_PRIVATE is set, the
// capability may only connect to public addresses.
func New(cfg *config.Config, log *logging.Logger, capability interfaces.Capability) *Resolver {
	return &Resolver{
		embedMarker:  cfg.PlaybackEmbedMarker,
		capability:   capability,
		allowPrivate: cfg.ExtractorsAllowPrivate,
		log:          log.WithComponent("resolver"),
	}
}

// Resolve returns the playable URL for rawURL, or nil when rawURL is empty.
// It never fails: when nothing better is found the input comes back as is.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) *string {
	if rawURL == "" {
		return nil
	}

	if r.embedMarker != "" && strings.Contains(rawURL, r.embedMarker) {
		out := urlutil.SetQueryParam(rawURL, "server", "1")
		return &out
	}

	if r.capability != nil {
		if stream, ok := r.extract(ctx, rawURL); ok {
			r.log.Debug("stream extracted", "url", rawURL, "stream", stream)
			return &stream
		}
	}

	return &rawURL
}

func (r *Resolver) extract(ctx context.Context, rawURL string) (stream string, ok bool) {
	log := r.log.WithURL(rawURL)
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("extraction panicked", "panic", fmt.Sprint(rec))
			stream, ok = "", false
		}
	}()

	if !r.allowPrivate {
		ctx = httpclient.PublicOnly(ctx)
	}
	value, err := r.capability.Extract(ctx, rawURL)
	if err != nil {
		log.WithError(err).Warn("extraction failed")
		return "", false
	}

	stream, ok = FindStream(value)
	if !ok {
		log.Debug("no stream candidate in extraction result")
	}
	return stream, ok
}
