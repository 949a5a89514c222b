// Package api provides the operator-facing HTTP handlers: the index page,
// server info and the raw extractor endpoint.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"vidplus-go/pkg/appctx"
	"vidplus-go/pkg/httpclient"
	"vidplus-go/pkg/logging"
	"vidplus-go/pkg/middleware"
	"vidplus-go/pkg/registry"
	"vidplus-go/pkg/types"
)

// Handlers contains all API handlers.
type Handlers struct {
	ctx *appctx.Context
	log *logging.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(ctx *appctx.Context) *Handlers {
	return &Handlers{
		ctx: ctx,
		log: ctx.Log.WithComponent("api"),
	}
}

// RegisterRoutes registers all API routes.
func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	// Public routes
	mux.HandleFunc("GET /", h.handleIndex)
	mux.HandleFunc("GET /api/info", h.handleAPIInfo)
	mux.HandleFunc("GET /favicon.ico", h.handleFavicon)

	// Extractor routes
	mux.HandleFunc("GET /extractor", h.requireAuth(h.handleExtractor))
}

// handleIndex serves the landing page.
func (h *Handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>VidPlus</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: #0f0f0f;
            color: #ffffff;
            max-width: 900px;
            margin: 0 auto;
            padding: 40px 20px;
        }
        .endpoint {
            padding: 12px 16px;
            margin-bottom: 12px;
            background: #242424;
            border-radius: 8px;
            font-family: 'SF Mono', Monaco, monospace;
            font-size: 0.85rem;
        }
        .desc { color: #a0a0a0; }
        a { color: #3b82f6; }
    </style>
</head>
<body>
    <h1>VidPlus</h1>
    <p>Profile: %s</p>
    <div class="endpoint">GET /search?keyword=... <span class="desc">Search movies and shows</span></div>
    <div class="endpoint">GET /details?url=... <span class="desc">Description, aliases and air date</span></div>
    <div class="endpoint">GET /episodes?url=... <span class="desc">Playable units</span></div>
    <div class="endpoint">GET /stream?url=... <span class="desc">Resolve a playback URL</span></div>
    <div class="endpoint">GET /manifest.json <span class="desc">Source manifest</span></div>
    <div class="endpoint">GET /extractor?url=... <span class="desc">Raw extraction result</span></div>
    <footer><a href="/api/info">API Status</a> · Version %s</footer>
</body>
</html>`, h.ctx.Config.ProfileName, appctx.Version)
}

// handleAPIInfo returns server status as JSON.
func (h *Handlers) handleAPIInfo(w http.ResponseWriter, r *http.Request) {
	var extractors []string
	if h.ctx.Extractors != nil {
		extractors = h.ctx.Extractors.Names()
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"status":          "running",
		"version":         appctx.Version,
		"profile":         h.ctx.Config.ProfileName,
		"extractors":      extractors,
		"tmdb_configured": h.ctx.Config.TMDBAPIKey != "",
	})
}

// handleFavicon serves the favicon.
func (h *Handlers) handleFavicon(w http.ResponseWriter, r *http.Request) {
	http.NotFound(w, r)
}

// handleExtractor runs the extraction capability on url and returns its raw
// result. An extractor query parameter bypasses host routing.
func (h *Handlers) handleExtractor(w http.ResponseWriter, r *http.Request) {
	urlStr := r.URL.Query().Get("url")
	if urlStr == "" {
		urlStr = r.URL.Query().Get("d")
	}
	if urlStr == "" {
		h.writeError(w, http.StatusBadRequest, "url parameter required")
		return
	}
	if h.ctx.Extractors == nil {
		h.writeError(w, http.StatusServiceUnavailable, "extractors disabled")
		return
	}

	h.log.Debug("extract request", "url", urlStr)

	ctx := r.Context()
	if !h.ctx.Config.ExtractorsAllowPrivate {
		ctx = httpclient.PublicOnly(ctx)
	}

	var result types.Value
	var err error
	if name := r.URL.Query().Get("extractor"); name != "" {
		e := h.ctx.Extractors.GetByName(name)
		if e == nil {
			h.writeError(w, http.StatusNotFound, "unknown extractor: "+name)
			return
		}
		result, err = e.Extract(ctx, urlStr)
	} else {
		result, err = h.ctx.Extractors.Extract(ctx, urlStr)
	}
	if err != nil {
		h.log.Error("extraction failed", "url", urlStr, "error", err)
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, registry.ErrNoExtractor):
			status = http.StatusNotFound
		case errors.Is(err, httpclient.ErrPrivateAddress):
			status = http.StatusForbidden
		}
		h.writeError(w, status, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// Helper methods

func (h *Handlers) checkPassword(r *http.Request) bool {
	return middleware.CheckPassword(h.ctx.Config.APIPassword, r)
}

func (h *Handlers) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.checkPassword(r) {
			h.log.Warn("unauthorized request", "path", r.URL.Path)
			h.writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r)
	}
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.WithError(err).Error("failed to encode response")
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
