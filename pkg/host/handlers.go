package host

import (
	"encoding/json"
	"net/http"

	"vidplus-go/pkg/appctx"
	"vidplus-go/pkg/logging"
)

// Handlers contains the host callback handlers.
type Handlers struct {
	ctx *appctx.Context
	log *logging.Logger
}

// NewHandlers creates a new host Handlers instance.
func NewHandlers(ctx *appctx.Context) *Handlers {
	return &Handlers{
		ctx: ctx,
		log: ctx.Log.WithComponent("host"),
	}
}

// RegisterRoutes registers the callback and manifest routes.
func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /manifest.json", h.handleManifest)
	mux.HandleFunc("GET /search", h.handleSearch)
	mux.HandleFunc("GET /details", h.handleDetails)
	mux.HandleFunc("GET /episodes", h.handleEpisodes)
	mux.HandleFunc("GET /stream", h.handleStream)
}

func (h *Handlers) handleManifest(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, BuildManifest(h.ctx))
}

// handleSearch answers with a JSON array of {title, image, href}.
func (h *Handlers) handleSearch(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	h.jsonResponse(w, h.ctx.Catalog.Search(r.Context(), keyword))
}

// handleDetails answers with a one-element array of {description, aliases, airdate}.
func (h *Handlers) handleDetails(w http.ResponseWriter, r *http.Request) {
	href := r.URL.Query().Get("url")
	h.jsonResponse(w, h.ctx.Catalog.Details(r.Context(), href))
}

// handleEpisodes answers with a JSON array of {href, number}.
func (h *Handlers) handleEpisodes(w http.ResponseWriter, r *http.Request) {
	href := r.URL.Query().Get("url")
	h.jsonResponse(w, h.ctx.Catalog.Episodes(r.Context(), href))
}

// handleStream answers with a JSON string, or null for an empty url.
func (h *Handlers) handleStream(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	stream := h.ctx.Resolver.Resolve(r.Context(), rawURL)
	if stream != nil {
		logging.FromContext(r.Context()).Debug("stream resolved", "url", rawURL, "stream", *stream)
	}
	h.jsonResponse(w, stream)
}

// jsonResponse writes a 200 JSON response. The callbacks never fail at the
// HTTP level; failures are already folded into the payload.
func (h *Handlers) jsonResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.WithError(err).Error("failed to encode response")
	}
}
