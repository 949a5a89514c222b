// Package app provides the main application setup and dependency injection.
package app

import (
	"vidplus-go/pkg/appctx"
	"vidplus-go/pkg/catalog"
	"vidplus-go/pkg/config"
	"vidplus-go/pkg/extractors"
	"vidplus-go/pkg/flaresolverr"
	"vidplus-go/pkg/handlers/api"
	"vidplus-go/pkg/host"
	"vidplus-go/pkg/httpclient"
	"vidplus-go/pkg/interfaces"
	"vidplus-go/pkg/logging"
	"vidplus-go/pkg/registry"
	"vidplus-go/pkg/resolver"
	"vidplus-go/pkg/server"
	"vidplus-go/pkg/tmdb"
)

// App is the main application container.
type App struct {
	Ctx          *appctx.Context
	Server       *server.Server
	HTTPClient   *httpclient.Client
	ExtractorReg *registry.ExtractorRegistry
}

// New creates and initializes the application.
func New() (*App, error) {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	// Initialize logger
	log := logging.New(cfg.LogLevel, cfg.LogJSON, nil)
	log.Info("initializing VidPlus",
		"port", cfg.Port,
		"log_level", cfg.LogLevel,
		"profile", cfg.ProfileName,
	)
	if cfg.TMDBAPIKey == "" {
		log.Warn("TMDB_API_KEY not set, catalog callbacks will return placeholders")
	}

	// Create application context
	ctx := appctx.New(cfg, log)

	// Create HTTP client
	httpClient := httpclient.New(cfg, log)
	ctx.WithHTTPClient(httpClient)

	// Metadata source and catalog adapters
	source := tmdb.NewClient(cfg, httpClient, log)
	ctx.WithCatalog(catalog.New(cfg, source, log))

	// Extraction capability is optional. Keep the interface nil when it is
	// disabled so the resolver sees no capability at all.
	var capability interfaces.Capability
	var extractorReg *registry.ExtractorRegistry
	if cfg.ExtractorsEnabled {
		flareClient := flaresolverr.NewClient(cfg, log)
		if flareClient.IsConfigured() {
			log.Info("FlareSolverr client enabled", "url", cfg.FlareSolverrURL)
		}

		extractorReg = registry.NewExtractorRegistry()
		registerExtractors(extractorReg, httpClient, log, flareClient)
		ctx.WithExtractors(extractorReg)
		capability = extractorReg
	}
	ctx.WithResolver(resolver.New(cfg, log, capability))

	// Create HTTP server
	srv := server.New(cfg, log)

	// Create API handlers
	handlers := api.NewHandlers(ctx)
	handlers.RegisterRoutes(srv.Router())

	// Host callback routes
	hostHandlers := host.NewHandlers(ctx)
	hostHandlers.RegisterRoutes(srv.Router())

	return &App{
		Ctx:          ctx,
		Server:       srv,
		HTTPClient:   httpClient,
		ExtractorReg: extractorReg,
	}, nil
}

// Run starts the application.
func (a *App) Run() error {
	a.Ctx.Log.Info("starting VidPlus server", "port", a.Ctx.Config.Port)
	return a.Server.Start()
}

// Shutdown gracefully shuts down the application.
func (a *App) Shutdown() {
	a.Ctx.Log.Info("shutting down application")

	if a.ExtractorReg != nil {
		if err := a.ExtractorReg.Close(); err != nil {
			a.Ctx.Log.WithError(err).Warn("closing extractors")
		}
	}
}

// registerExtractors registers all URL extractors.
// Add new extractors here by:
// 1. Creating a new extractor in pkg/extractors/
// 2. Registering it below
func registerExtractors(
	reg *registry.ExtractorRegistry,
	client *httpclient.Client,
	log *logging.Logger,
	flareClient *flaresolverr.Client,
) {
	reg.Register(extractors.NewMixdropExtractor(client, log))
	reg.Register(extractors.NewStreamtapeExtractor(client, log))

	// Any other page is scraped for media links
	reg.SetFallback(extractors.NewPageExtractor(client, flareClient, log))

	log.Info("registered extractors", "names", reg.Names())
}
