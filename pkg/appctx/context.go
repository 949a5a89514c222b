// Package appctx provides the application context that holds all runtime dependencies.
package appctx

import (
	"vidplus-go/pkg/catalog"
	"vidplus-go/pkg/config"
	"vidplus-go/pkg/httpclient"
	"vidplus-go/pkg/logging"
	"vidplus-go/pkg/registry"
	"vidplus-go/pkg/resolver"
)

// Version is reported by the manifest and the info endpoint.
const Version = "1.0.0"

// Context holds all application runtime dependencies.
// Pass this single struct to components instead of individual parameters.
type Context struct {
	Config     *config.Config
	Log        *logging.Logger
	HTTPClient *httpclient.Client
	Catalog    *catalog.Service
	Resolver   *resolver.Resolver

	// Extractors is nil when EXTRACTORS_ENABLED is false.
	Extractors *registry.ExtractorRegistry
	BaseURL    string
}

// New creates a new application context.
func New(cfg *config.Config, log *logging.Logger) *Context {
	return &Context{
		Config:  cfg,
		Log:     log,
		BaseURL: cfg.BaseURL,
	}
}

// WithHTTPClient sets the shared HTTP client.
func (c *Context) WithHTTPClient(client *httpclient.Client) *Context {
	c.HTTPClient = client
	return c
}

// WithCatalog sets the catalog service.
func (c *Context) WithCatalog(svc *catalog.Service) *Context {
	c.Catalog = svc
	return c
}

// WithResolver sets the stream resolver.
func (c *Context) WithResolver(r *resolver.Resolver) *Context {
	c.Resolver = r
	return c
}

// WithExtractors sets the extractor registry.
func (c *Context) WithExtractors(reg *registry.ExtractorRegistry) *Context {
	c.Extractors = reg
	return c
}
