// Package extractors provides URL extractor implementations.
// Each extractor fetches a hosting page and returns whatever it could pull
// out of it as a types.Value for the resolver to search.
//
// To add a new extractor:
// 1. Create a new file (e.g., myplatform.go)
// 2. Implement the Extractor interface
// 3. Register it in the registry (see internal/app)
package extractors

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"vidplus-go/pkg/httpclient"
	"vidplus-go/pkg/interfaces"
	"vidplus-go/pkg/logging"
	"vidplus-go/pkg/types"
)

// BaseExtractor provides common functionality for extractors.
type BaseExtractor struct {
	client interfaces.HTTPClient
	log    *logging.Logger
}

// NewBaseExtractor creates a new base extractor.
func NewBaseExtractor(client interfaces.HTTPClient, log *logging.Logger) *BaseExtractor {
	return &BaseExtractor{
		client: client,
		log:    log,
	}
}

// Close releases resources.
func (b *BaseExtractor) Close() error {
	return nil
}

// FetchPage GETs urlStr and returns the body as text.
func (b *BaseExtractor) FetchPage(ctx context.Context, urlStr string, headers map[string]string) (string, error) {
	body, err := b.client.Get(ctx, urlStr, headers)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	return string(body), nil
}

// GetDomain extracts the domain from a URL.
func GetDomain(urlStr string) string {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return parsed.Host
}

// refererFor returns the origin of urlStr with a trailing slash.
func refererFor(urlStr string) string {
	if domain := GetDomain(urlStr); domain != "" {
		return "https://" + domain + "/"
	}
	return ""
}

// absoluteURL fixes up protocol-relative links found in page sources.
func absoluteURL(u string) string {
	if strings.HasPrefix(u, "//") {
		return "https:" + u
	}
	return u
}

func str(s string) types.Value {
	return types.String(s)
}

var _ interfaces.HTTPClient = (*httpclient.Client)(nil)
