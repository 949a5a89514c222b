package extractors

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"vidplus-go/pkg/interfaces"
	"vidplus-go/pkg/logging"
	"vidplus-go/pkg/types"
)

var (
	packedRe     = regexp.MustCompile(`eval\(function\(p,a,c,k,e,[dr]\).*?\)\)`)
	packerArgsRe = regexp.MustCompile(`\}\('(.+)',(\d+),(\d+),'([^']+)'\.split`)
	wurlRe       = regexp.MustCompile(`wurl\s*=\s*"([^"]+)"`)
	mediaSrcRe   = regexp.MustCompile(`(?:source|src)\s*[=:]\s*["']([^"']+\.(?:mp4|m3u8)[^"']*)["']`)
)

// mixdropHost is the canonical domain mirrors are rewritten to.
const mixdropHost = "mixdrop.co"

// MixdropExtractor extracts streams from Mixdrop.
type MixdropExtractor struct {
	*BaseExtractor
	log *logging.Logger
}

// NewMixdropExtractor creates a new Mixdrop extractor.
func NewMixdropExtractor(client interfaces.HTTPClient, log *logging.Logger) *MixdropExtractor {
	return &MixdropExtractor{
		BaseExtractor: NewBaseExtractor(client, log),
		log:           log.WithComponent("mixdrop-extractor"),
	}
}

// Name returns the extractor name.
func (e *MixdropExtractor) Name() string {
	return "mixdrop"
}

// CanExtract returns true for Mixdrop URLs.
func (e *MixdropExtractor) CanExtract(url string) bool {
	lower := strings.ToLower(url)
	return strings.Contains(lower, "mixdrop.") ||
		strings.Contains(lower, "mixdrp.")
}

// Extract resolves a Mixdrop page. The result is a mapping with the media
// URL under "file" and the referer the CDN expects under "referer".
func (e *MixdropExtractor) Extract(ctx context.Context, urlStr string) (types.Value, error) {
	e.log.Debug("extracting Mixdrop stream", "url", urlStr)

	urlStr = e.normalizeURL(urlStr)
	referer := "https://" + mixdropHost + "/"

	html, err := e.FetchPage(ctx, urlStr, map[string]string{"Referer": referer})
	if err != nil {
		return nil, err
	}

	streamURL, err := e.extractStreamURL(html)
	if err != nil {
		return nil, err
	}

	return types.NewMapping(
		types.Entry{Key: "file", Value: str(streamURL)},
		types.Entry{Key: "referer", Value: str(referer)},
	), nil
}

// normalizeURL rewrites mirror domains and swaps the embed path for the file page.
func (e *MixdropExtractor) normalizeURL(urlStr string) string {
	for _, mirror := range []string{"mixdrp.to", "mixdrp.co", "mixdrop.to", "mixdrop.sx"} {
		urlStr = strings.Replace(urlStr, mirror, mixdropHost, 1)
	}
	return strings.Replace(urlStr, "/e/", "/f/", 1)
}

// extractStreamURL pulls MDCore.wurl out of the (possibly packed) page script.
func (e *MixdropExtractor) extractStreamURL(html string) (string, error) {
	if packed := packedRe.FindString(html); packed != "" {
		unpacked, err := unpack(packed)
		if err != nil {
			e.log.Debug("failed to unpack JavaScript", "error", err)
		} else {
			html = unpacked
		}
	}

	if match := wurlRe.FindStringSubmatch(html); len(match) > 1 {
		return absoluteURL(match[1]), nil
	}
	if match := mediaSrcRe.FindStringSubmatch(html); len(match) > 1 {
		return absoluteURL(match[1]), nil
	}

	return "", fmt.Errorf("stream URL not found in page")
}

// unpack unpacks P.A.C.K.E.R. packed JavaScript.
func unpack(packed string) (string, error) {
	// eval(function(p,a,c,k,e,d){...}('payload',a,c,'keywords'.split('|'),e,d))
	match := packerArgsRe.FindStringSubmatch(packed)
	if len(match) < 5 {
		return "", fmt.Errorf("failed to extract packer params")
	}

	payload := match[1]
	keywords := strings.Split(match[4], "|")

	result := payload
	for i := len(keywords) - 1; i >= 0; i-- {
		if keywords[i] == "" {
			continue
		}
		re := regexp.MustCompile(`\b` + encodeBase36(i) + `\b`)
		result = re.ReplaceAllLiteralString(result, keywords[i])
	}

	return result, nil
}

// encodeBase36 mirrors JavaScript's n.toString(36).
func encodeBase36(n int) string {
	const chars = "0123456789abcdefghijklmnopqrstuvwxyz"
	if n < 36 {
		return string(chars[n])
	}
	return encodeBase36(n/36) + string(chars[n%36])
}

var _ interfaces.Extractor = (*MixdropExtractor)(nil)
