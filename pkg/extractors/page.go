package extractors

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"vidplus-go/pkg/flaresolverr"
	"vidplus-go/pkg/httpclient"
	"vidplus-go/pkg/interfaces"
	"vidplus-go/pkg/logging"
	"vidplus-go/pkg/types"
	"vidplus-go/pkg/urlutil"
)

// scriptMediaRe finds quoted HLS/MP4 links inside inline scripts.
var scriptMediaRe = regexp.MustCompile(`["']((?:https?:)?//[^"'\s]+?\.(?:m3u8|mp4)(?:[?#][^"'\s]*)?|/[^"'\s]+?\.(?:m3u8|mp4)(?:[?#][^"'\s]*)?)["']`)

// PageExtractor is the fallback extractor. It scrapes an arbitrary embed
// page for video sources, iframes and media links in inline scripts.
type PageExtractor struct {
	*BaseExtractor
	flare *flaresolverr.Client
	log   *logging.Logger
}

// NewPageExtractor creates the fallback extractor. flare may be nil or
// unconfigured, in which case challenged pages are reported as errors.
func NewPageExtractor(client interfaces.HTTPClient, flare *flaresolverr.Client, log *logging.Logger) *PageExtractor {
	return &PageExtractor{
		BaseExtractor: NewBaseExtractor(client, log),
		flare:         flare,
		log:           log.WithComponent("page-extractor"),
	}
}

// Name returns the extractor name.
func (e *PageExtractor) Name() string {
	return "page"
}

// CanExtract always returns false as this is the fallback.
func (e *PageExtractor) CanExtract(url string) bool {
	return false
}

// Extract fetches the page and returns
// {title, sources: [{src, type}], iframes: [...], scripts: [...]}.
func (e *PageExtractor) Extract(ctx context.Context, urlStr string) (types.Value, error) {
	log := e.log.WithURL(urlStr)

	headers := map[string]string{}
	if ref := refererFor(urlStr); ref != "" {
		headers["Referer"] = ref
	}

	html, err := e.FetchPage(ctx, urlStr, headers)
	if err != nil {
		if !challenged(err) || !e.flare.IsConfigured() {
			return nil, err
		}
		log.Info("page is challenged, retrying through FlareSolverr")
		html, err = e.flare.GetPage(ctx, urlStr)
		if err != nil {
			return nil, err
		}
	}

	page, err := ParsePage(html, urlStr)
	if err != nil {
		return nil, err
	}
	return page, nil
}

// challenged reports whether err is the kind of status Cloudflare answers
// with while a challenge is pending.
func challenged(err error) bool {
	var statusErr *httpclient.StatusError
	if !errors.As(err, &statusErr) {
		return false
	}
	return statusErr.StatusCode == http.StatusForbidden || statusErr.StatusCode == http.StatusServiceUnavailable
}

// ParsePage extracts media candidates from html. Relative links are resolved
// against pageURL. Each list keeps document order without duplicates.
func ParsePage(html, pageURL string) (*types.Mapping, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	resolve := func(u string) string {
		return urlutil.ResolveURL(strings.TrimSpace(u), pageURL)
	}

	sources := types.Sequence{}
	seen := map[string]bool{}
	addSource := func(src, typ string) {
		src = strings.TrimSpace(src)
		if src == "" || strings.HasPrefix(src, "blob:") || strings.HasPrefix(src, "data:") {
			return
		}
		src = resolve(src)
		if seen[src] {
			return
		}
		seen[src] = true
		sources = append(sources, types.NewMapping(
			types.Entry{Key: "src", Value: str(src)},
			types.Entry{Key: "type", Value: str(typ)},
		))
	}

	doc.Find("video[src], source[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		typ, _ := s.Attr("type")
		addSource(src, typ)
	})
	doc.Find(`meta[property="og:video"], meta[property="og:video:url"], meta[property="og:video:secure_url"]`).Each(func(_ int, s *goquery.Selection) {
		content, _ := s.Attr("content")
		typ, _ := s.Siblings().Filter(`meta[property="og:video:type"]`).First().Attr("content")
		addSource(content, typ)
	})

	iframes := types.Sequence{}
	seenFrames := map[string]bool{}
	doc.Find("iframe[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		if strings.TrimSpace(src) == "" || strings.HasPrefix(src, "about:") {
			return
		}
		src = resolve(src)
		if !seenFrames[src] {
			seenFrames[src] = true
			iframes = append(iframes, str(src))
		}
	})

	scripts := types.Sequence{}
	seenScripts := map[string]bool{}
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if _, external := s.Attr("src"); external {
			return
		}
		// JSON-encoded configs escape slashes
		text := strings.ReplaceAll(s.Text(), `\/`, `/`)
		for _, m := range scriptMediaRe.FindAllStringSubmatch(text, -1) {
			link := resolve(m[1])
			if !seenScripts[link] {
				seenScripts[link] = true
				scripts = append(scripts, str(link))
			}
		}
	})

	return types.NewMapping(
		types.Entry{Key: "title", Value: str(strings.TrimSpace(doc.Find("title").First().Text()))},
		types.Entry{Key: "sources", Value: sources},
		types.Entry{Key: "iframes", Value: iframes},
		types.Entry{Key: "scripts", Value: scripts},
	), nil
}

var _ interfaces.Extractor = (*PageExtractor)(nil)
