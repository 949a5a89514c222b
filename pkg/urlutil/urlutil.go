// Package urlutil provides URL manipulation utilities that preserve original encoding.
package urlutil

import (
	"net/url"
	"regexp"
	"strings"
)

// SetQueryParam returns rawURL with key set to value, replacing any existing
// occurrences. Well-formed absolute URLs are edited structurally, keeping the
// order and encoding of the other parameters. Anything else is patched as
// text so a malformed URL still comes back with the parameter set.
func SetQueryParam(rawURL, key, value string) string {
	if out, ok := setQueryParamParsed(rawURL, key, value); ok {
		return out
	}
	return setQueryParamText(rawURL, key, value)
}

func setQueryParamParsed(rawURL, key, value string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}
	if _, err := url.ParseQuery(u.RawQuery); err != nil {
		return "", false
	}

	pair := url.QueryEscape(key) + "=" + url.QueryEscape(value)
	var parts []string
	found := false
	if u.RawQuery != "" {
		for _, part := range strings.Split(u.RawQuery, "&") {
			name, _, _ := strings.Cut(part, "=")
			if unescaped, err := url.QueryUnescape(name); err == nil && unescaped == key {
				if !found {
					parts = append(parts, pair)
					found = true
				}
				continue
			}
			parts = append(parts, part)
		}
	}
	if !found {
		parts = append(parts, pair)
	}

	u.RawQuery = strings.Join(parts, "&")
	u.ForceQuery = false
	return u.String(), true
}

func setQueryParamText(rawURL, key, value string) string {
	pair := key + "=" + value
	if !strings.Contains(rawURL, "?") {
		return rawURL + "?" + pair
	}

	re := regexp.MustCompile(`([?&])` + regexp.QuoteMeta(key) + `=[^&]*`)
	if loc := re.FindStringSubmatchIndex(rawURL); loc != nil {
		// loc[2]:loc[3] is the leading separator
		return rawURL[:loc[3]] + pair + rawURL[loc[1]:]
	}
	return rawURL + "&" + pair
}

// ResolveURL resolves a potentially relative URL against a base URL.
// Uses string manipulation to preserve original URL encoding.
// Go's url.ResolveReference re-encodes special characters which breaks
// URLs for CDNs that use parentheses, brackets, or other special chars.
func ResolveURL(urlStr string, baseURL string) string {
	if strings.HasPrefix(urlStr, "http://") || strings.HasPrefix(urlStr, "https://") {
		return urlStr
	}

	// Protocol-relative, common in embed iframes
	if strings.HasPrefix(urlStr, "//") {
		scheme := "https"
		if parsed, err := url.Parse(baseURL); err == nil && parsed.Scheme != "" {
			scheme = parsed.Scheme
		}
		return scheme + ":" + urlStr
	}

	base := baseURL
	if idx := strings.IndexAny(base, "?#"); idx > 0 {
		base = base[:idx]
	}
	if lastSlash := strings.LastIndex(base, "/"); lastSlash > 0 {
		base = base[:lastSlash+1]
	}

	if strings.HasPrefix(urlStr, "/") {
		return GetSchemeHost(baseURL) + urlStr
	}

	if strings.HasPrefix(urlStr, "../") {
		result := base
		remaining := urlStr
		for strings.HasPrefix(remaining, "../") {
			remaining = remaining[3:]
			result = strings.TrimSuffix(result, "/")
			if lastSlash := strings.LastIndex(result, "/"); lastSlash > 0 {
				result = result[:lastSlash+1]
			}
		}
		return result + remaining
	}

	return base + strings.TrimPrefix(urlStr, "./")
}

// GetSchemeHost extracts scheme://host from a URL.
func GetSchemeHost(urlStr string) string {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return parsed.Scheme + "://" + parsed.Host
}
