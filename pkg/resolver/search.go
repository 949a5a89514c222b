package resolver

import (
	"regexp"
	"slices"

	"vidplus-go/pkg/types"
)

var mediaPattern = regexp.MustCompile(`(?i)\.(m3u8|mp4)($|\?|#)`)

// priorityKeys are checked, in order, before any other mapping key.
var priorityKeys = []string{"url", "file", "src", "stream", "link"}

// IsMediaURL reports whether s looks like a direct HLS or MP4 link.
func IsMediaURL(s string) bool {
	return mediaPattern.MatchString(s)
}

// FindStream walks v depth first and returns the first media URL found.
// Sequences are searched left to right. Mappings are searched through the
// priority keys first, then through their remaining keys in insertion order.
func FindStream(v types.Value) (string, bool) {
	switch v := v.(type) {
	case types.String:
		if IsMediaURL(string(v)) {
			return string(v), true
		}

	case types.Sequence:
		for _, item := range v {
			if s, ok := FindStream(item); ok {
				return s, true
			}
		}

	case *types.Mapping:
		if v == nil {
			return "", false
		}
		for _, key := range priorityKeys {
			if item, ok := v.Get(key); ok {
				if s, ok := FindStream(item); ok {
					return s, true
				}
			}
		}
		for _, e := range v.Entries() {
			if slices.Contains(priorityKeys, e.Key) {
				continue
			}
			if s, ok := FindStream(e.Value); ok {
				return s, true
			}
		}
	}
	return "", false
}
