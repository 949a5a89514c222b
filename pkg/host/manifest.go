// Package host serves the catalog callbacks the streaming host application
// calls: search, details, episodes and stream, plus the module manifest it
// installs the source from.
package host

import (
	"strings"

	"vidplus-go/pkg/appctx"
)

// Author is the manifest author block.
type Author struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Manifest describes this source to the host application.
type Manifest struct {
	SourceName    string `json:"sourceName"`
	IconURL       string `json:"iconUrl"`
	Author        Author `json:"author"`
	Version       string `json:"version"`
	Language      string `json:"language"`
	StreamType    string `json:"streamType"`
	Quality       string `json:"quality"`
	BaseURL       string `json:"baseUrl"`
	SearchBaseURL string `json:"searchBaseUrl"`
	ScriptURL     string `json:"scriptUrl"`
	AsyncJS       bool   `json:"asyncJS"`
	Type          string `json:"type"`
	Profile       string `json:"profile"`
}

// BuildManifest fills the manifest from the running configuration.
func BuildManifest(ctx *appctx.Context) Manifest {
	base := strings.TrimSuffix(ctx.BaseURL, "/")
	return Manifest{
		SourceName: "VidPlus",
		IconURL:    "https://player.vidplus.to/favicon.ico",
		Author: Author{
			Name: "vidplus-go",
			Icon: "https://player.vidplus.to/favicon.ico",
		},
		Version:       appctx.Version,
		Language:      "English",
		StreamType:    "HLS",
		Quality:       "1080p",
		BaseURL:       ctx.Config.PlaybackBaseURL,
		SearchBaseURL: base + "/search?keyword=%s",
		ScriptURL:     base + "/manifest.json",
		AsyncJS:       true,
		Type:          "movies/shows",
		Profile:       ctx.Config.ProfileName,
	}
}
