// Package music classifies a pasted song URL into a provider and builds the
// embeddable player URL used on the preview and public letter pages.
package music

import (
	"regexp"
	"strings"

	"github.com/cartasdeamor/cartas/app/models"
)

var (
	youtubeIDPattern = regexp.MustCompile(`(?:v=|youtu\.be/)([\w-]{11})`)
	spotifyPattern   = regexp.MustCompile(`open\.spotify\.com/(track|album|playlist|episode)/([A-Za-z0-9]+)`)
)

// DetectProvider resolves a URL to one of the supported music providers.
func DetectProvider(url string) string {
	if url == "" {
		return models.MusicProviderUnknown
	}
	if strings.Contains(url, "youtube.com") || strings.Contains(url, "youtu.be") {
		return models.MusicProviderYouTube
	}
	if strings.Contains(url, "spotify.com") {
		return models.MusicProviderSpotify
	}
	if strings.Contains(url, "music.apple.com") {
		return models.MusicProviderAppleMusic
	}
	if strings.Contains(url, "deezer.com") {
		return models.MusicProviderDeezer
	}
	if strings.Contains(url, "amazon.") && strings.Contains(url, "music") {
		return models.MusicProviderAmazonMusic
	}
	return models.MusicProviderUnknown
}

// EmbedURL builds the provider-specific embed URL, or "" when the URL
// cannot be embedded.
func EmbedURL(url, provider string) string {
	if url == "" {
		return ""
	}
	switch provider {
	case models.MusicProviderYouTube:
		if m := youtubeIDPattern.FindStringSubmatch(url); m != nil {
			return "https://www.youtube.com/embed/" + m[1] + "?autoplay=1&mute=1&rel=0"
		}
	case models.MusicProviderSpotify:
		base := strings.Replace(url, "open.spotify.com/", "open.spotify.com/embed/", 1)
		sep := "?"
		if strings.Contains(base, "?") {
			sep = "&"
		}
		return base + sep + "utm_source=generator"
	case models.MusicProviderDeezer:
		parts := strings.Split(url, "/")
		return "https://widget.deezer.com/widget/dark/track/" + parts[len(parts)-1]
	case models.MusicProviderAppleMusic:
		return url
	}
	return ""
}

// SpotifyDeepLink converts an open.spotify.com URL into the spotify: URI
// used to hand off playback to the native app.
func SpotifyDeepLink(url string) string {
	if url == "" || !strings.Contains(url, "spotify.com") {
		return ""
	}
	m := spotifyPattern.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return "spotify:" + m[1] + ":" + m[2]
}
