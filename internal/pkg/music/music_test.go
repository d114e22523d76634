package music

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cartasdeamor/cartas/app/models"
)

func TestDetectProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{"empty", "", models.MusicProviderUnknown},
		{"youtube watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", models.MusicProviderYouTube},
		{"youtube short", "https://youtu.be/dQw4w9WgXcQ", models.MusicProviderYouTube},
		{"spotify track", "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC", models.MusicProviderSpotify},
		{"apple music", "https://music.apple.com/br/album/amor/1440857781", models.MusicProviderAppleMusic},
		{"deezer", "https://www.deezer.com/track/3135556", models.MusicProviderDeezer},
		{"amazon music", "https://music.amazon.com.br/albums/B07H8Q4F5V", models.MusicProviderAmazonMusic},
		{"random", "https://example.com/song", models.MusicProviderUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectProvider(tt.url))
		})
	}
}

func TestEmbedURLYouTube(t *testing.T) {
	t.Parallel()

	got := EmbedURL("https://www.youtube.com/watch?v=dQw4w9WgXcQ", models.MusicProviderYouTube)
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1&mute=1&rel=0", got)

	got = EmbedURL("https://youtu.be/dQw4w9WgXcQ", models.MusicProviderYouTube)
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1&mute=1&rel=0", got)

	// no recognizable video id
	assert.Equal(t, "", EmbedURL("https://www.youtube.com/", models.MusicProviderYouTube))
}

func TestEmbedURLSpotify(t *testing.T) {
	t.Parallel()

	got := EmbedURL("https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC", models.MusicProviderSpotify)
	assert.Equal(t, "https://open.spotify.com/embed/track/4uLU6hMCjMI75M1A2tKUQC?utm_source=generator", got)

	// existing query string keeps its separator
	got = EmbedURL("https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC?si=abc", models.MusicProviderSpotify)
	assert.Equal(t, "https://open.spotify.com/embed/track/4uLU6hMCjMI75M1A2tKUQC?si=abc&utm_source=generator", got)
}

func TestEmbedURLDeezerAndApple(t *testing.T) {
	t.Parallel()

	got := EmbedURL("https://www.deezer.com/track/3135556", models.MusicProviderDeezer)
	assert.Equal(t, "https://widget.deezer.com/widget/dark/track/3135556", got)

	appleURL := "https://music.apple.com/br/album/amor/1440857781"
	assert.Equal(t, appleURL, EmbedURL(appleURL, models.MusicProviderAppleMusic))

	assert.Equal(t, "", EmbedURL("https://example.com", models.MusicProviderUnknown))
	assert.Equal(t, "", EmbedURL("", models.MusicProviderYouTube))
}

func TestSpotifyDeepLink(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "spotify:track:4uLU6hMCjMI75M1A2tKUQC",
		SpotifyDeepLink("https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC"))
	assert.Equal(t, "spotify:playlist:37i9dQZF1DX5IDTimEWoTd",
		SpotifyDeepLink("https://open.spotify.com/playlist/37i9dQZF1DX5IDTimEWoTd"))
	assert.Equal(t, "", SpotifyDeepLink("https://youtu.be/dQw4w9WgXcQ"))
	assert.Equal(t, "", SpotifyDeepLink("https://spotify.com/unsupported"))
	assert.Equal(t, "", SpotifyDeepLink(""))
}
