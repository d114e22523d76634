package qr

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestGenerateBytesProducesPNG(t *testing.T) {
	t.Parallel()

	png, err := GenerateBytes("https://cartas.example/carta/abc?auto_play=1", 128)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestGenerateBytesDefaultSize(t *testing.T) {
	t.Parallel()

	png, err := GenerateBytes("payload", 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestGenerateDataURI(t *testing.T) {
	t.Parallel()

	uri, err := GenerateDataURI("00020126...payload")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
	assert.Greater(t, len(uri), len("data:image/png;base64,"))
}

func TestGenerateBytesLongPayload(t *testing.T) {
	t.Parallel()

	payload := strings.Repeat("00020126580014BR.GOV.BCB.PIX", 8)
	png, err := GenerateBytes(payload, 256)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}
