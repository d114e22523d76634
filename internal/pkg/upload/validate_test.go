package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngHead  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	jpegHead = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46, 0x49, 0x46}
)

func TestValidatePhotoBySniffAccepted(t *testing.T) {
	t.Parallel()

	mime, err := ValidatePhotoBySniff("amor.png", pngHead)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)

	mime, err = ValidatePhotoBySniff("nos-dois.JPG", jpegHead)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)
}

func TestValidatePhotoBySniffBadExtension(t *testing.T) {
	t.Parallel()

	_, err := ValidatePhotoBySniff("malware.exe", pngHead)
	assert.Error(t, err)

	_, err = ValidatePhotoBySniff("vector.svg", []byte("<svg xmlns=\"http://www.w3.org/2000/svg\"/>"))
	assert.Error(t, err)
}

func TestValidatePhotoBySniffHTMLContent(t *testing.T) {
	t.Parallel()

	_, err := ValidatePhotoBySniff("page.png", []byte("<!DOCTYPE html><html><body>x</body></html>"))
	assert.Error(t, err)
}

func TestValidatePhotoBySniffOctetStreamFallsBackToExtension(t *testing.T) {
	t.Parallel()

	// Opaque binary head: DetectContentType yields octet-stream, the
	// whitelisted extension lets it through.
	head := []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}
	mime, err := ValidatePhotoBySniff("foto.jpg", head)
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", mime)
}
