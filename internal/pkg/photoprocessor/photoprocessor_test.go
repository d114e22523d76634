package photoprocessor

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundToEdge(t *testing.T) {
	t.Parallel()

	assert.False(t, boundToEdge(800, 600, 1600))
	assert.False(t, boundToEdge(1600, 1600, 1600))
	assert.True(t, boundToEdge(1601, 900, 1600))
	assert.True(t, boundToEdge(900, 2400, 1600))
}

func TestProcessStoresPhotoAndThumbnail(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("UPLOADS_DIR", tmp)

	src := filepath.Join(tmp, "src.jpg")
	img := imaging.New(2000, 1200, color.White)
	require.NoError(t, imaging.Save(img, src))

	res, err := Process("letter-1", src, "minha foto.jpg")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(res.FileName, ".jpg"))
	assert.FileExists(t, res.FilePath)
	assert.FileExists(t, res.ThumbPath)
	assert.Greater(t, res.FileSize, int64(0))

	// Bounded to the display edge.
	stored, err := imaging.Open(res.FilePath)
	require.NoError(t, err)
	assert.LessOrEqual(t, stored.Bounds().Dx(), 1600)
	assert.LessOrEqual(t, stored.Bounds().Dy(), 1600)

	thumb, err := imaging.Open(res.ThumbPath)
	require.NoError(t, err)
	assert.LessOrEqual(t, thumb.Bounds().Dx(), 400)
	assert.LessOrEqual(t, thumb.Bounds().Dy(), 400)
}

func TestProcessRejectsNonImage(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("UPLOADS_DIR", tmp)

	src := filepath.Join(tmp, "not-an-image.jpg")
	require.NoError(t, os.WriteFile(src, []byte("definitely not a jpeg"), 0644))

	_, err := Process("letter-1", src, "not-an-image.jpg")
	assert.Error(t, err)
}

func TestRemoveIgnoresMissingFiles(t *testing.T) {
	t.Parallel()

	// Must not panic on already-deleted files.
	Remove("/nonexistent/a.jpg", "/nonexistent/thumb_a.jpg")
	Remove("", "")
}
