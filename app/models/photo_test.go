package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetDisplayMode(t *testing.T) {
	t.Parallel()

	var photo Photo

	photo.SetDisplayMode(PhotoModeCover)
	assert.Equal(t, PhotoModeCover, photo.DisplayMode)

	photo.SetDisplayMode(PhotoModeContain)
	assert.Equal(t, PhotoModeContain, photo.DisplayMode)

	// Unknown values fall back to contain.
	photo.SetDisplayMode("stretch")
	assert.Equal(t, PhotoModeContain, photo.DisplayMode)

	photo.SetDisplayMode("")
	assert.Equal(t, PhotoModeContain, photo.DisplayMode)
}
