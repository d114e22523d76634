// Package photoprocessor stores uploaded letter photos on disk, bounding
// the original to a sane display size and producing a small thumbnail for
// the wizard gallery.
package photoprocessor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/cartasdeamor/cartas/internal/pkg/env"
)

const (
	maxDisplayEdge = 1600
	thumbEdge      = 400
)

// Result describes the stored files of one processed photo.
type Result struct {
	FilePath  string
	FileName  string
	ThumbPath string
	FileSize  int64
}

// UploadsRoot returns the directory letter photos are stored under.
func UploadsRoot() string {
	return env.GetEnv("UPLOADS_DIR", "./uploads")
}

// PhotoDir returns the storage directory for a letter's photos.
func PhotoDir(letterID string) string {
	return filepath.Join(UploadsRoot(), "letters", "photos", letterID)
}

// Process decodes, bounds and stores a photo for the given letter. The
// source file is read from srcPath (a temp file saved by the controller).
func Process(letterID, srcPath, originalName string) (*Result, error) {
	img, err := imaging.Open(srcPath, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}

	dir := PhotoDir(letterID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create photo dir: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" || ext == ".webp" || ext == ".bmp" || ext == ".gif" {
		// Normalize exotic inputs to JPEG on re-encode.
		ext = ".jpg"
	}
	name := uuid.New().String() + ext
	fullPath := filepath.Join(dir, name)

	bounded := boundToEdge(img.Bounds().Dx(), img.Bounds().Dy(), maxDisplayEdge)
	if bounded {
		img = imaging.Fit(img, maxDisplayEdge, maxDisplayEdge, imaging.Lanczos)
	}
	if err := imaging.Save(img, fullPath, imaging.JPEGQuality(88)); err != nil {
		return nil, fmt.Errorf("save photo: %w", err)
	}

	thumb := imaging.Fit(img, thumbEdge, thumbEdge, imaging.Lanczos)
	thumbName := "thumb_" + name
	thumbPath := filepath.Join(dir, thumbName)
	if err := imaging.Save(thumb, thumbPath, imaging.JPEGQuality(80)); err != nil {
		return nil, fmt.Errorf("save thumbnail: %w", err)
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, err
	}

	return &Result{
		FilePath:  fullPath,
		FileName:  name,
		ThumbPath: thumbPath,
		FileSize:  info.Size(),
	}, nil
}

// Remove deletes the stored files of a photo, ignoring already-missing ones.
func Remove(filePath, thumbPath string) {
	if filePath != "" {
		_ = os.Remove(filePath)
	}
	if thumbPath != "" {
		_ = os.Remove(thumbPath)
	}
}

// boundToEdge reports whether an image of the given dimensions exceeds the
// maximum display edge and needs a resize.
func boundToEdge(width, height, maxEdge int) bool {
	return width > maxEdge || height > maxEdge
}
