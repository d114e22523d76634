package upload

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"
)

// Limits for wizard step 4 photo uploads.
const (
	MaxPhotosPerLetter = 6
	MaxPhotoSizeBytes  = 5 * 1024 * 1024
)

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	// Note: SVG is intentionally excluded due to XSS risk without sanitization
}

var allowedMime = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/bmp":  true,
}

// ValidatePhotoBySniff checks the filename extension and the first bytes
// of the upload against a whitelist of image types. Returns the detected
// mime or an error.
func ValidatePhotoBySniff(filename string, head []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExt[ext] {
		return "", errors.New("envie apenas fotos JPG, JPEG, PNG, GIF, WEBP ou BMP")
	}

	detected := http.DetectContentType(head)

	// Block obvious scriptable types regardless of extension
	if strings.HasPrefix(detected, "text/html") || strings.HasPrefix(detected, "application/xhtml") {
		return "", errors.New("tipo de arquivo inválido")
	}
	if strings.HasPrefix(detected, "text/xml") || strings.HasPrefix(detected, "application/xml") || detected == "image/svg+xml" {
		return "", errors.New("SVG/XML não são suportados")
	}

	// Some encoders produce octet-stream for valid images; allow by extension
	if detected == "application/octet-stream" && allowedExt[ext] {
		return detected, nil
	}

	if allowedMime[detected] {
		return detected, nil
	}

	return "", errors.New("o tipo de arquivo não é suportado")
}
