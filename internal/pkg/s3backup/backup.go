package s3backup

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

// BackupLetterPhoto copies a stored photo to the configured S3 bucket.
// It is a no-op when backup is disabled, so callers can invoke it
// unconditionally (usually from a goroutine after the upload response).
func BackupLetterPhoto(localFilePath, photoUUID string) {
	cfg, err := LoadConfig()
	if err != nil {
		log.Errorf("[S3Backup] invalid configuration: %v", err)
		return
	}
	if !cfg.IsEnabled() {
		return
	}

	client, err := NewClient(cfg)
	if err != nil {
		log.Errorf("[S3Backup] client setup failed: %v", err)
		return
	}

	now := time.Now()
	ext := strings.ToLower(filepath.Ext(localFilePath))
	key := cfg.GetObjectKey(photoUUID, ext, now.Year(), int(now.Month()))

	if exists, err := client.ObjectExists(key); err == nil && exists {
		return
	}

	if _, err := client.UploadFile(localFilePath, key); err != nil {
		log.Errorf("[S3Backup] upload failed for %s: %v", localFilePath, err)
	}
}
