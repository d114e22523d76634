package models

import (
	"time"

	"gorm.io/gorm"
)

// Photo display modes on the public letter page.
const (
	PhotoModeContain = "contain"
	PhotoModeCover   = "cover"
)

// Photo is an uploaded image attached to a letter. Photos are removed
// together with their letter (cascade on letter_id).
type Photo struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	LetterID    string    `gorm:"type:char(36);not null;index" json:"letter_id"`
	Letter      *Letter   `gorm:"foreignKey:LetterID" json:"-"`
	FilePath    string    `gorm:"type:varchar(255);not null" json:"file_path"`
	FileName    string    `gorm:"type:varchar(255);not null" json:"file_name"`
	FileSize    int64     `gorm:"type:bigint" json:"file_size"`
	ThumbPath   string    `gorm:"type:varchar(255);default:''" json:"thumb_path"`
	DisplayMode string    `gorm:"type:varchar(10);default:'contain'" json:"display_mode"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Photo) BeforeCreate(tx *gorm.DB) error {
	if p.DisplayMode == "" {
		p.DisplayMode = PhotoModeContain
	}
	return nil
}

// SetDisplayMode switches between contain and cover rendering; anything
// else falls back to contain.
func (p *Photo) SetDisplayMode(mode string) {
	if mode != PhotoModeContain && mode != PhotoModeCover {
		mode = PhotoModeContain
	}
	p.DisplayMode = mode
}

// FindPhotoByID loads a photo by primary key.
func FindPhotoByID(db *gorm.DB, id uint) (*Photo, error) {
	var photo Photo
	result := db.First(&photo, id)
	return &photo, result.Error
}

// FindPhotosByLetter returns all photos of a letter in upload order.
func FindPhotosByLetter(db *gorm.DB, letterID string) ([]Photo, error) {
	var photos []Photo
	err := db.Where("letter_id = ?", letterID).Order("created_at ASC").Find(&photos).Error
	return photos, err
}
