package repository

import (
	"gorm.io/gorm"

	"github.com/cartasdeamor/cartas/app/models"
)

// photoRepository implements the PhotoRepository interface
type photoRepository struct {
	db *gorm.DB
}

// NewPhotoRepository creates a new photo repository instance
func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db: db}
}

// Create creates a new photo in the database
func (r *photoRepository) Create(photo *models.Photo) error {
	return r.db.Create(photo).Error
}

// GetByID retrieves a photo by its ID
func (r *photoRepository) GetByID(id uint) (*models.Photo, error) {
	return models.FindPhotoByID(r.db, id)
}

// GetByLetterID retrieves all photos of a letter in upload order
func (r *photoRepository) GetByLetterID(letterID string) ([]models.Photo, error) {
	return models.FindPhotosByLetter(r.db, letterID)
}

// CountByLetterID returns the number of photos attached to a letter
func (r *photoRepository) CountByLetterID(letterID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Photo{}).Where("letter_id = ?", letterID).Count(&count).Error
	return count, err
}

// Update updates an existing photo in the database
func (r *photoRepository) Update(photo *models.Photo) error {
	return r.db.Save(photo).Error
}

// Delete deletes a photo by its ID
func (r *photoRepository) Delete(id uint) error {
	return r.db.Delete(&models.Photo{}, id).Error
}
