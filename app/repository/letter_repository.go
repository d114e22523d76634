package repository

import (
	"gorm.io/gorm"

	"github.com/cartasdeamor/cartas/app/models"
)

// letterRepository implements the LetterRepository interface
type letterRepository struct {
	db *gorm.DB
}

// NewLetterRepository creates a new letter repository instance
func NewLetterRepository(db *gorm.DB) LetterRepository {
	return &letterRepository{db: db}
}

// Create creates a new letter in the database
func (r *letterRepository) Create(letter *models.Letter) error {
	return r.db.Create(letter).Error
}

// GetByID retrieves a letter by its UUID
func (r *letterRepository) GetByID(id string) (*models.Letter, error) {
	var letter models.Letter
	err := r.db.Where("id = ?", id).First(&letter).Error
	if err != nil {
		return nil, err
	}
	return &letter, nil
}

// GetWithPhotos retrieves a letter with its photos preloaded in upload order
func (r *letterRepository) GetWithPhotos(id string) (*models.Letter, error) {
	var letter models.Letter
	err := r.db.Preload("Photos", func(db *gorm.DB) *gorm.DB {
		return db.Order("photos.created_at ASC")
	}).Where("id = ?", id).First(&letter).Error
	if err != nil {
		return nil, err
	}
	return &letter, nil
}

// GetByUserID retrieves all letters belonging to a specific user
func (r *letterRepository) GetByUserID(userID uint) ([]models.Letter, error) {
	var letters []models.Letter
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&letters).Error
	return letters, err
}

// GetPaidExamples returns the most recent paid letters for the home showcase
func (r *letterRepository) GetPaidExamples(limit int) ([]models.Letter, error) {
	return models.FindPaidExampleLetters(r.db, limit)
}

// Update updates an existing letter in the database
func (r *letterRepository) Update(letter *models.Letter) error {
	return r.db.Save(letter).Error
}

// Delete deletes a letter; photos and payment records cascade
func (r *letterRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Letter{}).Error
}
