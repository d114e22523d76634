package repository

import (
	"gorm.io/gorm"

	"github.com/cartasdeamor/cartas/app/models"
)

// LetterRepository defines the interface for letter-related database operations
type LetterRepository interface {
	Create(letter *models.Letter) error
	GetByID(id string) (*models.Letter, error)
	GetWithPhotos(id string) (*models.Letter, error)
	GetByUserID(userID uint) ([]models.Letter, error)
	GetPaidExamples(limit int) ([]models.Letter, error)
	Update(letter *models.Letter) error
	Delete(id string) error
}

// PhotoRepository defines the interface for photo-related database operations
type PhotoRepository interface {
	Create(photo *models.Photo) error
	GetByID(id uint) (*models.Photo, error)
	GetByLetterID(letterID string) ([]models.Photo, error)
	CountByLetterID(letterID string) (int64, error)
	Update(photo *models.Photo) error
	Delete(id uint) error
}

// PaymentRepository reads payment records for the payment screens; writes
// go through the payments service.
type PaymentRepository interface {
	GetByLetterID(letterID string) ([]models.PaymentRecord, error)
	GetByLetterAndMethod(letterID, method string) (*models.PaymentRecord, error)
}

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	Letter  LetterRepository
	Photo   PhotoRepository
	Payment PaymentRepository
	User    UserRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Letter:  NewLetterRepository(db),
		Photo:   NewPhotoRepository(db),
		Payment: NewPaymentRepository(db),
		User:    NewUserRepository(db),
	}
}
