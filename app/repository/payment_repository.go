package repository

import (
	"gorm.io/gorm"

	"github.com/cartasdeamor/cartas/app/models"
)

// paymentRepository implements the PaymentRepository interface. Writes to
// payment records go through the payments service; the payment screens
// read attempt state through here.
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository instance
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// GetByLetterID retrieves all payment records of a letter
func (r *paymentRepository) GetByLetterID(letterID string) ([]models.PaymentRecord, error) {
	var records []models.PaymentRecord
	err := r.db.Where("letter_id = ?", letterID).
		Order("created_at ASC").Find(&records).Error
	return records, err
}

// GetByLetterAndMethod retrieves the single record for a letter and method
func (r *paymentRepository) GetByLetterAndMethod(letterID, method string) (*models.PaymentRecord, error) {
	var record models.PaymentRecord
	err := r.db.Where("letter_id = ? AND method = ?", letterID, method).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}
