package payments

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cartasdeamor/cartas/app/models"
)

// Repository provides the DB operations used by the payment service.
type Repository interface {
	GetLetter(id string) (*models.Letter, error)
	// SaveLetterPaid persists is_paid and paid_at in a single update.
	SaveLetterPaid(letter *models.Letter) error
	// GetOrCreatePayment returns the record for (letter, method), creating
	// a pending one when missing. The bool reports whether it was created.
	GetOrCreatePayment(letterID, method string, amount decimal.Decimal) (*models.PaymentRecord, bool, error)
	SavePayment(record *models.PaymentRecord) error
	// MarkPaidByProviderRef settles the record carrying the given provider
	// reference and reports how many rows it touched.
	MarkPaidByProviderRef(providerPaymentID string) (int64, error)
	MarkPaidByMethod(letterID, method string) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a payment repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetLetter(id string) (*models.Letter, error) {
	return models.FindLetterByID(r.db, id)
}

func (r *gormRepository) SaveLetterPaid(letter *models.Letter) error {
	return r.db.Model(letter).Updates(map[string]interface{}{
		"is_paid": letter.IsPaid,
		"paid_at": letter.PaidAt,
	}).Error
}

func (r *gormRepository) GetOrCreatePayment(letterID, method string, amount decimal.Decimal) (*models.PaymentRecord, bool, error) {
	record := &models.PaymentRecord{
		LetterID: letterID,
		Method:   method,
		Amount:   amount,
		Status:   models.PaymentStatusPending,
	}

	// The unique index on (letter_id, method) makes concurrent initiations
	// collapse into one row; DoNothing keeps the existing attempt intact.
	res := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "letter_id"},
			{Name: "method"},
		},
		DoNothing: true,
	}).Create(record)
	if res.Error != nil {
		return nil, false, res.Error
	}
	created := res.RowsAffected > 0

	var existing models.PaymentRecord
	err := r.db.Where("letter_id = ? AND method = ?", letterID, method).First(&existing).Error
	if err != nil {
		return nil, false, err
	}
	return &existing, created, nil
}

func (r *gormRepository) SavePayment(record *models.PaymentRecord) error {
	return r.db.Save(record).Error
}

func (r *gormRepository) MarkPaidByProviderRef(providerPaymentID string) (int64, error) {
	if providerPaymentID == "" {
		return 0, nil
	}
	res := r.db.Model(&models.PaymentRecord{}).
		Where("provider_payment_id = ?", providerPaymentID).
		Updates(map[string]interface{}{"status": models.PaymentStatusPaid, "updated_at": time.Now()})
	return res.RowsAffected, res.Error
}

func (r *gormRepository) MarkPaidByMethod(letterID, method string) error {
	return r.db.Model(&models.PaymentRecord{}).
		Where("letter_id = ? AND method = ?", letterID, method).
		Updates(map[string]interface{}{"status": models.PaymentStatusPaid, "updated_at": time.Now()}).Error
}
