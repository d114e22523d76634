package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods offered on the payment screen.
const (
	PaymentMethodPix         = "pix"
	PaymentMethodMercadoPago = "mercado_pago"
	PaymentMethodStripe      = "stripe"
)

// Payment record statuses.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// JSON stores raw provider payloads as a JSON column.
type JSON json.RawMessage

// Value implements the driver.Valuer interface.
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

// Scan implements the sql.Scanner interface.
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = JSON("{}")
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("invalid scan source")
	}
	*j = JSON(bytes)
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (j JSON) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (j *JSON) UnmarshalJSON(data []byte) error {
	*j = JSON(data)
	return nil
}

// PaymentRecord tracks one payment attempt for a letter. The unique index
// on (letter_id, method) backs the idempotent get-or-create used by the
// PIX flow and the simulated confirmation path; gateway checkouts update
// the same row with a fresh provider reference per launch.
type PaymentRecord struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	LetterID          string          `gorm:"type:char(36);not null;index:ux_payment_records_letter_method,unique,priority:1" json:"letter_id"`
	Letter            *Letter         `gorm:"foreignKey:LetterID" json:"-"`
	Method            string          `gorm:"type:varchar(20);not null;index:ux_payment_records_letter_method,unique,priority:2" json:"method"`
	ProviderPaymentID string          `gorm:"type:varchar(120);default:'';index" json:"provider_payment_id"`
	Amount            decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"amount"`
	Status            string          `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	RawPayload        JSON            `gorm:"type:json" json:"raw_payload"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsValidPaymentMethod reports whether m names a supported payment method.
func IsValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodPix, PaymentMethodMercadoPago, PaymentMethodStripe:
		return true
	default:
		return false
	}
}
