package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/cartasdeamor/cartas/app/models"
)

// Service owns the payment side of a letter's lifecycle: initiating
// attempts, confirming them (simulated or via webhook) and flipping the
// letter to paid. The paid transition is monotonic; MarkLetterPaid is the
// only code path that touches is_paid and it never sets it back to false.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a payment service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// NewServiceFromDB creates a payment service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// InitiatePix upserts the pending PIX attempt for the letter and stores the
// current payload snapshot. Re-running is a no-op apart from refreshing the
// snapshot.
func (s *Service) InitiatePix(ctx context.Context, letter *models.Letter, payload string) (*models.PaymentRecord, error) {
	_ = ctx
	record, _, err := s.repo.GetOrCreatePayment(letter.ID, models.PaymentMethodPix, letter.Price)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(map[string]string{"pix_payload": payload})
	if err != nil {
		return nil, err
	}
	record.RawPayload = models.JSON(raw)
	if err := s.repo.SavePayment(record); err != nil {
		return nil, err
	}
	return record, nil
}

// PixPayloadSnapshot extracts the payload stored by InitiatePix, or ""
// when the record carries none. The payment page re-displays the snapshot
// so the QR stays stable across reloads.
func PixPayloadSnapshot(record *models.PaymentRecord) string {
	if record == nil || len(record.RawPayload) == 0 {
		return ""
	}
	var snapshot map[string]string
	if err := json.Unmarshal([]byte(record.RawPayload), &snapshot); err != nil {
		return ""
	}
	return snapshot["pix_payload"]
}

// OpenCheckout records a gateway checkout launch. The (letter, method) row
// is upserted and carries the latest provider reference; a repeated click
// replaces the reference instead of piling up stale pending attempts.
func (s *Service) OpenCheckout(ctx context.Context, letter *models.Letter, method string, launch LaunchResult) (*models.PaymentRecord, error) {
	_ = ctx
	if !models.IsValidPaymentMethod(method) {
		return nil, fmt.Errorf("unsupported payment method: %s", method)
	}

	record, _, err := s.repo.GetOrCreatePayment(letter.ID, method, letter.Price)
	if err != nil {
		return nil, err
	}

	// A settled attempt is never demoted back to pending.
	if record.Status != models.PaymentStatusPaid {
		record.Status = models.PaymentStatusPending
		record.ProviderPaymentID = launch.ExternalID
	}
	raw, err := json.Marshal(map[string]interface{}{"simulated": launch.Simulated, "checkout_url": launch.CheckoutURL})
	if err != nil {
		return nil, err
	}
	record.RawPayload = models.JSON(raw)
	if err := s.repo.SavePayment(record); err != nil {
		return nil, err
	}
	return record, nil
}

// ConfirmSimulated settles the (letter, method) attempt through the
// development-mode confirmation path and marks the letter paid.
func (s *Service) ConfirmSimulated(ctx context.Context, letter *models.Letter, method string) (*models.PaymentRecord, error) {
	if !models.IsValidPaymentMethod(method) {
		return nil, fmt.Errorf("unsupported payment method: %s", method)
	}

	record, _, err := s.repo.GetOrCreatePayment(letter.ID, method, letter.Price)
	if err != nil {
		return nil, err
	}

	record.Status = models.PaymentStatusPaid
	if record.ProviderPaymentID == "" {
		record.ProviderPaymentID = fmt.Sprintf("sim-%s-%s", method, letter.ID)
	}
	raw, err := json.Marshal(map[string]interface{}{
		"simulated":    true,
		"confirmed_at": s.now().Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}
	record.RawPayload = models.JSON(raw)

	if err := s.repo.SavePayment(record); err != nil {
		return nil, err
	}
	if err := s.MarkLetterPaid(ctx, letter); err != nil {
		return nil, err
	}
	return record, nil
}

// MarkLetterPaid is the single choke point for the unpaid -> paid
// transition. Calling it on an already-paid letter is a no-op.
func (s *Service) MarkLetterPaid(ctx context.Context, letter *models.Letter) error {
	_ = ctx
	if letter.IsPaid {
		return nil
	}
	now := s.now()
	letter.IsPaid = true
	letter.PaidAt = &now
	return s.repo.SaveLetterPaid(letter)
}

// SettleStripeSession settles the attempt referenced by a completed Stripe
// checkout session. Unknown letters are ignored: the webhook must still be
// acknowledged so the provider stops retrying. A session id superseded by a
// later checkout relaunch matches no row; the (letter, stripe) attempt is
// settled by method instead so a paid letter never keeps a pending record.
func (s *Service) SettleStripeSession(ctx context.Context, letterID, sessionID string) error {
	letter, err := s.repo.GetLetter(letterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	touched, err := s.repo.MarkPaidByProviderRef(sessionID)
	if err != nil {
		return err
	}
	if touched == 0 {
		if err := s.repo.MarkPaidByMethod(letter.ID, models.PaymentMethodStripe); err != nil {
			return err
		}
	}
	return s.MarkLetterPaid(ctx, letter)
}

// SettleMercadoPago settles every mercado_pago attempt of the letter
// referenced by the notification's external reference. Unknown references
// are ignored.
func (s *Service) SettleMercadoPago(ctx context.Context, externalReference string) error {
	letter, err := s.repo.GetLetter(externalReference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if err := s.repo.MarkPaidByMethod(letter.ID, models.PaymentMethodMercadoPago); err != nil {
		return err
	}
	return s.MarkLetterPaid(ctx, letter)
}
