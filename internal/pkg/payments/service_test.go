package payments

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cartasdeamor/cartas/app/models"
)

type fakeRepository struct {
	letters         map[string]*models.Letter
	records         map[string]*models.PaymentRecord
	letterPaidSaves int
	nextRecordID    uint
}

func newFakeRepository(letters ...*models.Letter) *fakeRepository {
	r := &fakeRepository{
		letters: make(map[string]*models.Letter),
		records: make(map[string]*models.PaymentRecord),
	}
	for _, l := range letters {
		r.letters[l.ID] = l
	}
	return r
}

func recordKey(letterID, method string) string {
	return letterID + "|" + method
}

func (r *fakeRepository) GetLetter(id string) (*models.Letter, error) {
	if l, ok := r.letters[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepository) SaveLetterPaid(letter *models.Letter) error {
	r.letterPaidSaves++
	r.letters[letter.ID] = letter
	return nil
}

func (r *fakeRepository) GetOrCreatePayment(letterID, method string, amount decimal.Decimal) (*models.PaymentRecord, bool, error) {
	if rec, ok := r.records[recordKey(letterID, method)]; ok {
		return rec, false, nil
	}
	r.nextRecordID++
	rec := &models.PaymentRecord{
		ID:       r.nextRecordID,
		LetterID: letterID,
		Method:   method,
		Amount:   amount,
		Status:   models.PaymentStatusPending,
	}
	r.records[recordKey(letterID, method)] = rec
	return rec, true, nil
}

func (r *fakeRepository) SavePayment(record *models.PaymentRecord) error {
	r.records[recordKey(record.LetterID, record.Method)] = record
	return nil
}

func (r *fakeRepository) MarkPaidByProviderRef(providerPaymentID string) (int64, error) {
	var touched int64
	for _, rec := range r.records {
		if rec.ProviderPaymentID == providerPaymentID {
			rec.Status = models.PaymentStatusPaid
			touched++
		}
	}
	return touched, nil
}

func (r *fakeRepository) MarkPaidByMethod(letterID, method string) error {
	if rec, ok := r.records[recordKey(letterID, method)]; ok {
		rec.Status = models.PaymentStatusPaid
	}
	return nil
}

func newTestLetter() *models.Letter {
	return &models.Letter{
		ID:          "11111111-2222-3333-4444-555555555555",
		BelovedName: "Maria",
		Price:       decimal.RequireFromString("3.99"),
	}
}

func newTestService(repo *fakeRepository) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2025, 2, 14, 20, 0, 0, 0, time.UTC) }
	return svc
}

func TestConfirmSimulatedMarksLetterPaid(t *testing.T) {
	t.Parallel()

	letter := newTestLetter()
	repo := newFakeRepository(letter)
	svc := newTestService(repo)

	record, err := svc.ConfirmSimulated(context.Background(), letter, models.PaymentMethodPix)
	require.NoError(t, err)

	assert.True(t, letter.IsPaid)
	require.NotNil(t, letter.PaidAt)
	assert.Equal(t, models.PaymentStatusPaid, record.Status)
	assert.Equal(t, "sim-pix-"+letter.ID, record.ProviderPaymentID)
	assert.Len(t, repo.records, 1)
}

func TestConfirmSimulatedRejectsUnknownMethod(t *testing.T) {
	t.Parallel()

	letter := newTestLetter()
	svc := newTestService(newFakeRepository(letter))

	_, err := svc.ConfirmSimulated(context.Background(), letter, "boleto")
	assert.Error(t, err)
	assert.False(t, letter.IsPaid)
}

func TestMarkLetterPaidIdempotent(t *testing.T) {
	t.Parallel()

	letter := newTestLetter()
	repo := newFakeRepository(letter)
	svc := newTestService(repo)

	require.NoError(t, svc.MarkLetterPaid(context.Background(), letter))
	firstPaidAt := *letter.PaidAt

	require.NoError(t, svc.MarkLetterPaid(context.Background(), letter))

	assert.True(t, letter.IsPaid)
	assert.Equal(t, firstPaidAt, *letter.PaidAt)
	assert.Equal(t, 1, repo.letterPaidSaves, "second call must not write again")
}

func TestMarkLetterPaidSetsBothFieldsTogether(t *testing.T) {
	t.Parallel()

	letter := newTestLetter()
	svc := newTestService(newFakeRepository(letter))

	assert.False(t, letter.IsPaid)
	assert.Nil(t, letter.PaidAt)

	require.NoError(t, svc.MarkLetterPaid(context.Background(), letter))

	assert.True(t, letter.IsPaid)
	assert.NotNil(t, letter.PaidAt)
}

func TestInitiatePixIdempotent(t *testing.T) {
	t.Parallel()

	letter := newTestLetter()
	repo := newFakeRepository(letter)
	svc := newTestService(repo)

	first, err := svc.InitiatePix(context.Background(), letter, "payload-1")
	require.NoError(t, err)

	second, err := svc.InitiatePix(context.Background(), letter, "payload-2")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "repeated initiation must reuse the record")
	assert.Len(t, repo.records, 1)
	assert.Equal(t, models.PaymentStatusPending, second.Status)

	var snapshot map[string]string
	require.NoError(t, json.Unmarshal([]byte(second.RawPayload), &snapshot))
	assert.Equal(t, "payload-2", snapshot["pix_payload"])
}

func TestOpenCheckoutRefreshesProviderReference(t *testing.T) {
	t.Parallel()

	letter := newTestLetter()
	repo := newFakeRepository(letter)
	svc := newTestService(repo)

	first, err := svc.OpenCheckout(context.Background(), letter, models.PaymentMethodStripe,
		LaunchResult{CheckoutURL: "https://stripe.test/a", ExternalID: "cs_1"})
	require.NoError(t, err)
	assert.Equal(t, "cs_1", first.ProviderPaymentID)

	second, err := svc.OpenCheckout(context.Background(), letter, models.PaymentMethodStripe,
		LaunchResult{CheckoutURL: "https://stripe.test/b", ExternalID: "cs_2"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "cs_2", second.ProviderPaymentID)
	assert.Len(t, repo.records, 1)
}

func TestOpenCheckoutNeverDemotesPaidAttempt(t *testing.T) {
	t.Parallel()

	letter := newTestLetter()
	repo := newFakeRepository(letter)
	svc := newTestService(repo)

	_, err := svc.ConfirmSimulated(context.Background(), letter, models.PaymentMethodStripe)
	require.NoError(t, err)

	record, err := svc.OpenCheckout(context.Background(), letter, models.PaymentMethodStripe,
		LaunchResult{CheckoutURL: "https://stripe.test/x", ExternalID: "cs_late"})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusPaid, record.Status)
	assert.NotEqual(t, "cs_late", record.ProviderPaymentID)
}

func TestSettleMercadoPago(t *testing.T) {
	t.Parallel()

	letter := newTestLetter()
	repo := newFakeRepository(letter)
	svc := newTestService(repo)

	_, err := svc.OpenCheckout(context.Background(), letter, models.PaymentMethodMercadoPago,
		LaunchResult{CheckoutURL: "https://mp.test/init", ExternalID: "pref_1"})
	require.NoError(t, err)

	require.NoError(t, svc.SettleMercadoPago(context.Background(), letter.ID))

	assert.True(t, letter.IsPaid)
	rec := repo.records[recordKey(letter.ID, models.PaymentMethodMercadoPago)]
	require.NotNil(t, rec)
	assert.Equal(t, models.PaymentStatusPaid, rec.Status)

	// A repeated notification for the settled letter is accepted silently.
	require.NoError(t, svc.SettleMercadoPago(context.Background(), letter.ID))
	assert.Equal(t, 1, repo.letterPaidSaves)
}

func TestSettleMercadoPagoUnknownLetter(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository()
	svc := newTestService(repo)

	require.NoError(t, svc.SettleMercadoPago(context.Background(), "missing-id"))
	assert.Empty(t, repo.records)
	assert.Zero(t, repo.letterPaidSaves)
}

func TestSettleStripeSession(t *testing.T) {
	t.Parallel()

	letter := newTestLetter()
	repo := newFakeRepository(letter)
	svc := newTestService(repo)

	_, err := svc.OpenCheckout(context.Background(), letter, models.PaymentMethodStripe,
		LaunchResult{CheckoutURL: "https://stripe.test/a", ExternalID: "cs_42"})
	require.NoError(t, err)

	require.NoError(t, svc.SettleStripeSession(context.Background(), letter.ID, "cs_42"))

	assert.True(t, letter.IsPaid)
	rec := repo.records[recordKey(letter.ID, models.PaymentMethodStripe)]
	require.NotNil(t, rec)
	assert.Equal(t, models.PaymentStatusPaid, rec.Status)
}

func TestSettleStripeSessionWithStaleReference(t *testing.T) {
	t.Parallel()

	letter := newTestLetter()
	repo := newFakeRepository(letter)
	svc := newTestService(repo)

	_, err := svc.OpenCheckout(context.Background(), letter, models.PaymentMethodStripe,
		LaunchResult{CheckoutURL: "https://stripe.test/a", ExternalID: "cs_old"})
	require.NoError(t, err)
	_, err = svc.OpenCheckout(context.Background(), letter, models.PaymentMethodStripe,
		LaunchResult{CheckoutURL: "https://stripe.test/b", ExternalID: "cs_new"})
	require.NoError(t, err)

	// The webhook for the first session arrives after the relaunch replaced
	// its reference. The (letter, stripe) attempt must still settle.
	require.NoError(t, svc.SettleStripeSession(context.Background(), letter.ID, "cs_old"))

	assert.True(t, letter.IsPaid)
	rec := repo.records[recordKey(letter.ID, models.PaymentMethodStripe)]
	require.NotNil(t, rec)
	assert.Equal(t, models.PaymentStatusPaid, rec.Status)
}

func TestPixPayloadSnapshot(t *testing.T) {
	t.Parallel()

	letter := newTestLetter()
	svc := newTestService(newFakeRepository(letter))

	record, err := svc.InitiatePix(context.Background(), letter, "payload-abc")
	require.NoError(t, err)
	assert.Equal(t, "payload-abc", PixPayloadSnapshot(record))

	assert.Empty(t, PixPayloadSnapshot(nil))
	assert.Empty(t, PixPayloadSnapshot(&models.PaymentRecord{}))
	assert.Empty(t, PixPayloadSnapshot(&models.PaymentRecord{RawPayload: models.JSON(`not json`)}))
}

func TestSettleStripeSessionUnknownLetter(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository()
	svc := newTestService(repo)

	require.NoError(t, svc.SettleStripeSession(context.Background(), "missing-id", "cs_1"))
	assert.Zero(t, repo.letterPaidSaves)
}

func TestFirstMethodToSettleWins(t *testing.T) {
	t.Parallel()

	letter := newTestLetter()
	repo := newFakeRepository(letter)
	svc := newTestService(repo)

	_, err := svc.ConfirmSimulated(context.Background(), letter, models.PaymentMethodPix)
	require.NoError(t, err)
	firstPaidAt := *letter.PaidAt

	// A later confirmation through another method cannot un-pay or re-stamp.
	require.NoError(t, svc.SettleMercadoPago(context.Background(), letter.ID))

	assert.True(t, letter.IsPaid)
	assert.Equal(t, firstPaidAt, *letter.PaidAt)
	assert.Equal(t, 1, repo.letterPaidSaves)
}
