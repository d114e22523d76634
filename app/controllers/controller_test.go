package controllers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	return fiber.New()
}

func TestHandleHealth(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	app.Get("/health", HandleHealth)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "ok", payload["status"])
	assert.NotEmpty(t, payload["time"])
}

func TestWizardStepGuardRedirectsToStart(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	app.Get("/criar/etapa/:step", HandleWizardStep)

	// No letter in the session: later steps bounce to step 1.
	resp, err := app.Test(httptest.NewRequest("GET", "/criar/etapa/3", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/criar/etapa/1", resp.Header.Get("Location"))
}

func TestWizardStepRejectsBogusStep(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	app.Get("/criar/etapa/:step", HandleWizardStep)

	for _, step := range []string{"0", "7", "abc"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/criar/etapa/"+step, nil))
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/criar/etapa/1", resp.Header.Get("Location"))
	}
}

func TestPaymentMethodLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "PIX", paymentMethodLabel("pix"))
	assert.Equal(t, "Mercado Pago", paymentMethodLabel("mercado_pago"))
	assert.Equal(t, "cartão (Stripe)", paymentMethodLabel("stripe"))
	assert.Equal(t, "boleto", paymentMethodLabel("boleto"))
}

func TestSimulatePaymentDisabledInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "prod")

	app := newTestApp()
	app.Get("/pagamento/:id/simular/:method", HandleSimulatePayment)

	resp, err := app.Test(httptest.NewRequest("GET", "/pagamento/some-id/simular/pix", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
