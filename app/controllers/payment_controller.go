package controllers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"
	"gorm.io/gorm"

	"github.com/cartasdeamor/cartas/app/models"
	"github.com/cartasdeamor/cartas/app/repository"
	"github.com/cartasdeamor/cartas/internal/pkg/database"
	"github.com/cartasdeamor/cartas/internal/pkg/env"
	"github.com/cartasdeamor/cartas/internal/pkg/payments"
	"github.com/cartasdeamor/cartas/internal/pkg/pix"
	"github.com/cartasdeamor/cartas/internal/pkg/qr"
)

// publicBaseURL is the externally visible origin used for gateway return
// URLs and the shareable letter link.
func publicBaseURL(c *fiber.Ctx) string {
	if base := strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", ""), "/"); base != "" {
		return base
	}
	return c.Protocol() + "://" + c.Hostname()
}

func publicLetterURL(c *fiber.Ctx, letterID string) string {
	return publicBaseURL(c) + "/carta/" + letterID
}

// paymentMethodLabel translates a payment method into the label shown to
// the buyer.
func paymentMethodLabel(method string) string {
	switch method {
	case models.PaymentMethodPix:
		return "PIX"
	case models.PaymentMethodMercadoPago:
		return "Mercado Pago"
	case models.PaymentMethodStripe:
		return "cartão (Stripe)"
	default:
		return method
	}
}

// settledMethodLabel finds the attempt that settled the letter.
func settledMethodLabel(letterID string) string {
	records, err := repository.GetGlobalRepositories().Payment.GetByLetterID(letterID)
	if err != nil {
		return ""
	}
	for _, record := range records {
		if record.Status == models.PaymentStatusPaid {
			return paymentMethodLabel(record.Method)
		}
	}
	return ""
}

func buildPixPayload(letter *models.Letter) string {
	return pix.BuildPayload(
		env.GetEnv("PIX_KEY", "11948587422"),
		letter.Price,
		"Carta "+letter.ID,
	)
}

// HandlePaymentPage renders the payment screen for a letter. Unpaid
// letters get the PIX QR plus the gateway buttons; paid letters get the
// shareable link and its QR instead.
func HandlePaymentPage(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	letter, err := repos.Letter.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("pages/not_found", viewData(c, "Carta não encontrada", nil), "layouts/main")
	}

	viewURL := publicLetterURL(c, letter.ID)

	if letter.IsPaid {
		linkQR, err := qr.GenerateDataURI(viewURL)
		if err != nil {
			log.Errorf("[Payment] link QR failed: %v", err)
		}
		return c.Render("letters/payment_done", viewData(c, "Carta pronta", fiber.Map{
			"Letter":     letter,
			"ViewURL":    viewURL,
			"LinkQR":     linkQR,
			"PaidMethod": settledMethodLabel(letter.ID),
		}), "layouts/main")
	}

	// Re-display the snapshot of an initiated PIX attempt so the QR stays
	// stable; before the first initiation the payload is built for display
	// only and nothing is persisted.
	payload := ""
	if record, err := repos.Payment.GetByLetterAndMethod(letter.ID, models.PaymentMethodPix); err == nil {
		payload = payments.PixPayloadSnapshot(record)
	}
	if payload == "" {
		payload = buildPixPayload(letter)
	}

	pixQR, err := qr.GenerateDataURI(payload)
	if err != nil {
		log.Errorf("[Payment] pix QR failed: %v", err)
	}

	return c.Render("letters/payment", viewData(c, "Pagamento", fiber.Map{
		"Letter":     letter,
		"PixPayload": payload,
		"PixQR":      pixQR,
		"Price":      letter.Price.StringFixed(2),
		"StatusURL":  "/api/v1/letters/" + letter.ID + "/status",
	}), "layouts/main")
}

// HandlePaymentStart dispatches a chosen payment method. PIX stays on the
// payment page; gateway methods redirect to the provider checkout.
func HandlePaymentStart(c *fiber.Ctx) error {
	letter, err := repository.GetGlobalRepositories().Letter.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("carta não encontrada")
	}

	paymentURL := "/pagamento/" + letter.ID
	if letter.IsPaid {
		return c.Redirect(paymentURL, fiber.StatusSeeOther)
	}

	method := c.FormValue("method")
	if !models.IsValidPaymentMethod(method) {
		fm := fiber.Map{"type": "error", "message": "Escolha uma forma de pagamento"}
		return flash.WithError(c, fm).Redirect(paymentURL)
	}

	service := payments.NewServiceFromDB(database.GetDB())

	if method == models.PaymentMethodPix {
		if _, err := service.InitiatePix(c.Context(), letter, buildPixPayload(letter)); err != nil {
			log.Errorf("[Payment] pix initiation failed: %v", err)
			fm := fiber.Map{"type": "error", "message": "Não foi possível gerar o PIX agora"}
			return flash.WithError(c, fm).Redirect(paymentURL)
		}
		return c.Redirect(paymentURL, fiber.StatusSeeOther)
	}

	launch, err := payments.LaunchCheckout(c.Context(), letter, method, publicBaseURL(c))
	if err != nil {
		log.Errorf("[Payment] %s checkout launch failed: %v", method, err)
		fm := fiber.Map{"type": "error", "message": "O provedor de pagamento está indisponível, tente novamente"}
		return flash.WithError(c, fm).Redirect(paymentURL)
	}

	if _, err := service.OpenCheckout(c.Context(), letter, method, launch); err != nil {
		log.Errorf("[Payment] recording %s checkout failed: %v", method, err)
		fm := fiber.Map{"type": "error", "message": "Algo deu errado, tente novamente"}
		return flash.WithError(c, fm).Redirect(paymentURL)
	}

	return c.Redirect(launch.CheckoutURL, fiber.StatusSeeOther)
}

// HandleSimulatePayment settles a payment without a gateway. It is the
// redirect target of simulated checkouts when no provider credentials are
// configured, and is only honored outside production.
func HandleSimulatePayment(c *fiber.Ctx) error {
	if env.GetEnv("APP_ENV", "prod") == "prod" {
		return c.SendStatus(fiber.StatusNotFound)
	}

	letter, err := repository.GetGlobalRepositories().Letter.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	method := c.Params("method")
	service := payments.NewServiceFromDB(database.GetDB())
	if _, err := service.ConfirmSimulated(c.Context(), letter, method); err != nil {
		log.Errorf("[Payment] simulated confirmation failed: %v", err)
		fm := fiber.Map{"type": "error", "message": fmt.Sprintf("Confirmação falhou: %v", err)}
		return flash.WithError(c, fm).Redirect("/pagamento/" + letter.ID)
	}

	fm := fiber.Map{"type": "success", "message": "Pagamento confirmado! Sua carta está pronta."}
	return flash.WithSuccess(c, fm).Redirect("/pagamento/" + letter.ID)
}
