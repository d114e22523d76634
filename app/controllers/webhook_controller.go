package controllers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"

	"github.com/cartasdeamor/cartas/internal/pkg/database"
	"github.com/cartasdeamor/cartas/internal/pkg/env"
	"github.com/cartasdeamor/cartas/internal/pkg/payments"
)

// HandleStripeWebhook settles letters from Stripe checkout events. With a
// signing secret configured the payload is verified through the stripe-go
// webhook package; without one (local development) the raw JSON is
// trusted. Application-level conditions (unknown letter, already settled)
// are acknowledged with 200 so Stripe stops retrying.
func HandleStripeWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	secret := env.GetEnv("STRIPE_WEBHOOK_SECRET", "")

	var (
		eventType string
		sessionID string
		letterID  string
	)

	if secret != "" {
		event, err := webhook.ConstructEvent(payload, c.Get("Stripe-Signature"), secret)
		if err != nil {
			log.Warnf("[Webhook] stripe signature rejected: %v", err)
			return c.SendStatus(fiber.StatusBadRequest)
		}
		eventType = string(event.Type)
		if eventType == "checkout.session.completed" {
			var sess stripe.CheckoutSession
			if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
				log.Errorf("[Webhook] stripe session decode failed: %v", err)
				return c.SendStatus(fiber.StatusBadRequest)
			}
			sessionID = sess.ID
			letterID = sess.Metadata["letter_id"]
		}
	} else {
		var event struct {
			Type string `json:"type"`
			Data struct {
				Object struct {
					ID       string            `json:"id"`
					Metadata map[string]string `json:"metadata"`
				} `json:"object"`
			} `json:"data"`
		}
		if err := json.Unmarshal(payload, &event); err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		eventType = event.Type
		sessionID = event.Data.Object.ID
		letterID = event.Data.Object.Metadata["letter_id"]
	}

	if eventType != "checkout.session.completed" || letterID == "" {
		return c.SendStatus(fiber.StatusOK)
	}

	service := payments.NewServiceFromDB(database.GetDB())
	if err := service.SettleStripeSession(c.Context(), letterID, sessionID); err != nil {
		log.Errorf("[Webhook] stripe settlement failed for letter %s: %v", letterID, err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.SendStatus(fiber.StatusOK)
}

// HandleMercadoPagoWebhook settles letters from Mercado Pago payment
// notifications, authenticated by an HMAC-SHA256 of the raw body against
// the X-Signature header.
func HandleMercadoPagoWebhook(c *fiber.Ctx) error {
	payload := c.Body()

	secret := env.GetEnv("MERCADO_PAGO_WEBHOOK_SECRET", "")
	if secret != "" {
		if !payments.VerifyMercadoPagoSignature(payload, c.Get("X-Signature"), secret) {
			log.Warnf("[Webhook] mercado pago signature rejected")
			return c.SendStatus(fiber.StatusForbidden)
		}
	}

	var event struct {
		Action            string `json:"action"`
		ExternalReference string `json:"external_reference"`
		Data              struct {
			ExternalReference string `json:"external_reference"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &event); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	ref := event.ExternalReference
	if ref == "" {
		ref = event.Data.ExternalReference
	}
	if ref == "" {
		return c.SendStatus(fiber.StatusOK)
	}

	service := payments.NewServiceFromDB(database.GetDB())
	if err := service.SettleMercadoPago(c.Context(), ref); err != nil {
		log.Errorf("[Webhook] mercado pago settlement failed for %s: %v", ref, err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.SendStatus(fiber.StatusOK)
}
