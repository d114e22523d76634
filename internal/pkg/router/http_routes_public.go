package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cartasdeamor/cartas/app/controllers"
	"github.com/cartasdeamor/cartas/internal/pkg/middleware"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Liveness
	app.Get("/health", controllers.HandleHealth)

	// Public letter page and its QR download
	app.Get("/carta/:id", loggedInMiddleware, controllers.HandlePublicLetter)
	app.Get("/carta/:id/qr", loggedInMiddleware, controllers.HandleLetterQR)

	// Simulated gateway return (dev/staging only, guarded in the controller)
	app.Get("/pagamento/:id/simular/:method", controllers.HandleSimulatePayment)

	// Auth
	app.Post("/logout", middleware.RequireAuth, controllers.HandleOAuthLogout)

	// Social OAuth
	app.Get("/auth/:provider", controllers.HandleOAuthBegin)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)

	// Payment provider webhooks (no CSRF, signature-verified in controller)
	app.Post("/webhooks/stripe", controllers.HandleStripeWebhook)
	app.Post("/webhooks/mercadopago", controllers.HandleMercadoPagoWebhook)
}
