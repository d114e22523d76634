package router

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"

	"github.com/cartasdeamor/cartas/app/controllers"
	"github.com/cartasdeamor/cartas/internal/pkg/env"
	"github.com/cartasdeamor/cartas/internal/pkg/middleware"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/") ||
				strings.HasPrefix(c.Path(), "/webhooks/")
		},
	}

	group := app.Group("", cors.New(), csrf.New(csrfConf))
	group.Get("/", loggedInMiddleware, controllers.HandleStart)

	// Creation wizard
	group.Get("/criar", func(c *fiber.Ctx) error {
		return c.Redirect("/criar/etapa/1", fiber.StatusSeeOther)
	})
	group.Get("/criar/etapa/:step", loggedInMiddleware, controllers.HandleWizardStep)
	group.Post("/criar/etapa/:step", loggedInMiddleware, controllers.HandleWizardStepSubmit)

	// Photos of the letter in progress
	group.Post("/fotos/:id/delete", loggedInMiddleware, controllers.HandleDeletePhoto)
	group.Post("/fotos/:id/mode", loggedInMiddleware, controllers.HandlePhotoDisplayMode)

	// Preview + payment
	group.Get("/preview/:id", loggedInMiddleware, controllers.HandlePreview)
	group.Get("/pagamento/:id", loggedInMiddleware, controllers.HandlePaymentPage)
	group.Post("/pagamento/:id", loggedInMiddleware, controllers.HandlePaymentStart)

	// Unlock challenge of protected letters
	group.Post("/carta/:id/unlock", loggedInMiddleware, controllers.HandleUnlock)

	// Accounts
	group.Get("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Post("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Get("/register", loggedInMiddleware, controllers.HandleAuthRegister)
	group.Post("/register", loggedInMiddleware, controllers.HandleAuthRegister)
	group.Get("/user/profile", middleware.RequireAuth, controllers.HandleUserProfile)
	group.Get("/minhas-cartas", middleware.RequireAuth, controllers.HandleMyLetters)
	group.Post("/minhas-cartas/:id/delete", middleware.RequireAuth, controllers.HandleDeleteLetter)
}
