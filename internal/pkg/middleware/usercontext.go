package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cartasdeamor/cartas/app/controllers"
	"github.com/cartasdeamor/cartas/internal/pkg/session"
	"github.com/cartasdeamor/cartas/internal/pkg/usercontext"
)

// UserContextMiddleware sets up the complete user context for every request.
// This centralizes user session handling and eliminates code duplication.
func UserContextMiddleware(c *fiber.Ctx) error {
	// Avoid interfering with Goth/Fiber session handling on OAuth routes.
	// Goth uses its own fiber session store and relies on per-request locals.
	if strings.HasPrefix(c.Path(), "/auth/") {
		return c.Next()
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		c.Locals("USER_CONTEXT", usercontext.UserContext{IsLoggedIn: false})
		c.Locals(controllers.FROM_PROTECTED, false)
		return c.Next()
	}

	userID := sess.Get(controllers.USER_ID)
	authenticated, _ := sess.Get(controllers.AUTH_KEY).(bool)
	if userID == nil || !authenticated {
		// Anonymous visitor, still allowed to create letters
		c.Locals("USER_CONTEXT", usercontext.UserContext{IsLoggedIn: false})
		c.Locals(controllers.FROM_PROTECTED, false)
		return c.Next()
	}

	username := session.GetSessionValue(c, controllers.USER_NAME)

	userCtx := usercontext.UserContext{
		UserID:     userID.(uint),
		Username:   username,
		IsLoggedIn: true,
	}
	c.Locals("USER_CONTEXT", userCtx)

	c.Locals(controllers.FROM_PROTECTED, true)
	c.Locals(controllers.USER_NAME, username)
	c.Locals(controllers.USER_ID, userID.(uint))

	return c.Next()
}
