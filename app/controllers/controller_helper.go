package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
)

const (
	AUTH_KEY       string = "authenticated"
	USER_ID        string = "user_id"
	USER_NAME      string = "username"
	FROM_PROTECTED string = "from_protected"
)

func isLoggedIn(c *fiber.Ctx) bool {
	var fromProtected bool
	if protectedValue := c.Locals(FROM_PROTECTED); protectedValue != nil {
		fromProtected = protectedValue.(bool)
	}

	return fromProtected
}

// ExtractUsername gets the username from Locals (set by middleware)
func ExtractUsername(c *fiber.Ctx) string {
	if userNameValue := c.Locals(USER_NAME); userNameValue != nil {
		if userName, ok := userNameValue.(string); ok {
			return userName
		}
	}

	return ""
}

// csrfToken returns the token set by the CSRF middleware, or empty string
// on routes outside the CSRF group.
func csrfToken(c *fiber.Ctx) string {
	if v := c.Locals("csrf"); v != nil {
		if token, ok := v.(string); ok {
			return token
		}
	}
	return ""
}

// viewData builds the base template data every page shares and merges the
// handler-specific extras on top.
func viewData(c *fiber.Ctx, title string, extra fiber.Map) fiber.Map {
	data := fiber.Map{
		"Title":      title,
		"IsLoggedIn": isLoggedIn(c),
		"Username":   ExtractUsername(c),
		"Flash":      flash.Get(c),
		"Csrf":       csrfToken(c),
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}
