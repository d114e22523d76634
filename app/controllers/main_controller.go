package controllers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/cartasdeamor/cartas/app/models"
	"github.com/cartasdeamor/cartas/app/repository"
	"github.com/cartasdeamor/cartas/internal/pkg/cache"
)

const (
	homeExamplesCacheKey = "home:example_letters"
	homeExamplesTTL      = 5 * time.Minute
	homeExamplesLimit    = 3
)

// HandleStart renders the landing page with a small showcase of recently
// paid letters.
func HandleStart(c *fiber.Ctx) error {
	examples := loadExampleLetters()

	return c.Render("pages/home", viewData(c, "Cartas de Amor", fiber.Map{
		"Examples": examples,
	}), "layouts/main")
}

// loadExampleLetters serves the showcase from redis; on a miss it queries
// the database and caches the result.
func loadExampleLetters() []models.Letter {
	if cached, err := cache.Get(homeExamplesCacheKey); err == nil && cached != "" {
		var letters []models.Letter
		if err := json.Unmarshal([]byte(cached), &letters); err == nil {
			return letters
		}
	}

	letters, err := repository.GetGlobalRepositories().Letter.GetPaidExamples(homeExamplesLimit)
	if err != nil {
		log.Errorf("[Home] loading example letters failed: %v", err)
		return nil
	}

	if encoded, err := json.Marshal(letters); err == nil {
		_ = cache.Set(homeExamplesCacheKey, string(encoded), homeExamplesTTL)
	}
	return letters
}

// HandleHealth is the liveness endpoint.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}
