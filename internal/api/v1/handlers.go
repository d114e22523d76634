package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cartasdeamor/cartas/app/repository"
)

// Pong is the ping response body.
type Pong struct {
	Ping string `json:"ping"`
}

// LetterStatus is the payment-status response body, polled by the payment
// page to flip to the unlocked state once a webhook lands.
type LetterStatus struct {
	Paid    bool   `json:"paid"`
	ViewURL string `json:"view_url,omitempty"`
}

// APIServer implements the v1 handlers.
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// RegisterHandlers mounts the v1 routes on the given router group.
func RegisterHandlers(router fiber.Router, s *APIServer) {
	router.Get("/ping", s.GetPing)
	router.Get("/letters/:id/status", s.GetLetterStatus)
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	response := Pong{
		Ping: "pong",
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// GetLetterStatus reports whether a letter has been paid. The view URL is
// only revealed once payment settled.
func (s *APIServer) GetLetterStatus(c *fiber.Ctx) error {
	letter, err := repository.GetGlobalRepositories().Letter.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "not_found",
			"message": "letter not found",
		})
	}

	status := LetterStatus{Paid: letter.IsPaid}
	if letter.IsPaid {
		status.ViewURL = "/carta/" + letter.ID
	}
	return c.JSON(status)
}
