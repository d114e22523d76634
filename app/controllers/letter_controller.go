package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/cartasdeamor/cartas/app/models"
	"github.com/cartasdeamor/cartas/app/repository"
	"github.com/cartasdeamor/cartas/internal/pkg/music"
	"github.com/cartasdeamor/cartas/internal/pkg/payments"
	"github.com/cartasdeamor/cartas/internal/pkg/qr"
	"github.com/cartasdeamor/cartas/internal/pkg/session"
)

// HandlePreview shows the creator their letter as the recipient will see
// it, with the call to action into the payment flow. Only the session that
// is building the letter (or its owner) may preview it.
func HandlePreview(c *fiber.Ctx) error {
	letter, err := repository.GetGlobalRepositories().Letter.GetWithPhotos(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("pages/not_found", viewData(c, "Carta não encontrada", nil), "layouts/main")
	}
	if err := requireEditableLetter(c, letter); err != nil {
		return c.Status(fiber.StatusForbidden).SendString("essa carta não é sua")
	}

	return c.Render("letters/preview", viewData(c, "Prévia da carta", fiber.Map{
		"Letter":   letter,
		"EmbedURL": music.EmbedURL(letter.MusicURL, letter.MusicProvider),
	}), "layouts/main")
}

// HandlePublicLetter serves the shareable letter page. Unpaid letters
// bounce to payment; password-protected ones without a session grant get
// the unlock challenge.
func HandlePublicLetter(c *fiber.Ctx) error {
	letter, err := repository.GetGlobalRepositories().Letter.GetWithPhotos(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("pages/not_found", viewData(c, "Carta não encontrada", nil), "layouts/main")
	}

	switch payments.EvaluateAccess(letter, session.HasUnlockGrant(c, letter.ID)) {
	case payments.AccessAwaitingPayment:
		return c.Redirect("/pagamento/"+letter.ID, fiber.StatusSeeOther)
	case payments.AccessLocked:
		return c.Render("letters/unlock", viewData(c, "Carta protegida", fiber.Map{
			"Letter": letter,
		}), "layouts/main")
	}

	return renderOpenLetter(c, letter)
}

func renderOpenLetter(c *fiber.Ctx, letter *models.Letter) error {
	return c.Render("letters/public", viewData(c, "Uma carta para "+letter.BelovedName, fiber.Map{
		"Letter":          letter,
		"EmbedURL":        music.EmbedURL(letter.MusicURL, letter.MusicProvider),
		"SpotifyDeepLink": music.SpotifyDeepLink(letter.MusicURL),
		"QRDownloadURL":   "/carta/" + letter.ID + "/qr",
	}), "layouts/main")
}

// HandleUnlock processes the password challenge of a protected letter.
func HandleUnlock(c *fiber.Ctx) error {
	letter, err := repository.GetGlobalRepositories().Letter.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("carta não encontrada")
	}

	letterURL := "/carta/" + letter.ID

	if !letter.IsPaid {
		return c.Redirect("/pagamento/"+letter.ID, fiber.StatusSeeOther)
	}
	if !letter.HasPassword() || session.HasUnlockGrant(c, letter.ID) {
		return c.Redirect(letterURL, fiber.StatusSeeOther)
	}

	if !models.CheckPasswordHash(c.FormValue("password"), letter.PasswordHash) {
		return c.Status(fiber.StatusUnauthorized).Render("letters/unlock", viewData(c, "Carta protegida", fiber.Map{
			"Letter": letter,
			"Error":  "Senha incorreta, tente de novo",
		}), "layouts/main")
	}

	if err := session.GrantUnlock(c, letter.ID); err != nil {
		log.Errorf("[Letter] storing unlock grant failed: %v", err)
		fm := fiber.Map{"type": "error", "message": "Algo deu errado, tente novamente"}
		return flash.WithError(c, fm).Redirect(letterURL)
	}

	return c.Redirect(letterURL, fiber.StatusSeeOther)
}

// HandleLetterQR serves the public-link QR code as a PNG download. Only
// paid letters have a shareable link worth encoding.
func HandleLetterQR(c *fiber.Ctx) error {
	letter, err := repository.GetGlobalRepositories().Letter.GetByID(c.Params("id"))
	if err != nil {
		return c.SendStatus(fiber.StatusNotFound)
	}
	if !letter.IsPaid {
		return c.SendStatus(fiber.StatusNotFound)
	}

	png, err := qr.GenerateBytes(publicLetterURL(c, letter.ID), 512)
	if err != nil {
		log.Errorf("[Letter] QR generation failed: %v", err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="carta-%s.png"`, letter.ID))
	return c.Send(png)
}
