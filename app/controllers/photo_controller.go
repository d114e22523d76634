package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/cartasdeamor/cartas/app/models"
	"github.com/cartasdeamor/cartas/app/repository"
	"github.com/cartasdeamor/cartas/internal/pkg/photoprocessor"
)

// photoWithLetter loads the photo plus its letter and checks the caller is
// allowed to touch it (wizard session or owner).
func photoWithLetter(c *fiber.Ctx) (*models.Photo, *models.Letter, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return nil, nil, err
	}

	repos := repository.GetGlobalRepositories()
	photo, err := repos.Photo.GetByID(uint(id))
	if err != nil {
		return nil, nil, err
	}
	letter, err := repos.Letter.GetByID(photo.LetterID)
	if err != nil {
		return nil, nil, err
	}
	if err := requireEditableLetter(c, letter); err != nil {
		return nil, nil, err
	}
	return photo, letter, nil
}

// HandleDeletePhoto removes an uploaded photo from a letter in progress.
func HandleDeletePhoto(c *fiber.Ctx) error {
	photo, _, err := photoWithLetter(c)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Foto não encontrada"}
		return flash.WithError(c, fm).Redirect("/criar/etapa/4")
	}

	if err := repository.GetGlobalRepositories().Photo.Delete(photo.ID); err != nil {
		fm := fiber.Map{"type": "error", "message": "Algo deu errado, tente novamente"}
		return flash.WithError(c, fm).Redirect("/criar/etapa/4")
	}
	photoprocessorRemove(*photo)

	return c.Redirect("/criar/etapa/4", fiber.StatusSeeOther)
}

// HandlePhotoDisplayMode toggles a photo between contain and cover.
func HandlePhotoDisplayMode(c *fiber.Ctx) error {
	photo, _, err := photoWithLetter(c)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Foto não encontrada"}
		return flash.WithError(c, fm).Redirect("/criar/etapa/4")
	}

	photo.SetDisplayMode(c.FormValue("mode"))
	if err := repository.GetGlobalRepositories().Photo.Update(photo); err != nil {
		fm := fiber.Map{"type": "error", "message": "Algo deu errado, tente novamente"}
		return flash.WithError(c, fm).Redirect("/criar/etapa/4")
	}

	return c.Redirect("/criar/etapa/4", fiber.StatusSeeOther)
}

func photoprocessorRemove(photo models.Photo) {
	photoprocessor.Remove(photo.FilePath, photo.ThumbPath)
}
