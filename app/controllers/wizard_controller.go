package controllers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/shopspring/decimal"
	"github.com/sujit-baniya/flash"
	"gorm.io/gorm"

	"github.com/cartasdeamor/cartas/app/models"
	"github.com/cartasdeamor/cartas/app/repository"
	"github.com/cartasdeamor/cartas/internal/pkg/env"
	"github.com/cartasdeamor/cartas/internal/pkg/music"
	"github.com/cartasdeamor/cartas/internal/pkg/photoprocessor"
	"github.com/cartasdeamor/cartas/internal/pkg/s3backup"
	"github.com/cartasdeamor/cartas/internal/pkg/session"
	"github.com/cartasdeamor/cartas/internal/pkg/upload"
	"github.com/cartasdeamor/cartas/internal/pkg/usercontext"
)

const wizardStepCount = 6

var validate = validator.New()

// Wizard step forms. Validation mirrors the column limits on Letter.
type wizardStep1Form struct {
	BelovedName     string `form:"beloved_name" validate:"required,max=120"`
	BelovedNickname string `form:"beloved_nickname" validate:"max=120"`
	SenderName      string `form:"sender_name" validate:"max=120"`
}

type wizardStep2Form struct {
	RelationshipStatus string `form:"relationship_status" validate:"required,oneof=ficando namorando noivos casados apaixonados outro"`
	RelationshipCustom string `form:"relationship_custom" validate:"required_if=RelationshipStatus outro,max=120"`
}

type wizardStep3Form struct {
	Message string `form:"message" validate:"required,max=2000"`
	Tone    string `form:"tone" validate:"required,oneof=romantico intenso fofo divertido"`
}

type wizardStep5Form struct {
	MusicURL string `form:"music_url" validate:"omitempty,url,max=255"`
}

type wizardStep6Form struct {
	Password       string `form:"password" validate:"omitempty,min=4,max=72"`
	RemovePassword string `form:"remove_password"`
}

// currentWizardLetter resolves the letter the session is editing.
func currentWizardLetter(c *fiber.Ctx) (*models.Letter, error) {
	letterID := session.GetSessionValue(c, session.KeyCurrentLetter)
	if letterID == "" {
		return nil, gorm.ErrRecordNotFound
	}
	return repository.GetGlobalRepositories().Letter.GetByID(letterID)
}

// HandleWizardStep renders one of the six creation steps. Steps beyond the
// first need a letter in the session, otherwise the visitor is sent back
// to the start of the wizard.
func HandleWizardStep(c *fiber.Ctx) error {
	step, err := strconv.Atoi(c.Params("step"))
	if err != nil || step < 1 || step > wizardStepCount {
		return c.Redirect("/criar/etapa/1", fiber.StatusSeeOther)
	}

	var letter *models.Letter
	if step > 1 {
		letter, err = currentWizardLetter(c)
		if err != nil {
			fm := fiber.Map{"type": "error", "message": "Comece sua carta pelo primeiro passo"}
			return flash.WithError(c, fm).Redirect("/criar/etapa/1")
		}
	} else {
		letter, _ = currentWizardLetter(c)
	}

	data := fiber.Map{
		"Step":      step,
		"StepCount": wizardStepCount,
		"Letter":    letter,
	}
	if step == 4 && letter != nil {
		photos, _ := repository.GetGlobalRepositories().Photo.GetByLetterID(letter.ID)
		data["Photos"] = photos
		data["MaxPhotos"] = upload.MaxPhotosPerLetter
	}

	return c.Render(fmt.Sprintf("wizard/step%d", step), viewData(c, "Criar carta", data), "layouts/main")
}

// HandleWizardStepSubmit processes a step form and advances the wizard.
func HandleWizardStepSubmit(c *fiber.Ctx) error {
	step, err := strconv.Atoi(c.Params("step"))
	if err != nil || step < 1 || step > wizardStepCount {
		return c.Redirect("/criar/etapa/1", fiber.StatusSeeOther)
	}

	stepURL := fmt.Sprintf("/criar/etapa/%d", step)

	var letter *models.Letter
	if step > 1 {
		letter, err = currentWizardLetter(c)
		if err != nil {
			fm := fiber.Map{"type": "error", "message": "Comece sua carta pelo primeiro passo"}
			return flash.WithError(c, fm).Redirect("/criar/etapa/1")
		}
	}

	switch step {
	case 1:
		return submitWizardStep1(c)
	case 2:
		return submitWizardStep2(c, letter, stepURL)
	case 3:
		return submitWizardStep3(c, letter, stepURL)
	case 4:
		return submitWizardStep4(c, letter, stepURL)
	case 5:
		return submitWizardStep5(c, letter, stepURL)
	default:
		return submitWizardStep6(c, letter, stepURL)
	}
}

func submitWizardStep1(c *fiber.Ctx) error {
	var form wizardStep1Form
	if err := c.BodyParser(&form); err != nil {
		fm := fiber.Map{"type": "error", "message": "Não foi possível ler o formulário"}
		return flash.WithError(c, fm).Redirect("/criar/etapa/1")
	}
	if err := validate.Struct(form); err != nil {
		fm := fiber.Map{"type": "error", "message": "Conta pra gente o nome de quem vai receber a carta"}
		return flash.WithError(c, fm).Redirect("/criar/etapa/1")
	}

	repos := repository.GetGlobalRepositories()

	// Re-entering step 1 edits the session letter instead of creating a
	// second one.
	if letter, err := currentWizardLetter(c); err == nil {
		letter.BelovedName = form.BelovedName
		letter.BelovedNickname = form.BelovedNickname
		letter.SenderName = form.SenderName
		if err := repos.Letter.Update(letter); err != nil {
			fm := fiber.Map{"type": "error", "message": "Algo deu errado, tente novamente"}
			return flash.WithError(c, fm).Redirect("/criar/etapa/1")
		}
		return c.Redirect("/criar/etapa/2", fiber.StatusSeeOther)
	}

	letter := &models.Letter{
		BelovedName:     form.BelovedName,
		BelovedNickname: form.BelovedNickname,
		SenderName:      form.SenderName,
		Price:           letterPrice(),
	}
	if uid := usercontext.GetUserID(c); uid != 0 {
		letter.UserID = &uid
	}
	if err := repos.Letter.Create(letter); err != nil {
		log.Errorf("[Wizard] creating letter failed: %v", err)
		fm := fiber.Map{"type": "error", "message": "Algo deu errado, tente novamente"}
		return flash.WithError(c, fm).Redirect("/criar/etapa/1")
	}

	if err := session.SetSessionValue(c, session.KeyCurrentLetter, letter.ID); err != nil {
		fm := fiber.Map{"type": "error", "message": "Algo deu errado, tente novamente"}
		return flash.WithError(c, fm).Redirect("/criar/etapa/1")
	}

	return c.Redirect("/criar/etapa/2", fiber.StatusSeeOther)
}

func submitWizardStep2(c *fiber.Ctx, letter *models.Letter, stepURL string) error {
	var form wizardStep2Form
	if err := c.BodyParser(&form); err != nil {
		fm := fiber.Map{"type": "error", "message": "Não foi possível ler o formulário"}
		return flash.WithError(c, fm).Redirect(stepURL)
	}
	if err := validate.Struct(form); err != nil {
		fm := fiber.Map{"type": "error", "message": "Escolha como vocês estão (e descreva, se for outro)"}
		return flash.WithError(c, fm).Redirect(stepURL)
	}

	letter.RelationshipStatus = form.RelationshipStatus
	if form.RelationshipStatus == models.RelationshipOutro {
		letter.RelationshipCustom = form.RelationshipCustom
	} else {
		letter.RelationshipCustom = ""
	}
	if err := repository.GetGlobalRepositories().Letter.Update(letter); err != nil {
		fm := fiber.Map{"type": "error", "message": "Algo deu errado, tente novamente"}
		return flash.WithError(c, fm).Redirect(stepURL)
	}

	return c.Redirect("/criar/etapa/3", fiber.StatusSeeOther)
}

func submitWizardStep3(c *fiber.Ctx, letter *models.Letter, stepURL string) error {
	var form wizardStep3Form
	if err := c.BodyParser(&form); err != nil {
		fm := fiber.Map{"type": "error", "message": "Não foi possível ler o formulário"}
		return flash.WithError(c, fm).Redirect(stepURL)
	}
	if err := validate.Struct(form); err != nil {
		fm := fiber.Map{"type": "error", "message": "Escreva sua mensagem (até 2000 caracteres)"}
		return flash.WithError(c, fm).Redirect(stepURL)
	}

	letter.Message = form.Message
	letter.Tone = form.Tone
	if err := repository.GetGlobalRepositories().Letter.Update(letter); err != nil {
		fm := fiber.Map{"type": "error", "message": "Algo deu errado, tente novamente"}
		return flash.WithError(c, fm).Redirect(stepURL)
	}

	return c.Redirect("/criar/etapa/4", fiber.StatusSeeOther)
}

func submitWizardStep4(c *fiber.Ctx, letter *models.Letter, stepURL string) error {
	repos := repository.GetGlobalRepositories()

	form, err := c.MultipartForm()
	if err == nil && form != nil && len(form.File["photos"]) > 0 {
		count, _ := repos.Photo.CountByLetterID(letter.ID)
		for _, fileHeader := range form.File["photos"] {
			if count >= upload.MaxPhotosPerLetter {
				fm := fiber.Map{"type": "error", "message": fmt.Sprintf("No máximo %d fotos por carta", upload.MaxPhotosPerLetter)}
				return flash.WithError(c, fm).Redirect(stepURL)
			}
			if fileHeader.Size > upload.MaxPhotoSizeBytes {
				fm := fiber.Map{"type": "error", "message": "Cada foto pode ter no máximo 5 MB"}
				return flash.WithError(c, fm).Redirect(stepURL)
			}

			src, err := fileHeader.Open()
			if err != nil {
				fm := fiber.Map{"type": "error", "message": "Não foi possível ler a foto enviada"}
				return flash.WithError(c, fm).Redirect(stepURL)
			}
			head := make([]byte, 512)
			n, _ := src.Read(head)
			src.Close()

			if _, err := upload.ValidatePhotoBySniff(fileHeader.Filename, head[:n]); err != nil {
				fm := fiber.Map{"type": "error", "message": err.Error()}
				return flash.WithError(c, fm).Redirect(stepURL)
			}

			tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("carta-upload-%s-%s", letter.ID, filepath.Base(fileHeader.Filename)))
			if err := c.SaveFile(fileHeader, tmpPath); err != nil {
				fm := fiber.Map{"type": "error", "message": "Falha ao salvar a foto"}
				return flash.WithError(c, fm).Redirect(stepURL)
			}

			result, err := photoprocessor.Process(letter.ID, tmpPath, fileHeader.Filename)
			_ = os.Remove(tmpPath)
			if err != nil {
				log.Errorf("[Wizard] photo processing failed: %v", err)
				fm := fiber.Map{"type": "error", "message": "Não conseguimos processar essa foto"}
				return flash.WithError(c, fm).Redirect(stepURL)
			}

			photo := &models.Photo{
				LetterID:  letter.ID,
				FilePath:  result.FilePath,
				FileName:  result.FileName,
				FileSize:  result.FileSize,
				ThumbPath: result.ThumbPath,
			}
			if err := repos.Photo.Create(photo); err != nil {
				photoprocessor.Remove(result.FilePath, result.ThumbPath)
				fm := fiber.Map{"type": "error", "message": "Falha ao salvar a foto"}
				return flash.WithError(c, fm).Redirect(stepURL)
			}
			count++

			go s3backup.BackupLetterPhoto(result.FilePath, letter.ID+"-"+strconv.FormatUint(uint64(photo.ID), 10))
		}
	}

	if c.FormValue("action") == "continue" {
		return c.Redirect("/criar/etapa/5", fiber.StatusSeeOther)
	}
	return c.Redirect(stepURL, fiber.StatusSeeOther)
}

func submitWizardStep5(c *fiber.Ctx, letter *models.Letter, stepURL string) error {
	var form wizardStep5Form
	if err := c.BodyParser(&form); err != nil {
		fm := fiber.Map{"type": "error", "message": "Não foi possível ler o formulário"}
		return flash.WithError(c, fm).Redirect(stepURL)
	}
	if err := validate.Struct(form); err != nil {
		fm := fiber.Map{"type": "error", "message": "Cole um link válido da música de vocês"}
		return flash.WithError(c, fm).Redirect(stepURL)
	}

	letter.MusicURL = form.MusicURL
	letter.MusicProvider = music.DetectProvider(form.MusicURL)
	if err := repository.GetGlobalRepositories().Letter.Update(letter); err != nil {
		fm := fiber.Map{"type": "error", "message": "Algo deu errado, tente novamente"}
		return flash.WithError(c, fm).Redirect(stepURL)
	}

	return c.Redirect("/criar/etapa/6", fiber.StatusSeeOther)
}

func submitWizardStep6(c *fiber.Ctx, letter *models.Letter, stepURL string) error {
	var form wizardStep6Form
	if err := c.BodyParser(&form); err != nil {
		fm := fiber.Map{"type": "error", "message": "Não foi possível ler o formulário"}
		return flash.WithError(c, fm).Redirect(stepURL)
	}
	if err := validate.Struct(form); err != nil {
		fm := fiber.Map{"type": "error", "message": "A senha precisa ter entre 4 e 72 caracteres"}
		return flash.WithError(c, fm).Redirect(stepURL)
	}

	if form.RemovePassword == "1" {
		letter.PasswordHash = ""
	} else if form.Password != "" {
		hash, err := models.HashPassword(form.Password)
		if err != nil {
			fm := fiber.Map{"type": "error", "message": "Algo deu errado, tente novamente"}
			return flash.WithError(c, fm).Redirect(stepURL)
		}
		letter.PasswordHash = hash
	}

	if err := repository.GetGlobalRepositories().Letter.Update(letter); err != nil {
		fm := fiber.Map{"type": "error", "message": "Algo deu errado, tente novamente"}
		return flash.WithError(c, fm).Redirect(stepURL)
	}

	return c.Redirect("/preview/"+letter.ID, fiber.StatusSeeOther)
}

// letterPrice reads the configured letter price, falling back to the
// launch price when the env value is unparsable.
func letterPrice() decimal.Decimal {
	raw := env.GetEnv("LETTER_PRICE", "3.99")
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NewFromFloat(3.99)
	}
	return price
}

// errLetterNotEditable guards preview/photo actions against strangers.
var errLetterNotEditable = errors.New("letter does not belong to this session")

// requireEditableLetter checks the letter is owned by the session (wizard)
// or by the logged-in user.
func requireEditableLetter(c *fiber.Ctx, letter *models.Letter) error {
	if session.GetSessionValue(c, session.KeyCurrentLetter) == letter.ID {
		return nil
	}
	if uid := usercontext.GetUserID(c); uid != 0 && letter.UserID != nil && *letter.UserID == uid {
		return nil
	}
	return errLetterNotEditable
}
