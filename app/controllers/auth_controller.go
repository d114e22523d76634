package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/cartasdeamor/cartas/app/models"
	"github.com/cartasdeamor/cartas/app/repository"
	"github.com/cartasdeamor/cartas/internal/pkg/database"
	"github.com/cartasdeamor/cartas/internal/pkg/session"
)

func HandleAuthLogin(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		var user models.User

		fm := fiber.Map{
			"type": "error",
		}

		// notice: in production you should not inform the user
		// with detailed messages about login failures
		result := database.GetDB().Where("email = ?", c.FormValue("email")).First(&user)
		if result.Error != nil {
			fm["message"] = "Não foi possível entrar, confira seus dados"

			return flash.WithError(c, fm).Redirect("/login")
		}

		if !models.CheckPasswordHash(c.FormValue("password"), user.Password) {
			fm["message"] = "Não foi possível entrar, confira seus dados"

			return flash.WithError(c, fm).Redirect("/login")
		}

		sess, err := session.GetSessionStore().Get(c)
		if err != nil {
			fm["message"] = fmt.Sprintf("something went wrong: %s", err)

			return flash.WithError(c, fm).Redirect("/login")
		}

		sess.Set(AUTH_KEY, true)
		sess.Set(USER_ID, user.ID)
		sess.Set(USER_NAME, user.Name)

		if err := sess.Save(); err != nil {
			fm["message"] = fmt.Sprintf("something went wrong: %s", err)

			return flash.WithError(c, fm).Redirect("/login")
		}

		database.GetDB().Model(&user).Update("last_login_at", time.Now())

		fm = fiber.Map{
			"type":    "success",
			"message": "Bem-vindo de volta!",
		}

		return flash.WithSuccess(c, fm).Redirect("/")
	}

	return c.Render("auth/login", viewData(c, "Entrar", nil), "layouts/main")
}

func HandleAuthRegister(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		user, err := models.CreateUser(c.FormValue("name"), c.FormValue("email"), c.FormValue("password"))
		if err != nil {
			fm := fiber.Map{
				"type":    "error",
				"message": "Confira os dados do cadastro",
			}

			return flash.WithError(c, fm).Redirect("/register")
		}

		if err := repository.GetGlobalRepositories().User.Create(user); err != nil {
			fm := fiber.Map{
				"type":    "error",
				"message": "Esse e-mail já está em uso",
			}

			return flash.WithError(c, fm).Redirect("/register")
		}

		fm := fiber.Map{
			"type":    "success",
			"message": "Conta criada! Agora é só entrar.",
		}

		return flash.WithSuccess(c, fm).Redirect("/login")
	}

	return c.Render("auth/register", viewData(c, "Criar conta", nil), "layouts/main")
}

func HandleAuthLogout(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		fm["message"] = "logged out (no sess)"

		return flash.WithError(c, fm).Redirect("/login")
	}

	if err := sess.Destroy(); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/login")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Até logo!",
	}

	c.Locals(FROM_PROTECTED, false)

	return flash.WithSuccess(c, fm).Redirect("/login")
}

// HandleUserProfile shows account data and letter counts.
func HandleUserProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals(USER_ID).(uint)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	user, err := repository.GetGlobalRepositories().User.GetByID(userID)
	if err != nil {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	letters, _ := repository.GetGlobalRepositories().Letter.GetByUserID(userID)
	paid := 0
	for _, l := range letters {
		if l.IsPaid {
			paid++
		}
	}

	return c.Render("auth/profile", viewData(c, "Meu perfil", fiber.Map{
		"User":        user,
		"LetterCount": len(letters),
		"PaidCount":   paid,
	}), "layouts/main")
}

// HandleMyLetters lists the logged-in user's letters, newest first.
func HandleMyLetters(c *fiber.Ctx) error {
	userID, ok := c.Locals(USER_ID).(uint)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	letters, err := repository.GetGlobalRepositories().Letter.GetByUserID(userID)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Não foi possível carregar suas cartas"}
		return flash.WithError(c, fm).Redirect("/")
	}

	return c.Render("letters/history", viewData(c, "Minhas cartas", fiber.Map{
		"Letters": letters,
	}), "layouts/main")
}

// HandleDeleteLetter removes one of the user's letters together with its
// photos and payment records.
func HandleDeleteLetter(c *fiber.Ctx) error {
	userID, ok := c.Locals(USER_ID).(uint)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	repos := repository.GetGlobalRepositories()
	letter, err := repos.Letter.GetByID(c.Params("id"))
	if err != nil || letter.UserID == nil || *letter.UserID != userID {
		fm := fiber.Map{"type": "error", "message": "Essa carta não é sua"}
		return flash.WithError(c, fm).Redirect("/minhas-cartas")
	}

	photos, _ := repos.Photo.GetByLetterID(letter.ID)
	if err := repos.Letter.Delete(letter.ID); err != nil {
		fm := fiber.Map{"type": "error", "message": "Algo deu errado, tente novamente"}
		return flash.WithError(c, fm).Redirect("/minhas-cartas")
	}
	for _, photo := range photos {
		photoprocessorRemove(photo)
	}

	fm := fiber.Map{"type": "success", "message": "Carta apagada"}
	return flash.WithSuccess(c, fm).Redirect("/minhas-cartas")
}
