package controllers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/ramoneds/linkwhats/app/models"
	"github.com/ramoneds/linkwhats/app/repository"
	"github.com/ramoneds/linkwhats/internal/pkg/avatar"
	"github.com/ramoneds/linkwhats/internal/pkg/database"
	"github.com/ramoneds/linkwhats/internal/pkg/phone"
	"github.com/ramoneds/linkwhats/internal/pkg/s3store"
	"github.com/ramoneds/linkwhats/internal/pkg/session"
	"github.com/ramoneds/linkwhats/internal/pkg/usercontext"
	"github.com/ramoneds/linkwhats/internal/pkg/utils"
)

// HandleUserProfile shows account data and the API key state
func HandleUserProfile(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)
	repos := repository.GetGlobalFactory().GetRepositories()

	user, err := repos.User.GetByID(userID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Usuário não encontrado")
	}

	settings, err := models.GetOrCreateUserSettings(database.GetDB(), userID)
	if err != nil {
		log.Errorf("Failed to load settings for user %d: %v", userID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Falha ao carregar configurações")
	}

	avatarURL := user.AvatarURL
	if avatarURL == "" {
		avatarURL = utils.GetGravatarURL(user.Email, 200)
	}

	return render(c, "user/profile", fiber.Map{
		"Title":     "Meu Perfil",
		"User":      user,
		"Settings":  settings,
		"AvatarURL": avatarURL,
		"HasAPIKey": settings.HasActiveAPIKey(),
	})
}

// HandleUserProfileEdit updates the display name and, when a new
// password is submitted, the password. A password change only goes
// through when the current password matches.
func HandleUserProfileEdit(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)
	repos := repository.GetGlobalFactory().GetRepositories()

	user, err := repos.User.GetByID(userID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Usuário não encontrado")
	}

	name := strings.TrimSpace(c.FormValue("name"))
	if len(name) < 3 {
		fm := fiber.Map{
			"type":    "error",
			"message": "O nome precisa ter pelo menos 3 caracteres.",
		}
		return flash.WithError(c, fm).Redirect("/user/profile")
	}
	user.Name = name

	if newPassword := c.FormValue("new_password"); newPassword != "" {
		if !user.CheckPassword(c.FormValue("current_password")) {
			fm := fiber.Map{
				"type":    "error",
				"message": "Senha atual incorreta.",
			}
			return flash.WithError(c, fm).Redirect("/user/profile")
		}
		if len(newPassword) < 6 {
			fm := fiber.Map{
				"type":    "error",
				"message": "A nova senha precisa ter pelo menos 6 caracteres.",
			}
			return flash.WithError(c, fm).Redirect("/user/profile")
		}
		if err := user.SetPassword(newPassword); err != nil {
			log.Errorf("Password hash failed for user %d: %v", userID, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Falha ao atualizar a senha")
		}
	}

	if err := repos.User.Update(user); err != nil {
		log.Errorf("Failed to update profile for user %d: %v", userID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Falha ao salvar o perfil")
	}

	// Keep the session copy of the name in sync with the DB.
	_ = session.SetSessionValue(c, usercontext.KeyUsername, user.Name)

	fm := fiber.Map{
		"type":    "success",
		"message": "Perfil atualizado!",
	}
	return flash.WithSuccess(c, fm).Redirect("/user/profile")
}

// HandleUserSettings renders and updates account preferences
func HandleUserSettings(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)
	db := database.GetDB()

	settings, err := models.GetOrCreateUserSettings(db, userID)
	if err != nil {
		log.Errorf("Failed to load settings for user %d: %v", userID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Falha ao carregar configurações")
	}

	if c.Method() == fiber.MethodPost {
		for _, key := range []string{"default_country", "language", "email_notifications"} {
			if err := settings.ApplySetting(key, c.FormValue(key)); err != nil {
				log.Errorf("Failed to apply setting %s: %v", key, err)
			}
		}

		if err := db.Save(settings).Error; err != nil {
			fm := fiber.Map{
				"type":    "error",
				"message": fmt.Sprintf("something went wrong: %s", err),
			}
			return flash.WithError(c, fm).Redirect("/user/settings")
		}

		fm := fiber.Map{
			"type":    "success",
			"message": "Configurações salvas!",
		}
		return flash.WithSuccess(c, fm).Redirect("/user/settings")
	}

	return render(c, "user/settings", fiber.Map{
		"Title":     "Configurações",
		"Settings":  settings,
		"Countries": phone.Countries,
	})
}

// HandleUserAvatar processes an avatar upload and stores it in S3
func HandleUserAvatar(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Selecione uma imagem para enviar.",
		}
		return flash.WithError(c, fm).Redirect("/user/profile")
	}
	if fileHeader.Size > avatar.MaxUploadBytes {
		fm := fiber.Map{
			"type":    "error",
			"message": "A imagem é muito grande (máximo 5 MB).",
		}
		return flash.WithError(c, fm).Redirect("/user/profile")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Falha ao ler o arquivo")
	}
	defer file.Close()

	processed, err := avatar.Process(file)
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Não foi possível processar a imagem enviada.",
		}
		return flash.WithError(c, fm).Redirect("/user/profile")
	}

	cfg, err := s3store.LoadConfig()
	if err != nil || !cfg.IsEnabled() {
		fm := fiber.Map{
			"type":    "error",
			"message": "Upload de avatar indisponível no momento.",
		}
		return flash.WithError(c, fm).Redirect("/user/profile")
	}

	client, err := s3store.NewClient(cfg)
	if err != nil {
		log.Errorf("S3 client init failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Falha ao armazenar o avatar")
	}

	objectKey := cfg.AvatarObjectKey(strconv.FormatUint(uint64(userID), 10), ".jpg")
	url, err := client.UploadBytes(c.UserContext(), objectKey, processed, "image/jpeg")
	if err != nil {
		log.Errorf("Avatar upload failed for user %d: %v", userID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Falha ao armazenar o avatar")
	}

	repos := repository.GetGlobalFactory().GetRepositories()
	user, err := repos.User.GetByID(userID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Usuário não encontrado")
	}
	user.AvatarURL = url
	if err := repos.User.Update(user); err != nil {
		log.Errorf("Failed to save avatar URL for user %d: %v", userID, err)
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Avatar atualizado!",
	}
	return flash.WithSuccess(c, fm).Redirect("/user/profile")
}

// HandleUserAPIKeyIssue creates a fresh API key. The raw secret appears
// exactly once in the flash message and is never stored.
func HandleUserAPIKeyIssue(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)
	db := database.GetDB()

	settings, err := models.GetOrCreateUserSettings(db, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Falha ao carregar configurações")
	}

	rawKey, err := settings.IssueAPIKey()
	if err != nil {
		log.Errorf("API key generation failed for user %d: %v", userID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Falha ao gerar a chave")
	}

	if err := db.Save(settings).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Falha ao salvar a chave")
	}

	fm := fiber.Map{
		"type":    "success",
		"message": fmt.Sprintf("Chave criada. Guarde-a agora, ela não será exibida novamente: %s", rawKey),
	}
	return flash.WithSuccess(c, fm).Redirect("/user/profile")
}

// HandleUserAPIKeyRevoke invalidates the current API key
func HandleUserAPIKeyRevoke(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)
	db := database.GetDB()

	settings, err := models.GetOrCreateUserSettings(db, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Falha ao carregar configurações")
	}

	settings.RevokeAPIKey()
	if err := db.Save(settings).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Falha ao revogar a chave")
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Chave de API revogada.",
	}
	return flash.WithSuccess(c, fm).Redirect("/user/profile")
}

// HandleUserPlanRefresh drops the cached plan so the next request reloads it
func HandleUserPlanRefresh(c *fiber.Ctx) error {
	_ = session.SetSessionValue(c, "user_plan", "")
	return c.Redirect("/user/profile", fiber.StatusSeeOther)
}
