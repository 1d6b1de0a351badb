package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/ramoneds/linkwhats/app/models"
	"github.com/ramoneds/linkwhats/app/repository"
	"github.com/ramoneds/linkwhats/internal/pkg/database"
	"github.com/ramoneds/linkwhats/internal/pkg/entitlements"
	"github.com/ramoneds/linkwhats/internal/pkg/session"
	"github.com/ramoneds/linkwhats/internal/pkg/usercontext"
)

// HandleUpgrade shows the upgrade page and processes plan changes.
// Payment collection is handled off-platform; this only flips the plan.
func HandleUpgrade(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)
	db := database.GetDB()

	if c.Method() == fiber.MethodPost {
		target := entitlements.NormalizePlan(c.FormValue("plan"))

		settings, err := models.GetOrCreateUserSettings(db, userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Falha ao carregar configurações")
		}

		current := entitlements.NormalizePlan(settings.Plan)
		if target == current {
			fm := fiber.Map{
				"type":    "error",
				"message": "Você já está neste plano.",
			}
			return flash.WithError(c, fm).Redirect("/upgrade")
		}

		settings.Plan = string(target)
		if err := db.Save(settings).Error; err != nil {
			fm := fiber.Map{
				"type":    "error",
				"message": fmt.Sprintf("something went wrong: %s", err),
			}
			return flash.WithError(c, fm).Redirect("/upgrade")
		}

		// Refresh the session-cached plan immediately
		_ = session.SetSessionValue(c, "user_plan", string(target))

		msg := "Bem-vindo ao plano Pro! Todos os recursos foram liberados."
		if entitlements.PlanRank(target) < entitlements.PlanRank(current) {
			msg = "Seu plano foi alterado para o gratuito."
		}

		fm := fiber.Map{
			"type":    "success",
			"message": msg,
		}
		return flash.WithSuccess(c, fm).Redirect("/dashboard")
	}

	plans, err := repository.GetGlobalFactory().GetPlanRepository().GetAll()
	if err != nil {
		log.Errorf("Failed to load plan catalog: %v", err)
	}

	return render(c, "upgrade", fiber.Map{
		"Title": "Upgrade",
		"Plans": plans,
	})
}
