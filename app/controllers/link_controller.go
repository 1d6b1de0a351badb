package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/ramoneds/linkwhats/app/models"
	"github.com/ramoneds/linkwhats/app/repository"
	"github.com/ramoneds/linkwhats/internal/pkg/database"
	"github.com/ramoneds/linkwhats/internal/pkg/entitlements"
	"github.com/ramoneds/linkwhats/internal/pkg/linkform"
	"github.com/ramoneds/linkwhats/internal/pkg/phone"
	"github.com/ramoneds/linkwhats/internal/pkg/schedule"
	"github.com/ramoneds/linkwhats/internal/pkg/shortener"
	"github.com/ramoneds/linkwhats/internal/pkg/suggest"
	"github.com/ramoneds/linkwhats/internal/pkg/usercontext"
)

// DefaultLinkMessage prefills the message field on the creation form
const DefaultLinkMessage = "Olá! Gostaria de mais informações."

const slugGenerationAttempts = 5

// HandleDashboard lists the user's links with aggregate click numbers
func HandleDashboard(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)
	repos := repository.GetGlobalFactory().GetRepositories()

	links, err := repos.Link.GetByUserID(userID)
	if err != nil {
		log.Errorf("Failed to load links for user %d: %v", userID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Falha ao carregar seus links")
	}

	stats, err := repos.Link.StatsByUserID(userID)
	if err != nil {
		log.Errorf("Failed to aggregate link stats for user %d: %v", userID, err)
	}

	now := time.Now()
	type linkRow struct {
		models.Link
		State   schedule.State
		PageURL string
	}
	rows := make([]linkRow, 0, len(links))
	for _, l := range links {
		rows = append(rows, linkRow{
			Link:    l,
			State:   l.EffectiveState(now),
			PageURL: "/l/" + l.Slug,
		})
	}

	return render(c, "dashboard/index", fiber.Map{
		"Title":       "Meus Links",
		"Links":       rows,
		"LinkCount":   stats.LinkCount,
		"TotalClicks": stats.TotalClicks,
	})
}

// HandleLinkNew renders the creation form and processes submissions
func HandleLinkNew(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	plan := entitlements.NormalizePlan(userCtx.Plan)
	repos := repository.GetGlobalFactory().GetRepositories()

	if c.Method() == fiber.MethodPost {
		if max := entitlements.MaxLinks(plan); max > 0 {
			count, err := repos.Link.CountByUserID(userCtx.UserID)
			if err != nil {
				log.Errorf("Failed to count links for user %d: %v", userCtx.UserID, err)
			}
			if count >= int64(max) {
				fm := fiber.Map{
					"type":    "error",
					"message": "Seu plano permite apenas um link. Faça upgrade para criar mais.",
				}
				return flash.WithError(c, fm).Redirect("/upgrade")
			}
		}

		in := linkform.Input{
			Name:     c.FormValue("name"),
			Slug:     c.FormValue("slug"),
			Whatsapp: coerceWhatsapp(c.FormValue("whatsapp"), userCtx.UserID),
			Message:  c.FormValue("message"),
			Redirect: c.FormValue("redirect"),
		}

		normalized, fieldErrs := linkform.Validate(in)
		if len(fieldErrs) > 0 {
			return render(c, "dashboard/link_form", fiber.Map{
				"Title":  "Novo Link",
				"Form":   in,
				"Errors": errorMessages(fieldErrs),
				"Gated":  entitlements.GatedFields(plan),
			})
		}

		slug := normalized.Slug
		if slug == "" {
			var err error
			slug, err = generateUniqueSlug(repos.Link)
			if err != nil {
				log.Errorf("Slug generation failed: %v", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Falha ao gerar o link")
			}
		} else {
			exists, err := repos.Link.SlugExists(slug)
			if err != nil {
				log.Errorf("Slug lookup failed: %v", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Falha ao verificar o link")
			}
			if exists {
				return render(c, "dashboard/link_form", fiber.Map{
					"Title":  "Novo Link",
					"Form":   in,
					"Errors": map[string]string{"slug": "Este nome de link já está em uso"},
					"Gated":  entitlements.GatedFields(plan),
				})
			}
		}

		start, end := schedule.ParseWindow(c.FormValue("schedule_start"), c.FormValue("schedule_end"))
		extras := entitlements.ApplyPlanDefaults(plan, entitlements.LinkExtras{
			BgColor:       c.FormValue("bg_color"),
			BtnColor:      c.FormValue("btn_color"),
			ScheduleStart: start,
			ScheduleEnd:   end,
			Redirect:      normalized.Redirect,
		})

		link := &models.Link{
			UserID:        userCtx.UserID,
			Name:          normalized.Name,
			Slug:          slug,
			Whatsapp:      "+" + normalized.WhatsappDigits,
			Message:       normalized.Message,
			IsActive:      true,
			BgColor:       extras.BgColor,
			BtnColor:      extras.BtnColor,
			ScheduleStart: extras.ScheduleStart,
			ScheduleEnd:   extras.ScheduleEnd,
			Redirect:      extras.Redirect,
		}
		if err := link.SetSocial(socialFromForm(c)); err != nil {
			log.Errorf("Failed to encode social links: %v", err)
		}

		if err := repos.Link.Create(link); err != nil {
			log.Errorf("Failed to create link: %v", err)
			fm := fiber.Map{
				"type":    "error",
				"message": "Falha ao criar o link. Tente novamente.",
			}
			return flash.WithError(c, fm).Redirect("/dashboard/links/new")
		}

		fm := fiber.Map{
			"type":    "success",
			"message": fmt.Sprintf("Link criado! Sua página está em /l/%s", link.Slug),
		}
		return flash.WithSuccess(c, fm).Redirect("/dashboard")
	}

	return render(c, "dashboard/link_form", fiber.Map{
		"Title": "Novo Link",
		"Form":  linkform.Input{Message: DefaultLinkMessage},
		"Gated": entitlements.GatedFields(plan),
	})
}

// HandleLinkEdit renders the edit form and processes updates.
// The slug is immutable after creation and never updated here.
func HandleLinkEdit(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	plan := entitlements.NormalizePlan(userCtx.Plan)
	repos := repository.GetGlobalFactory().GetRepositories()

	link, err := ownedLink(c, repos)
	if err != nil {
		return err
	}

	if c.Method() == fiber.MethodPost {
		in := linkform.Input{
			Name:     c.FormValue("name"),
			Slug:     link.Slug,
			Whatsapp: coerceWhatsapp(c.FormValue("whatsapp"), userCtx.UserID),
			Message:  c.FormValue("message"),
			Redirect: c.FormValue("redirect"),
		}

		normalized, fieldErrs := linkform.Validate(in)
		if len(fieldErrs) > 0 {
			return render(c, "dashboard/link_form", fiber.Map{
				"Title":  "Editar Link",
				"Form":   in,
				"Link":   link,
				"Errors": errorMessages(fieldErrs),
				"Gated":  entitlements.GatedFields(plan),
			})
		}

		start, end := schedule.ParseWindow(c.FormValue("schedule_start"), c.FormValue("schedule_end"))
		extras := entitlements.ApplyPlanDefaults(plan, entitlements.LinkExtras{
			BgColor:       c.FormValue("bg_color"),
			BtnColor:      c.FormValue("btn_color"),
			ScheduleStart: start,
			ScheduleEnd:   end,
			Redirect:      normalized.Redirect,
		})

		link.Name = normalized.Name
		link.Whatsapp = "+" + normalized.WhatsappDigits
		link.Message = normalized.Message
		link.BgColor = extras.BgColor
		link.BtnColor = extras.BtnColor
		link.ScheduleStart = extras.ScheduleStart
		link.ScheduleEnd = extras.ScheduleEnd
		link.Redirect = extras.Redirect
		if err := link.SetSocial(socialFromForm(c)); err != nil {
			log.Errorf("Failed to encode social links: %v", err)
		}

		if err := repos.Link.Update(link); err != nil {
			log.Errorf("Failed to update link %s: %v", link.UUID, err)
			fm := fiber.Map{
				"type":    "error",
				"message": "Falha ao salvar as alterações.",
			}
			return flash.WithError(c, fm).Redirect("/dashboard")
		}

		fm := fiber.Map{
			"type":    "success",
			"message": "Link atualizado!",
		}
		return flash.WithSuccess(c, fm).Redirect("/dashboard")
	}

	social := link.Social()
	return render(c, "dashboard/link_form", fiber.Map{
		"Title": "Editar Link",
		"Form": linkform.Input{
			Name:     link.Name,
			Slug:     link.Slug,
			Whatsapp: link.Whatsapp,
			Message:  link.Message,
			Redirect: link.Redirect,
		},
		"Link":   link,
		"Social": social,
		"Gated":  entitlements.GatedFields(plan),
	})
}

// HandleLinkToggle flips the manual active flag
func HandleLinkToggle(c *fiber.Ctx) error {
	repos := repository.GetGlobalFactory().GetRepositories()

	link, err := ownedLink(c, repos)
	if err != nil {
		return err
	}

	link.IsActive = !link.IsActive
	if err := repos.Link.Update(link); err != nil {
		log.Errorf("Failed to toggle link %s: %v", link.UUID, err)
		fm := fiber.Map{
			"type":    "error",
			"message": "Falha ao alterar o status do link.",
		}
		return flash.WithError(c, fm).Redirect("/dashboard")
	}

	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

// HandleLinkDelete removes a link
func HandleLinkDelete(c *fiber.Ctx) error {
	repos := repository.GetGlobalFactory().GetRepositories()

	link, err := ownedLink(c, repos)
	if err != nil {
		return err
	}

	if err := repos.Link.Delete(link.ID); err != nil {
		log.Errorf("Failed to delete link %s: %v", link.UUID, err)
		fm := fiber.Map{
			"type":    "error",
			"message": "Falha ao excluir o link.",
		}
		return flash.WithError(c, fm).Redirect("/dashboard")
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Link excluído.",
	}
	return flash.WithSuccess(c, fm).Redirect("/dashboard")
}

// HandleLinkStats shows per-link click numbers for the last 30 days
func HandleLinkStats(c *fiber.Ctx) error {
	repos := repository.GetGlobalFactory().GetRepositories()

	link, err := ownedLink(c, repos)
	if err != nil {
		return err
	}

	end := time.Now()
	start := end.AddDate(0, 0, -30)

	daily, err := repos.Click.GetDailyCounts(link.ID, start, end)
	if err != nil {
		log.Errorf("Failed to load daily clicks for link %s: %v", link.UUID, err)
	}

	recent, err := repos.Click.GetRecentByLinkID(link.ID, 20)
	if err != nil {
		log.Errorf("Failed to load recent clicks for link %s: %v", link.UUID, err)
	}

	// The logged total is exact; the link counter is flushed in batches
	// and may lag behind it.
	total, err := repos.Click.CountByLinkID(link.ID)
	if err != nil {
		log.Errorf("Failed to count clicks for link %s: %v", link.UUID, err)
		total = link.ClickCount
	}

	return render(c, "dashboard/link_stats", fiber.Map{
		"Title":       "Estatísticas",
		"Link":        link,
		"Daily":       daily,
		"Recent":      recent,
		"TotalClicks": total,
	})
}

// HandleSuggestMessage asks the suggestion webhook for a greeting based
// on the user's self-description and always answers with some message.
func HandleSuggestMessage(c *fiber.Ctx) error {
	var payload struct {
		Description string `json:"description" form:"description"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "bad_request",
			"message": "invalid payload",
		})
	}

	client := suggest.NewClientFromEnv()
	message := client.GenerateMessage(c.UserContext(), payload.Description)

	return c.JSON(fiber.Map{"message": message})
}

// coerceWhatsapp prefixes a number typed without country code with the
// user's default country dial code. Numbers starting with + are kept.
func coerceWhatsapp(raw string, userID uint) string {
	if strings.HasPrefix(strings.TrimSpace(raw), "+") {
		return raw
	}
	country := phone.DefaultCountry()
	if settings, err := models.GetOrCreateUserSettings(database.GetDB(), userID); err == nil {
		country = phone.ByCode(settings.DefaultCountry)
	}
	return phone.Coerce(raw, country)
}

// ownedLink loads the link addressed by :uuid and checks ownership
func ownedLink(c *fiber.Ctx, repos *repository.Repositories) (*models.Link, error) {
	link, err := repos.Link.GetByUUID(c.Params("uuid"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Link não encontrado")
	}
	if link.UserID != usercontext.GetUserID(c) {
		return nil, fiber.NewError(fiber.StatusForbidden, "Este link não pertence a você")
	}
	return link, nil
}

// generateUniqueSlug draws random slugs until one is free
func generateUniqueSlug(links repository.LinkRepository) (string, error) {
	for i := 0; i < slugGenerationAttempts; i++ {
		slug, err := shortener.GenerateSecureSlug(shortener.DefaultSlugLength)
		if err != nil {
			return "", err
		}
		exists, err := links.SlugExists(slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
	}
	return "", fmt.Errorf("could not find a free slug after %d attempts", slugGenerationAttempts)
}

// errorMessages maps field error codes to their display strings
func errorMessages(errs linkform.FieldErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for field, code := range errs {
		if msg, ok := linkform.Messages[code]; ok {
			out[field] = msg
		} else {
			out[field] = code
		}
	}
	return out
}

func socialFromForm(c *fiber.Ctx) models.SocialLinks {
	return models.SocialLinks{
		Instagram: c.FormValue("instagram"),
		TikTok:    c.FormValue("tiktok"),
		Website:   c.FormValue("website"),
	}
}
