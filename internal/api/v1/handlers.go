package apiv1

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ramoneds/linkwhats/app/models"
	"github.com/ramoneds/linkwhats/app/repository"
	"github.com/ramoneds/linkwhats/internal/pkg/entitlements"
	"github.com/ramoneds/linkwhats/internal/pkg/linkform"
	"github.com/ramoneds/linkwhats/internal/pkg/middleware"
	"github.com/ramoneds/linkwhats/internal/pkg/schedule"
	"github.com/ramoneds/linkwhats/internal/pkg/shortener"
	"github.com/ramoneds/linkwhats/internal/pkg/usercontext"
)

// APIServer implements the versioned JSON API
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// RegisterHandlers attaches all v1 routes to the given group. Every
// route except ping requires an API key.
func RegisterHandlers(router fiber.Router, s *APIServer) {
	router.Get("/ping", s.GetPing)

	protected := router.Group("", middleware.APIKeyAuthMiddleware())
	protected.Get("/user/profile", s.GetUserProfile)
	protected.Get("/links", s.ListLinks)
	protected.Post("/links", s.CreateLink)
	protected.Get("/links/:uuid", s.GetLink)
	protected.Patch("/links/:uuid", s.UpdateLink)
	protected.Delete("/links/:uuid", s.DeleteLink)
	protected.Get("/links/:uuid/stats", s.GetLinkStats)
}

// GetPing handles the health check endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(Pong{Ping: "pong"})
}

// GetUserProfile returns account information for the authenticated user
func (s *APIServer) GetUserProfile(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	user, err := repository.GetGlobalFactory().GetUserRepository().GetByID(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "user not found"})
	}

	return c.JSON(UserProfile{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Plan:      userCtx.Plan,
		CreatedAt: user.CreatedAt,
	})
}

// ListLinks returns all links owned by the caller
func (s *APIServer) ListLinks(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)

	links, err := repository.GetGlobalFactory().GetLinkRepository().GetByUserID(userID)
	if err != nil {
		log.Errorf("api: failed to list links for user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error"})
	}

	resources := make([]LinkResource, 0, len(links))
	for i := range links {
		resources = append(resources, toLinkResource(&links[i]))
	}
	return c.JSON(fiber.Map{"links": resources})
}

// CreateLink validates a JSON payload and creates a link for the caller.
// Gated fields submitted by free-plan users are coerced to defaults, not
// rejected, matching the web form behavior.
func (s *APIServer) CreateLink(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	plan := entitlements.NormalizePlan(userCtx.Plan)
	repos := repository.GetGlobalFactory().GetRepositories()

	var req CreateLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid JSON payload"})
	}

	if max := entitlements.MaxLinks(plan); max > 0 {
		count, err := repos.Link.CountByUserID(userCtx.UserID)
		if err != nil {
			log.Errorf("api: failed to count links for user %d: %v", userCtx.UserID, err)
		}
		if count >= int64(max) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":   "plan_limit_reached",
				"message": "your plan allows a single link",
			})
		}
	}

	normalized, fieldErrs := linkform.Validate(linkform.Input{
		Name:     req.Name,
		Slug:     req.Slug,
		Whatsapp: req.Whatsapp,
		Message:  req.Message,
		Redirect: req.Redirect,
	})
	if len(fieldErrs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ValidationError{
			Error:  "validation_failed",
			Fields: fieldErrs,
		})
	}

	slug := normalized.Slug
	if slug == "" {
		var err error
		slug, err = freeSlug(repos.Link)
		if err != nil {
			log.Errorf("api: slug generation failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error"})
		}
	} else {
		exists, err := repos.Link.SlugExists(slug)
		if err != nil {
			log.Errorf("api: slug lookup failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error"})
		}
		if exists {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":   "slug_taken",
				"message": "this slug is already in use",
			})
		}
	}

	start, end := schedule.ParseWindow(req.ScheduleStart, req.ScheduleEnd)
	extras := entitlements.ApplyPlanDefaults(plan, entitlements.LinkExtras{
		BgColor:       req.BgColor,
		BtnColor:      req.BtnColor,
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

	if err := repos.Link.Create(link); err != nil {
		log.Errorf("api: failed to create link: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error"})
	}

	return c.Status(fiber.StatusCreated).JSON(toLinkResource(link))
}

// GetLink returns a single owned link by UUID
func (s *APIServer) GetLink(c *fiber.Ctx) error {
	link, ok := s.ownedLink(c)
	if !ok {
		return nil
	}
	return c.JSON(toLinkResource(link))
}

// UpdateLink applies a partial update to an owned link. Absent fields
// keep their stored values; the slug cannot change.
func (s *APIServer) UpdateLink(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	plan := entitlements.NormalizePlan(userCtx.Plan)
	repos := repository.GetGlobalFactory().GetRepositories()

	link, ok := s.ownedLink(c)
	if !ok {
		return nil
	}

	var req UpdateLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid JSON payload"})
	}

	merged := linkform.Input{
		Name:     pick(req.Name, link.Name),
		Slug:     link.Slug,
		Whatsapp: pick(req.Whatsapp, link.Whatsapp),
		Message:  pick(req.Message, link.Message),
		Redirect: pick(req.Redirect, link.Redirect),
	}
	normalized, fieldErrs := linkform.Validate(merged)
	if len(fieldErrs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ValidationError{
			Error:  "validation_failed",
			Fields: fieldErrs,
		})
	}

	startRaw, endRaw := "", ""
	if link.ScheduleStart != nil {
		startRaw = link.ScheduleStart.Format(time.RFC3339)
	}
	if link.ScheduleEnd != nil {
		endRaw = link.ScheduleEnd.Format(time.RFC3339)
	}
	start, end := schedule.ParseWindow(pick(req.ScheduleStart, startRaw), pick(req.ScheduleEnd, endRaw))

	extras := entitlements.ApplyPlanDefaults(plan, entitlements.LinkExtras{
		BgColor:       pick(req.BgColor, link.BgColor),
		BtnColor:      pick(req.BtnColor, link.BtnColor),
		ScheduleStart: start,
		ScheduleEnd:   end,
		Redirect:      normalized.Redirect,
	})

	link.Name = normalized.Name
	link.Whatsapp = "+" + normalized.WhatsappDigits
	link.Message = normalized.Message
	if req.IsActive != nil {
		link.IsActive = *req.IsActive
	}
	link.BgColor = extras.BgColor
	link.BtnColor = extras.BtnColor
	link.ScheduleStart = extras.ScheduleStart
	link.ScheduleEnd = extras.ScheduleEnd
	link.Redirect = extras.Redirect

	if err := repos.Link.Update(link); err != nil {
		log.Errorf("api: failed to update link %s: %v", link.UUID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error"})
	}

	return c.JSON(toLinkResource(link))
}

// DeleteLink removes an owned link
func (s *APIServer) DeleteLink(c *fiber.Ctx) error {
	link, ok := s.ownedLink(c)
	if !ok {
		return nil
	}

	if err := repository.GetGlobalFactory().GetLinkRepository().Delete(link.ID); err != nil {
		log.Errorf("api: failed to delete link %s: %v", link.UUID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetLinkStats returns the 30 day click series for an owned link
func (s *APIServer) GetLinkStats(c *fiber.Ctx) error {
	link, ok := s.ownedLink(c)
	if !ok {
		return nil
	}

	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -30)

	daily, err := repository.GetGlobalFactory().GetClickLogRepository().GetDailyCounts(link.ID, startDate, endDate)
	if err != nil {
		log.Errorf("api: failed to load stats for link %s: %v", link.UUID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error"})
	}

	entries := make([]DailyClicksEntry, 0, len(daily))
	for _, d := range daily {
		entries = append(entries, DailyClicksEntry{
			Date:  d.Date.Format("2006-01-02"),
			Count: d.Count,
		})
	}

	return c.JSON(LinkStats{
		UUID:        link.UUID,
		TotalClicks: link.ClickCount,
		Daily:       entries,
	})
}

// ownedLink resolves :uuid and checks ownership. On failure the error
// response is already written and ok is false.
func (s *APIServer) ownedLink(c *fiber.Ctx) (*models.Link, bool) {
	link, err := repository.GetGlobalFactory().GetLinkRepository().GetByUUID(c.Params("uuid"))
	if err != nil {
		_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "link not found"})
		return nil, false
	}
	if link.UserID != usercontext.GetUserID(c) {
		_ = c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden", "message": "link belongs to another user"})
		return nil, false
	}
	return link, true
}

func toLinkResource(link *models.Link) LinkResource {
	return LinkResource{
		UUID:          link.UUID,
		Name:          link.Name,
		Slug:          link.Slug,
		Whatsapp:      link.Whatsapp,
		Message:       link.Message,
		IsActive:      link.IsActive,
		State:         string(link.EffectiveState(time.Now())),
		BgColor:       link.BgColor,
		BtnColor:      link.BtnColor,
		ScheduleStart: link.ScheduleStart,
		ScheduleEnd:   link.ScheduleEnd,
		Redirect:      link.Redirect,
		PageURL:       "/l/" + link.Slug,
		WhatsappURL:   link.WhatsAppURL(),
		ClickCount:    link.ClickCount,
		CreatedAt:     link.CreatedAt,
	}
}

// pick returns the patched value when the field was present in the payload
func pick(patch *string, current string) string {
	if patch != nil {
		return *patch
	}
	return current
}

func freeSlug(links repository.LinkRepository) (string, error) {
	const attempts = 5
	for i := 0; i < attempts; i++ {
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
	return "", fmt.Errorf("could not find a free slug after %d attempts", attempts)
}
