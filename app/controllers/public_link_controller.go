package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ramoneds/linkwhats/app/repository"
	"github.com/ramoneds/linkwhats/internal/pkg/clickqueue"
)

// HandlePublicLink serves the public redirect page at /l/:slug.
// Unknown slugs and links outside their schedule window render the same
// unavailable page so the two cases are indistinguishable to visitors.
func HandlePublicLink(c *fiber.Ctx) error {
	repos := repository.GetGlobalFactory().GetRepositories()

	link, err := repos.Link.GetBySlug(c.Params("slug"))
	if err != nil || !link.IsReachable(time.Now()) {
		return c.Status(fiber.StatusNotFound).Render("public/link_unavailable", fiber.Map{
			"Title": "Link indisponível",
		}, "layouts/public")
	}

	recordClick(c, link.ID)

	return c.Render("public/link", fiber.Map{
		"Title":       link.Name,
		"Link":        link,
		"Social":      link.Social(),
		"WhatsAppURL": link.WhatsAppURL(),
	}, "layouts/public")
}

// HandlePublicLinkGo is the actual jump: it counts nothing extra and
// sends the visitor to WhatsApp, or to the pro redirect override.
func HandlePublicLinkGo(c *fiber.Ctx) error {
	repos := repository.GetGlobalFactory().GetRepositories()

	link, err := repos.Link.GetBySlug(c.Params("slug"))
	if err != nil || !link.IsReachable(time.Now()) {
		return c.Status(fiber.StatusNotFound).Render("public/link_unavailable", fiber.Map{
			"Title": "Link indisponível",
		}, "layouts/public")
	}

	target := link.WhatsAppURL()
	if link.Redirect != "" {
		target = link.Redirect
	}

	return c.Redirect(target, fiber.StatusFound)
}

// recordClick enqueues a click event without blocking the page render
func recordClick(c *fiber.Ctx, linkID uint) {
	event := clickqueue.NewClickEvent(linkID)
	event.IPv4, event.IPv6 = GetClientIP(c)
	event.UserAgent = c.Get("User-Agent")
	event.Referer = c.Get("Referer")
	event.Country = c.Get("CF-IPCountry")

	if err := clickqueue.GetManager().GetQueue().Enqueue(event); err != nil {
		log.Errorf("Failed to enqueue click for link %d: %v", linkID, err)
	}
}
