package router

import (
	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"

	"github.com/ramoneds/linkwhats/app/controllers"
	"github.com/ramoneds/linkwhats/internal/pkg/middleware"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Marketing pages
	app.Get("/pricing", loggedInMiddleware, controllers.HandlePricing)
	app.Get("/features", loggedInMiddleware, controllers.HandleFeatures)
	app.Get("/faq", loggedInMiddleware, controllers.HandleFAQ)

	// Public link pages. These bypass CSRF entirely: they are read-only
	// and must stay reachable from any referrer.
	app.Get("/l/:slug", loggedInMiddleware, controllers.HandlePublicLink)
	app.Get("/l/:slug/go", loggedInMiddleware, controllers.HandlePublicLinkGo)

	// Auth
	app.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)

	// Social OAuth
	app.Get("/auth/:provider", gothfiber.BeginAuthHandler)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)
}
