package router

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"

	"github.com/ramoneds/linkwhats/app/controllers"
	"github.com/ramoneds/linkwhats/internal/pkg/env"
	"github.com/ramoneds/linkwhats/internal/pkg/middleware"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}

	group := app.Group("", cors.New(), csrf.New(csrfConf))
	group.Get("/", loggedInMiddleware, controllers.HandleHome)
	group.Get("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Post("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Get("/register", loggedInMiddleware, controllers.HandleAuthRegister)
	group.Post("/register", loggedInMiddleware, controllers.HandleAuthRegister)
	group.Get("/activate", loggedInMiddleware, controllers.HandleAuthActivate)

	// Dashboard
	group.Get("/dashboard", middleware.RequireAuth, controllers.HandleDashboard)
	group.Get("/dashboard/links/new", middleware.RequireAuth, controllers.HandleLinkNew)
	group.Post("/dashboard/links/new", middleware.RequireAuth, controllers.HandleLinkNew)
	group.Get("/dashboard/links/:uuid/edit", middleware.RequireAuth, controllers.HandleLinkEdit)
	group.Post("/dashboard/links/:uuid/edit", middleware.RequireAuth, controllers.HandleLinkEdit)
	group.Post("/dashboard/links/:uuid/toggle", middleware.RequireAuth, controllers.HandleLinkToggle)
	group.Post("/dashboard/links/:uuid/delete", middleware.RequireAuth, controllers.HandleLinkDelete)
	group.Get("/dashboard/links/:uuid/stats", middleware.RequireAuth, controllers.HandleLinkStats)
	group.Post("/dashboard/suggest-message", middleware.RequireAPISessionAuth, controllers.HandleSuggestMessage)

	// Account
	group.Get("/user/profile", middleware.RequireAuth, controllers.HandleUserProfile)
	group.Post("/user/profile/edit", middleware.RequireAuth, controllers.HandleUserProfileEdit)
	group.Post("/user/profile/avatar", middleware.RequireAuth, controllers.HandleUserAvatar)
	group.Get("/user/settings", middleware.RequireAuth, controllers.HandleUserSettings)
	group.Post("/user/settings", middleware.RequireAuth, controllers.HandleUserSettings)
	group.Post("/user/settings/api-key", middleware.RequireAuth, controllers.HandleUserAPIKeyIssue)
	group.Post("/user/settings/api-key/revoke", middleware.RequireAuth, controllers.HandleUserAPIKeyRevoke)
	group.Get("/user/plan/refresh", middleware.RequireAuth, controllers.HandleUserPlanRefresh)

	// Plans
	group.Get("/upgrade", middleware.RequireAuth, controllers.HandleUpgrade)
	group.Post("/upgrade", middleware.RequireAuth, controllers.HandleUpgrade)
}
