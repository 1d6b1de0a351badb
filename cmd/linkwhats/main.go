package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"

	"github.com/ramoneds/linkwhats/app/models"
	"github.com/ramoneds/linkwhats/app/repository"
	"github.com/ramoneds/linkwhats/internal/pkg/cache"
	"github.com/ramoneds/linkwhats/internal/pkg/clickqueue"
	"github.com/ramoneds/linkwhats/internal/pkg/database"
	"github.com/ramoneds/linkwhats/internal/pkg/env"
	"github.com/ramoneds/linkwhats/internal/pkg/router"
)

func main() {
	app := NewApplication()

	clickqueue.GetManager().Start()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		clickqueue.GetManager().Stop()
		_ = app.Shutdown()
	}()

	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()
	seedPlanCatalog()

	// Define possible base paths
	basePaths := []string{
		"./",        // Current directory
		"../../",    // From cmd/linkwhats to project root
		"../../../", // Fallback
	}

	// Find the correct base path
	basePath := ""
	for _, path := range basePaths {
		if _, err := os.Stat(path + "views"); !os.IsNotExist(err) {
			basePath = path
			break
		}
	}

	if basePath == "" {
		panic("Could not find project root directory")
	}

	// init fiber app
	app := fiber.New(fiber.Config{
		Views: html.New(basePath+"views", ".html"),
	})

	// ignore and cache favicon
	app.Use(favicon.New(favicon.Config{
		File:         basePath + "public/assets/icons/favicon.ico",
		URL:          "/favicon.ico",
		CacheControl: "public, max-age=604800",
	}))

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	metricsAuth := basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("METRICS_USER", "admin"): env.GetEnv("METRICS_PASSWORD", "admin"),
		},
	})
	app.Get("/metrics", metricsAuth, monitor.New())
	app.Get("/metrics/clickqueue", metricsAuth, func(c *fiber.Ctx) error {
		queue := clickqueue.GetManager().GetQueue()
		size, err := queue.GetQueueSize(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		stats, err := queue.GetStats(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		return c.JSON(fiber.Map{"pending": size, "events": stats})
	})

	// static files
	app.Static("/", basePath+"public/assets", fiber.Static{
		CacheDuration: 15 * time.Second,
		Compress:      true,
	})

	// SWAGGER / OPENAPI
	openAPICfg := swagger.Config{
		BasePath: "/docs/api/",
		FilePath: basePath + "public/docs/v1/openapi.yml",
		Path:     "v1",
	}
	app.Use(swagger.New(openAPICfg))

	// ROUTER
	router.InstallRouter(app)

	return app
}

// seedPlanCatalog keeps the pricing page in sync with the two offered tiers
func seedPlanCatalog() {
	repo := repository.GetGlobalFactory().GetPlanRepository()

	free := &models.Plan{
		Name:        "Grátis",
		PriceCents:  0,
		Description: "Para usuários iniciantes",
	}
	if err := free.SetFeatures([]string{
		"Um link personalizado",
		"Página de redirecionamento básica",
		"QR Code básico",
		"Estatísticas básicas",
	}); err != nil {
		log.Printf("Failed to encode free plan features: %v", err)
	}

	pro := &models.Plan{
		Name:        "Pro",
		PriceCents:  2990,
		Description: "Para profissionais e empresas",
	}
	if err := pro.SetFeatures([]string{
		"Links ilimitados",
		"Personalização completa da página",
		"QR Code personalizado",
		"Estatísticas avançadas",
		"Múltiplos números de WhatsApp",
		"Remoção da marca LinkWhats",
		"Suporte prioritário",
	}); err != nil {
		log.Printf("Failed to encode pro plan features: %v", err)
	}

	for _, plan := range []*models.Plan{free, pro} {
		if err := repo.Save(plan); err != nil {
			log.Printf("Failed to seed plan %s: %v", plan.Name, err)
		}
	}
}
