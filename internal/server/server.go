package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/handlers"
	"alfredoptarigan/resume-analyzer/internal/repositories"
	"alfredoptarigan/resume-analyzer/internal/services"
)

const (
	appName = "AI Resume Analyzer API"
	version = "1.0.0"

	// Room for the job description and multipart framing on top of the file.
	formOverhead = 1 << 20
)

type Dependencies struct {
	Analyzer     services.AnalyzerService
	AnalysisRepo repositories.AnalysisRepository
}

func New(cfg *config.Config, deps Dependencies) *fiber.App {
	if deps.AnalysisRepo == nil {
		deps.AnalysisRepo = repositories.NewNopAnalysisRepository()
	}

	app := fiber.New(fiber.Config{
		AppName:      appName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Upload.MaxFileSize) + formOverhead,
		ErrorHandler: handlers.ErrorHandler,
	})

	registerMiddleware(app, cfg)
	registerRoutes(app, cfg, deps)

	return app
}

func registerMiddleware(app *fiber.App, cfg *config.Config) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path} ${locals:requestid}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	// Request headers are reflected when AllowHeaders is empty.
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSAllowOrigin,
		AllowCredentials: true,
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS",
	}))
}

func registerRoutes(app *fiber.App, cfg *config.Config, deps Dependencies) {
	var router fiber.Router = app
	if cfg.Server.BasePath != "" {
		router = app.Group(cfg.Server.BasePath)
	}

	analyzeHandler := handlers.NewAnalyzeHandler(deps.Analyzer, cfg.Upload.MaxFileSize)
	resultHandler := handlers.NewResultHandler(deps.AnalysisRepo)

	router.Get("/health", handlers.HandleHealth)
	router.Post("/analyze-pdf", analyzeHandler.HandleAnalyzePDF)
	router.Post("/analyze", analyzeHandler.HandleAnalyzeText)
	router.Get("/analyses/:id", resultHandler.HandleGetAnalysis)

	base := cfg.Server.BasePath
	router.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": appName,
			"version": version,
			"endpoints": []string{
				"POST " + base + "/analyze-pdf",
				"POST " + base + "/analyze",
				"GET " + base + "/analyses/:id",
				"GET " + base + "/health",
			},
		})
	})
}
