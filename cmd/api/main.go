package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/repositories"
	"alfredoptarigan/resume-analyzer/internal/server"
	"alfredoptarigan/resume-analyzer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Println("✅ Config loaded successfully")

	logLevel := slog.LevelInfo
	if cfg.Server.Env == "development" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))

	ctx := context.Background()

	// Analysis history
	analysisRepo := repositories.NewNopAnalysisRepository()
	if cfg.Database.HistoryEnabled {
		db, err := config.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to initialize database: %v", err)
		}
		analysisRepo = repositories.NewAnalysisRepository(db)
		log.Println("✅ Analysis history enabled")
	}

	// Result cache
	cache := services.NewNopCache()
	if cfg.Cache.RedisAddr != "" {
		cache = services.NewRedisCache(services.RedisCacheOptions{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
			TTL:      cfg.Cache.TTL,
		}, logger)
		log.Println("✅ Result cache configured")
	}

	completion, err := services.NewCompletionClient(ctx, cfg.LLM)
	if err != nil {
		log.Fatalf("❌ Failed to initialize completion client: %v", err)
	}
	log.Printf("✅ Completion client initialized (%s, %s)\n", completion.Provider(), completion.Model())

	analyzer := services.NewAnalyzerService(
		completion,
		services.NewPDFParserService(),
		cache,
		analysisRepo,
		logger,
	)
	log.Println("✅ Analyzer service initialized")

	app := server.New(cfg, server.Dependencies{
		Analyzer:     analyzer,
		AnalysisRepo: analysisRepo,
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📖 API Documentation: http://localhost%s%s/\n", addr, cfg.Server.BasePath)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
