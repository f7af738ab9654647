package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/fadilmartias/careermate-api/internal/config"
	"github.com/fadilmartias/careermate-api/internal/domain/fiber/handler"
	"github.com/fadilmartias/careermate-api/internal/middleware"
	"github.com/fadilmartias/careermate-api/internal/model"
	"github.com/fadilmartias/careermate-api/internal/repository"
	"github.com/fadilmartias/careermate-api/internal/service"
	"github.com/fadilmartias/careermate-api/internal/usecase"
	"github.com/fadilmartias/careermate-api/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appConfig := config.LoadAppConfig()
	production := appConfig.IsProduction()

	app := fiber.New(fiber.Config{
		AppName:      appConfig.Name,
		BodyLimit:    appConfig.BodyLimitMB * 1024 * 1024,
		ErrorHandler: handler.NewErrorHandler(production),
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: appConfig.AllowOrigins,
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !production,
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return production
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(appConfig.RateLimitMax, 1*time.Minute))

	geminiConfig := config.LoadGeminiConfig()
	llm, err := service.NewLLMGateway(ctx, config.LoadLLMConfig(), geminiConfig)
	if err != nil {
		log.Fatal(err)
	}

	ocrConfig := config.LoadOCRConfig()
	speechConfig := config.LoadSpeechConfig()

	prompts := service.NewPromptBuilder()
	names := service.NewNameService(service.NewProseTagger())
	similarity := service.NewSimilarityService(newEmbedder(ctx, geminiConfig))
	extractor := util.NewTextExtractor(ocrConfig.TesseractPath, ocrConfig.Language)

	var recognizer service.Recognizer
	google, err := service.NewGoogleRecognizer(ctx, speechConfig.APIKey, speechConfig.Language)
	if err != nil {
		log.Printf("Speech recognition disabled: %v", err)
	} else {
		defer google.Close()
		recognizer = google
	}
	speech := service.NewSpeechService(
		service.NewFFmpegTranscoder(speechConfig.FFmpegPath),
		recognizer,
		speechConfig.CalibrationWindow,
	)

	handlers := &handler.Handlers{
		Resume:    handler.NewResumeHandler(usecase.NewResumeUsecase(extractor, similarity, names)),
		Interview: handler.NewInterviewHandler(usecase.NewInterviewUsecase(llm, prompts, names)),
		Career:    handler.NewCareerHandler(usecase.NewCareerUsecase(llm, prompts)),
		Report:    handler.NewReportHandler(usecase.NewReportUsecase(service.NewReportService())),
		Speech:    handler.NewSpeechHandler(usecase.NewSpeechUsecase(speech)),
	}
	handlers.RegisterRoutes(app, middleware.RateLimiter(appConfig.LLMRateLimitMax(), 1*time.Minute))

	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				log.Printf("Active goroutines: %d", runtime.NumGoroutine())
			}
		}
	}()

	go func() {
		<-ctx.Done()
		log.Println("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Println("Server running on ", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

// newEmbedder prefers Gemini embeddings and falls back to the lexical
// embedder. Either is memoised in Postgres when a database is configured.
func newEmbedder(ctx context.Context, geminiConfig *config.GeminiConfig) service.Embedder {
	var embedder service.Embedder = service.NewLexicalEmbedder()
	if geminiConfig.APIKey != "" {
		gemini, err := service.NewGeminiService(ctx, geminiConfig)
		if err != nil {
			log.Printf("Gemini embeddings unavailable, using lexical embedder: %v", err)
		} else {
			embedder = gemini
		}
	}
	log.Printf("Using embedding model %s", embedder.ModelName())

	dbConfig := config.LoadDBConfig()
	if !dbConfig.Enabled() {
		return embedder
	}
	db, err := ConnectDB(dbConfig, config.LoadAppConfig())
	if err != nil {
		log.Printf("Embedding cache disabled: %v", err)
		return embedder
	}
	return service.NewCachedEmbedder(embedder, repository.NewEmbeddingRepository(db))
}

func ConnectDB(dbConfig *config.DBConfig, appConfig *config.AppConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	pgDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if appConfig.IsProduction() {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(100)
		pgDB.SetConnMaxLifetime(time.Hour)
	} else {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil && !strings.Contains(err.Error(), "already exists") {
		return nil, err
	}
	if err := db.AutoMigrate(&model.EmbeddingCache{}); err != nil {
		return nil, err
	}
	return db, nil
}
