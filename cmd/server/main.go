package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/jobtracker-ai/internal/config"
	"github.com/fadilmartias/jobtracker-ai/internal/domain/fiber/handler"
	"github.com/fadilmartias/jobtracker-ai/internal/middleware"
	"github.com/fadilmartias/jobtracker-ai/internal/model"
	"github.com/fadilmartias/jobtracker-ai/internal/repository"
	"github.com/fadilmartias/jobtracker-ai/internal/service"
	"github.com/fadilmartias/jobtracker-ai/internal/usecase"
	"github.com/fadilmartias/jobtracker-ai/internal/util"
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
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	authConfig := config.LoadAuthConfig()
	n8nConfig := config.LoadN8nConfig()
	if authConfig.JWTSecret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: usecase.MaxUploadSize + 1024*1024,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			// Status code defaults to 500
			code := fiber.StatusInternalServerError

			// Retrieve the custom status code if it's a *fiber.Error
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return util.ErrorResponse(ctx, util.ErrorResponseFormat{
				Code:    code,
				Message: message,
			})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-N8n-Secret",
	}))
	// Use middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // 1
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env == "production"
		},
	}))
	app.Use(healthcheck.New())

	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	db := ConnectDB()

	applicationRepo := repository.NewJobApplicationRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	generationRepo := repository.NewAIGenerationRepository(db)
	n8nRepo := repository.NewN8nGenerationRepository(db)
	linkedInRepo := repository.NewLinkedInJobRepository(db)
	settingRepo := repository.NewUserSettingRepository(db)

	// Gemini is optional; without a key only OpenRouter and n8n are usable.
	var gemini service.GeminiServiceInterface
	if svc, err := service.NewGeminiService(context.Background(), config.LoadGeminiConfig()); err != nil {
		log.Printf("Gemini disabled: %v", err)
	} else {
		gemini = svc
	}
	openRouter := service.NewOpenRouterService(config.LoadOpenRouterConfig())
	webhook := service.NewN8nService(n8nConfig)

	applicationUC := usecase.NewApplicationUsecase(applicationRepo)
	documentUC := usecase.NewDocumentUsecase(documentRepo, applicationRepo, appConfig.UploadDir, appConfig.BaseURL)
	linkedInUC := usecase.NewLinkedInJobUsecase(linkedInRepo, documentRepo, gemini)
	generationUC := usecase.NewGenerationUsecase(generationRepo, documentRepo, settingRepo, applicationRepo, linkedInRepo, gemini, openRouter)
	n8nUC := usecase.NewN8nUsecase(webhook, n8nRepo, generationRepo, applicationRepo, linkedInRepo, n8nConfig)

	handler.Mount(app,
		handler.NewN8nHandler(n8nUC, n8nConfig.CallbackSecret),
		middleware.RateLimiter(50, 1*time.Minute),
		middleware.Auth(authConfig.JWTSecret, authConfig.JWTIssuer),
		handler.NewApplicationHandler(applicationUC),
		handler.NewDocumentHandler(documentUC),
		handler.NewLinkedInJobHandler(linkedInUC),
		handler.NewGenerationHandler(generationUC),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Monitor goroutine count
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
		log.Println("Server running on ", appConfig.Port)
		if err := app.Listen(appConfig.Port); err != nil {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown: %v", err)
	}
	if err := n8nUC.Shutdown(shutdownCtx); err != nil {
		log.Printf("Watcher shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func ConnectDB() *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	for _, ext := range []string{`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`, `CREATE EXTENSION IF NOT EXISTS vector`} {
		if err := db.Exec(ext).Error; err != nil {
			log.Fatalf("could not enable extension: %v", err)
		}
	}

	err = db.AutoMigrate(
		&model.JobApplication{},
		&model.Document{},
		&model.AIGeneration{},
		&model.N8nGeneration{},
		&model.LinkedInJob{},
		&model.UserSetting{},
	)
	if err != nil {
		log.Fatal("migration failed: ", err)
	}
	return db
}
