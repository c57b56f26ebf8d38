package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"game-community-platform/handlers"
	"game-community-platform/models"
	"game-community-platform/services"
	"game-community-platform/utils"
	"game-community-platform/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // 20MB, images only
	})

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(allowedOriginsList, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}
	tokenTTL := 30 * 24 * time.Hour
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			log.Fatal("TOKEN_TTL is not a valid duration:", err)
		}
		tokenTTL = ttl
	}

	if err := utils.InitR2(); err != nil {
		log.Printf("⚠️  R2 disabled (%v), images are served from ./uploads", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Game{},
		&models.Rating{},
		&models.Publication{},
		&models.PublicationVote{},
		&models.Comment{},
		&models.CommentVote{},
		&models.Favourite{},
		&models.Event{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := utils.EnsureUploadDir(); err != nil {
		log.Fatal("failed to ensure upload dir:", err)
	}

	authService := services.NewAuthService(db, jwtSecret, tokenTTL)
	gameService := services.NewGameService(db)
	publicationService := services.NewPublicationService(db)
	commentService := services.NewCommentService(db)
	eventService := services.NewEventService(db)
	favouriteService := services.NewFavouriteService(db)
	adminService := services.NewAdminService(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Aggregate self-healing: re-derive counters/averages from the ledgers.
	reconciler := workers.NewAggregateReconciler(db)
	go reconciler.Run(ctx, 10*time.Minute)

	publicationService.StartPublishScheduler()

	handlers.SetupAuthRoutes(app, authService)
	handlers.SetupGameRoutes(app, gameService, jwtSecret)
	handlers.SetupPublicationRoutes(app, publicationService, jwtSecret)
	handlers.SetupCommentRoutes(app, commentService, jwtSecret)
	handlers.SetupEventRoutes(app, eventService, jwtSecret)
	handlers.SetupFavouriteRoutes(app, favouriteService, jwtSecret)
	handlers.SetupAdminRoutes(app, adminService, jwtSecret)

	app.Static("/uploads", utils.UploadRoot())

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Publication scheduler running (every minute)")
	log.Println("✅ Aggregate reconciler running (every 10m)")

	<-ctx.Done()
	log.Println("Shutting down server...")
	_ = app.Shutdown()
}
