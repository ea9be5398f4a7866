package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/TucanHome/tucan-chat-api/config"
	"github.com/TucanHome/tucan-chat-api/handlers"
	"github.com/TucanHome/tucan-chat-api/middleware"
	"github.com/TucanHome/tucan-chat-api/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found")
	}

	// Initialize structured logger
	logHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(logHandler))

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := services.InitMongoDB(ctx, cfg.MongoURI)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.DatabaseName)

	// Initialize the store and its indexes
	store := services.NewStore(db)
	if err := store.EnsureIndexes(ctx); err != nil {
		slog.Error("Failed to create indexes", "error", err)
		// Continue anyway - the app can still work without indexes
	}

	// Initialize collaborators
	completions := services.NewCompletionClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)
	intents := services.NewIntentResolver(completions)
	catalog := services.NewCatalog(db, cfg.CatalogEnabled, cfg.CatalogLimit)
	contacts := services.NewBrevoClient(cfg.BrevoAPIKey, cfg.BrevoListID)
	adminSessions := services.NewAdminSessions(db)
	feed := services.NewFeedManager()

	// Start the offline classification scheduler
	jobCtx, cancelJob := context.WithCancel(context.Background())
	defer cancelJob()

	job := services.NewClassifyJob(store, cfg.ClassifyBatchSize)
	job.Start(jobCtx, cfg.ClassifyInterval)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit: 1 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			slog.Error("Request error", "error", err, "status", code)
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(helmet.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: time.Minute,
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path}\n",
	}))

	// Handlers
	chat := &handlers.ChatHandler{
		Store:        store,
		Completions:  completions,
		Intents:      intents,
		Catalog:      catalog,
		Feed:         feed,
		CatalogLimit: cfg.CatalogLimit,
	}
	logs := &handlers.LogHandler{Store: store, Feed: feed}
	leads := &handlers.LeadHandler{Store: store, Contacts: contacts, Feed: feed}
	products := &handlers.ProductsHandler{Catalog: catalog, DefaultLimit: cfg.CatalogLimit}
	auth := &handlers.AuthHandler{
		Sessions:     adminSessions,
		Username:     cfg.AdminUser,
		PasswordHash: cfg.AdminPasswordHash,
	}
	dash := &handlers.DashboardHandler{Store: store, Job: job}

	// Public API endpoints
	api := app.Group("/api")
	api.Post("/chat", chat.Handle)
	api.Post("/log", logs.Handle)
	api.Post("/lead", leads.Handle)
	api.Get("/products", products.Handle)

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	// Admin authentication
	authGroup := app.Group("/auth")
	authGroup.Post("/login", auth.Login)
	authGroup.Post("/logout", auth.Logout)

	// Dashboard endpoints (protected)
	dashboard := app.Group("/api/dashboard", middleware.RequireAuth(adminSessions))
	dashboard.Get("/metrics", dash.Metrics)
	dashboard.Get("/leads", dash.Leads)
	dashboard.Get("/sessions/:sessionID/messages", dash.SessionMessages)
	dashboard.Post("/classify/run", dash.RunClassify)
	dashboard.Get("/ws", handlers.WebSocketUpgrade, websocket.New(feed.HandleConnection))

	// Start server
	slog.Info("Server starting", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}
