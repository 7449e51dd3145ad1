package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"dealbridge/db/migrations"
	"dealbridge/internal/config"
	"dealbridge/internal/domain"
	"dealbridge/internal/handler"
	"dealbridge/internal/middleware"
	"dealbridge/internal/repository"
	"dealbridge/internal/service"
	"dealbridge/internal/service/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (attachments will not work)", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redisClient, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)
	authGroup.Post("/logout", h.Auth.Logout)

	protected := v1.Group("", middleware.AuthRequired(authService))

	users := protected.Group("/users")
	users.Get("/me", h.User.Me)
	users.Put("/me", h.User.UpdateMe)
	users.Get("/buyers", middleware.RequireAnyRole(domain.RoleSeller, domain.RoleAdmin), h.User.ListBuyers)
	users.Get("/", middleware.RequireRole(domain.RoleAdmin), h.User.ListAll)
	users.Delete("/:userId", middleware.RequireRole(domain.RoleAdmin), h.User.Deactivate)

	proposals := protected.Group("/proposals")
	proposals.Post("/", middleware.RequireRole(domain.RoleSeller), h.Proposal.Create)
	proposals.Get("/", middleware.RequireRole(domain.RoleAdmin), h.Proposal.ListAll)
	proposals.Get("/approved", h.Proposal.ListApproved)
	proposals.Get("/mine", middleware.RequireRole(domain.RoleSeller), h.Proposal.ListMine)
	proposals.Get("/:proposalId", h.Proposal.Get)
	proposals.Patch("/:proposalId", middleware.RequireRole(domain.RoleSeller), h.Proposal.Update)
	proposals.Delete("/:proposalId", middleware.RequireRole(domain.RoleSeller), h.Proposal.Delete)
	proposals.Post("/:proposalId/submit", middleware.RequireRole(domain.RoleSeller), h.Proposal.Submit)
	proposals.Post("/:proposalId/resubmit", middleware.RequireRole(domain.RoleSeller), h.Proposal.Resubmit)
	proposals.Post("/:proposalId/archive", h.Proposal.Archive)
	proposals.Post("/:proposalId/review", middleware.RequireRole(domain.RoleAdmin), h.Proposal.Review)

	proposals.Post("/:proposalId/attachments", middleware.RequireRole(domain.RoleSeller), h.Attachment.Upload)
	proposals.Get("/:proposalId/attachments", h.Attachment.List)

	attachments := protected.Group("/attachments")
	attachments.Get("/:attachmentId/download", h.Attachment.Download)
	attachments.Delete("/:attachmentId", middleware.RequireRole(domain.RoleSeller), h.Attachment.Delete)

	casesGroup := protected.Group("/cases")
	casesGroup.Post("/", middleware.RequireRole(domain.RoleSeller), h.Case.Create)
	casesGroup.Get("/sent", middleware.RequireRole(domain.RoleSeller), h.Case.ListSent)
	casesGroup.Get("/received", middleware.RequireRole(domain.RoleBuyer), h.Case.ListReceived)
	casesGroup.Get("/:caseId", h.Case.Get)
	casesGroup.Post("/:caseId/express-interest", middleware.RequireRole(domain.RoleBuyer), h.Case.ExpressInterest)
	casesGroup.Post("/:caseId/decline", middleware.RequireRole(domain.RoleBuyer), h.Case.Decline)
	casesGroup.Post("/:caseId/sign-nda", middleware.RequireRole(domain.RoleBuyer), h.Case.SignNDA)
	casesGroup.Post("/:caseId/advance", middleware.RequireRole(domain.RoleAdmin), h.Case.Advance)
	casesGroup.Post("/:caseId/complete", middleware.RequireRole(domain.RoleAdmin), h.Case.Complete)
	casesGroup.Get("/:caseId/contact-info", h.Case.ContactInfo)

	casesGroup.Post("/:caseId/comments", h.Comment.Create)
	casesGroup.Get("/:caseId/comments", h.Comment.List)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.UnreadCount)
	notifications.Patch("/:notificationId/read", h.Notification.MarkRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllRead)

	auditGroup := protected.Group("/audit", middleware.RequireRole(domain.RoleAdmin))
	auditGroup.Get("/recent", h.Audit.ListRecent)
	auditGroup.Get("/:entityType/:entityId", h.Audit.ListByEntity)
}
