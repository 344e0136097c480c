package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/omondi-dev/messagebox/cache"
	config "github.com/omondi-dev/messagebox/configs"
	"github.com/omondi-dev/messagebox/database"
	"github.com/omondi-dev/messagebox/jobs"
	"github.com/omondi-dev/messagebox/middleware"
	"github.com/omondi-dev/messagebox/routes"
	"github.com/omondi-dev/messagebox/websocket"
	"github.com/robfig/cron/v3"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()

	digest := jobs.NewDigestJob(database.DB, cache.New())
	c := cron.New()
	if _, err := c.AddFunc(jobs.DigestSchedule, digest.Run); err != nil {
		log.Fatalf("🔥 Failed to schedule unread digest job: %v", err)
	}
	go c.Start()
	log.Println("✅ Cron job for unread digest scheduled successfully.")

	app := fiber.New(fiber.Config{
		AppName:       "MessageBox",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(middleware.RequestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routes.AuthRoutes(app)
	routes.UserRoutes(app)
	routes.MessagingRoutes(app)
	routes.NotificationRoutes(app)
	routes.AdminRoutes(app)

	go websocket.RunHub()

	port := config.ConfigOr("SERVER_PORT", "8080")
	log.Printf("✅ Server is running on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
