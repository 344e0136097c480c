package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/omondi-dev/messagebox/handlers"
	"github.com/omondi-dev/messagebox/middleware"
)

func AdminRoutes(app *fiber.App) {
	admin := app.Group("/api/v1/admin",
		middleware.Protected(),
		middleware.RequireRole("admin", "moderator"),
	)
	admin.Get("/unread", handlers.GetAllUnreadMessages)
}
