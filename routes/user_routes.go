package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/omondi-dev/messagebox/handlers"
	"github.com/omondi-dev/messagebox/middleware"
)

func UserRoutes(app *fiber.App) {
	users := app.Group("/api/v1/users", middleware.Protected())
	users.Get("/me", handlers.GetProfile)
	users.Delete("/me", handlers.DeleteAccount)
}
