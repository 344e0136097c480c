package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/omondi-dev/messagebox/handlers"
	"github.com/omondi-dev/messagebox/middleware"
)

func NotificationRoutes(app *fiber.App) {
	notifications := app.Group("/api/v1/notifications", middleware.Protected())
	notifications.Get("", handlers.GetNotifications)
	notifications.Put("/:notificationId/read", handlers.MarkNotificationRead)
}
