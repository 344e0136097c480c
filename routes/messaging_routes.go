package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/omondi-dev/messagebox/handlers"
	"github.com/omondi-dev/messagebox/middleware"
)

func MessagingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	messages := api.Group("/messages",
		middleware.Protected(),
		middleware.TimeRestriction(),
		middleware.MessageRateLimit(),
	)
	messages.Post("", handlers.SendMessage)
	messages.Get("/unread", handlers.GetUnreadMessages)
	messages.Get("/unread/recent", handlers.GetRecentUnreadMessages)
	messages.Get("/unread/count", handlers.GetUnreadCount)
	messages.Get("/unread/by-sender", handlers.GetUnreadCountBySender)
	messages.Post("/unread/mark-read", handlers.MarkMessagesAsRead)
	messages.Get("/:messageId/history", handlers.GetMessageHistory)
	messages.Put("/:messageId", handlers.EditMessage)
	messages.Delete("/:messageId", handlers.DeleteMessage)

	conversations := api.Group("/conversations", middleware.Protected())
	conversations.Get("/:userId", handlers.GetConversation)

	api.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws", websocket.New(handlers.ServeWs))
}
