package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Messaging is open between 06:00 and 21:00 local time.
const (
	openHour  = 6
	closeHour = 21
)

// TimeRestriction rejects messaging traffic outside the open window.
func TimeRestriction() fiber.Handler {
	return timeRestriction(time.Now)
}

func timeRestriction(now func() time.Time) fiber.Handler {
	return func(c *fiber.Ctx) error {
		hour := now().Hour()
		if hour < openHour || hour >= closeHour {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Access denied: Chat is only available between 6AM and 9PM",
			})
		}
		return c.Next()
	}
}
