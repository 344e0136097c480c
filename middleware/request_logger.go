package middleware

import (
	"io"
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/omondi-dev/messagebox/utils"
)

// RequestLogger logs every request as "User: <email> - Path: <path>" to
// requests.log and stdout. It runs ahead of the JWT middleware, so the
// bearer token is parsed here; requests without a valid one log as
// Anonymous.
func RequestLogger() fiber.Handler {
	var out io.Writer = os.Stdout
	file, err := os.OpenFile("requests.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("requests.log unavailable, logging requests to stdout only: %v", err)
	} else {
		out = io.MultiWriter(os.Stdout, file)
	}
	logger := log.New(out, "", log.LstdFlags)

	return func(c *fiber.Ctx) error {
		user := "Anonymous"
		if auth := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(auth, "Bearer ") {
			if claims, err := utils.ParseToken(strings.TrimPrefix(auth, "Bearer ")); err == nil {
				if email, ok := claims["email"].(string); ok {
					user = email
				}
			}
		}
		logger.Printf("User: %s - Path: %s", user, c.Path())
		return c.Next()
	}
}
