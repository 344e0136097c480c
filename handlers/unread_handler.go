package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/omondi-dev/messagebox/database"
	"github.com/omondi-dev/messagebox/services"
	"github.com/omondi-dev/messagebox/utils"
)

// MarkAsReadRequest distinguishes "all unread" from "none selected": an
// absent message_ids field means everything, an explicit empty array
// selects nothing.
type MarkAsReadRequest struct {
	MessageIDs []string `json:"message_ids"`
}

func callerID(c *fiber.Ctx) (uuid.UUID, error) {
	token := c.Locals("user").(*jwt.Token)
	return utils.UserIDFromClaims(token.Claims.(jwt.MapClaims))
}

// GetUnreadMessages lists every unread message in the caller's inbox,
// regardless of age. Use the /recent variant for a time-bounded view.
func GetUnreadMessages(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user identity"})
	}

	messages, err := services.NewUnreadService(database.DB).ForUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch unread messages"})
	}
	return c.JSON(messages)
}

// GetRecentUnreadMessages lists unread messages inside a sliding window.
// The window defaults to the last seven days; ?days=N overrides it.
func GetRecentUnreadMessages(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user identity"})
	}

	days := services.DefaultRecentDays
	if daysParam := c.Query("days"); daysParam != "" {
		days, err = strconv.Atoi(daysParam)
		if err != nil || days < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "days must be a non-negative integer"})
		}
	}

	messages, err := services.NewUnreadService(database.DB).RecentUnreadForUser(userID, days)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch unread messages"})
	}
	return c.JSON(messages)
}

func GetUnreadCount(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user identity"})
	}

	count, err := services.NewUnreadService(database.DB).CountForUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to count unread messages"})
	}
	return c.JSON(fiber.Map{"unread_count": count})
}

func GetUnreadCountBySender(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user identity"})
	}

	counts, err := services.NewUnreadService(database.DB).UnreadCountBySender(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to aggregate unread messages"})
	}
	return c.JSON(counts)
}

func MarkMessagesAsRead(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user identity"})
	}

	var req MarkAsReadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	var messageIDs []uuid.UUID
	if req.MessageIDs != nil {
		messageIDs = make([]uuid.UUID, 0, len(req.MessageIDs))
		for _, raw := range req.MessageIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid message ID: " + raw})
			}
			messageIDs = append(messageIDs, id)
		}
	}

	updated, err := services.NewUnreadService(database.DB).MarkAsReadForUser(userID, messageIDs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to mark messages as read"})
	}
	return c.JSON(fiber.Map{"updated": updated})
}

// GetAllUnreadMessages lists every unread message in the system.
// Admin/moderator only; registered behind RequireRole.
func GetAllUnreadMessages(c *fiber.Ctx) error {
	messages, err := services.NewUnreadService(database.DB).UnreadOnly()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch unread messages"})
	}
	return c.JSON(messages)
}
