package handlers

import (
	"errors"
	"log"

	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/omondi-dev/messagebox/database"
	"github.com/omondi-dev/messagebox/services"
	"github.com/omondi-dev/messagebox/utils"
	"github.com/omondi-dev/messagebox/websocket"
	"gorm.io/gorm"
)

type SendMessageRequest struct {
	ReceiverID      string  `json:"receiver_id" validate:"required,uuid"`
	Content         string  `json:"content" validate:"required"`
	ParentMessageID *string `json:"parent_message_id,omitempty" validate:"omitempty,uuid"`
}

type EditMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

func SendMessage(c *fiber.Ctx) error {
	senderID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user identity"})
	}

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	receiverID, _ := uuid.Parse(req.ReceiverID)
	var parentID *uuid.UUID
	if req.ParentMessageID != nil {
		parsed, _ := uuid.Parse(*req.ParentMessageID)
		parentID = &parsed
	}

	message, err := services.NewMessageService(database.DB).Send(senderID, receiverID, req.Content, parentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Receiver or parent message not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to send message"})
	}

	websocket.Deliver <- message

	return c.Status(fiber.StatusCreated).JSON(message)
}

func EditMessage(c *fiber.Ctx) error {
	editorID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user identity"})
	}

	messageID, err := uuid.Parse(c.Params("messageId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid message ID"})
	}

	var req EditMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	message, err := services.NewMessageService(database.DB).Edit(messageID, editorID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Message not found"})
		case errors.Is(err, services.ErrNotSender):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to edit message"})
		}
	}

	return c.JSON(message)
}

func DeleteMessage(c *fiber.Ctx) error {
	requesterID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user identity"})
	}

	messageID, err := uuid.Parse(c.Params("messageId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid message ID"})
	}

	if err := services.NewMessageService(database.DB).Delete(messageID, requesterID); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Message not found"})
		case errors.Is(err, services.ErrNotParticipant):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete message"})
		}
	}

	return c.JSON(fiber.Map{"message": "Message deleted"})
}

// GetConversation returns the threaded exchange between the caller and
// the user in the path.
func GetConversation(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user identity"})
	}

	otherID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	messages, err := services.NewMessageService(database.DB).Threaded(userID, otherID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch conversation"})
	}

	return c.JSON(messages)
}

func GetMessageHistory(c *fiber.Ctx) error {
	messageID, err := uuid.Parse(c.Params("messageId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid message ID"})
	}

	history, err := services.NewMessageService(database.DB).History(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Message not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch message history"})
	}

	return c.JSON(history)
}

// ServeWs authenticates a websocket connection, registers it with the
// hub, and persists incoming messages. Each saved message is pushed to
// the receiver's socket when one is open.
func ServeWs(c *websocketcontrib.Conn) {
	type AuthMessage struct {
		Type  string `json:"type"`
		Token string `json:"token"`
	}
	var authMsg AuthMessage
	if err := c.ReadJSON(&authMsg); err != nil || authMsg.Type != "auth" {
		log.Printf("WebSocket auth failed: invalid or missing auth message: %v", err)
		_ = c.WriteJSON(fiber.Map{"error": "Invalid or missing auth message"})
		c.Close()
		return
	}

	claims, err := utils.ParseToken(authMsg.Token)
	if err != nil {
		log.Printf("WebSocket auth failed: invalid token: %v", err)
		_ = c.WriteJSON(fiber.Map{"error": "Invalid token"})
		c.Close()
		return
	}
	userID, err := utils.UserIDFromClaims(claims)
	if err != nil {
		log.Printf("WebSocket auth failed: %v", err)
		_ = c.WriteJSON(fiber.Map{"error": "Invalid user ID"})
		c.Close()
		return
	}

	client := &websocket.Client{UserID: userID, Conn: c}
	websocket.Register <- client
	defer func() {
		websocket.Unregister <- client
		c.Close()
	}()

	messageService := services.NewMessageService(database.DB)
	for {
		var payload SendMessageRequest
		if err := c.ReadJSON(&payload); err != nil {
			if websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseAbnormalClosure) {
				log.Printf("WebSocket closed for client %s: %v", userID, err)
			} else {
				log.Printf("WebSocket read error for client %s: %v", userID, err)
			}
			break
		}

		receiverID, err := uuid.Parse(payload.ReceiverID)
		if err != nil || payload.Content == "" {
			_ = c.WriteJSON(fiber.Map{"error": "Invalid message payload"})
			continue
		}

		message, err := messageService.Send(userID, receiverID, payload.Content, nil)
		if err != nil {
			log.Printf("Failed to save message for client %s: %v", userID, err)
			_ = c.WriteJSON(fiber.Map{"error": "Failed to save message"})
			continue
		}
		websocket.Deliver <- message
	}
}
