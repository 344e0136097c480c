package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/omondi-dev/messagebox/models"
	"gorm.io/gorm"
)

var (
	// ErrNotSender is returned when someone other than the sender tries
	// to edit a message.
	ErrNotSender = errors.New("only the sender can edit a message")
	// ErrNotParticipant is returned when someone outside a message's
	// sender/receiver pair tries to delete it.
	ErrNotParticipant = errors.New("only the sender or receiver can delete a message")
)

// MessageService carries the write-side message operations plus the
// conversation and history reads. The edit-history, notification and
// cleanup interceptors live on the models and fire inside the same
// transaction as the writes issued here.
type MessageService struct {
	db *gorm.DB
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db}
}

// Send persists a new message. The receiver (and parent, for thread
// replies) must exist; gorm.ErrRecordNotFound propagates otherwise. The
// AfterCreate hook raises the receiver's notification in the same
// transaction.
func (s *MessageService) Send(senderID, receiverID uuid.UUID, content string, parentMessageID *uuid.UUID) (*models.Message, error) {
	var receiver models.User
	if err := s.db.Select("id").Take(&receiver, "id = ?", receiverID).Error; err != nil {
		return nil, err
	}
	if parentMessageID != nil {
		var parent models.Message
		if err := s.db.Select("id").Take(&parent, "id = ?", *parentMessageID).Error; err != nil {
			return nil, err
		}
	}

	message := models.Message{
		SenderID:        senderID,
		ReceiverID:      receiverID,
		Content:         content,
		ParentMessageID: parentMessageID,
	}
	if err := s.db.Create(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// Edit replaces a message's content. Only the sender may edit. The
// BeforeUpdate hook diffs against the persisted content and records the
// history row when it actually changed.
func (s *MessageService) Edit(messageID, editorID uuid.UUID, content string) (*models.Message, error) {
	var message models.Message
	if err := s.db.Take(&message, "id = ?", messageID).Error; err != nil {
		return nil, err
	}
	if message.SenderID != editorID {
		return nil, ErrNotSender
	}

	message.Content = content
	if err := s.db.Save(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// Delete removes a single message; its history and notifications go with
// it via the AfterDelete hook.
func (s *MessageService) Delete(messageID, requesterID uuid.UUID) error {
	var message models.Message
	if err := s.db.Take(&message, "id = ?", messageID).Error; err != nil {
		return err
	}
	if message.SenderID != requesterID && message.ReceiverID != requesterID {
		return ErrNotParticipant
	}
	return s.db.Delete(&message).Error
}

// History returns a message's edit trail, newest edit first. The message
// must exist; gorm.ErrRecordNotFound propagates for an unknown id.
func (s *MessageService) History(messageID uuid.UUID) ([]models.MessageHistory, error) {
	var message models.Message
	if err := s.db.Select("id").Take(&message, "id = ?", messageID).Error; err != nil {
		return nil, err
	}

	var history []models.MessageHistory
	err := s.db.Where("message_id = ?", messageID).Order("edited_at DESC").Find(&history).Error
	return history, err
}

// Between returns the full exchange between two users in chronological
// order with both parties eagerly loaded.
func (s *MessageService) Between(userA, userB uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Preload("Sender").
		Preload("Receiver").
		Order("timestamp ASC").
		Find(&messages).Error
	return messages, err
}

// Threaded returns the top-level messages between two users with their
// replies (and reply senders) preloaded, oldest first.
func (s *MessageService) Threaded(userA, userB uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Where("parent_message_id IS NULL").
		Preload("Sender").
		Preload("Receiver").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp ASC")
		}).
		Preload("Replies.Sender").
		Order("timestamp ASC").
		Find(&messages).Error
	return messages, err
}
