package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Message struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SenderID        uuid.UUID  `gorm:"type:uuid;not null;index:idx_messages_sender_time,priority:1" json:"sender_id"`
	ReceiverID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_messages_receiver_read,priority:1" json:"receiver_id"`
	Content         string     `gorm:"type:text;not null" json:"content"`
	Timestamp       time.Time  `gorm:"index;index:idx_messages_sender_time,priority:2" json:"timestamp"`
	Edited          bool       `gorm:"not null;default:false" json:"edited"`
	Read            bool       `gorm:"not null;default:false;index:idx_messages_receiver_read,priority:2" json:"read"`
	ParentMessageID *uuid.UUID `gorm:"type:uuid" json:"parent_message_id,omitempty"`

	Sender        User      `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"sender,omitempty"`
	Receiver      User      `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE" json:"receiver,omitempty"`
	ParentMessage *Message  `gorm:"foreignKey:ParentMessageID" json:"-"`
	Replies       []Message `gorm:"foreignKey:ParentMessageID" json:"replies,omitempty"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now()
	}
	return nil
}

// BeforeUpdate logs content edits. The persisted row is re-read inside the
// update transaction; when its content differs from the incoming one, the
// old content is captured in a MessageHistory row and the edited flag is
// set on the outgoing update. A row that vanished between read and write is
// skipped without error: the audit trail is best effort, not a consistency
// guarantee.
func (m *Message) BeforeUpdate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		return nil
	}

	var prev Message
	err := tx.Session(&gorm.Session{NewDB: true}).
		Select("content").
		Take(&prev, "id = ?", m.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if prev.Content == m.Content {
		return nil
	}

	history := MessageHistory{MessageID: m.ID, OldContent: prev.Content}
	if err := tx.Session(&gorm.Session{NewDB: true}).Create(&history).Error; err != nil {
		return err
	}

	m.Edited = true
	tx.Statement.SetColumn("edited", true)
	return nil
}

// AfterCreate fires once per inserted message and never on updates, so a
// message yields exactly one notification, owned by its receiver.
func (m *Message) AfterCreate(tx *gorm.DB) error {
	notification := Notification{UserID: m.ReceiverID, MessageID: m.ID}
	return tx.Session(&gorm.Session{NewDB: true}).Create(&notification).Error
}

// AfterDelete drops the history and notification rows of a directly deleted
// message without depending on store-level cascade. Batch deletes reach the
// hook with a zero ID and are handled by User.AfterDelete instead.
func (m *Message) AfterDelete(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		return nil
	}
	db := tx.Session(&gorm.Session{NewDB: true})
	if err := db.Where("message_id = ?", m.ID).Delete(&MessageHistory{}).Error; err != nil {
		return err
	}
	return db.Where("message_id = ?", m.ID).Delete(&Notification{}).Error
}
