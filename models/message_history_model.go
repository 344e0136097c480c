package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageHistory is append-only: one row per content-changing edit,
// holding the content as it was before that edit.
type MessageHistory struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MessageID  uuid.UUID `gorm:"type:uuid;not null;index" json:"message_id"`
	OldContent string    `gorm:"type:text;not null" json:"old_content"`
	EditedAt   time.Time `json:"edited_at"`

	Message Message `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE" json:"-"`
}

func (h *MessageHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	if h.EditedAt.IsZero() {
		h.EditedAt = time.Now()
	}
	return nil
}
