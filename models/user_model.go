package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	FirstName string    `gorm:"size:30;not null" json:"first_name"`
	LastName  string    `gorm:"size:30;not null" json:"last_name"`
	Role      string    `gorm:"size:20;not null;default:'member'" json:"role"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// AfterDelete removes every row that references the deleted user, directly
// or through one of their messages. Dependents go first (history, then
// notifications, then the messages themselves) so the result holds even
// when the underlying store enforces no foreign-key cascade. Any failure
// aborts the surrounding delete transaction.
func (u *User) AfterDelete(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		return nil
	}
	db := tx.Session(&gorm.Session{NewDB: true})

	ownedMessages := func() *gorm.DB {
		return tx.Session(&gorm.Session{NewDB: true}).
			Model(&Message{}).
			Select("id").
			Where("sender_id = ? OR receiver_id = ?", u.ID, u.ID)
	}

	if err := db.Where("message_id IN (?)", ownedMessages()).Delete(&MessageHistory{}).Error; err != nil {
		return err
	}
	if err := db.Where("user_id = ? OR message_id IN (?)", u.ID, ownedMessages()).Delete(&Notification{}).Error; err != nil {
		return err
	}
	return db.Where("sender_id = ? OR receiver_id = ?", u.ID, u.ID).Delete(&Message{}).Error
}
