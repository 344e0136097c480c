package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/omondi-dev/messagebox/models"
	"gorm.io/gorm"
)

// MessageQuery is a chainable, read-only query description over the
// messages table. Every method returns a fresh query; the receiver is
// never mutated, so partial chains can be shared and extended in any
// order. Filters commute with each other; the eager-join and projection
// methods only change what gets materialized, never the result set.
type MessageQuery struct {
	db *gorm.DB
}

func NewMessageQuery(db *gorm.DB) MessageQuery {
	return MessageQuery{db: db.Model(&models.Message{})}
}

func (q MessageQuery) chain() *gorm.DB {
	return q.db.Session(&gorm.Session{})
}

// UnreadOnly restricts to messages not yet read by their receiver.
func (q MessageQuery) UnreadOnly() MessageQuery {
	return MessageQuery{db: q.chain().Where("read = ?", false)}
}

// ForUser restricts to messages received by the given user.
func (q MessageQuery) ForUser(userID uuid.UUID) MessageQuery {
	return MessageQuery{db: q.chain().Where("receiver_id = ?", userID)}
}

// FromUser restricts to messages sent by the given user.
func (q MessageQuery) FromUser(userID uuid.UUID) MessageQuery {
	return MessageQuery{db: q.chain().Where("sender_id = ?", userID)}
}

// Recent restricts to messages from the trailing days-day window.
func (q MessageQuery) Recent(days int) MessageQuery {
	cutoff := time.Now().AddDate(0, 0, -days)
	return MessageQuery{db: q.chain().Where("timestamp >= ?", cutoff)}
}

// WithSenderInfo eagerly loads each message's sender, avoiding a
// per-row lookup when rendering sender details.
func (q MessageQuery) WithSenderInfo() MessageQuery {
	return MessageQuery{db: q.chain().Preload("Sender")}
}

func (q MessageQuery) WithReceiverInfo() MessageQuery {
	return MessageQuery{db: q.chain().Preload("Receiver")}
}

func (q MessageQuery) WithFullInfo() MessageQuery {
	return MessageQuery{db: q.chain().Preload("Sender").Preload("Receiver")}
}

// OnlyEssentialFields projects each row to the minimal set needed for an
// unread listing: id, sender reference, content, timestamp and read flag.
func (q MessageQuery) OnlyEssentialFields() MessageQuery {
	return MessageQuery{db: q.chain().Select("id", "sender_id", "content", "timestamp", "read")}
}

// UnreadForUserOptimized is the fixed composition used for unread inbox
// listings: scope to the receiver, keep unread rows, join the sender and
// trim the projection.
func (q MessageQuery) UnreadForUserOptimized(userID uuid.UUID) MessageQuery {
	return q.ForUser(userID).UnreadOnly().WithSenderInfo().OnlyEssentialFields()
}

// Find materializes the query, newest messages first.
func (q MessageQuery) Find() ([]models.Message, error) {
	var messages []models.Message
	err := q.chain().Order("timestamp DESC").Find(&messages).Error
	return messages, err
}

// Count returns the result cardinality without materializing rows.
func (q MessageQuery) Count() (int64, error) {
	var count int64
	err := q.chain().Count(&count).Error
	return count, err
}
