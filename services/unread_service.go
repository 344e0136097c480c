package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/omondi-dev/messagebox/models"
	"gorm.io/gorm"
)

// DefaultRecentDays is the trailing window used by the recent-unread
// listing when the caller does not pick one.
const DefaultRecentDays = 7

// UnreadService exposes the domain-level unread-message operations on top
// of MessageQuery. All operations are read-only except MarkAsReadForUser.
type UnreadService struct {
	db *gorm.DB
}

func NewUnreadService(db *gorm.DB) *UnreadService {
	return &UnreadService{db: db}
}

func (s *UnreadService) query() MessageQuery {
	return NewMessageQuery(s.db)
}

// ForUser returns the optimized unread listing for a user. A user with no
// messages gets an empty slice, not an error.
func (s *UnreadService) ForUser(userID uuid.UUID) ([]models.Message, error) {
	return s.query().UnreadForUserOptimized(userID).Find()
}

// UnreadOnly returns every unread message in the system. Administrative
// and batch use only; it is not scoped to a receiver.
func (s *UnreadService) UnreadOnly() ([]models.Message, error) {
	return s.query().UnreadOnly().Find()
}

// CountForUser counts a user's unread messages without materializing them.
func (s *UnreadService) CountForUser(userID uuid.UUID) (int64, error) {
	return s.query().ForUser(userID).UnreadOnly().Count()
}

// RecentUnreadForUser returns a user's unread messages from the trailing
// days-day window with sender info eagerly loaded. days must not be
// negative.
func (s *UnreadService) RecentUnreadForUser(userID uuid.UUID, days int) ([]models.Message, error) {
	if days < 0 {
		return nil, fmt.Errorf("recent window must be non-negative, got %d days", days)
	}
	return s.query().ForUser(userID).UnreadOnly().Recent(days).WithSenderInfo().Find()
}

// MarkAsReadForUser flips read=true for the user's currently unread
// messages in one predicate UPDATE, so concurrent calls can neither
// double-count nor lose rows. A nil messageIDs means "all unread"; an
// empty non-nil slice means "none selected" and updates nothing. IDs that
// belong to another receiver or are already read fall outside the base
// predicate and are silently ignored. Returns the number of rows updated.
func (s *UnreadService) MarkAsReadForUser(userID uuid.UUID, messageIDs []uuid.UUID) (int64, error) {
	if messageIDs != nil && len(messageIDs) == 0 {
		return 0, nil
	}

	tx := s.db.Model(&models.Message{}).
		Where("receiver_id = ? AND read = ?", userID, false)
	if messageIDs != nil {
		tx = tx.Where("id IN ?", messageIDs)
	}

	result := tx.Update("read", true)
	return result.RowsAffected, result.Error
}

// SenderUnreadCount is one row of the per-sender unread aggregation.
type SenderUnreadCount struct {
	SenderEmail string `json:"sender_email"`
	SenderName  string `json:"sender_name"`
	UnreadCount int64  `json:"unread_count"`
}

// UnreadCountBySender groups a user's unread messages by sender, busiest
// sender first.
func (s *UnreadService) UnreadCountBySender(userID uuid.UUID) ([]SenderUnreadCount, error) {
	var rows []SenderUnreadCount
	err := s.db.Model(&models.Message{}).
		Select("users.email AS sender_email, users.first_name || ' ' || users.last_name AS sender_name, COUNT(messages.id) AS unread_count").
		Joins("JOIN users ON users.id = messages.sender_id").
		Where("messages.receiver_id = ? AND messages.read = ?", userID, false).
		Group("users.email, users.first_name, users.last_name").
		Order("unread_count DESC").
		Scan(&rows).Error
	return rows, err
}
