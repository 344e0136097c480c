package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/omondi-dev/messagebox/models"
	"gorm.io/gorm"
)

func TestSendToUnknownReceiverFails(t *testing.T) {
	db := openTestDB(t)
	sender := createTestUser(t, db, "sender@test.com", "Sam", "Sender")

	_, err := NewMessageService(db).Send(sender.ID, uuid.New(), "hello?", nil)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for unknown receiver; got %v", err)
	}
}

func TestEditByNonSenderRejected(t *testing.T) {
	db := openTestDB(t)
	sender := createTestUser(t, db, "sender@test.com", "Sam", "Sender")
	receiver := createTestUser(t, db, "receiver@test.com", "Rita", "Receiver")

	message, err := NewMessageService(db).Send(sender.ID, receiver.ID, "original", nil)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	_, err = NewMessageService(db).Edit(message.ID, receiver.ID, "tampered")
	if !errors.Is(err, ErrNotSender) {
		t.Fatalf("expected ErrNotSender; got %v", err)
	}

	var reloaded models.Message
	if err := db.Take(&reloaded, "id = ?", message.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Content != "original" {
		t.Fatalf("content changed despite rejected edit")
	}
}

func TestDeleteByNonParticipantRejected(t *testing.T) {
	db := openTestDB(t)
	sender := createTestUser(t, db, "sender@test.com", "Sam", "Sender")
	receiver := createTestUser(t, db, "receiver@test.com", "Rita", "Receiver")
	stranger := createTestUser(t, db, "stranger@test.com", "Stan", "Stranger")

	message, err := NewMessageService(db).Send(sender.ID, receiver.ID, "private", nil)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	if err := NewMessageService(db).Delete(message.ID, stranger.ID); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant; got %v", err)
	}
}

func TestHistoryForUnknownMessageFails(t *testing.T) {
	db := openTestDB(t)

	_, err := NewMessageService(db).History(uuid.New())
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound; got %v", err)
	}
}

func TestThreadedGroupsRepliesUnderParent(t *testing.T) {
	db := openTestDB(t)
	alice := createTestUser(t, db, "alice@test.com", "Alice", "A")
	bob := createTestUser(t, db, "bob@test.com", "Bob", "B")
	service := NewMessageService(db)

	parent, err := service.Send(alice.ID, bob.ID, "top level", nil)
	if err != nil {
		t.Fatalf("Send parent: %v", err)
	}
	reply, err := service.Send(bob.ID, alice.ID, "a reply", &parent.ID)
	if err != nil {
		t.Fatalf("Send reply: %v", err)
	}

	threads, err := service.Threaded(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("Threaded: %v", err)
	}
	if len(threads) != 1 {
		t.Fatalf("expected 1 top-level message; got %d", len(threads))
	}
	if threads[0].ID != parent.ID {
		t.Fatalf("top-level message is %s; want the parent", threads[0].ID)
	}
	if len(threads[0].Replies) != 1 || threads[0].Replies[0].ID != reply.ID {
		t.Fatalf("reply not grouped under its parent")
	}
	if threads[0].Replies[0].Sender.Email != "bob@test.com" {
		t.Fatalf("reply sender not preloaded")
	}
}

// Full lifecycle: send, notify, edit, audit, read, delete, cleanup.
func TestMessageLifecycle(t *testing.T) {
	db := openTestDB(t)
	alice := createTestUser(t, db, "alice@test.com", "Alice", "A")
	bob := createTestUser(t, db, "bob@test.com", "Bob", "B")

	messageService := NewMessageService(db)
	unreadService := NewUnreadService(db)

	message, err := messageService.Send(alice.ID, bob.ID, "Hello", nil)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if message.Edited {
		t.Fatalf("fresh message marked edited")
	}

	var notificationCount int64
	db.Model(&models.Notification{}).Where("user_id = ? AND message_id = ?", bob.ID, message.ID).Count(&notificationCount)
	if notificationCount != 1 {
		t.Fatalf("receiver has %d notifications; want 1", notificationCount)
	}
	db.Model(&models.Notification{}).Where("user_id = ?", alice.ID).Count(&notificationCount)
	if notificationCount != 0 {
		t.Fatalf("sender got %d notifications; want 0", notificationCount)
	}

	edited, err := messageService.Edit(message.ID, alice.ID, "Hello!")
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if !edited.Edited {
		t.Fatalf("edited flag not set")
	}
	history, err := messageService.History(message.ID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 1 || history[0].OldContent != "Hello" {
		t.Fatalf("history should hold the pre-edit content; got %+v", history)
	}

	count, err := unreadService.CountForUser(bob.ID)
	if err != nil {
		t.Fatalf("CountForUser: %v", err)
	}
	if count != 1 {
		t.Fatalf("bob's unread count is %d; want 1", count)
	}

	updated, err := unreadService.MarkAsReadForUser(bob.ID, nil)
	if err != nil {
		t.Fatalf("MarkAsReadForUser: %v", err)
	}
	if updated != 1 {
		t.Fatalf("marked %d rows; want 1", updated)
	}
	if count, _ = unreadService.CountForUser(bob.ID); count != 0 {
		t.Fatalf("bob's unread count is %d after marking read; want 0", count)
	}

	if err := db.Delete(&alice).Error; err != nil {
		t.Fatalf("delete alice: %v", err)
	}
	var remaining int64
	db.Model(&models.Message{}).Where("id = ?", message.ID).Count(&remaining)
	if remaining != 0 {
		t.Fatalf("message survived its sender's deletion")
	}
	db.Model(&models.Notification{}).Where("message_id = ?", message.ID).Count(&remaining)
	if remaining != 0 {
		t.Fatalf("notification survived the sender's deletion")
	}
	db.Model(&models.MessageHistory{}).Where("message_id = ?", message.ID).Count(&remaining)
	if remaining != 0 {
		t.Fatalf("history survived the sender's deletion")
	}
}
