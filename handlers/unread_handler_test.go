package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/omondi-dev/messagebox/database"
	"github.com/omondi-dev/messagebox/middleware"
	"github.com/omondi-dev/messagebox/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "handler-test-secret"

// newUnreadTestApp wires the unread routes against an in-memory store.
// The time and rate middleware are left off so the tests are not
// wall-clock dependent.
func newUnreadTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	err = db.AutoMigrate(&models.User{}, &models.Message{}, &models.Notification{}, &models.MessageHistory{})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database.DB = db

	app := fiber.New()
	app.Get("/messages/unread", middleware.Protected(), GetUnreadMessages)
	app.Get("/messages/unread/recent", middleware.Protected(), GetRecentUnreadMessages)
	app.Get("/messages/unread/count", middleware.Protected(), GetUnreadCount)
	return app
}

func signTestToken(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func authedGet(t *testing.T, app *fiber.App, path, token string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body of %s: %v", path, err)
	}
	return resp.StatusCode, body
}

func TestMalformedIdentityClaimRejected(t *testing.T) {
	app := newUnreadTestApp(t)
	token := signTestToken(t, "not-a-uuid")

	status, _ := authedGet(t, app, "/messages/unread/count", token)
	if status != fiber.StatusUnauthorized {
		t.Fatalf("got status %d; want 401", status)
	}
}

func TestRecentUnreadWindowDefaultsToSevenDays(t *testing.T) {
	app := newUnreadTestApp(t)

	sender := models.User{Email: "sender@test.com", Password: "hashed", FirstName: "Old", LastName: "Friend"}
	receiver := models.User{Email: "receiver@test.com", Password: "hashed", FirstName: "Busy", LastName: "Inbox"}
	for _, u := range []*models.User{&sender, &receiver} {
		if err := database.DB.Create(u).Error; err != nil {
			t.Fatalf("create user %s: %v", u.Email, err)
		}
	}
	fresh := models.Message{SenderID: sender.ID, ReceiverID: receiver.ID, Content: "fresh"}
	stale := models.Message{
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
		Content:    "stale",
		Timestamp:  time.Now().AddDate(0, 0, -10),
	}
	for _, m := range []*models.Message{&fresh, &stale} {
		if err := database.DB.Create(m).Error; err != nil {
			t.Fatalf("create message %q: %v", m.Content, err)
		}
	}

	token := signTestToken(t, receiver.ID.String())

	status, body := authedGet(t, app, "/messages/unread/recent", token)
	if status != fiber.StatusOK {
		t.Fatalf("got status %d; want 200; body %s", status, body)
	}
	var recent []models.Message
	if err := json.Unmarshal(body, &recent); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(recent) != 1 || recent[0].Content != "fresh" {
		t.Fatalf("default window returned %d messages; want only the fresh one", len(recent))
	}

	status, body = authedGet(t, app, "/messages/unread/recent?days=30", token)
	if status != fiber.StatusOK {
		t.Fatalf("got status %d; want 200", status)
	}
	var wide []models.Message
	if err := json.Unmarshal(body, &wide); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(wide) != 2 {
		t.Fatalf("30-day window returned %d messages; want 2", len(wide))
	}
}
