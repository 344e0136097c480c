package services

import (
	"testing"

	"github.com/omondi-dev/messagebox/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
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
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email, firstName, lastName string) models.User {
	t.Helper()
	user := models.User{
		Email:     email,
		Password:  "hashed",
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func createTestMessage(t *testing.T, db *gorm.DB, m models.Message) models.Message {
	t.Helper()
	if err := db.Create(&m).Error; err != nil {
		t.Fatalf("create message: %v", err)
	}
	return m
}
