package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/lumierestudio/salon-api/internal/domain/entity"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database and migrates the schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	// A single connection keeps the in-memory database alive and shared
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Role{},
		&entity.Permission{},
		&entity.UserSettings{},
		&entity.Client{},
		&entity.ClientHistory{},
		&entity.Transaction{},
		&entity.TransactionClient{},
		&entity.CashClosure{},
		&entity.GiftCard{},
		&entity.Appointment{},
		&entity.Category{},
		&entity.Service{},
		&entity.Product{},
		&entity.AuditLog{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB) *entity.User {
	t.Helper()

	user := &entity.User{
		FirstName: "Nadia",
		LastName:  "Keller",
		Email:     fmt.Sprintf("%s@lumierestudio.ch", t.Name()),
		Password:  "irrelevant",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}

func createTestClient(t *testing.T, db *gorm.DB, firstName, lastName string) *entity.Client {
	t.Helper()

	client := &entity.Client{
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("create test client: %v", err)
	}
	return client
}

func ctx() context.Context {
	return context.Background()
}
