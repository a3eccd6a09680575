package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/lumierestudio/salon-api/internal/domain/entity"
	"github.com/lumierestudio/salon-api/internal/domain/enum"
	domainRepo "github.com/lumierestudio/salon-api/internal/domain/repository"
	"github.com/lumierestudio/salon-api/pkg/pagination"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newLedgerTestDB(t *testing.T) *gorm.DB {
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
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Transaction{},
		&entity.TransactionClient{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

func seedSale(t *testing.T, db *gorm.DB, userID uuid.UUID, number, amount int64) {
	t.Helper()

	row := &entity.Transaction{
		Number:        number,
		Kind:          enum.TransactionKindSale,
		Status:        enum.TransactionStatusPaid,
		PaymentMethod: enum.PaymentMethodCash,
		TotalAmount:   amount,
		Items:         entity.TransactionItems{{Name: "Prestation", Price: amount, Quantity: 1, Type: "service"}},
		CreatedByID:   userID,
	}
	if err := db.Create(row).Error; err != nil {
		t.Fatalf("seed sale: %v", err)
	}
}

func TestListSortsByWhitelistedColumn(t *testing.T) {
	db := newLedgerTestDB(t)
	repo := NewTransactionRepository(db)
	userID := uuid.New()

	seedSale(t, db, userID, 1, 3000)
	seedSale(t, db, userID, 2, 1000)
	seedSale(t, db, userID, 3, 2000)

	rows, total, err := repo.List(context.Background(), &domainRepo.TransactionFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10},
		SortBy:     "total_amount",
		SortOrder:  "asc",
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(rows) != 3 {
		t.Fatalf("got %d rows (total %d), want 3", len(rows), total)
	}
	for i, want := range []int64{1000, 2000, 3000} {
		if rows[i].TotalAmount != want {
			t.Errorf("rows[%d].TotalAmount = %d, want %d", i, rows[i].TotalAmount, want)
		}
	}
}

func TestListIgnoresUnknownSortColumn(t *testing.T) {
	db := newLedgerTestDB(t)
	repo := NewTransactionRepository(db)
	userID := uuid.New()

	seedSale(t, db, userID, 1, 4500)
	seedSale(t, db, userID, 2, 2490)

	rows, total, err := repo.List(context.Background(), &domainRepo.TransactionFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10},
		SortBy:     "total_amount; DROP TABLE transactions--",
	})
	if err != nil {
		t.Fatalf("list with hostile sort key: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("got %d rows (total %d), want 2", len(rows), total)
	}

	// The ledger must still be intact afterwards
	var count int64
	if err := db.Model(&entity.Transaction{}).Count(&count).Error; err != nil {
		t.Fatalf("count after hostile sort: %v", err)
	}
	if count != 2 {
		t.Errorf("ledger row count = %d, want 2", count)
	}
}
