package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lumierestudio/salon-api/internal/domain/entity"
	"github.com/lumierestudio/salon-api/internal/domain/enum"
	"github.com/lumierestudio/salon-api/internal/infrastructure/repository"
	"github.com/lumierestudio/salon-api/pkg/apperror"
	"gorm.io/gorm"
)

const testOpeningFloat = int64(20000) // 200.00

func newClosureService(db *gorm.DB) *CashClosureService {
	return NewCashClosureService(
		repository.NewCashClosureRepository(db),
		repository.NewTransactionRepository(db),
		repository.NewAuditLogRepository(db),
		repository.NewUserRepository(db),
		repository.NewSettingsRepository(db),
		nil, // no email in tests
		time.UTC,
		testOpeningFloat,
	)
}

// seedLedgerRow writes a ledger row directly with a fixed timestamp so
// closure tests are not tied to the wall clock.
func seedLedgerRow(t *testing.T, db *gorm.DB, userID uuid.UUID, method enum.PaymentMethod, amount int64, at time.Time) {
	t.Helper()

	kind := enum.TransactionKindSale
	if amount < 0 {
		kind = enum.TransactionKindRefund
	}
	var maxNumber int64
	db.Model(&entity.Transaction{}).Select("COALESCE(MAX(number), 0)").Scan(&maxNumber)

	row := &entity.Transaction{
		Number:        maxNumber + 1,
		Kind:          kind,
		Status:        enum.TransactionStatusPaid,
		PaymentMethod: method,
		TotalAmount:   amount,
		Items:         entity.TransactionItems{{Name: "Prestation", Price: amount, Quantity: 1, Type: "service"}},
		CreatedByID:   userID,
		CreatedAt:     at,
	}
	if err := db.Create(row).Error; err != nil {
		t.Fatalf("seed ledger row: %v", err)
	}
}

func TestCreateClosureDelta(t *testing.T) {
	db := newTestDB(t)
	svc := newClosureService(db)
	user := createTestUser(t, db)

	day := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	seedLedgerRow(t, db, user.ID, enum.PaymentMethodCash, 20050, day)
	seedLedgerRow(t, db, user.ID, enum.PaymentMethodCash, 15000, day.Add(2*time.Hour))
	// Card rows never touch the drawer
	seedLedgerRow(t, db, user.ID, enum.PaymentMethodCard, 9900, day.Add(3*time.Hour))
	// Rows from other days are out of scope
	seedLedgerRow(t, db, user.ID, enum.PaymentMethodCash, 5000, day.AddDate(0, 0, -1))

	closure, err := svc.CreateClosure(ctx(), &CreateClosureInput{
		Date:        "2026-03-15",
		CashOut:     5000,
		CountedCash: 49550,
		ClosedByID:  user.ID,
	})
	if err != nil {
		t.Fatalf("CreateClosure: %v", err)
	}

	if closure.OpeningCash != 20000 {
		t.Errorf("opening = %d, want default 20000", closure.OpeningCash)
	}
	if closure.CashIn != 35050 {
		t.Errorf("cash in = %d, want 35050", closure.CashIn)
	}
	if got := closure.ExpectedCash(); got != 50050 {
		t.Errorf("expected cash = %d, want 50050", got)
	}
	if closure.Delta != -500 {
		t.Errorf("delta = %d, want -500", closure.Delta)
	}
}

func TestCreateClosureOncePerDate(t *testing.T) {
	db := newTestDB(t)
	svc := newClosureService(db)
	user := createTestUser(t, db)

	input := &CreateClosureInput{
		Date:        "2026-03-15",
		CountedCash: 20000,
		ClosedByID:  user.ID,
	}
	if _, err := svc.CreateClosure(ctx(), input); err != nil {
		t.Fatalf("first closure: %v", err)
	}

	_, err := svc.CreateClosure(ctx(), input)
	if err == nil {
		t.Fatal("expected conflict on second closure for the same date")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 409 {
		t.Errorf("code = %d, want 409", appErr.Code)
	}
}

func TestCreateClosureQuietDay(t *testing.T) {
	db := newTestDB(t)
	svc := newClosureService(db)
	user := createTestUser(t, db)

	closure, err := svc.CreateClosure(ctx(), &CreateClosureInput{
		Date:        "2026-03-16",
		CountedCash: 20000,
		ClosedByID:  user.ID,
	})
	if err != nil {
		t.Fatalf("CreateClosure: %v", err)
	}
	if closure.CashIn != 0 {
		t.Errorf("cash in = %d, want 0 on a day without sales", closure.CashIn)
	}
	if closure.Delta != 0 {
		t.Errorf("delta = %d, want 0 when count matches the float", closure.Delta)
	}
}

func TestCreateClosureRefundLowersCashIn(t *testing.T) {
	db := newTestDB(t)
	svc := newClosureService(db)
	user := createTestUser(t, db)

	day := time.Date(2026, 3, 17, 11, 0, 0, 0, time.UTC)
	seedLedgerRow(t, db, user.ID, enum.PaymentMethodCash, 10000, day)
	seedLedgerRow(t, db, user.ID, enum.PaymentMethodCash, -4000, day.Add(time.Hour))

	closure, err := svc.CreateClosure(ctx(), &CreateClosureInput{
		Date:        "2026-03-17",
		CountedCash: 26000,
		ClosedByID:  user.ID,
	})
	if err != nil {
		t.Fatalf("CreateClosure: %v", err)
	}
	if closure.CashIn != 6000 {
		t.Errorf("cash in = %d, want 6000 after cash refund", closure.CashIn)
	}
	if closure.Delta != 0 {
		t.Errorf("delta = %d, want 0", closure.Delta)
	}
}

func TestCreateClosureExplicitOpening(t *testing.T) {
	db := newTestDB(t)
	svc := newClosureService(db)
	user := createTestUser(t, db)

	opening := int64(15000)
	closure, err := svc.CreateClosure(ctx(), &CreateClosureInput{
		Date:        "2026-03-18",
		OpeningCash: &opening,
		CountedCash: 15000,
		ClosedByID:  user.ID,
	})
	if err != nil {
		t.Fatalf("CreateClosure: %v", err)
	}
	if closure.OpeningCash != 15000 {
		t.Errorf("opening = %d, want 15000", closure.OpeningCash)
	}
}

func TestCreateClosureRejectsBadInput(t *testing.T) {
	db := newTestDB(t)
	svc := newClosureService(db)
	user := createTestUser(t, db)

	cases := []struct {
		name  string
		input CreateClosureInput
	}{
		{"bad date", CreateClosureInput{Date: "15.03.2026", CountedCash: 100, ClosedByID: user.ID}},
		{"negative cash out", CreateClosureInput{Date: "2026-03-19", CashOut: -100, ClosedByID: user.ID}},
		{"negative counted", CreateClosureInput{Date: "2026-03-19", CountedCash: -100, ClosedByID: user.ID}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateClosure(ctx(), &tc.input); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestPreviewClosure(t *testing.T) {
	db := newTestDB(t)
	svc := newClosureService(db)
	user := createTestUser(t, db)

	day := time.Date(2026, 3, 20, 9, 30, 0, 0, time.UTC)
	seedLedgerRow(t, db, user.ID, enum.PaymentMethodCash, 35050, day)

	preview, err := svc.PreviewClosure(ctx(), "2026-03-20", nil)
	if err != nil {
		t.Fatalf("PreviewClosure: %v", err)
	}
	if preview.CashIn != 350.50 {
		t.Errorf("cash in = %.2f, want 350.50", preview.CashIn)
	}
	if preview.ExpectedCash != 550.50 {
		t.Errorf("expected = %.2f, want 550.50", preview.ExpectedCash)
	}
	if preview.AlreadyDone {
		t.Error("preview should not report a closure before one exists")
	}

	if _, err := svc.CreateClosure(ctx(), &CreateClosureInput{
		Date:        "2026-03-20",
		CountedCash: 55050,
		ClosedByID:  user.ID,
	}); err != nil {
		t.Fatalf("CreateClosure: %v", err)
	}

	preview, err = svc.PreviewClosure(ctx(), "2026-03-20", nil)
	if err != nil {
		t.Fatalf("PreviewClosure after closing: %v", err)
	}
	if !preview.AlreadyDone {
		t.Error("preview should report the date as closed")
	}
}
