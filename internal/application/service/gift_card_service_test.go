package service

import (
	"strings"
	"testing"
	"time"

	"github.com/lumierestudio/salon-api/internal/domain/entity"
	"github.com/lumierestudio/salon-api/internal/domain/enum"
	"github.com/lumierestudio/salon-api/internal/infrastructure/repository"
	"github.com/lumierestudio/salon-api/pkg/apperror"
	"gorm.io/gorm"
)

func newGiftCardService(db *gorm.DB) *GiftCardService {
	return NewGiftCardService(
		repository.NewGiftCardRepository(db),
		newTransactionService(db),
		repository.NewAuditLogRepository(db),
		12,
	)
}

func TestPurchaseGiftCard(t *testing.T) {
	db := newTestDB(t)
	svc := newGiftCardService(db)
	user := createTestUser(t, db)

	card, err := svc.PurchaseGiftCard(ctx(), &PurchaseGiftCardInput{
		Amount:        10000,
		PaymentMethod: enum.PaymentMethodCard,
		PurchaserName: "Marie Dupont",
		RecipientName: "Anna Rossi",
		CreatedByID:   user.ID,
	})
	if err != nil {
		t.Fatalf("PurchaseGiftCard: %v", err)
	}

	if !strings.HasPrefix(card.Code, "GC-") {
		t.Errorf("code = %q, want GC- prefix", card.Code)
	}
	if card.Status != enum.GiftCardStatusIssued {
		t.Errorf("status = %s, want issued", card.Status)
	}
	if card.ExpiresAt == nil || time.Until(*card.ExpiresAt) < 360*24*time.Hour {
		t.Error("expiry should be about a year out")
	}

	// The sale lands in the ledger as a giftcard line
	if card.TransactionID == nil {
		t.Fatal("card is not linked to a ledger row")
	}
	var transaction entity.Transaction
	if err := db.First(&transaction, "id = ?", *card.TransactionID).Error; err != nil {
		t.Fatalf("load ledger row: %v", err)
	}
	if transaction.TotalAmount != 10000 || transaction.Kind != enum.TransactionKindSale {
		t.Errorf("ledger row = %+v", transaction)
	}
	if len(transaction.Items) != 1 || transaction.Items[0].Type != "giftcard" {
		t.Errorf("items = %+v, want one giftcard line", transaction.Items)
	}
}

func TestPurchaseGiftCardRejectsNonPositiveAmount(t *testing.T) {
	db := newTestDB(t)
	svc := newGiftCardService(db)
	user := createTestUser(t, db)

	_, err := svc.PurchaseGiftCard(ctx(), &PurchaseGiftCardInput{
		Amount:        0,
		PaymentMethod: enum.PaymentMethodCash,
		CreatedByID:   user.ID,
	})
	if err == nil {
		t.Fatal("expected error for zero amount")
	}
}

func TestRedeemGiftCard(t *testing.T) {
	db := newTestDB(t)
	svc := newGiftCardService(db)
	user := createTestUser(t, db)

	card, err := svc.PurchaseGiftCard(ctx(), &PurchaseGiftCardInput{
		Amount:        5000,
		PaymentMethod: enum.PaymentMethodCash,
		RecipientName: "Anna Rossi",
		CreatedByID:   user.ID,
	})
	if err != nil {
		t.Fatalf("PurchaseGiftCard: %v", err)
	}

	redeemed, err := svc.RedeemGiftCard(ctx(), card.Code, user.ID)
	if err != nil {
		t.Fatalf("RedeemGiftCard: %v", err)
	}
	if redeemed.Status != enum.GiftCardStatusRedeemed || redeemed.RedeemedAt == nil {
		t.Errorf("card = %+v, want redeemed with timestamp", redeemed)
	}

	// A second redemption is a conflict
	_, err = svc.RedeemGiftCard(ctx(), card.Code, user.ID)
	if err == nil {
		t.Fatal("expected conflict on double redemption")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 409 {
		t.Errorf("code = %d, want 409", appErr.Code)
	}
}

func TestRedeemExpiredGiftCard(t *testing.T) {
	db := newTestDB(t)
	svc := newGiftCardService(db)
	user := createTestUser(t, db)

	expired := time.Now().AddDate(0, -1, 0)
	card := &entity.GiftCard{
		Code:      "GC-EXPIRED1",
		Amount:    5000,
		Status:    enum.GiftCardStatusIssued,
		ExpiresAt: &expired,
	}
	if err := db.Create(card).Error; err != nil {
		t.Fatalf("seed card: %v", err)
	}

	_, err := svc.RedeemGiftCard(ctx(), "GC-EXPIRED1", user.ID)
	if err == nil {
		t.Fatal("expected error for expired card")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 422 {
		t.Errorf("code = %d, want 422", appErr.Code)
	}
}
