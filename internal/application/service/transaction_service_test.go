package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lumierestudio/salon-api/internal/domain/entity"
	"github.com/lumierestudio/salon-api/internal/domain/enum"
	"github.com/lumierestudio/salon-api/internal/infrastructure/repository"
	"github.com/lumierestudio/salon-api/pkg/apperror"
	"gorm.io/gorm"
)

func newTransactionService(db *gorm.DB) *TransactionService {
	return NewTransactionService(
		repository.NewTransactionRepository(db),
		repository.NewTransactionClientRepository(db),
		repository.NewClientRepository(db),
		repository.NewClientHistoryRepository(db),
		repository.NewAuditLogRepository(db),
		0.081,
	)
}

func TestCreateTransactionTotal(t *testing.T) {
	db := newTestDB(t)
	svc := newTransactionService(db)
	user := createTestUser(t, db)

	transaction, err := svc.CreateTransaction(ctx(), &CreateTransactionInput{
		Items: []CartItemInput{
			{Name: "Coupe femme", Price: 4500, Quantity: 1, Type: "service"},
			{Name: "Shampooing réparateur", Price: 2490, Quantity: 1, Type: "product"},
		},
		PaymentMethod: enum.PaymentMethodCard,
		CreatedByID:   user.ID,
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	if transaction.TotalAmount != 6990 {
		t.Errorf("total = %d cents, want 6990", transaction.TotalAmount)
	}
	if transaction.Kind != enum.TransactionKindSale {
		t.Errorf("kind = %s, want sale", transaction.Kind)
	}
	if transaction.Status != enum.TransactionStatusPaid {
		t.Errorf("status = %s, want paid", transaction.Status)
	}
	if transaction.Number != 1 {
		t.Errorf("number = %d, want 1", transaction.Number)
	}
	if transaction.VATAmount <= 0 || transaction.NetAmount+transaction.VATAmount != transaction.TotalAmount {
		t.Errorf("net %d + vat %d != total %d", transaction.NetAmount, transaction.VATAmount, transaction.TotalAmount)
	}
}

func TestCreateTransactionQuantities(t *testing.T) {
	db := newTestDB(t)
	svc := newTransactionService(db)
	user := createTestUser(t, db)

	transaction, err := svc.CreateTransaction(ctx(), &CreateTransactionInput{
		Items: []CartItemInput{
			{Name: "Soin kératine", Price: 1500, Quantity: 3, Type: "product"},
		},
		PaymentMethod: enum.PaymentMethodCash,
		CreatedByID:   user.ID,
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if transaction.TotalAmount != 4500 {
		t.Errorf("total = %d cents, want 4500", transaction.TotalAmount)
	}
}

func TestCreateTransactionRejectsBadCarts(t *testing.T) {
	db := newTestDB(t)
	svc := newTransactionService(db)
	user := createTestUser(t, db)

	cases := []struct {
		name  string
		items []CartItemInput
	}{
		{"empty cart", nil},
		{"zero price", []CartItemInput{{Name: "Coupe", Price: 0, Quantity: 1, Type: "service"}}},
		{"negative price", []CartItemInput{{Name: "Coupe", Price: -100, Quantity: 1, Type: "service"}}},
		{"zero quantity", []CartItemInput{{Name: "Coupe", Price: 4500, Quantity: 0, Type: "service"}}},
		{"blank name", []CartItemInput{{Name: "  ", Price: 4500, Quantity: 1, Type: "service"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateTransaction(ctx(), &CreateTransactionInput{
				Items:         tc.items,
				PaymentMethod: enum.PaymentMethodCash,
				CreatedByID:   user.ID,
			})
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
		})
	}

	var count int64
	db.Model(&entity.Transaction{}).Count(&count)
	if count != 0 {
		t.Errorf("ledger rows = %d, want 0 after rejected carts", count)
	}
}

func TestCreateTransactionFamilyLinks(t *testing.T) {
	db := newTestDB(t)
	svc := newTransactionService(db)
	user := createTestUser(t, db)
	marie := createTestClient(t, db, "Marie", "Dupont")
	leo := createTestClient(t, db, "Léo", "Dupont")

	transaction, err := svc.CreateTransaction(ctx(), &CreateTransactionInput{
		Items: []CartItemInput{
			{Name: "Coupe femme", Price: 4500, Quantity: 1, Type: "service"},
			{Name: "Coupe enfant", Price: 2500, Quantity: 1, Type: "service"},
		},
		PaymentMethod:       enum.PaymentMethodCash,
		PrimaryClientID:     &marie.ID,
		AdditionalClientIDs: []uuid.UUID{leo.ID},
		CreatedByID:         user.ID,
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	var links []entity.TransactionClient
	if err := db.Where("transaction_id = ?", transaction.ID).Find(&links).Error; err != nil {
		t.Fatalf("load links: %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("links = %d, want 2", len(links))
	}

	primaries := 0
	for _, link := range links {
		if link.IsPrimary {
			primaries++
			if link.ClientID != marie.ID {
				t.Errorf("primary link points at %s, want Marie", link.ClientID)
			}
		}
	}
	if primaries != 1 {
		t.Errorf("primary links = %d, want exactly 1", primaries)
	}

	// Both family members get a history entry, with the payer role on Marie
	var histories []entity.ClientHistory
	if err := db.Where("transaction_id = ?", transaction.ID).Find(&histories).Error; err != nil {
		t.Fatalf("load history: %v", err)
	}
	if len(histories) != 2 {
		t.Fatalf("history entries = %d, want 2", len(histories))
	}
	for _, h := range histories {
		switch h.ClientID {
		case marie.ID:
			if h.Role != enum.ClientRolePayer {
				t.Errorf("Marie role = %s, want payer", h.Role)
			}
		case leo.ID:
			if h.Role != enum.ClientRoleIncluded {
				t.Errorf("Léo role = %s, want included", h.Role)
			}
		default:
			t.Errorf("unexpected history entry for client %s", h.ClientID)
		}
		if h.Amount != transaction.TotalAmount {
			t.Errorf("history amount = %d, want %d", h.Amount, transaction.TotalAmount)
		}
	}
}

func TestCreateTransactionAdditionalWithoutPrimary(t *testing.T) {
	db := newTestDB(t)
	svc := newTransactionService(db)
	user := createTestUser(t, db)
	leo := createTestClient(t, db, "Léo", "Dupont")

	_, err := svc.CreateTransaction(ctx(), &CreateTransactionInput{
		Items:               []CartItemInput{{Name: "Coupe enfant", Price: 2500, Quantity: 1, Type: "service"}},
		PaymentMethod:       enum.PaymentMethodCash,
		AdditionalClientIDs: []uuid.UUID{leo.ID},
		CreatedByID:         user.ID,
	})
	if err == nil {
		t.Fatal("expected error for additional clients without a primary")
	}
}

func TestRefundTransaction(t *testing.T) {
	db := newTestDB(t)
	svc := newTransactionService(db)
	user := createTestUser(t, db)
	marie := createTestClient(t, db, "Marie", "Dupont")

	sale, err := svc.CreateTransaction(ctx(), &CreateTransactionInput{
		Items:           []CartItemInput{{Name: "Couleur", Price: 6990, Quantity: 1, Type: "service"}},
		PaymentMethod:   enum.PaymentMethodCard,
		PrimaryClientID: &marie.ID,
		CreatedByID:     user.ID,
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	refund, err := svc.RefundTransaction(ctx(), &RefundTransactionInput{
		TransactionID: sale.ID,
		Reason:        "Client insatisfait",
		ActorID:       user.ID,
	})
	if err != nil {
		t.Fatalf("RefundTransaction: %v", err)
	}

	if refund.Kind != enum.TransactionKindRefund {
		t.Errorf("refund kind = %s, want refund", refund.Kind)
	}
	if refund.TotalAmount != -6990 {
		t.Errorf("refund total = %d, want -6990", refund.TotalAmount)
	}
	if refund.ParentTransactionID == nil || *refund.ParentTransactionID != sale.ID {
		t.Error("refund does not point back at the original sale")
	}
	if refund.RefundReason == nil || *refund.RefundReason != "Client insatisfait" {
		t.Error("refund reason not stored")
	}
	if refund.PaymentMethod != sale.PaymentMethod {
		t.Errorf("refund method = %s, want %s", refund.PaymentMethod, sale.PaymentMethod)
	}

	// The original row must be untouched
	var original entity.Transaction
	if err := db.First(&original, "id = ?", sale.ID).Error; err != nil {
		t.Fatalf("reload sale: %v", err)
	}
	if original.TotalAmount != 6990 || original.Kind != enum.TransactionKindSale {
		t.Error("original sale row was modified by the refund")
	}

	// The refund mirrors the client links
	var links []entity.TransactionClient
	db.Where("transaction_id = ?", refund.ID).Find(&links)
	if len(links) != 1 || links[0].ClientID != marie.ID || !links[0].IsPrimary {
		t.Errorf("refund links = %+v, want mirrored primary link to Marie", links)
	}
}

func TestRefundTransactionRequiresReason(t *testing.T) {
	db := newTestDB(t)
	svc := newTransactionService(db)
	user := createTestUser(t, db)

	sale, err := svc.CreateTransaction(ctx(), &CreateTransactionInput{
		Items:         []CartItemInput{{Name: "Brushing", Price: 3500, Quantity: 1, Type: "service"}},
		PaymentMethod: enum.PaymentMethodCash,
		CreatedByID:   user.ID,
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	_, err = svc.RefundTransaction(ctx(), &RefundTransactionInput{
		TransactionID: sale.ID,
		Reason:        "   ",
		ActorID:       user.ID,
	})
	if err == nil {
		t.Fatal("expected error for blank refund reason")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 400 {
		t.Errorf("code = %d, want 400", appErr.Code)
	}
}

func TestRefundTransactionOnlyOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newTransactionService(db)
	user := createTestUser(t, db)

	sale, err := svc.CreateTransaction(ctx(), &CreateTransactionInput{
		Items:         []CartItemInput{{Name: "Brushing", Price: 3500, Quantity: 1, Type: "service"}},
		PaymentMethod: enum.PaymentMethodCash,
		CreatedByID:   user.ID,
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	if _, err := svc.RefundTransaction(ctx(), &RefundTransactionInput{
		TransactionID: sale.ID,
		Reason:        "Client insatisfait",
		ActorID:       user.ID,
	}); err != nil {
		t.Fatalf("first refund: %v", err)
	}

	_, err = svc.RefundTransaction(ctx(), &RefundTransactionInput{
		TransactionID: sale.ID,
		Reason:        "Deuxième tentative",
		ActorID:       user.ID,
	})
	if err == nil {
		t.Fatal("expected conflict on double refund")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 409 {
		t.Errorf("code = %d, want 409", appErr.Code)
	}
}

func TestRefundOfRefundRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newTransactionService(db)
	user := createTestUser(t, db)

	sale, err := svc.CreateTransaction(ctx(), &CreateTransactionInput{
		Items:         []CartItemInput{{Name: "Brushing", Price: 3500, Quantity: 1, Type: "service"}},
		PaymentMethod: enum.PaymentMethodCash,
		CreatedByID:   user.ID,
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	refund, err := svc.RefundTransaction(ctx(), &RefundTransactionInput{
		TransactionID: sale.ID,
		Reason:        "Client insatisfait",
		ActorID:       user.ID,
	})
	if err != nil {
		t.Fatalf("refund: %v", err)
	}

	_, err = svc.RefundTransaction(ctx(), &RefundTransactionInput{
		TransactionID: refund.ID,
		Reason:        "Refund the refund",
		ActorID:       user.ID,
	})
	if err == nil {
		t.Fatal("expected error refunding a refund row")
	}
}

func TestUpdateNotesAndAttachPhoto(t *testing.T) {
	db := newTestDB(t)
	svc := newTransactionService(db)
	user := createTestUser(t, db)

	sale, err := svc.CreateTransaction(ctx(), &CreateTransactionInput{
		Items:         []CartItemInput{{Name: "Couleur", Price: 8900, Quantity: 1, Type: "service"}},
		PaymentMethod: enum.PaymentMethodTwint,
		CreatedByID:   user.ID,
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	if _, err := svc.UpdateNotes(ctx(), sale.ID, "Allergie au produit X"); err != nil {
		t.Fatalf("UpdateNotes: %v", err)
	}
	if _, err := svc.AttachPhoto(ctx(), sale.ID, "https://cdn.lumierestudio.ch/results/42.jpg"); err != nil {
		t.Fatalf("AttachPhoto: %v", err)
	}

	var reloaded entity.Transaction
	if err := db.First(&reloaded, "id = ?", sale.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Notes == nil || *reloaded.Notes != "Allergie au produit X" {
		t.Error("notes not persisted")
	}
	if reloaded.PhotoURL == nil || *reloaded.PhotoURL != "https://cdn.lumierestudio.ch/results/42.jpg" {
		t.Error("photo URL not persisted")
	}
	// Everything else stays as written at sale time
	if reloaded.TotalAmount != 8900 {
		t.Errorf("total changed to %d", reloaded.TotalAmount)
	}
}

func TestRebuildClientHistory(t *testing.T) {
	db := newTestDB(t)
	svc := newTransactionService(db)
	user := createTestUser(t, db)
	marie := createTestClient(t, db, "Marie", "Dupont")

	sale, err := svc.CreateTransaction(ctx(), &CreateTransactionInput{
		Items:           []CartItemInput{{Name: "Coupe femme", Price: 4500, Quantity: 1, Type: "service"}},
		PaymentMethod:   enum.PaymentMethodCash,
		PrimaryClientID: &marie.ID,
		CreatedByID:     user.ID,
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	// Corrupt the projection, then rebuild it from the ledger
	if err := db.Where("transaction_id = ?", sale.ID).Delete(&entity.ClientHistory{}).Error; err != nil {
		t.Fatalf("corrupt history: %v", err)
	}
	if err := svc.RebuildClientHistory(ctx(), sale.ID, user.ID); err != nil {
		t.Fatalf("RebuildClientHistory: %v", err)
	}

	var histories []entity.ClientHistory
	db.Where("transaction_id = ?", sale.ID).Find(&histories)
	if len(histories) != 1 {
		t.Fatalf("history entries = %d, want 1 after rebuild", len(histories))
	}
	if histories[0].ClientID != marie.ID || histories[0].Amount != 4500 {
		t.Errorf("rebuilt entry = %+v", histories[0])
	}
}
