package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lumierestudio/salon-api/internal/domain/entity"
	"github.com/lumierestudio/salon-api/internal/domain/enum"
	"github.com/lumierestudio/salon-api/internal/domain/repository"
	"github.com/lumierestudio/salon-api/pkg/apperror"
	"github.com/lumierestudio/salon-api/pkg/pagination"
	"github.com/lumierestudio/salon-api/pkg/utils"
)

// GiftCardService handles gift card purchase and redemption. A purchase
// is an ordinary ledger sale with a giftcard cart line; redemption only
// flips the card status and leaves an audit entry.
type GiftCardService struct {
	giftCardRepo       repository.GiftCardRepository
	transactionService *TransactionService
	auditRepo          repository.AuditLogRepository
	validityMonths     int
}

// NewGiftCardService creates a new gift card service
func NewGiftCardService(giftCardRepo repository.GiftCardRepository, transactionService *TransactionService, auditRepo repository.AuditLogRepository, validityMonths int) *GiftCardService {
	if validityMonths <= 0 {
		validityMonths = 12
	}
	return &GiftCardService{
		giftCardRepo:       giftCardRepo,
		transactionService: transactionService,
		auditRepo:          auditRepo,
		validityMonths:     validityMonths,
	}
}

// PurchaseGiftCardInput represents the purchase input. Amount in cents.
type PurchaseGiftCardInput struct {
	Amount        int64
	PaymentMethod enum.PaymentMethod
	PurchaserName string
	RecipientName string
	ClientID      *uuid.UUID
	CreatedByID   uuid.UUID
}

// PurchaseGiftCard sells a gift card: one ledger sale plus the card row
func (s *GiftCardService) PurchaseGiftCard(ctx context.Context, input *PurchaseGiftCardInput) (*entity.GiftCard, error) {
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Amount must be positive")
	}

	transaction, err := s.transactionService.CreateTransaction(ctx, &CreateTransactionInput{
		Items: []CartItemInput{{
			Name:     "Gift card " + strings.TrimSpace(input.RecipientName),
			Price:    input.Amount,
			Quantity: 1,
			Type:     "giftcard",
		}},
		PaymentMethod:   input.PaymentMethod,
		PrimaryClientID: input.ClientID,
		CreatedByID:     input.CreatedByID,
	})
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().AddDate(0, s.validityMonths, 0)
	card := &entity.GiftCard{
		Code:          utils.GenerateGiftCardCode(),
		Amount:        input.Amount,
		Status:        enum.GiftCardStatusIssued,
		PurchaserName: input.PurchaserName,
		RecipientName: input.RecipientName,
		TransactionID: &transaction.ID,
		ExpiresAt:     &expiresAt,
	}

	if err := s.giftCardRepo.Create(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// RedeemGiftCard marks an issued, unexpired card as redeemed
func (s *GiftCardService) RedeemGiftCard(ctx context.Context, code string, actorID uuid.UUID) (*entity.GiftCard, error) {
	card, err := s.giftCardRepo.GetByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, apperror.NewNotFoundError("Gift card")
	}

	now := time.Now()
	if !card.IsRedeemable(now) {
		if card.Status == enum.GiftCardStatusRedeemed {
			return nil, apperror.NewConflictError("Gift card has already been redeemed")
		}
		return nil, apperror.NewUnprocessableError("Gift card is expired")
	}

	card.Status = enum.GiftCardStatusRedeemed
	card.RedeemedAt = &now
	if err := s.giftCardRepo.Update(ctx, card); err != nil {
		return nil, err
	}

	writeAuditEntry(ctx, s.auditRepo, actorID, entity.AuditActionGiftCardRedeem, "gift_card", &card.ID, map[string]interface{}{
		"code":   card.Code,
		"amount": float64(card.Amount) / 100,
	})

	return card, nil
}

// GetGiftCard retrieves a gift card by ID
func (s *GiftCardService) GetGiftCard(ctx context.Context, id uuid.UUID) (*entity.GiftCard, error) {
	card, err := s.giftCardRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, apperror.NewNotFoundError("Gift card")
	}
	return card, nil
}

// GetGiftCardByCode retrieves a gift card by its printed code
func (s *GiftCardService) GetGiftCardByCode(ctx context.Context, code string) (*entity.GiftCard, error) {
	card, err := s.giftCardRepo.GetByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, apperror.NewNotFoundError("Gift card")
	}
	return card, nil
}

// ListGiftCards lists gift cards with an optional status filter
func (s *GiftCardService) ListGiftCards(ctx context.Context, params *pagination.PaginationParams, status string) (*pagination.PaginatedResult[entity.GiftCard], error) {
	cards, total, err := s.giftCardRepo.List(ctx, params, status)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(cards, pag), nil
}
