package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lumierestudio/salon-api/internal/domain/entity"
	"github.com/lumierestudio/salon-api/internal/domain/enum"
	"github.com/lumierestudio/salon-api/internal/domain/repository"
	"github.com/lumierestudio/salon-api/pkg/apperror"
	"github.com/lumierestudio/salon-api/pkg/pagination"
)

// TransactionService handles the sales ledger: checkout, refunds and the
// two permitted post-insert mutations (photo, notes).
type TransactionService struct {
	transactionRepo repository.TransactionRepository
	linkRepo        repository.TransactionClientRepository
	clientRepo      repository.ClientRepository
	historyRepo     repository.ClientHistoryRepository
	auditRepo       repository.AuditLogRepository
	vatRate         float64
}

// NewTransactionService creates a new transaction service. vatRate is the
// VAT fraction included in prices (e.g. 0.081).
func NewTransactionService(
	transactionRepo repository.TransactionRepository,
	linkRepo repository.TransactionClientRepository,
	clientRepo repository.ClientRepository,
	historyRepo repository.ClientHistoryRepository,
	auditRepo repository.AuditLogRepository,
	vatRate float64,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		linkRepo:        linkRepo,
		clientRepo:      clientRepo,
		historyRepo:     historyRepo,
		auditRepo:       auditRepo,
		vatRate:         vatRate,
	}
}

// CartItemInput is one cart line. Price is the unit price in cents.
type CartItemInput struct {
	Name     string
	Price    int64
	Quantity int
	Type     string
}

// CreateTransactionInput represents the checkout input
type CreateTransactionInput struct {
	Items               []CartItemInput
	PaymentMethod       enum.PaymentMethod
	PrimaryClientID     *uuid.UUID
	AdditionalClientIDs []uuid.UUID
	Notes               *string
	CreatedByID         uuid.UUID
}

// CreateTransaction validates the cart, writes exactly one ledger row
// with total = sum(price x quantity) plus its client links, then writes
// the denormalized history entries. The ledger row and the links commit
// atomically; history failures are logged and never roll back the sale.
func (s *TransactionService) CreateTransaction(ctx context.Context, input *CreateTransactionInput) (*entity.Transaction, error) {
	if err := validateCart(input.Items); err != nil {
		return nil, err
	}
	if !input.PaymentMethod.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown payment method")
	}

	links, err := s.resolveLinks(ctx, input.PrimaryClientID, input.AdditionalClientIDs)
	if err != nil {
		return nil, err
	}

	items := make(entity.TransactionItems, 0, len(input.Items))
	var total int64
	for _, line := range input.Items {
		items = append(items, entity.TransactionItem{
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
			Type:     line.Type,
		})
		total += line.Price * int64(line.Quantity)
	}
	vat := vatIncluded(total, s.vatRate)

	transaction := &entity.Transaction{
		Kind:          enum.TransactionKindSale,
		Status:        enum.TransactionStatusPaid,
		PaymentMethod: input.PaymentMethod,
		TotalAmount:   total,
		NetAmount:     total - vat,
		VATAmount:     vat,
		Items:         items,
		Notes:         input.Notes,
		CreatedByID:   input.CreatedByID,
	}

	if err := s.transactionRepo.CreateWithLinks(ctx, transaction, links); err != nil {
		return nil, err
	}

	s.writeHistory(ctx, transaction, links)

	return transaction, nil
}

// RefundTransactionInput represents the refund input
type RefundTransactionInput struct {
	TransactionID uuid.UUID
	Reason        string
	ActorID       uuid.UUID
}

// RefundTransaction writes a mirrored negative ledger row against an
// existing sale. The original row is never modified. Each sale can be
// refunded once, in full.
func (s *TransactionService) RefundTransaction(ctx context.Context, input *RefundTransactionInput) (*entity.Transaction, error) {
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return nil, apperror.NewBadRequestError("Refund reason is required")
	}

	original, err := s.transactionRepo.GetByID(ctx, input.TransactionID)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	if original.Kind == enum.TransactionKindRefund {
		return nil, apperror.NewUnprocessableError("A refund cannot be refunded")
	}
	if !original.IsRefundable() {
		return nil, apperror.NewUnprocessableError("Only paid sales can be refunded")
	}

	existing, err := s.transactionRepo.GetRefundOf(ctx, original.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Transaction has already been refunded")
	}

	links, err := s.linkRepo.GetByTransactionID(ctx, original.ID)
	if err != nil {
		return nil, err
	}
	refundLinks := make([]entity.TransactionClient, 0, len(links))
	for _, link := range links {
		refundLinks = append(refundLinks, entity.TransactionClient{
			ClientID:  link.ClientID,
			IsPrimary: link.IsPrimary,
		})
	}

	refund := &entity.Transaction{
		Kind:                enum.TransactionKindRefund,
		Status:              enum.TransactionStatusPaid,
		PaymentMethod:       original.PaymentMethod,
		TotalAmount:         -original.TotalAmount,
		NetAmount:           -original.NetAmount,
		VATAmount:           -original.VATAmount,
		Items:               original.Items,
		ParentTransactionID: &original.ID,
		RefundReason:        &reason,
		CreatedByID:         input.ActorID,
	}

	if err := s.transactionRepo.CreateWithLinks(ctx, refund, refundLinks); err != nil {
		return nil, err
	}

	s.writeHistory(ctx, refund, refundLinks)
	s.writeAudit(ctx, input.ActorID, entity.AuditActionRefund, "transaction", &refund.ID, map[string]interface{}{
		"original_number": original.Number,
		"original_id":     original.ID,
		"amount":          float64(refund.TotalAmount) / 100,
		"reason":          reason,
	})

	return refund, nil
}

// UpdateNotes replaces the free-text notes on a ledger row
func (s *TransactionService) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) (*entity.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}

	if err := s.transactionRepo.UpdateNotes(ctx, id, notes); err != nil {
		return nil, err
	}
	transaction.Notes = &notes
	return transaction, nil
}

// AttachPhoto records the URL of a result photo on a ledger row
func (s *TransactionService) AttachPhoto(ctx context.Context, id uuid.UUID, photoURL string) (*entity.Transaction, error) {
	if strings.TrimSpace(photoURL) == "" {
		return nil, apperror.NewBadRequestError("Photo URL is required")
	}

	transaction, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}

	if err := s.transactionRepo.UpdatePhotoURL(ctx, id, photoURL); err != nil {
		return nil, err
	}
	transaction.PhotoURL = &photoURL
	return transaction, nil
}

// GetTransaction retrieves a ledger row with its client links
func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	transaction, err := s.transactionRepo.GetWithLinks(ctx, id)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return transaction, nil
}

// ListTransactions lists ledger rows with filters
func (s *TransactionService) ListTransactions(ctx context.Context, params *repository.TransactionFilterParams) (*pagination.PaginatedResult[entity.Transaction], error) {
	transactions, total, err := s.transactionRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(transactions, pag), nil
}

// ListTransactionsWithCursor lists ledger rows using cursor-based pagination
func (s *TransactionService) ListTransactionsWithCursor(ctx context.Context, params *repository.TransactionCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Transaction], error) {
	transactions, err := s.transactionRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""
	cursorPag, items := pagination.NewCursorPagination(transactions, params.Cursor.Limit,
		func(t entity.Transaction) string { return t.ID.String() },
		func(t entity.Transaction) time.Time { return t.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// RebuildClientHistory regenerates the history projection for one ledger
// row from the ledger itself, discarding whatever the projection held.
func (s *TransactionService) RebuildClientHistory(ctx context.Context, transactionID, actorID uuid.UUID) error {
	transaction, err := s.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if transaction == nil {
		return apperror.NewNotFoundError("Transaction")
	}

	links, err := s.linkRepo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return err
	}

	if err := s.historyRepo.DeleteByTransactionID(ctx, transactionID); err != nil {
		return err
	}
	entries := historyEntries(transaction, links)
	if err := s.historyRepo.CreateBatch(ctx, entries); err != nil {
		return err
	}

	s.writeAudit(ctx, actorID, entity.AuditActionHistoryRebuild, "transaction", &transactionID, map[string]interface{}{
		"entries": len(entries),
	})
	return nil
}

// resolveLinks validates the attached clients and builds the link rows.
// The primary client, when present, is exactly one; additional clients
// are deduplicated and never marked primary.
func (s *TransactionService) resolveLinks(ctx context.Context, primaryID *uuid.UUID, additionalIDs []uuid.UUID) ([]entity.TransactionClient, error) {
	var links []entity.TransactionClient
	seen := make(map[uuid.UUID]bool)

	if primaryID != nil {
		client, err := s.clientRepo.GetByID(ctx, *primaryID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, apperror.NewNotFoundError("Client")
		}
		links = append(links, entity.TransactionClient{ClientID: *primaryID, IsPrimary: true})
		seen[*primaryID] = true
	}

	for _, id := range additionalIDs {
		if seen[id] {
			continue
		}
		if primaryID == nil {
			return nil, apperror.NewBadRequestError("Additional clients require a primary client")
		}
		client, err := s.clientRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, apperror.NewNotFoundError("Client")
		}
		links = append(links, entity.TransactionClient{ClientID: id, IsPrimary: false})
		seen[id] = true
	}

	return links, nil
}

// writeHistory projects the ledger row into per-client history entries.
// Best effort: the sale is already committed, a projection failure is
// repairable via RebuildClientHistory.
func (s *TransactionService) writeHistory(ctx context.Context, transaction *entity.Transaction, links []entity.TransactionClient) {
	entries := historyEntries(transaction, links)
	if len(entries) == 0 {
		return
	}
	if err := s.historyRepo.CreateBatch(ctx, entries); err != nil {
		log.Printf("transaction %d: failed to write client history: %v", transaction.Number, err)
	}
}

func (s *TransactionService) writeAudit(ctx context.Context, actorID uuid.UUID, action, entityType string, entityID *uuid.UUID, metadata map[string]interface{}) {
	writeAuditEntry(ctx, s.auditRepo, actorID, action, entityType, entityID, metadata)
}

func historyEntries(transaction *entity.Transaction, links []entity.TransactionClient) []entity.ClientHistory {
	entries := make([]entity.ClientHistory, 0, len(links))
	for _, link := range links {
		role := enum.ClientRoleIncluded
		if link.IsPrimary {
			role = enum.ClientRolePayer
		}
		entries = append(entries, entity.ClientHistory{
			ClientID:      link.ClientID,
			TransactionID: transaction.ID,
			Number:        transaction.Number,
			Kind:          transaction.Kind,
			Amount:        transaction.TotalAmount,
			PaymentMethod: transaction.PaymentMethod,
			Role:          role,
			ServedAt:      transaction.CreatedAt,
		})
	}
	return entries
}

func validateCart(items []CartItemInput) error {
	if len(items) == 0 {
		return apperror.NewBadRequestError("Cart must not be empty")
	}
	var fieldErrors []apperror.FieldError
	for _, line := range items {
		if strings.TrimSpace(line.Name) == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Item name is required"})
		}
		if line.Price <= 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "price", Message: "Unit price must be positive"})
		}
		if line.Quantity <= 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "quantity", Message: "Quantity must be positive"})
		}
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// vatIncluded extracts the VAT portion from a gross amount in cents,
// assuming prices include VAT at the given rate.
func vatIncluded(gross int64, rate float64) int64 {
	if rate <= 0 {
		return 0
	}
	net := float64(gross) / (1 + rate)
	return gross - int64(net+0.5)
}
