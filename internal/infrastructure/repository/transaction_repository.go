package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lumierestudio/salon-api/internal/domain/entity"
	"github.com/lumierestudio/salon-api/internal/domain/enum"
	domainRepo "github.com/lumierestudio/salon-api/internal/domain/repository"
	"github.com/lumierestudio/salon-api/pkg/pagination"
	"gorm.io/gorm"
)

// transactionSortColumns maps client sort keys to ledger columns;
// anything else falls back to created_at.
var transactionSortColumns = map[string]string{
	"created_at":     "created_at",
	"number":         "number",
	"total_amount":   "total_amount",
	"payment_method": "payment_method",
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new ledger repository
func NewTransactionRepository(db *gorm.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

// CreateWithLinks writes the ledger row and its client links atomically.
// The sequential number is allocated inside the same transaction so two
// concurrent sales cannot claim the same number.
func (r *transactionRepository) CreateWithLinks(ctx context.Context, transaction *entity.Transaction, links []entity.TransactionClient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxNumber int64
		if err := tx.Model(&entity.Transaction{}).
			Select("COALESCE(MAX(number), 0)").
			Scan(&maxNumber).Error; err != nil {
			return err
		}
		transaction.Number = maxNumber + 1

		if err := tx.Create(transaction).Error; err != nil {
			return err
		}

		if len(links) > 0 {
			for i := range links {
				links[i].TransactionID = transaction.ID
			}
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transaction entity.Transaction
	err := r.db.WithContext(ctx).First(&transaction, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &transaction, err
}

func (r *transactionRepository) GetByNumber(ctx context.Context, number int64) (*entity.Transaction, error) {
	var transaction entity.Transaction
	err := r.db.WithContext(ctx).First(&transaction, "number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &transaction, err
}

func (r *transactionRepository) GetRefundOf(ctx context.Context, saleID uuid.UUID) (*entity.Transaction, error) {
	var refund entity.Transaction
	err := r.db.WithContext(ctx).
		Where("parent_transaction_id = ? AND kind = ?", saleID, enum.TransactionKindRefund).
		First(&refund).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &refund, err
}

func (r *transactionRepository) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error {
	return r.db.WithContext(ctx).Model(&entity.Transaction{}).
		Where("id = ?", id).
		Update("notes", notes).Error
}

func (r *transactionRepository) UpdatePhotoURL(ctx context.Context, id uuid.UUID, photoURL string) error {
	return r.db.WithContext(ctx).Model(&entity.Transaction{}).
		Where("id = ?", id).
		Update("photo_url", photoURL).Error
}

func (r *transactionRepository) List(ctx context.Context, params *domainRepo.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	var transactions []entity.Transaction
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Transaction{})
	query = applyTransactionFilters(query, params.Kind, params.PaymentMethod, params.ClientID, params.StartDate, params.EndDate)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sort input comes straight from the query string, so only
	// whitelisted columns reach the ORDER BY clause.
	sortBy := "created_at"
	if column, ok := transactionSortColumns[params.SortBy]; ok {
		sortBy = column
	}
	sortOrder := "DESC"
	if strings.EqualFold(params.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&transactions).Error

	return transactions, total, err
}

// ListWithCursor returns ledger rows using cursor-based pagination
func (r *transactionRepository) ListWithCursor(ctx context.Context, params *domainRepo.TransactionCursorFilterParams) ([]entity.Transaction, error) {
	var transactions []entity.Transaction

	params.Cursor.Validate()
	query := r.db.WithContext(ctx).Model(&entity.Transaction{})
	query = applyTransactionFilters(query, params.Kind, params.PaymentMethod, params.ClientID, params.StartDate, params.EndDate)

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	if cursor != nil {
		if params.Cursor.Direction == pagination.CursorDirectionNext {
			query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		} else {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	err = query.Limit(params.Cursor.Limit + 1).
		Order("created_at ASC, id ASC").
		Find(&transactions).Error

	return transactions, err
}

func (r *transactionRepository) GetWithLinks(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transaction entity.Transaction
	err := r.db.WithContext(ctx).
		Preload("Links").
		Preload("Links.Client").
		Preload("CreatedBy").
		First(&transaction, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &transaction, err
}

func (r *transactionRepository) SumCashPaid(ctx context.Context, start, end time.Time) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).Model(&entity.Transaction{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("payment_method = ? AND status = ?", enum.PaymentMethodCash, enum.TransactionStatusPaid).
		Where("created_at >= ? AND created_at < ?", start, end).
		Scan(&sum).Error
	return sum, err
}

// applyTransactionFilters adds the shared WHERE clauses for ledger listings.
// Client filtering goes through the link table, not the history projection,
// so listings stay correct even mid-rebuild.
func applyTransactionFilters(query *gorm.DB, kind *enum.TransactionKind, method *enum.PaymentMethod, clientID *uuid.UUID, startDate, endDate *time.Time) *gorm.DB {
	if kind != nil {
		query = query.Where("kind = ?", *kind)
	}
	if method != nil {
		query = query.Where("payment_method = ?", *method)
	}
	if clientID != nil {
		query = query.Where("id IN (?)",
			query.Session(&gorm.Session{NewDB: true}).
				Model(&entity.TransactionClient{}).
				Select("transaction_id").
				Where("client_id = ?", *clientID))
	}
	if startDate != nil {
		query = query.Where("created_at >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("created_at < ?", *endDate)
	}
	return query
}

type transactionClientRepository struct {
	db *gorm.DB
}

// NewTransactionClientRepository creates a new transaction-client link repository
func NewTransactionClientRepository(db *gorm.DB) domainRepo.TransactionClientRepository {
	return &transactionClientRepository{db: db}
}

func (r *transactionClientRepository) GetByTransactionID(ctx context.Context, transactionID uuid.UUID) ([]entity.TransactionClient, error) {
	var links []entity.TransactionClient
	err := r.db.WithContext(ctx).
		Preload("Client").
		Where("transaction_id = ?", transactionID).
		Order("is_primary DESC, created_at ASC").
		Find(&links).Error
	return links, err
}

func (r *transactionClientRepository) GetByClientID(ctx context.Context, clientID uuid.UUID) ([]entity.TransactionClient, error) {
	var links []entity.TransactionClient
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&links).Error
	return links, err
}
