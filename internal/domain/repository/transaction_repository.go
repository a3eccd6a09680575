package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lumierestudio/salon-api/internal/domain/entity"
	"github.com/lumierestudio/salon-api/internal/domain/enum"
	"github.com/lumierestudio/salon-api/pkg/pagination"
)

// TransactionRepository defines the interface for ledger data operations.
// The ledger is append-only: there is no Delete, and Update is limited to
// the two mutable fields (photo URL, notes).
type TransactionRepository interface {
	// CreateWithLinks writes the ledger row and its client links inside a
	// single database transaction and assigns the next sequential number.
	CreateWithLinks(ctx context.Context, transaction *entity.Transaction, links []entity.TransactionClient) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	GetByNumber(ctx context.Context, number int64) (*entity.Transaction, error)
	// GetRefundOf returns the refund row pointing at the given sale, if any.
	GetRefundOf(ctx context.Context, saleID uuid.UUID) (*entity.Transaction, error)
	UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error
	UpdatePhotoURL(ctx context.Context, id uuid.UUID, photoURL string) error
	List(ctx context.Context, params *TransactionFilterParams) ([]entity.Transaction, int64, error)
	ListWithCursor(ctx context.Context, params *TransactionCursorFilterParams) ([]entity.Transaction, error)
	GetWithLinks(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	// SumCashPaid returns the signed cents total of cash/paid rows created
	// in [start, end). Refund rows carry negative totals and reduce the sum.
	SumCashPaid(ctx context.Context, start, end time.Time) (int64, error)
}

// TransactionFilterParams contains filtering parameters for ledger queries
type TransactionFilterParams struct {
	Pagination    *pagination.PaginationParams
	Kind          *enum.TransactionKind
	PaymentMethod *enum.PaymentMethod
	ClientID      *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
	SortBy        string
	SortOrder     string
}

// TransactionCursorFilterParams contains cursor-based filtering for ledger queries
type TransactionCursorFilterParams struct {
	Cursor        *pagination.CursorParams
	Kind          *enum.TransactionKind
	PaymentMethod *enum.PaymentMethod
	ClientID      *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
}

// TransactionClientRepository defines the interface for transaction-client links
type TransactionClientRepository interface {
	GetByTransactionID(ctx context.Context, transactionID uuid.UUID) ([]entity.TransactionClient, error)
	GetByClientID(ctx context.Context, clientID uuid.UUID) ([]entity.TransactionClient, error)
}
