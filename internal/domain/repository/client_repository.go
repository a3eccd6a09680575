package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lumierestudio/salon-api/internal/domain/entity"
	"github.com/lumierestudio/salon-api/pkg/pagination"
)

// ClientRepository defines the interface for client data operations
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error)
	GetWithDependents(ctx context.Context, id uuid.UUID) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Client, int64, error)
	ListWithCursor(ctx context.Context, params *pagination.CursorParams, search string) ([]entity.Client, error)
	ListDependents(ctx context.Context, parentID uuid.UUID) ([]entity.Client, error)
}

// ClientHistoryRepository defines the interface for the denormalized
// per-client transaction history projection
type ClientHistoryRepository interface {
	CreateBatch(ctx context.Context, entries []entity.ClientHistory) error
	ListByClient(ctx context.Context, clientID uuid.UUID, params *pagination.PaginationParams) ([]entity.ClientHistory, int64, error)
	// DeleteByTransactionID clears the projection rows for one ledger row
	// so a rebuild can regenerate them.
	DeleteByTransactionID(ctx context.Context, transactionID uuid.UUID) error
}
