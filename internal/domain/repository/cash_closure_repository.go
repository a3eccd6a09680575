package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lumierestudio/salon-api/internal/domain/entity"
	"github.com/lumierestudio/salon-api/pkg/pagination"
)

// CashClosureRepository defines the interface for daily cash closure rows.
// Closures are write-once: there is no Update or Delete.
type CashClosureRepository interface {
	Create(ctx context.Context, closure *entity.CashClosure) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CashClosure, error)
	// GetByDate looks up the closure for a YYYY-MM-DD date, nil when the
	// day has not been closed yet.
	GetByDate(ctx context.Context, date string) (*entity.CashClosure, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.CashClosure, int64, error)
	// GetLatest returns the most recent closure, used to prefill the next
	// day's opening float suggestion.
	GetLatest(ctx context.Context) (*entity.CashClosure, error)
}
