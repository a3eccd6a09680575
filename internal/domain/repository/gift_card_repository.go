package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lumierestudio/salon-api/internal/domain/entity"
	"github.com/lumierestudio/salon-api/pkg/pagination"
)

// GiftCardRepository defines the interface for gift card data operations
type GiftCardRepository interface {
	Create(ctx context.Context, card *entity.GiftCard) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.GiftCard, error)
	GetByCode(ctx context.Context, code string) (*entity.GiftCard, error)
	Update(ctx context.Context, card *entity.GiftCard) error
	List(ctx context.Context, params *pagination.PaginationParams, status string) ([]entity.GiftCard, int64, error)
}
