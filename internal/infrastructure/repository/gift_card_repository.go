package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lumierestudio/salon-api/internal/domain/entity"
	domainRepo "github.com/lumierestudio/salon-api/internal/domain/repository"
	"github.com/lumierestudio/salon-api/pkg/pagination"
	"gorm.io/gorm"
)

type giftCardRepository struct {
	db *gorm.DB
}

// NewGiftCardRepository creates a new gift card repository
func NewGiftCardRepository(db *gorm.DB) domainRepo.GiftCardRepository {
	return &giftCardRepository{db: db}
}

func (r *giftCardRepository) Create(ctx context.Context, card *entity.GiftCard) error {
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *giftCardRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.GiftCard, error) {
	var card entity.GiftCard
	err := r.db.WithContext(ctx).First(&card, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &card, err
}

func (r *giftCardRepository) GetByCode(ctx context.Context, code string) (*entity.GiftCard, error) {
	var card entity.GiftCard
	err := r.db.WithContext(ctx).First(&card, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &card, err
}

func (r *giftCardRepository) Update(ctx context.Context, card *entity.GiftCard) error {
	return r.db.WithContext(ctx).Save(card).Error
}

func (r *giftCardRepository) List(ctx context.Context, params *pagination.PaginationParams, status string) ([]entity.GiftCard, int64, error) {
	var cards []entity.GiftCard
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.GiftCard{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&cards).Error

	return cards, total, err
}
