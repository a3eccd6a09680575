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

type cashClosureRepository struct {
	db *gorm.DB
}

// NewCashClosureRepository creates a new cash closure repository
func NewCashClosureRepository(db *gorm.DB) domainRepo.CashClosureRepository {
	return &cashClosureRepository{db: db}
}

func (r *cashClosureRepository) Create(ctx context.Context, closure *entity.CashClosure) error {
	return r.db.WithContext(ctx).Create(closure).Error
}

func (r *cashClosureRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CashClosure, error) {
	var closure entity.CashClosure
	err := r.db.WithContext(ctx).Preload("ClosedBy").First(&closure, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &closure, err
}

func (r *cashClosureRepository) GetByDate(ctx context.Context, date string) (*entity.CashClosure, error) {
	var closure entity.CashClosure
	err := r.db.WithContext(ctx).First(&closure, "closure_date = ?", date).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &closure, err
}

func (r *cashClosureRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.CashClosure, int64, error) {
	var closures []entity.CashClosure
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.CashClosure{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("closure_date DESC").
		Find(&closures).Error

	return closures, total, err
}

func (r *cashClosureRepository) GetLatest(ctx context.Context) (*entity.CashClosure, error) {
	var closure entity.CashClosure
	err := r.db.WithContext(ctx).
		Order("closure_date DESC").
		First(&closure).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &closure, err
}
