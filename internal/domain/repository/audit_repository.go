package repository

import (
	"context"
	"time"

	"github.com/lumierestudio/salon-api/internal/domain/entity"
	"github.com/lumierestudio/salon-api/pkg/pagination"
)

// AuditLogRepository defines the interface for the append-only audit trail
type AuditLogRepository interface {
	Create(ctx context.Context, entry *entity.AuditLog) error
	List(ctx context.Context, params *pagination.PaginationParams, action string, start, end *time.Time) ([]entity.AuditLog, int64, error)
}
