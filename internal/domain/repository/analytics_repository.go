package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PeriodTotals represents ledger totals for one reporting period.
// Amounts are signed cents; refund rows subtract from revenue.
type PeriodTotals struct {
	Revenue          int64
	TransactionCount int64
	SaleCount        int64
	RefundCount      int64
	DistinctClients  int64
}

// MethodBreakdownResult represents revenue split by payment method
type MethodBreakdownResult struct {
	PaymentMethod string
	Revenue       int64
	Count         int64
}

// TopClientResult represents a client's spending over a period
type TopClientResult struct {
	ClientID   uuid.UUID
	ClientName string
	TotalSpent int64
	VisitCount int64
}

// TopItemResult represents a cart line's sales performance over a period
type TopItemResult struct {
	Name         string
	Type         string
	QuantitySold int64
	Revenue      int64
}

// DailyRevenueResult represents revenue for a single day
type DailyRevenueResult struct {
	Date    string // YYYY-MM-DD
	Revenue int64
	Count   int64
}

// AnalyticsRepository defines interface for statistics/aggregation queries.
// All methods are read-only over the ledger; [start, end) bounds the period.
type AnalyticsRepository interface {
	// GetPeriodTotals returns revenue and counts for the period
	GetPeriodTotals(ctx context.Context, start, end time.Time) (*PeriodTotals, error)

	// GetMethodBreakdown returns revenue and count split by payment method
	GetMethodBreakdown(ctx context.Context, start, end time.Time) ([]MethodBreakdownResult, error)

	// GetTopClients returns the highest-spending clients for the period
	GetTopClients(ctx context.Context, start, end time.Time, limit int) ([]TopClientResult, error)

	// GetTopItems returns the best-selling services and products for the period
	GetTopItems(ctx context.Context, start, end time.Time, limit int) ([]TopItemResult, error)

	// GetDailyRevenue returns per-day revenue buckets for the period
	GetDailyRevenue(ctx context.Context, start, end time.Time) ([]DailyRevenueResult, error)
}
