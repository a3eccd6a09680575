package repository

import (
	"context"
	"sort"
	"time"

	"github.com/lumierestudio/salon-api/internal/domain/entity"
	"github.com/lumierestudio/salon-api/internal/domain/enum"
	domainRepo "github.com/lumierestudio/salon-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetPeriodTotals(ctx context.Context, start, end time.Time) (*domainRepo.PeriodTotals, error) {
	var totals domainRepo.PeriodTotals

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(total_amount), 0) AS revenue,
			COUNT(*) AS transaction_count,
			COALESCE(SUM(CASE WHEN kind = 'sale' THEN 1 ELSE 0 END), 0) AS sale_count,
			COALESCE(SUM(CASE WHEN kind = 'refund' THEN 1 ELSE 0 END), 0) AS refund_count
		FROM transactions
		WHERE created_at >= ? AND created_at < ?
	`, start, end).Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Raw(`
		SELECT COUNT(DISTINCT tc.client_id)
		FROM transaction_clients tc
		JOIN transactions t ON t.id = tc.transaction_id
		WHERE t.created_at >= ? AND t.created_at < ?
	`, start, end).Scan(&totals.DistinctClients).Error
	if err != nil {
		return nil, err
	}

	return &totals, nil
}

func (r *analyticsRepository) GetMethodBreakdown(ctx context.Context, start, end time.Time) ([]domainRepo.MethodBreakdownResult, error) {
	var results []domainRepo.MethodBreakdownResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			payment_method,
			COALESCE(SUM(total_amount), 0) AS revenue,
			COUNT(*) AS count
		FROM transactions
		WHERE created_at >= ? AND created_at < ?
		GROUP BY payment_method
		ORDER BY revenue DESC
	`, start, end).Scan(&results).Error

	return results, err
}

func (r *analyticsRepository) GetTopClients(ctx context.Context, start, end time.Time, limit int) ([]domainRepo.TopClientResult, error) {
	var results []domainRepo.TopClientResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			c.id AS client_id,
			c.first_name || ' ' || c.last_name AS client_name,
			COALESCE(SUM(h.amount), 0) AS total_spent,
			COUNT(*) AS visit_count
		FROM client_histories h
		JOIN clients c ON c.id = h.client_id
		WHERE h.role = 'payer' AND h.served_at >= ? AND h.served_at < ?
		GROUP BY c.id, c.first_name, c.last_name
		ORDER BY total_spent DESC
		LIMIT ?
	`, start, end, limit).Scan(&results).Error

	return results, err
}

// GetTopItems aggregates cart lines in Go because items live in a JSON
// snapshot column. Refund rows are excluded so a refunded cut does not
// count twice.
func (r *analyticsRepository) GetTopItems(ctx context.Context, start, end time.Time, limit int) ([]domainRepo.TopItemResult, error) {
	var transactions []entity.Transaction
	err := r.db.WithContext(ctx).
		Select("items").
		Where("kind = ? AND created_at >= ? AND created_at < ?", enum.TransactionKindSale, start, end).
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	type itemKey struct {
		name     string
		itemType string
	}
	totals := make(map[itemKey]*domainRepo.TopItemResult)
	for _, t := range transactions {
		for _, item := range t.Items {
			key := itemKey{name: item.Name, itemType: item.Type}
			agg, ok := totals[key]
			if !ok {
				agg = &domainRepo.TopItemResult{Name: item.Name, Type: item.Type}
				totals[key] = agg
			}
			agg.QuantitySold += int64(item.Quantity)
			agg.Revenue += item.LineTotal()
		}
	}

	results := make([]domainRepo.TopItemResult, 0, len(totals))
	for _, agg := range totals {
		results = append(results, *agg)
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Revenue != results[j].Revenue {
			return results[i].Revenue > results[j].Revenue
		}
		return results[i].Name < results[j].Name
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// GetDailyRevenue buckets rows by calendar date in Go so the grouping
// matches the closure day boundaries regardless of the database's
// timezone handling.
func (r *analyticsRepository) GetDailyRevenue(ctx context.Context, start, end time.Time) ([]domainRepo.DailyRevenueResult, error) {
	type row struct {
		CreatedAt   time.Time
		TotalAmount int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&entity.Transaction{}).
		Select("created_at, total_amount").
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]*domainRepo.DailyRevenueResult)
	var dates []string
	for _, r := range rows {
		date := r.CreatedAt.In(start.Location()).Format("2006-01-02")
		bucket, ok := buckets[date]
		if !ok {
			bucket = &domainRepo.DailyRevenueResult{Date: date}
			buckets[date] = bucket
			dates = append(dates, date)
		}
		bucket.Revenue += r.TotalAmount
		bucket.Count++
	}

	results := make([]domainRepo.DailyRevenueResult, 0, len(dates))
	for _, date := range dates {
		results = append(results, *buckets[date])
	}
	return results, nil
}
